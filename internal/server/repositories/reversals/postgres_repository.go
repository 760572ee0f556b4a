package reversals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ospinae/termledger/internal/common"
	"github.com/ospinae/termledger/internal/dbx"
	"github.com/ospinae/termledger/internal/server/models"
)

// pgUniqueViolation is the PostgreSQL error code for unique-constraint
// violations; the unique index on transaction_id turns a second request for
// the same transaction into this error.
const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const requestColumns = `id, transaction_id, message, requested_by, request_stamp, status, answer, answer_stamp, evaluated_by`

func scanRequest(row *sql.Row) (*models.ReversalRequest, error) {
	req := &models.ReversalRequest{}
	err := row.Scan(&req.ID, &req.TransactionID, &req.Message, &req.RequestedBy,
		&req.RequestStamp, &req.Status, &req.Answer, &req.AnswerStamp, &req.EvaluatedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return req, nil
}

func (r *PostgresRepository) Create(ctx context.Context, req *models.ReversalRequest) (*models.ReversalRequest, error) {
	query :=
		`INSERT INTO reversal_requests (transaction_id, message, requested_by, request_stamp, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		req.TransactionID, req.Message, req.RequestedBy, req.RequestStamp, req.Status).Scan(&req.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrDuplicateRequest
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return req, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.ReversalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM reversal_requests WHERE id = $1`
	return scanRequest(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByTransactionID(ctx context.Context, transactionID int64) (*models.ReversalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM reversal_requests WHERE transaction_id = $1`
	return scanRequest(r.db.QueryRowContext(ctx, query, transactionID))
}

func (r *PostgresRepository) ListPending(ctx context.Context) ([]*models.ReversalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM reversal_requests WHERE status = 'PENDING' ORDER BY request_stamp`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ReversalRequest
	for rows.Next() {
		req := &models.ReversalRequest{}
		if err := rows.Scan(&req.ID, &req.TransactionID, &req.Message, &req.RequestedBy,
			&req.RequestStamp, &req.Status, &req.Answer, &req.AnswerStamp, &req.EvaluatedBy); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Resolve performs the single bulk update of the resolution protocol. The
// status guard in the WHERE clause means a request that is no longer
// PENDING (or gone) affects zero rows; the caller asserts exactly one.
func (r *PostgresRepository) Resolve(ctx context.Context, id int64, status models.RequestStatus, answer string, evaluatedBy int64, stamp time.Time) (int64, error) {
	query :=
		`UPDATE reversal_requests
		 SET status = $2, answer = $3, evaluated_by = $4, answer_stamp = $5
		 WHERE id = $1 AND status = 'PENDING'
		 `

	res, err := r.db.ExecContext(ctx, query, id, status, answer, evaluatedBy, stamp)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return affected, nil
}
