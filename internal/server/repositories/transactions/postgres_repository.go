package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ospinae/termledger/internal/common"
	"github.com/ospinae/termledger/internal/dbx"
	"github.com/ospinae/termledger/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const txColumns = `id, bank_id, concept_id, cashier_id, amount, commission, moment, status`

func (r *PostgresRepository) Create(ctx context.Context, tr *models.Transaction) (*models.Transaction, error) {
	query :=
		`INSERT INTO transactions (bank_id, concept_id, cashier_id, amount, commission, moment, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		tr.BankID, tr.ConceptID, tr.CashierID, tr.Amount, tr.Commission, tr.Moment, tr.Status).Scan(&tr.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tr, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE id = $1`

	tr := &models.Transaction{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tr.ID, &tr.BankID, &tr.ConceptID, &tr.CashierID,
		&tr.Amount, &tr.Commission, &tr.Moment, &tr.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tr, nil
}

// UpdateStatus moves the transaction to the given status and returns the
// number of affected rows so callers can assert exactly-one.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status models.TransactionStatus) (int64, error) {
	query := `UPDATE transactions SET status = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return affected, nil
}

func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]*models.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions ORDER BY moment DESC LIMIT $1`
	return r.queryList(ctx, query, limit)
}

func (r *PostgresRepository) ListByCashier(ctx context.Context, cashierID int64, limit int) ([]*models.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE cashier_id = $1 ORDER BY moment DESC LIMIT $2`
	return r.queryList(ctx, query, cashierID, limit)
}

func (r *PostgresRepository) queryList(ctx context.Context, query string, args ...any) ([]*models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		tr := &models.Transaction{}
		if err := rows.Scan(&tr.ID, &tr.BankID, &tr.ConceptID, &tr.CashierID,
			&tr.Amount, &tr.Commission, &tr.Moment, &tr.Status); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
