package auditlogs

import (
	"context"
	"fmt"
	"time"

	"github.com/ospinae/termledger/internal/dbx"
	"github.com/ospinae/termledger/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const logColumns = `id, event_stamp, user_id, action, entity, entity_id, details, computer_name`

func (r *PostgresRepository) Insert(ctx context.Context, entry *models.AuditLog) (*models.AuditLog, error) {
	query :=
		`INSERT INTO audit_logs (event_stamp, user_id, action, entity, entity_id, details, computer_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		entry.EventStamp, entry.UserID, entry.Action, entry.Entity,
		entry.EntityID, entry.Details, entry.ComputerName).Scan(&entry.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

func (r *PostgresRepository) ListRange(ctx context.Context, from, to time.Time) ([]*models.AuditLog, error) {
	query := `SELECT ` + logColumns + ` FROM audit_logs WHERE event_stamp >= $1 AND event_stamp < $2 ORDER BY event_stamp`
	return r.queryList(ctx, query, from, to)
}

func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	query := `SELECT ` + logColumns + ` FROM audit_logs ORDER BY event_stamp DESC LIMIT $1`
	return r.queryList(ctx, query, limit)
}

func (r *PostgresRepository) queryList(ctx context.Context, query string, args ...any) ([]*models.AuditLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.AuditLog
	for rows.Next() {
		entry := &models.AuditLog{}
		if err := rows.Scan(&entry.ID, &entry.EventStamp, &entry.UserID, &entry.Action,
			&entry.Entity, &entry.EntityID, &entry.Details, &entry.ComputerName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
