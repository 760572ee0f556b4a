package banks

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

func (r *PostgresRepository) Create(ctx context.Context, bank *models.Bank) (*models.Bank, error) {
	query :=
		`INSERT INTO banks (name, active)
		 VALUES ($1, $2)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, bank.Name, bank.Active).Scan(&bank.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return bank, nil
}

func (r *PostgresRepository) Update(ctx context.Context, bank *models.Bank) (int64, error) {
	query :=
		`UPDATE banks SET name = $2, active = $3, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, bank.ID, bank.Name, bank.Active)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return affected, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Bank, error) {
	query := `SELECT id, name, active, created_at, updated_at FROM banks WHERE id = $1`

	bank := &models.Bank{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&bank.ID, &bank.Name, &bank.Active, &bank.CreatedAt, &bank.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return bank, nil
}

func (r *PostgresRepository) List(ctx context.Context, activeOnly bool) ([]*models.Bank, error) {
	query := `SELECT id, name, active, created_at, updated_at FROM banks`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Bank
	for rows.Next() {
		bank := &models.Bank{}
		if err := rows.Scan(&bank.ID, &bank.Name, &bank.Active, &bank.CreatedAt, &bank.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, bank)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
