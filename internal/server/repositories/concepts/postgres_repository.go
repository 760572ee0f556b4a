package concepts

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

func (r *PostgresRepository) Create(ctx context.Context, concept *models.Concept) (*models.Concept, error) {
	query :=
		`INSERT INTO concepts (name, kind, value, active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		concept.Name, concept.Kind, concept.Value, concept.Active).Scan(&concept.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return concept, nil
}

func (r *PostgresRepository) Update(ctx context.Context, concept *models.Concept) (int64, error) {
	query :=
		`UPDATE concepts SET name = $2, kind = $3, value = $4, active = $5, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		concept.ID, concept.Name, concept.Kind, concept.Value, concept.Active)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return affected, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Concept, error) {
	query := `SELECT id, name, kind, value, active, created_at, updated_at FROM concepts WHERE id = $1`

	concept := &models.Concept{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&concept.ID, &concept.Name, &concept.Kind, &concept.Value,
		&concept.Active, &concept.CreatedAt, &concept.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return concept, nil
}

func (r *PostgresRepository) List(ctx context.Context, activeOnly bool) ([]*models.Concept, error) {
	query := `SELECT id, name, kind, value, active, created_at, updated_at FROM concepts`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Concept
	for rows.Next() {
		concept := &models.Concept{}
		if err := rows.Scan(&concept.ID, &concept.Name, &concept.Kind, &concept.Value,
			&concept.Active, &concept.CreatedAt, &concept.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, concept)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
