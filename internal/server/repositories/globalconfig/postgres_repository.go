package globalconfig

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

func (r *PostgresRepository) Get(ctx context.Context) (*models.GlobalConfig, error) {
	query :=
		`SELECT id, company_name, tax_id, address, announcement, updated_by, updated_at
		 FROM global_config WHERE id = $1
		 `

	cfg := &models.GlobalConfig{}
	err := r.db.QueryRowContext(ctx, query, models.GlobalConfigID).Scan(
		&cfg.ID, &cfg.CompanyName, &cfg.TaxID, &cfg.Address,
		&cfg.Announcement, &cfg.UpdatedBy, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cfg, nil
}

func (r *PostgresRepository) Update(ctx context.Context, cfg *models.GlobalConfig) (int64, error) {
	query :=
		`UPDATE global_config
		 SET company_name = $2, tax_id = $3, address = $4, announcement = $5, updated_by = $6, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		models.GlobalConfigID, cfg.CompanyName, cfg.TaxID, cfg.Address, cfg.Announcement, cfg.UpdatedBy)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return affected, nil
}
