package globalconfig

import (
	"context"

	"github.com/ospinae/termledger/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context) (*models.GlobalConfig, error)
	Update(ctx context.Context, cfg *models.GlobalConfig) (int64, error)
}
