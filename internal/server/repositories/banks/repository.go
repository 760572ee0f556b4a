package banks

import (
	"context"

	"github.com/ospinae/termledger/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, bank *models.Bank) (*models.Bank, error)
	Update(ctx context.Context, bank *models.Bank) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Bank, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Bank, error)
}
