package transactions

import (
	"context"

	"github.com/ospinae/termledger/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, tr *models.Transaction) (*models.Transaction, error)
	GetByID(ctx context.Context, id int64) (*models.Transaction, error)
	UpdateStatus(ctx context.Context, id int64, status models.TransactionStatus) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Transaction, error)
	ListByCashier(ctx context.Context, cashierID int64, limit int) ([]*models.Transaction, error)
}
