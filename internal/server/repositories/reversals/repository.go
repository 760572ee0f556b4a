package reversals

import (
	"context"
	"time"

	"github.com/ospinae/termledger/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, req *models.ReversalRequest) (*models.ReversalRequest, error)
	GetByID(ctx context.Context, id int64) (*models.ReversalRequest, error)
	GetByTransactionID(ctx context.Context, transactionID int64) (*models.ReversalRequest, error)
	ListPending(ctx context.Context) ([]*models.ReversalRequest, error)
	Resolve(ctx context.Context, id int64, status models.RequestStatus, answer string, evaluatedBy int64, stamp time.Time) (int64, error)
}
