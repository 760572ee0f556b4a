package concepts

import (
	"context"

	"github.com/ospinae/termledger/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, concept *models.Concept) (*models.Concept, error)
	Update(ctx context.Context, concept *models.Concept) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Concept, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Concept, error)
}
