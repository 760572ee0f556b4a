package users

import (
	"context"

	"github.com/ospinae/termledger/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Deactivate(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context) ([]*models.User, error)
}
