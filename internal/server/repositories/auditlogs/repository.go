package auditlogs

import (
	"context"
	"time"

	"github.com/ospinae/termledger/internal/server/models"
)

// Repository is append-only by design: audit rows are never updated or
// deleted, so the interface exposes no mutation beyond Insert.
type Repository interface {
	Insert(ctx context.Context, entry *models.AuditLog) (*models.AuditLog, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*models.AuditLog, error)
	ListRecent(ctx context.Context, limit int) ([]*models.AuditLog, error)
}
