package audit

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ospinae/termledger/internal/dbx"
	"github.com/ospinae/termledger/internal/server/models"
	"github.com/ospinae/termledger/internal/server/repositories/repomanager"
)

// Seams for testing clock and hostname resolution.
var (
	timeNow    = time.Now
	osHostname = os.Hostname
)

type Recorder struct {
	repomanager repomanager.RepositoryManager
}

func NewRecorder(m repomanager.RepositoryManager) *Recorder {
	return &Recorder{repomanager: m}
}

// Record appends one audit row through the given handle. Callers pass their
// transaction handle so the row commits or rolls back together with the
// mutation it describes. The hostname is mandatory audit metadata: if it
// cannot be resolved the whole operation fails.
func (r *Recorder) Record(ctx context.Context, db dbx.DBTX, action Action, actorID, entityID int64) error {
	host, err := osHostname()
	if err != nil {
		return fmt.Errorf("resolving hostname for audit row: %w", err)
	}

	entry := &models.AuditLog{
		EventStamp:   timeNow(),
		UserID:       actorID,
		Action:       action.Code,
		Entity:       action.Entity,
		EntityID:     entityID,
		Details:      action.Description,
		ComputerName: host,
	}

	if _, err := r.repomanager.AuditLogs(db).Insert(ctx, entry); err != nil {
		return fmt.Errorf("writing audit row: %w", err)
	}
	return nil
}
