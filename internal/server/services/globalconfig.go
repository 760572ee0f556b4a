package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ospinae/termledger/internal/common"
	"github.com/ospinae/termledger/internal/dbx"
	"github.com/ospinae/termledger/internal/server/audit"
	"github.com/ospinae/termledger/internal/server/authz"
	"github.com/ospinae/termledger/internal/server/models"
	"github.com/ospinae/termledger/internal/server/repositories/repomanager"
)

// GlobalConfigService serves the singleton configuration row. Reads come
// from a TTL cache: the row changes rarely but is read on every receipt, so
// hitting storage each time buys nothing. One mutex covers both the cached
// value and the refresh, so concurrent readers on an expired cache never
// trigger duplicate loads.
type GlobalConfigService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	checker     *authz.Checker
	recorder    *audit.Recorder
	ttl         time.Duration

	mu        sync.Mutex
	cached    *models.GlobalConfig
	expiresAt time.Time
}

func NewGlobalConfigService(db *sql.DB, m repomanager.RepositoryManager, checker *authz.Checker, recorder *audit.Recorder, ttl time.Duration) *GlobalConfigService {
	return &GlobalConfigService{db: db, repomanager: m, checker: checker, recorder: recorder, ttl: ttl}
}

// Get returns the global configuration, served from cache while fresh.
func (s *GlobalConfigService) Get(ctx context.Context) (*models.GlobalConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && timeNow().Before(s.expiresAt) {
		return s.cached, nil
	}

	cfg, err := s.repomanager.GlobalConfig(s.db).Get(ctx)
	if err != nil {
		return nil, err
	}

	s.cached = cfg
	s.expiresAt = timeNow().Add(s.ttl)
	return cfg, nil
}

// Update writes the singleton row and drops the cache so the next Get sees
// the new values immediately. ADMIN or above.
func (s *GlobalConfigService) Update(ctx context.Context, actorID int64, cfg *models.GlobalConfig) error {
	if strings.TrimSpace(cfg.CompanyName) == "" {
		return fmt.Errorf("%w: company name must not be empty", common.ErrValidation)
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		actor, err := s.checker.Check(ctx, tx, actorID, models.RoleAdmin)
		if err != nil {
			return err
		}

		cfg.ID = models.GlobalConfigID
		cfg.UpdatedBy = actor.ID

		affected, err := s.repomanager.GlobalConfig(tx).Update(ctx, cfg)
		if err != nil {
			return err
		}
		if affected != 1 {
			return fmt.Errorf("%w: config row missing", common.ErrConsistency)
		}

		return s.recorder.Record(ctx, tx, audit.ConfigUpdate, actor.ID, models.GlobalConfigID)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cached = nil
	s.expiresAt = time.Time{}
	s.mu.Unlock()

	return nil
}
