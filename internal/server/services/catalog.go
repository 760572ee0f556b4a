package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ospinae/termledger/internal/common"
	"github.com/ospinae/termledger/internal/dbx"
	"github.com/ospinae/termledger/internal/server/audit"
	"github.com/ospinae/termledger/internal/server/authz"
	"github.com/ospinae/termledger/internal/server/models"
	"github.com/ospinae/termledger/internal/server/repositories/repomanager"
)

// CatalogService maintains the reference data transactions point at: banks
// and commission concepts. Edits never touch history, the commission on an
// existing transaction was frozen at creation time.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	checker     *authz.Checker
	recorder    *audit.Recorder
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, checker *authz.Checker, recorder *audit.Recorder) *CatalogService {
	return &CatalogService{db: db, repomanager: m, checker: checker, recorder: recorder}
}

// CreateBank adds a bank. ADMIN or above.
func (s *CatalogService) CreateBank(ctx context.Context, actorID int64, name string) (*models.Bank, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: bank name must not be empty", common.ErrValidation)
	}

	var created *models.Bank

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.checker.Check(ctx, tx, actorID, models.RoleAdmin); err != nil {
			return err
		}

		var err error
		created, err = s.repomanager.Banks(tx).Create(ctx, &models.Bank{Name: name, Active: true})
		if err != nil {
			return err
		}

		return s.recorder.Record(ctx, tx, audit.BankCreate, actorID, created.ID)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateBank renames a bank or flips its active flag. ADMIN or above.
func (s *CatalogService) UpdateBank(ctx context.Context, actorID int64, bank *models.Bank) error {
	if bank.ID <= 0 {
		return fmt.Errorf("%w: bank id must be positive", common.ErrValidation)
	}
	if strings.TrimSpace(bank.Name) == "" {
		return fmt.Errorf("%w: bank name must not be empty", common.ErrValidation)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.checker.Check(ctx, tx, actorID, models.RoleAdmin); err != nil {
			return err
		}

		affected, err := s.repomanager.Banks(tx).Update(ctx, bank)
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("bank %d: %w", bank.ID, common.ErrNotFound)
		}

		return s.recorder.Record(ctx, tx, audit.BankUpdate, actorID, bank.ID)
	})
}

// ListBanks returns banks, optionally active only. Any active user.
func (s *CatalogService) ListBanks(ctx context.Context, viewerID int64, activeOnly bool) ([]*models.Bank, error) {
	if _, err := s.checker.Check(ctx, s.db, viewerID, models.RoleCashier); err != nil {
		return nil, err
	}
	return s.repomanager.Banks(s.db).List(ctx, activeOnly)
}

// CreateConcept adds a commission concept. The value must be well formed
// for the kind before anything is written. ADMIN or above.
func (s *CatalogService) CreateConcept(ctx context.Context, actorID int64, name string, kind models.ConceptKind, value int64) (*models.Concept, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: concept name must not be empty", common.ErrValidation)
	}

	concept := &models.Concept{Name: name, Kind: kind, Value: value, Active: true}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown concept kind %q", common.ErrValidation, kind)
	}
	if !concept.ValidValue() {
		return nil, fmt.Errorf("%w: malformed %s value %d", common.ErrValidation, kind, value)
	}

	var created *models.Concept

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.checker.Check(ctx, tx, actorID, models.RoleAdmin); err != nil {
			return err
		}

		var err error
		created, err = s.repomanager.Concepts(tx).Create(ctx, concept)
		if err != nil {
			return err
		}

		return s.recorder.Record(ctx, tx, audit.ConceptCreate, actorID, created.ID)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateConcept edits a concept in place. Existing transactions are not
// recomputed. ADMIN or above.
func (s *CatalogService) UpdateConcept(ctx context.Context, actorID int64, concept *models.Concept) error {
	if concept.ID <= 0 {
		return fmt.Errorf("%w: concept id must be positive", common.ErrValidation)
	}
	if strings.TrimSpace(concept.Name) == "" {
		return fmt.Errorf("%w: concept name must not be empty", common.ErrValidation)
	}
	if !concept.Kind.Valid() {
		return fmt.Errorf("%w: unknown concept kind %q", common.ErrValidation, concept.Kind)
	}
	if !concept.ValidValue() {
		return fmt.Errorf("%w: malformed %s value %d", common.ErrValidation, concept.Kind, concept.Value)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.checker.Check(ctx, tx, actorID, models.RoleAdmin); err != nil {
			return err
		}

		affected, err := s.repomanager.Concepts(tx).Update(ctx, concept)
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("concept %d: %w", concept.ID, common.ErrNotFound)
		}

		return s.recorder.Record(ctx, tx, audit.ConceptUpdate, actorID, concept.ID)
	})
}

// ListConcepts returns concepts, optionally active only. Any active user.
func (s *CatalogService) ListConcepts(ctx context.Context, viewerID int64, activeOnly bool) ([]*models.Concept, error) {
	if _, err := s.checker.Check(ctx, s.db, viewerID, models.RoleCashier); err != nil {
		return nil, err
	}
	return s.repomanager.Concepts(s.db).List(ctx, activeOnly)
}
