// Package services implements the business operations of the ledger. Each
// mutating operation composes repositories, the privilege checker, and the
// audit recorder inside one dbx.WithTx unit of work, so business rows and
// their audit rows commit or roll back together.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ospinae/termledger/internal/common"
	"github.com/ospinae/termledger/internal/dbx"
	"github.com/ospinae/termledger/internal/money"
	"github.com/ospinae/termledger/internal/server/audit"
	"github.com/ospinae/termledger/internal/server/authz"
	"github.com/ospinae/termledger/internal/server/models"
	"github.com/ospinae/termledger/internal/server/repositories/repomanager"
)

// timeNow is a seam for tests.
var timeNow = time.Now

type TransactionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	checker     *authz.Checker
	recorder    *audit.Recorder
}

func NewTransactionService(db *sql.DB, m repomanager.RepositoryManager, checker *authz.Checker, recorder *audit.Recorder) *TransactionService {
	return &TransactionService{db: db, repomanager: m, checker: checker, recorder: recorder}
}

// CreateTransactionParams carries the caller-supplied fields of a new
// transaction. Commission, moment, and status are computed server-side.
type CreateTransactionParams struct {
	BankID    int64
	ConceptID int64
	CashierID int64
	Amount    int64
}

// Create registers one cash movement. Checks run in a fixed order so the
// first failure names the actual problem: referenced ids must be positive,
// the concept's stored value must be well formed for its kind, the amount
// must be positive, and the cashier must be active with role >= CASHIER
// (verified against the stored row, not the session). The commission is
// frozen at creation: a FIXED concept charges its value, a RATE concept
// charges round-half-up(amount * value / money.RateScale). The transaction
// row and its TRANSACTION_CREATE audit row land in one unit of work.
func (s *TransactionService) Create(ctx context.Context, p CreateTransactionParams) (*models.Transaction, error) {
	if p.BankID <= 0 || p.ConceptID <= 0 || p.CashierID <= 0 {
		return nil, fmt.Errorf("%w: bank, concept and cashier ids must be positive", common.ErrValidation)
	}

	var created *models.Transaction

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		bank, err := s.repomanager.Banks(tx).GetByID(ctx, p.BankID)
		if err != nil {
			return fmt.Errorf("loading bank %d: %w", p.BankID, err)
		}
		if !bank.Active {
			return fmt.Errorf("%w: bank %q is inactive", common.ErrValidation, bank.Name)
		}

		concept, err := s.repomanager.Concepts(tx).GetByID(ctx, p.ConceptID)
		if err != nil {
			return fmt.Errorf("loading concept %d: %w", p.ConceptID, err)
		}
		if !concept.Active {
			return fmt.Errorf("%w: concept %q is inactive", common.ErrValidation, concept.Name)
		}
		if !concept.ValidValue() {
			return fmt.Errorf("%w: concept %q has malformed %s value %d", common.ErrValidation, concept.Name, concept.Kind, concept.Value)
		}

		if p.Amount <= 0 {
			return fmt.Errorf("%w: amount must be positive, got %s", common.ErrValidation, money.Format(p.Amount))
		}

		cashier, err := s.checker.Check(ctx, tx, p.CashierID, models.RoleCashier)
		if err != nil {
			return err
		}

		var commission int64
		switch concept.Kind {
		case models.ConceptFixed:
			commission = concept.Value
		case models.ConceptRate:
			commission, err = money.RateCommission(p.Amount, concept.Value)
			if err != nil {
				return err
			}
		}

		tr := &models.Transaction{
			BankID:     bank.ID,
			ConceptID:  concept.ID,
			CashierID:  cashier.ID,
			Amount:     p.Amount,
			Commission: commission,
			Moment:     timeNow(),
			Status:     models.TransactionRegistered,
		}

		created, err = s.repomanager.Transactions(tx).Create(ctx, tr)
		if err != nil {
			return err
		}

		return s.recorder.Record(ctx, tx, audit.TransactionCreate, cashier.ID, created.ID)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetByID returns one transaction.
func (s *TransactionService) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: transaction id must be positive", common.ErrValidation)
	}
	return s.repomanager.Transactions(s.db).GetByID(ctx, id)
}

// ListRecent returns the newest transactions, most recent first. Requires
// an active viewer (any role).
func (s *TransactionService) ListRecent(ctx context.Context, viewerID int64, limit int) ([]*models.Transaction, error) {
	if _, err := s.checker.Check(ctx, s.db, viewerID, models.RoleCashier); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	return s.repomanager.Transactions(s.db).ListRecent(ctx, limit)
}

// ListByCashier returns a cashier's own recent transactions.
func (s *TransactionService) ListByCashier(ctx context.Context, cashierID int64, limit int) ([]*models.Transaction, error) {
	if _, err := s.checker.Check(ctx, s.db, cashierID, models.RoleCashier); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	return s.repomanager.Transactions(s.db).ListByCashier(ctx, cashierID, limit)
}
