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

type ReversalService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	checker     *authz.Checker
	recorder    *audit.Recorder
}

func NewReversalService(db *sql.DB, m repomanager.RepositoryManager, checker *authz.Checker, recorder *audit.Recorder) *ReversalService {
	return &ReversalService{db: db, repomanager: m, checker: checker, recorder: recorder}
}

// Create files a reversal request against one transaction. The transaction
// must exist, must be REGISTERED, and must belong to the requester; the
// message is mandatory. On success the request is inserted as PENDING, the
// transaction moves to REVERSION_REQUESTED, and a REVERSAL_REQUEST_CREATE
// audit row is written, all in one unit of work. A second request for the
// same transaction fails with ErrDuplicateRequest via the unique index on
// transaction_id.
func (s *ReversalService) Create(ctx context.Context, transactionID, requesterID int64, message string) (*models.ReversalRequest, error) {
	if transactionID <= 0 || requesterID <= 0 {
		return nil, fmt.Errorf("%w: transaction and requester ids must be positive", common.ErrValidation)
	}

	var created *models.ReversalRequest

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		tr, err := s.repomanager.Transactions(tx).GetByID(ctx, transactionID)
		if err != nil {
			return fmt.Errorf("loading transaction %d: %w", transactionID, err)
		}

		if tr.Status != models.TransactionRegistered {
			return fmt.Errorf("%w: transaction %d is %s, only REGISTERED transactions can be reversed", common.ErrInvalidState, tr.ID, tr.Status)
		}

		if tr.CashierID != requesterID {
			return fmt.Errorf("%w: transaction %d belongs to another cashier", common.ErrOwnership, tr.ID)
		}

		if strings.TrimSpace(message) == "" {
			return fmt.Errorf("%w: reversal message must not be empty", common.ErrValidation)
		}

		requester, err := s.checker.Check(ctx, tx, requesterID, models.RoleCashier)
		if err != nil {
			return err
		}

		req := &models.ReversalRequest{
			TransactionID: tr.ID,
			Message:       message,
			RequestedBy:   requester.ID,
			RequestStamp:  timeNow(),
			Status:        models.RequestPending,
		}

		created, err = s.repomanager.Reversals(tx).Create(ctx, req)
		if err != nil {
			return err
		}

		affected, err := s.repomanager.Transactions(tx).UpdateStatus(ctx, tr.ID, models.TransactionReversionRequested)
		if err != nil {
			return err
		}
		if affected != 1 {
			return fmt.Errorf("%w: expected to mark 1 transaction, marked %d", common.ErrConsistency, affected)
		}

		return s.recorder.Record(ctx, tx, audit.ReversalRequestCreate, requester.ID, created.ID)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Resolve settles one pending request. The evaluator must be an active
// ADMIN or ROOT per the stored user row; the answer is mandatory. The
// request row is updated with a single statement guarded by
// status = 'PENDING', and exactly one row must be affected: zero means the
// request was already resolved (or lost a race) and the whole unit rolls
// back with ErrConsistency. APPROVED moves the owning transaction to
// REVERSED, DENIED restores it to REGISTERED.
func (s *ReversalService) Resolve(ctx context.Context, requestID, evaluatorID int64, resolution models.Resolution, answer string) (*models.ReversalRequest, error) {
	if requestID <= 0 || evaluatorID <= 0 {
		return nil, fmt.Errorf("%w: request and evaluator ids must be positive", common.ErrValidation)
	}
	if !resolution.Valid() {
		return nil, fmt.Errorf("%w: unknown resolution %q", common.ErrValidation, resolution)
	}
	if strings.TrimSpace(answer) == "" {
		return nil, fmt.Errorf("%w: resolution answer must not be empty", common.ErrValidation)
	}

	var resolved *models.ReversalRequest

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		evaluator, err := s.checker.Check(ctx, tx, evaluatorID, models.RoleAdmin)
		if err != nil {
			return err
		}

		affected, err := s.repomanager.Reversals(tx).Resolve(ctx, requestID, resolution.RequestStatus(), answer, evaluator.ID, timeNow())
		if err != nil {
			return err
		}
		if affected != 1 {
			return fmt.Errorf("%w: request %d is not pending", common.ErrConsistency, requestID)
		}

		resolved, err = s.repomanager.Reversals(tx).GetByID(ctx, requestID)
		if err != nil {
			return fmt.Errorf("reloading request %d: %w", requestID, err)
		}

		affected, err = s.repomanager.Transactions(tx).UpdateStatus(ctx, resolved.TransactionID, resolution.TransactionStatus())
		if err != nil {
			return err
		}
		if affected != 1 {
			return fmt.Errorf("%w: expected to mark 1 transaction, marked %d", common.ErrConsistency, affected)
		}

		return s.recorder.Record(ctx, tx, audit.ReversalRequestResolve, evaluator.ID, resolved.ID)
	})
	if err != nil {
		return nil, err
	}

	return resolved, nil
}

// ListPending returns the review board: all pending requests, oldest first.
// The viewer must be an active ADMIN or ROOT.
func (s *ReversalService) ListPending(ctx context.Context, viewerID int64) ([]*models.ReversalRequest, error) {
	if _, err := s.checker.Check(ctx, s.db, viewerID, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repomanager.Reversals(s.db).ListPending(ctx)
}

// GetByID returns one reversal request.
func (s *ReversalService) GetByID(ctx context.Context, id int64) (*models.ReversalRequest, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: request id must be positive", common.ErrValidation)
	}
	return s.repomanager.Reversals(s.db).GetByID(ctx, id)
}

// GetByTransaction returns the request filed against a transaction, if any.
func (s *ReversalService) GetByTransaction(ctx context.Context, transactionID int64) (*models.ReversalRequest, error) {
	if transactionID <= 0 {
		return nil, fmt.Errorf("%w: transaction id must be positive", common.ErrValidation)
	}
	return s.repomanager.Reversals(s.db).GetByTransactionID(ctx, transactionID)
}
