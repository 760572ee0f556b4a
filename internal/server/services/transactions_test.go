package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ospinae/termledger/internal/common"
	"github.com/ospinae/termledger/internal/server/audit"
	"github.com/ospinae/termledger/internal/server/authz"
	"github.com/ospinae/termledger/internal/server/models"
)

func transactionFixture(rm *fakeRepoManager, kind models.ConceptKind, value int64) {
	rm.addUser(&models.User{ID: 3, Username: "carla", Role: models.RoleCashier, Active: true})
	rm.b.bank = &models.Bank{ID: 1, Name: "Banco Norte", Active: true}
	rm.c.concept = &models.Concept{ID: 2, Name: "Recarga", Kind: kind, Value: value, Active: true}
}

func TestTransactionCreate_FixedCommission(t *testing.T) {
	db, mock := newMockDB(t)
	rm := newFakeRepoManager()
	transactionFixture(rm, models.ConceptFixed, 500)

	svc := NewTransactionService(db, rm, authz.NewChecker(rm), audit.NewRecorder(rm))

	mock.ExpectBegin()
	mock.ExpectCommit()

	created, err := svc.Create(context.Background(), CreateTransactionParams{BankID: 1, ConceptID: 2, CashierID: 3, Amount: 12345})
	require.NoError(t, err)

	assert.Equal(t, int64(500), created.Commission)
	assert.Equal(t, models.TransactionRegistered, created.Status)
	assert.Equal(t, int64(12345), created.Amount)

	require.Len(t, rm.a.inserted, 1)
	assert.Equal(t, audit.TransactionCreate.Code, rm.a.inserted[0].Action)
	assert.Equal(t, created.ID, rm.a.inserted[0].EntityID)
	assert.NotEmpty(t, rm.a.inserted[0].ComputerName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionCreate_RateCommissionRoundsHalfUp(t *testing.T) {
	db, mock := newMockDB(t)
	rm := newFakeRepoManager()
	// 3% of 0.50 is 0.015: exactly half a cent, rounds up to 0.02.
	transactionFixture(rm, models.ConceptRate, 300)

	svc := NewTransactionService(db, rm, authz.NewChecker(rm), audit.NewRecorder(rm))

	mock.ExpectBegin()
	mock.ExpectCommit()

	created, err := svc.Create(context.Background(), CreateTransactionParams{BankID: 1, ConceptID: 2, CashierID: 3, Amount: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.Commission)
}

func TestTransactionCreate_NonPositiveAmount(t *testing.T) {
	db, mock := newMockDB(t)
	rm := newFakeRepoManager()
	transactionFixture(rm, models.ConceptFixed, 500)

	svc := NewTransactionService(db, rm, authz.NewChecker(rm), audit.NewRecorder(rm))

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateTransactionParams{BankID: 1, ConceptID: 2, CashierID: 3, Amount: 0})
	assert.True(t, errors.Is(err, common.ErrValidation))
	assert.Empty(t, rm.t.created, "nothing may persist on validation failure")
	assert.Empty(t, rm.a.inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionCreate_NonPositiveIDs(t *testing.T) {
	db, _ := newMockDB(t)
	rm := newFakeRepoManager()

	svc := NewTransactionService(db, rm, authz.NewChecker(rm), audit.NewRecorder(rm))

	_, err := svc.Create(context.Background(), CreateTransactionParams{BankID: 0, ConceptID: 2, CashierID: 3, Amount: 100})
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestTransactionCreate_InactiveConcept(t *testing.T) {
	db, mock := newMockDB(t)
	rm := newFakeRepoManager()
	transactionFixture(rm, models.ConceptFixed, 500)
	rm.c.concept.Active = false

	svc := NewTransactionService(db, rm, authz.NewChecker(rm), audit.NewRecorder(rm))

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateTransactionParams{BankID: 1, ConceptID: 2, CashierID: 3, Amount: 100})
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestTransactionCreate_MalformedConceptValue(t *testing.T) {
	db, mock := newMockDB(t)
	rm := newFakeRepoManager()
	transactionFixture(rm, models.ConceptRate, 10001)

	svc := NewTransactionService(db, rm, authz.NewChecker(rm), audit.NewRecorder(rm))

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateTransactionParams{BankID: 1, ConceptID: 2, CashierID: 3, Amount: 100})
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestTransactionCreate_InactiveCashierWritesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	rm := newFakeRepoManager()
	transactionFixture(rm, models.ConceptFixed, 500)
	rm.u.byID[3].Active = false

	svc := NewTransactionService(db, rm, authz.NewChecker(rm), audit.NewRecorder(rm))

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateTransactionParams{BankID: 1, ConceptID: 2, CashierID: 3, Amount: 100})
	assert.True(t, errors.Is(err, common.ErrPrivilege))
	assert.Empty(t, rm.t.created)
	assert.Empty(t, rm.a.inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionCreate_UnknownBank(t *testing.T) {
	db, mock := newMockDB(t)
	rm := newFakeRepoManager()
	transactionFixture(rm, models.ConceptFixed, 500)

	svc := NewTransactionService(db, rm, authz.NewChecker(rm), audit.NewRecorder(rm))

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateTransactionParams{BankID: 99, ConceptID: 2, CashierID: 3, Amount: 100})
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
