package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ospinae/termledger/internal/common"
	"github.com/ospinae/termledger/internal/dbx"
	"github.com/ospinae/termledger/internal/server/models"
	"github.com/ospinae/termledger/internal/server/repositories/auditlogs"
	"github.com/ospinae/termledger/internal/server/repositories/banks"
	"github.com/ospinae/termledger/internal/server/repositories/concepts"
	"github.com/ospinae/termledger/internal/server/repositories/globalconfig"
	"github.com/ospinae/termledger/internal/server/repositories/repomanager"
	"github.com/ospinae/termledger/internal/server/repositories/reversals"
	"github.com/ospinae/termledger/internal/server/repositories/transactions"
	"github.com/ospinae/termledger/internal/server/repositories/users"
)

// Service tests run real services over fake repositories. The *sql.DB is a
// sqlmock handle used only for Begin/Commit/Rollback: the fakes never touch
// it, so the mock's transaction expectations verify the unit-of-work
// boundaries while the fakes verify what was written.

func errNotFound() error { return common.ErrNotFound }

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	users.Repository
	byID        map[int64]*models.User
	byName      map[string]*models.User
	created     []*models.User
	createErr   error
	deactivated []int64
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, errNotFound()
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := f.byName[username]; ok {
		return u, nil
	}
	return nil, errNotFound()
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	user.ID = int64(len(f.created) + 100)
	f.created = append(f.created, user)
	return user, nil
}

func (f *fakeUsersRepo) Deactivate(ctx context.Context, id int64) (int64, error) {
	if _, ok := f.byID[id]; !ok {
		return 0, nil
	}
	f.deactivated = append(f.deactivated, id)
	return 1, nil
}

type fakeBanksRepo struct {
	banks.Repository
	bank    *models.Bank
	created []*models.Bank
	updated []*models.Bank
}

func (f *fakeBanksRepo) GetByID(ctx context.Context, id int64) (*models.Bank, error) {
	if f.bank == nil || f.bank.ID != id {
		return nil, errNotFound()
	}
	return f.bank, nil
}

func (f *fakeBanksRepo) Create(ctx context.Context, bank *models.Bank) (*models.Bank, error) {
	bank.ID = int64(len(f.created) + 200)
	f.created = append(f.created, bank)
	return bank, nil
}

func (f *fakeBanksRepo) Update(ctx context.Context, bank *models.Bank) (int64, error) {
	f.updated = append(f.updated, bank)
	return 1, nil
}

type fakeConceptsRepo struct {
	concepts.Repository
	concept *models.Concept
	created []*models.Concept
	updated []*models.Concept
}

func (f *fakeConceptsRepo) GetByID(ctx context.Context, id int64) (*models.Concept, error) {
	if f.concept == nil || f.concept.ID != id {
		return nil, errNotFound()
	}
	return f.concept, nil
}

func (f *fakeConceptsRepo) Create(ctx context.Context, concept *models.Concept) (*models.Concept, error) {
	concept.ID = int64(len(f.created) + 300)
	f.created = append(f.created, concept)
	return concept, nil
}

func (f *fakeConceptsRepo) Update(ctx context.Context, concept *models.Concept) (int64, error) {
	f.updated = append(f.updated, concept)
	return 1, nil
}

type statusUpdate struct {
	id     int64
	status models.TransactionStatus
}

type fakeTransactionsRepo struct {
	transactions.Repository
	tx             *models.Transaction
	created        []*models.Transaction
	statusUpdates  []statusUpdate
	updateAffected int64
}

func (f *fakeTransactionsRepo) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	if f.tx == nil || f.tx.ID != id {
		return nil, errNotFound()
	}
	return f.tx, nil
}

func (f *fakeTransactionsRepo) Create(ctx context.Context, tr *models.Transaction) (*models.Transaction, error) {
	tr.ID = int64(len(f.created) + 500)
	f.created = append(f.created, tr)
	return tr, nil
}

func (f *fakeTransactionsRepo) UpdateStatus(ctx context.Context, id int64, status models.TransactionStatus) (int64, error) {
	f.statusUpdates = append(f.statusUpdates, statusUpdate{id: id, status: status})
	return f.updateAffected, nil
}

type fakeReversalsRepo struct {
	reversals.Repository
	req             *models.ReversalRequest
	created         []*models.ReversalRequest
	createErr       error
	resolveAffected int64
	resolved        []models.RequestStatus
}

func (f *fakeReversalsRepo) GetByID(ctx context.Context, id int64) (*models.ReversalRequest, error) {
	if f.req == nil || f.req.ID != id {
		return nil, errNotFound()
	}
	return f.req, nil
}

func (f *fakeReversalsRepo) Create(ctx context.Context, req *models.ReversalRequest) (*models.ReversalRequest, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	req.ID = int64(len(f.created) + 700)
	f.created = append(f.created, req)
	return req, nil
}

func (f *fakeReversalsRepo) Resolve(ctx context.Context, id int64, status models.RequestStatus, answer string, evaluatedBy int64, stamp time.Time) (int64, error) {
	f.resolved = append(f.resolved, status)
	if f.resolveAffected == 1 && f.req != nil && f.req.ID == id {
		f.req.Status = status
		f.req.Answer = &answer
		f.req.AnswerStamp = &stamp
		f.req.EvaluatedBy = &evaluatedBy
	}
	return f.resolveAffected, nil
}

type fakeAuditRepo struct {
	auditlogs.Repository
	inserted []*models.AuditLog
	entries  []*models.AuditLog
}

func (f *fakeAuditRepo) Insert(ctx context.Context, entry *models.AuditLog) (*models.AuditLog, error) {
	f.inserted = append(f.inserted, entry)
	return entry, nil
}

func (f *fakeAuditRepo) ListRange(ctx context.Context, from, to time.Time) ([]*models.AuditLog, error) {
	return f.entries, nil
}

type fakeGlobalConfigRepo struct {
	globalconfig.Repository
	cfg      *models.GlobalConfig
	getCalls int
	updated  []*models.GlobalConfig
}

func (f *fakeGlobalConfigRepo) Get(ctx context.Context) (*models.GlobalConfig, error) {
	f.getCalls++
	return f.cfg, nil
}

func (f *fakeGlobalConfigRepo) Update(ctx context.Context, cfg *models.GlobalConfig) (int64, error) {
	f.updated = append(f.updated, cfg)
	return 1, nil
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	u  *fakeUsersRepo
	b  *fakeBanksRepo
	c  *fakeConceptsRepo
	t  *fakeTransactionsRepo
	r  *fakeReversalsRepo
	a  *fakeAuditRepo
	gc *fakeGlobalConfigRepo
}

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository               { return m.u }
func (m *fakeRepoManager) Banks(db dbx.DBTX) banks.Repository               { return m.b }
func (m *fakeRepoManager) Concepts(db dbx.DBTX) concepts.Repository         { return m.c }
func (m *fakeRepoManager) Transactions(db dbx.DBTX) transactions.Repository { return m.t }
func (m *fakeRepoManager) Reversals(db dbx.DBTX) reversals.Repository       { return m.r }
func (m *fakeRepoManager) AuditLogs(db dbx.DBTX) auditlogs.Repository       { return m.a }
func (m *fakeRepoManager) GlobalConfig(db dbx.DBTX) globalconfig.Repository { return m.gc }

// newFakeRepoManager seeds every fake so tests only override what they care
// about.
func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u:  &fakeUsersRepo{byID: map[int64]*models.User{}, byName: map[string]*models.User{}},
		b:  &fakeBanksRepo{},
		c:  &fakeConceptsRepo{},
		t:  &fakeTransactionsRepo{updateAffected: 1},
		r:  &fakeReversalsRepo{resolveAffected: 1},
		a:  &fakeAuditRepo{},
		gc: &fakeGlobalConfigRepo{},
	}
}

func (m *fakeRepoManager) addUser(u *models.User) {
	m.u.byID[u.ID] = u
	m.u.byName[u.Username] = u
}
