package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ospinae/termledger/internal/common"
	"github.com/ospinae/termledger/internal/dbx"
	"github.com/ospinae/termledger/internal/server/models"
	"github.com/ospinae/termledger/internal/server/repositories/repomanager"
	"github.com/ospinae/termledger/internal/server/repositories/users"
)

type fakeUsersRepo struct {
	users.Repository
	user *models.User
	err  error
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	u *fakeUsersRepo
}

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository { return m.u }

func TestCheck_Success(t *testing.T) {
	stored := &models.User{ID: 3, Username: "carla", Role: models.RoleCashier, Active: true}
	c := NewChecker(&fakeRepoManager{u: &fakeUsersRepo{user: stored}})

	got, err := c.Check(context.Background(), nil, 3, models.RoleCashier)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestCheck_InsufficientRole(t *testing.T) {
	stored := &models.User{ID: 3, Username: "carla", Role: models.RoleCashier, Active: true}
	c := NewChecker(&fakeRepoManager{u: &fakeUsersRepo{user: stored}})

	_, err := c.Check(context.Background(), nil, 3, models.RoleAdmin)
	assert.True(t, errors.Is(err, common.ErrPrivilege))
	assert.Contains(t, err.Error(), "required ADMIN")
	assert.Contains(t, err.Error(), "actual CASHIER")
}

func TestCheck_InactiveUser(t *testing.T) {
	stored := &models.User{ID: 3, Username: "carla", Role: models.RoleAdmin, Active: false}
	c := NewChecker(&fakeRepoManager{u: &fakeUsersRepo{user: stored}})

	_, err := c.Check(context.Background(), nil, 3, models.RoleCashier)
	assert.True(t, errors.Is(err, common.ErrPrivilege))
}

func TestCheck_UserNotFound(t *testing.T) {
	c := NewChecker(&fakeRepoManager{u: &fakeUsersRepo{err: common.ErrNotFound}})

	_, err := c.Check(context.Background(), nil, 404, models.RoleCashier)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestCheck_NonPositiveID(t *testing.T) {
	c := NewChecker(&fakeRepoManager{u: &fakeUsersRepo{}})

	_, err := c.Check(context.Background(), nil, 0, models.RoleCashier)
	assert.True(t, errors.Is(err, common.ErrValidation))
}

// The stored role wins over whatever a stale session may claim: a user
// downgraded after login fails the check on their next privileged call.
func TestCheck_DowngradedRoleFailsDespiteStaleSession(t *testing.T) {
	stored := &models.User{ID: 5, Username: "ex-admin", Role: models.RoleCashier, Active: true}
	c := NewChecker(&fakeRepoManager{u: &fakeUsersRepo{user: stored}})

	_, err := c.Check(context.Background(), nil, 5, models.RoleAdmin)
	assert.True(t, errors.Is(err, common.ErrPrivilege))
}
