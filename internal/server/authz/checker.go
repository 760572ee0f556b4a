// Package authz implements the privilege check that gates every mutating
// operation. The check always reads the current user row from storage:
// session-held copies are treated as hints, never as authority, because a
// role or active flag may have changed since login.
package authz

import (
	"context"
	"fmt"

	"github.com/ospinae/termledger/internal/common"
	"github.com/ospinae/termledger/internal/dbx"
	"github.com/ospinae/termledger/internal/server/models"
	"github.com/ospinae/termledger/internal/server/repositories/repomanager"
)

type Checker struct {
	repomanager repomanager.RepositoryManager
}

func NewChecker(m repomanager.RepositoryManager) *Checker {
	return &Checker{repomanager: m}
}

// Check loads the user identified by userID through the given handle (use
// the transaction handle to keep the check inside the caller's unit of
// work) and verifies the user is active with role >= min. On success the
// freshly loaded user is returned so callers act on current data.
func (c *Checker) Check(ctx context.Context, db dbx.DBTX, userID int64, min models.Role) (*models.User, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", common.ErrValidation)
	}

	user, err := c.repomanager.Users(db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.Active {
		return nil, fmt.Errorf("%w: user %q is inactive", common.ErrPrivilege, user.Username)
	}
	if !user.Role.Meets(min) {
		return nil, fmt.Errorf("%w: required %s, actual %s", common.ErrPrivilege, min, user.Role)
	}

	return user, nil
}
