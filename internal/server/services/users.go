package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ospinae/termledger/internal/common"
	"github.com/ospinae/termledger/internal/cryptox"
	"github.com/ospinae/termledger/internal/dbx"
	"github.com/ospinae/termledger/internal/server/audit"
	"github.com/ospinae/termledger/internal/server/auth"
	"github.com/ospinae/termledger/internal/server/authz"
	"github.com/ospinae/termledger/internal/server/models"
	"github.com/ospinae/termledger/internal/server/repositories/repomanager"
)

type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	checker         *authz.Checker
	recorder        *audit.Recorder
	secretKey       []byte
	sessionValidity time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, checker *authz.Checker, recorder *audit.Recorder,
	secretKey []byte, sessionValidity time.Duration) *UserService {
	return &UserService{
		db:              db,
		repomanager:     m,
		checker:         checker,
		recorder:        recorder,
		secretKey:       secretKey,
		sessionValidity: sessionValidity,
	}
}

// Register creates a new active user account. Only an active ROOT actor may
// register users. The password is hashed with argon2id under a fresh salt;
// the plaintext is never stored. The row and its USER_CREATE audit entry
// commit together.
func (s *UserService) Register(ctx context.Context, actorID int64, username, password string, role models.Role) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username must not be empty", common.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password must not be empty", common.ErrValidation)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrValidation, role)
	}

	var created *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.checker.Check(ctx, tx, actorID, models.RoleRoot); err != nil {
			return err
		}

		salt := cryptox.NewSalt()
		user := &models.User{
			Username:     username,
			PasswordHash: cryptox.HashPassword([]byte(password), salt),
			Salt:         salt,
			Role:         role,
			Active:       true,
		}

		var err error
		created, err = s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}

		return s.recorder.Record(ctx, tx, audit.UserCreate, actorID, created.ID)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Authenticate verifies credentials and issues a session token. Unknown
// usernames, wrong passwords, and inactive accounts all fail the same way,
// with ErrUnauthorized, so a caller cannot probe which part was wrong.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", nil, common.ErrUnauthorized
		}
		return "", nil, err
	}

	if !user.Active {
		return "", nil, common.ErrUnauthorized
	}

	if !cryptox.VerifyPassword([]byte(password), user.Salt, user.PasswordHash) {
		return "", nil, common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, user.Role, s.secretKey, s.sessionValidity)
	if err != nil {
		return "", nil, fmt.Errorf("issuing session token: %w", err)
	}

	return token, user, nil
}

// Deactivate disables an account and forces a password reset on any later
// reactivation. Only an active ROOT actor may deactivate, and never
// themselves: the last ROOT locking the whole system out is a support call
// nobody wants.
func (s *UserService) Deactivate(ctx context.Context, actorID, targetID int64) error {
	if targetID <= 0 {
		return fmt.Errorf("%w: target user id must be positive", common.ErrValidation)
	}
	if actorID == targetID {
		return fmt.Errorf("%w: users cannot deactivate themselves", common.ErrValidation)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.checker.Check(ctx, tx, actorID, models.RoleRoot); err != nil {
			return err
		}

		affected, err := s.repomanager.Users(tx).Deactivate(ctx, targetID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("user %d: %w", targetID, common.ErrNotFound)
		}

		return s.recorder.Record(ctx, tx, audit.UserDeactivate, actorID, targetID)
	})
}

// List returns all users, for the administration screen. ADMIN or above.
func (s *UserService) List(ctx context.Context, viewerID int64) ([]*models.User, error) {
	if _, err := s.checker.Check(ctx, s.db, viewerID, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repomanager.Users(s.db).List(ctx)
}
