// Package models holds the persisted row types and their enumerations.
// Equality is identity-based: two values refer to the same entity when
// their IDs match.
package models

import "time"

// Role is the user's place in the privilege hierarchy. The ordering is
// total: ROOT > ADMIN > CASHIER.
type Role string

const (
	RoleRoot    Role = "ROOT"
	RoleAdmin   Role = "ADMIN"
	RoleCashier Role = "CASHIER"
)

var roleRank = map[Role]int{
	RoleCashier: 1,
	RoleAdmin:   2,
	RoleRoot:    3,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Meets reports whether r satisfies the minimum required role under the
// total ordering ROOT > ADMIN > CASHIER.
func (r Role) Meets(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

type User struct {
	ID                 int64
	Username           string
	PasswordHash       []byte
	Salt               []byte
	Role               Role
	Active             bool
	MustChangePassword bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
