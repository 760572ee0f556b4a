// Package common defines shared constants and sentinel errors used across
// the service and controller layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Business-rule errors raised by services.
	ErrValidation       = errors.New("validation error")
	ErrOwnership        = errors.New("ownership violation")
	ErrInvalidState     = errors.New("invalid state")
	ErrPrivilege        = errors.New("insufficient privilege")
	ErrDuplicateRequest = errors.New("reversal request already exists for transaction")

	// ErrConsistency signals that a bulk update intended to touch exactly
	// one row touched zero or several. The whole unit of work must roll back.
	ErrConsistency = errors.New("internal consistency violation")

	// Generic/internal flow control.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
