package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ospinae/termledger/internal/common"
)

// mapError translates service sentinel errors into HTTP status codes. The
// error message is passed through: sentinels are wrapped with operator-safe
// context and never leak credentials or SQL.
func mapError(err error) error {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrOwnership), errors.Is(err, common.ErrPrivilege):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, common.ErrInvalidState), errors.Is(err, common.ErrDuplicateRequest):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
}
