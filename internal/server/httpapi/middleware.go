package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ospinae/termledger/internal/server/auth"
	"github.com/ospinae/termledger/internal/server/models"
)

const (
	// CtxUserIDKey holds the authenticated user id in fiber locals.
	CtxUserIDKey = "user_id"
	// CtxRoleHintKey holds the role carried by the session token. It is a
	// UI hint only: services re-check the stored user row before every
	// privileged mutation.
	CtxRoleHintKey = "role_hint"
)

// SessionMiddleware validates the Bearer token and stashes the user id and
// role hint in locals.
func SessionMiddleware(secretKey []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing Authorization header")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
		}

		claims, err := auth.ParseToken(parts[1], secretKey)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxRoleHintKey, claims.RoleHint)

		return c.Next()
	}
}

// RequireRoleHint rejects requests whose session role hint is below min.
// This is an advisory gate that closes admin surfaces early with a clean
// 403; the authoritative check is the fresh storage read inside the
// service, so a downgraded-but-unexpired session still cannot mutate.
func RequireRoleHint(min models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		hint, ok := c.Locals(CtxRoleHintKey).(models.Role)
		if !ok || !hint.Meets(min) {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

func sessionUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(CtxUserIDKey).(int64)
	return id
}
