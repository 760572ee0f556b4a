package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token              string `json:"token"`
	UserID             int64  `json:"user_id"`
	Username           string `json:"username"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"must_change_password"`
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	token, user, err := s.users.Authenticate(c.UserContext(), body.Username, body.Password)
	if err != nil {
		s.log.Info(c.UserContext(), "login rejected", "username", body.Username)
		return mapError(err)
	}

	return c.JSON(loginResponse{
		Token:              token,
		UserID:             user.ID,
		Username:           user.Username,
		Role:               string(user.Role),
		MustChangePassword: user.MustChangePassword,
	})
}
