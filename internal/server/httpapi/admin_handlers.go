package httpapi

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ospinae/termledger/internal/server/models"
)

type bankRequest struct {
	Name   string `json:"name"`
	Active *bool  `json:"active,omitempty"`
}

type conceptRequest struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Value  int64  `json:"value"`
	Active *bool  `json:"active,omitempty"`
}

func (s *Server) handleListBanks(c *fiber.Ctx) error {
	list, err := s.catalog.ListBanks(c.UserContext(), sessionUserID(c), c.Query("active") == "true")
	if err != nil {
		return mapError(err)
	}
	return c.JSON(list)
}

func (s *Server) handleCreateBank(c *fiber.Ctx) error {
	var body bankRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	bank, err := s.catalog.CreateBank(c.UserContext(), sessionUserID(c), body.Name)
	if err != nil {
		return mapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(bank)
}

func (s *Server) handleUpdateBank(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid bank id")
	}

	var body bankRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	active := true
	if body.Active != nil {
		active = *body.Active
	}

	bank := &models.Bank{ID: id, Name: body.Name, Active: active}
	if err := s.catalog.UpdateBank(c.UserContext(), sessionUserID(c), bank); err != nil {
		return mapError(err)
	}
	return c.JSON(bank)
}

func (s *Server) handleListConcepts(c *fiber.Ctx) error {
	list, err := s.catalog.ListConcepts(c.UserContext(), sessionUserID(c), c.Query("active") == "true")
	if err != nil {
		return mapError(err)
	}
	return c.JSON(list)
}

func (s *Server) handleCreateConcept(c *fiber.Ctx) error {
	var body conceptRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	concept, err := s.catalog.CreateConcept(c.UserContext(), sessionUserID(c), body.Name, models.ConceptKind(body.Kind), body.Value)
	if err != nil {
		return mapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(concept)
}

func (s *Server) handleUpdateConcept(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid concept id")
	}

	var body conceptRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	active := true
	if body.Active != nil {
		active = *body.Active
	}

	concept := &models.Concept{ID: id, Name: body.Name, Kind: models.ConceptKind(body.Kind), Value: body.Value, Active: active}
	if err := s.catalog.UpdateConcept(c.UserContext(), sessionUserID(c), concept); err != nil {
		return mapError(err)
	}
	return c.JSON(concept)
}

type configRequest struct {
	CompanyName  string `json:"company_name"`
	TaxID        string `json:"tax_id"`
	Address      string `json:"address"`
	Announcement string `json:"announcement"`
}

func (s *Server) handleGetConfig(c *fiber.Ctx) error {
	cfg, err := s.globalConfig.Get(c.UserContext())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(cfg)
}

func (s *Server) handleUpdateConfig(c *fiber.Ctx) error {
	var body configRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	cfg := &models.GlobalConfig{
		CompanyName:  body.CompanyName,
		TaxID:        body.TaxID,
		Address:      body.Address,
		Announcement: body.Announcement,
	}
	if err := s.globalConfig.Update(c.UserContext(), sessionUserID(c), cfg); err != nil {
		return mapError(err)
	}
	return c.JSON(cfg)
}

type registerUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

func (s *Server) handleRegisterUser(c *fiber.Ctx) error {
	var body registerUserRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := s.users.Register(c.UserContext(), sessionUserID(c), body.Username, body.Password, models.Role(body.Role))
	if err != nil {
		return mapError(err)
	}

	s.log.Info(c.UserContext(), "user registered", "id", user.ID, "role", user.Role)
	return c.Status(fiber.StatusCreated).JSON(userResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		Active:   user.Active,
	})
}

func (s *Server) handleDeactivateUser(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	if err := s.users.Deactivate(c.UserContext(), sessionUserID(c), id); err != nil {
		return mapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleListUsers(c *fiber.Ctx) error {
	list, err := s.users.List(c.UserContext(), sessionUserID(c))
	if err != nil {
		return mapError(err)
	}

	out := make([]userResponse, 0, len(list))
	for _, u := range list {
		out = append(out, userResponse{ID: u.ID, Username: u.Username, Role: string(u.Role), Active: u.Active})
	}
	return c.JSON(out)
}

type exportAuditRequest struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type exportAuditResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func (s *Server) handleExportAudit(c *fiber.Ctx) error {
	var body exportAuditRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	key, url, err := s.archive.Export(c.UserContext(), sessionUserID(c), body.From, body.To)
	if err != nil {
		return mapError(err)
	}

	s.log.Info(c.UserContext(), "audit archive exported", "key", key)
	return c.JSON(exportAuditResponse{Key: key, URL: url})
}
