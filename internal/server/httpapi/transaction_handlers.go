package httpapi

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ospinae/termledger/internal/server/models"
	"github.com/ospinae/termledger/internal/server/services"
)

// Amounts cross the wire as int64 minor units (cents); clients format for
// display.
type createTransactionRequest struct {
	BankID    int64 `json:"bank_id"`
	ConceptID int64 `json:"concept_id"`
	Amount    int64 `json:"amount"`
}

type transactionResponse struct {
	ID         int64     `json:"id"`
	BankID     int64     `json:"bank_id"`
	ConceptID  int64     `json:"concept_id"`
	CashierID  int64     `json:"cashier_id"`
	Amount     int64     `json:"amount"`
	Commission int64     `json:"commission"`
	Moment     time.Time `json:"moment"`
	Status     string    `json:"status"`
}

func toTransactionResponse(tr *models.Transaction) transactionResponse {
	return transactionResponse{
		ID:         tr.ID,
		BankID:     tr.BankID,
		ConceptID:  tr.ConceptID,
		CashierID:  tr.CashierID,
		Amount:     tr.Amount,
		Commission: tr.Commission,
		Moment:     tr.Moment,
		Status:     string(tr.Status),
	}
}

func (s *Server) handleCreateTransaction(c *fiber.Ctx) error {
	var body createTransactionRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	created, err := s.transactions.Create(c.UserContext(), services.CreateTransactionParams{
		BankID:    body.BankID,
		ConceptID: body.ConceptID,
		CashierID: sessionUserID(c),
		Amount:    body.Amount,
	})
	if err != nil {
		return mapError(err)
	}

	s.log.Info(c.UserContext(), "transaction registered", "id", created.ID, "cashier", created.CashierID)
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(created))
}

func (s *Server) handleListTransactions(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	var (
		list []*models.Transaction
		err  error
	)
	if c.Query("mine") == "true" {
		list, err = s.transactions.ListByCashier(c.UserContext(), sessionUserID(c), limit)
	} else {
		list, err = s.transactions.ListRecent(c.UserContext(), sessionUserID(c), limit)
	}
	if err != nil {
		return mapError(err)
	}

	out := make([]transactionResponse, 0, len(list))
	for _, tr := range list {
		out = append(out, toTransactionResponse(tr))
	}
	return c.JSON(out)
}

func (s *Server) handleGetTransaction(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid transaction id")
	}

	tr, err := s.transactions.GetByID(c.UserContext(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(toTransactionResponse(tr))
}
