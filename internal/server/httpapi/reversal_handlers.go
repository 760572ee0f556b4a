package httpapi

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ospinae/termledger/internal/server/models"
)

type createReversalRequest struct {
	Message string `json:"message"`
}

type resolveReversalRequest struct {
	Resolution string `json:"resolution"`
	Answer     string `json:"answer"`
}

type reversalResponse struct {
	ID            int64      `json:"id"`
	TransactionID int64      `json:"transaction_id"`
	Message       string     `json:"message"`
	RequestedBy   int64      `json:"requested_by"`
	RequestStamp  time.Time  `json:"request_stamp"`
	Status        string     `json:"status"`
	Answer        *string    `json:"answer,omitempty"`
	AnswerStamp   *time.Time `json:"answer_stamp,omitempty"`
	EvaluatedBy   *int64     `json:"evaluated_by,omitempty"`
}

func toReversalResponse(req *models.ReversalRequest) reversalResponse {
	return reversalResponse{
		ID:            req.ID,
		TransactionID: req.TransactionID,
		Message:       req.Message,
		RequestedBy:   req.RequestedBy,
		RequestStamp:  req.RequestStamp,
		Status:        string(req.Status),
		Answer:        req.Answer,
		AnswerStamp:   req.AnswerStamp,
		EvaluatedBy:   req.EvaluatedBy,
	}
}

func (s *Server) handleCreateReversal(c *fiber.Ctx) error {
	transactionID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid transaction id")
	}

	var body createReversalRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	created, err := s.reversals.Create(c.UserContext(), transactionID, sessionUserID(c), body.Message)
	if err != nil {
		return mapError(err)
	}

	s.log.Info(c.UserContext(), "reversal request filed", "request", created.ID, "transaction", transactionID)
	return c.Status(fiber.StatusCreated).JSON(toReversalResponse(created))
}

func (s *Server) handleGetReversalByTransaction(c *fiber.Ctx) error {
	transactionID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid transaction id")
	}

	req, err := s.reversals.GetByTransaction(c.UserContext(), transactionID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(toReversalResponse(req))
}

func (s *Server) handleListPendingReversals(c *fiber.Ctx) error {
	list, err := s.reversals.ListPending(c.UserContext(), sessionUserID(c))
	if err != nil {
		return mapError(err)
	}

	out := make([]reversalResponse, 0, len(list))
	for _, req := range list {
		out = append(out, toReversalResponse(req))
	}
	return c.JSON(out)
}

func (s *Server) handleResolveReversal(c *fiber.Ctx) error {
	requestID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
	}

	var body resolveReversalRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	resolved, err := s.reversals.Resolve(c.UserContext(), requestID, sessionUserID(c), models.Resolution(body.Resolution), body.Answer)
	if err != nil {
		return mapError(err)
	}

	s.log.Info(c.UserContext(), "reversal request resolved", "request", resolved.ID, "status", resolved.Status)
	return c.JSON(toReversalResponse(resolved))
}
