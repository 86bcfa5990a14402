package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hirelink/hirelink-backend/internal/httpx"
	"github.com/hirelink/hirelink-backend/internal/service"
)

type HireHandler struct {
	hireService *service.HireService
}

func NewHireHandler(hireService *service.HireService) *HireHandler {
	return &HireHandler{hireService: hireService}
}

type hireInput struct {
	CandidateID uint `json:"candidate_id"`
}

func (h *HireHandler) HireCandidate(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input hireInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	hire, err := h.hireService.HireCandidate(userID, input.CandidateID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return httpx.BadRequest(c, "invalid_candidate", "Invalid candidate")
		case errors.Is(err, service.ErrNotFound):
			return httpx.NotFound(c, "candidate_not_found", "Candidate not found")
		default:
			return httpx.Internal(c, "hire_failed")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"hire_id":         hire.ID,
		"conversation_id": hire.ConversationID,
	})
}
