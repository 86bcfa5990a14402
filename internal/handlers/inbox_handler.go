package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hirelink/hirelink-backend/internal/httpx"
	"github.com/hirelink/hirelink-backend/internal/pagination"
	"github.com/hirelink/hirelink-backend/internal/service"
)

// InboxHandler is the REST adapter over the shared InboxService. It parses
// and responds; every membership and mutation decision is the service's.
type InboxHandler struct {
	inboxService *service.InboxService
}

func NewInboxHandler(inboxService *service.InboxService) *InboxHandler {
	return &InboxHandler{inboxService: inboxService}
}

func (h *InboxHandler) GetConversations(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	summaries, err := h.inboxService.ListConversations(userID)
	if err != nil {
		return httpx.Internal(c, "list_conversations_failed")
	}
	return c.JSON(summaries)
}

type createConversationInput struct {
	ParticipantIDs []uint `json:"participant_ids"`
}

func (h *InboxHandler) CreateConversation(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input createConversationInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	conv, err := h.inboxService.CreateConversation(userID, input.ParticipantIDs)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return httpx.BadRequest(c, "missing_participants", "At least one participant is required")
		}
		return httpx.Internal(c, "create_conversation_failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": conv.ID})
}

func (h *InboxHandler) GetMessages(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}
	conversationID, err := paramUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_conversation", "Invalid conversation id")
	}

	before, err := pagination.ParseCursor(c.Query("cursor"))
	if err != nil {
		return httpx.BadRequest(c, "invalid_cursor", "Invalid cursor")
	}

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	messages, nextCursor, err := h.inboxService.ListMessages(conversationID, userID, before, limit)
	if err != nil {
		return h.serviceError(c, err, "fetch_messages_failed")
	}

	responses := make([]interface{}, len(messages))
	for i, msg := range messages {
		responses[i] = msg.ToResponse()
	}

	result := fiber.Map{"messages": responses}
	if nextCursor != "" {
		result["next_cursor"] = nextCursor
	}
	return c.JSON(result)
}

type sendMessageInput struct {
	Body     string `json:"body"`
	ClientID string `json:"client_id"`
}

func (h *InboxHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}
	conversationID, err := paramUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_conversation", "Invalid conversation id")
	}

	var input sendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	message, err := h.inboxService.PostMessage(conversationID, userID, input.Body, input.ClientID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyBody) {
			return httpx.BadRequest(c, "missing_body", "Message body is required")
		}
		return h.serviceError(c, err, "send_message_failed")
	}

	return c.Status(fiber.StatusCreated).JSON(message.ToResponse())
}

func (h *InboxHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}
	conversationID, err := paramUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_conversation", "Invalid conversation id")
	}

	if _, err := h.inboxService.MarkRead(conversationID, userID); err != nil {
		return h.serviceError(c, err, "mark_read_failed")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *InboxHandler) LeaveConversation(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}
	conversationID, err := paramUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_conversation", "Invalid conversation id")
	}

	if err := h.inboxService.LeaveConversation(conversationID, userID); err != nil {
		return h.serviceError(c, err, "leave_conversation_failed")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *InboxHandler) serviceError(c *fiber.Ctx, err error, internalCode string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return httpx.NotFound(c, "conversation_not_found", "Conversation not found")
	case errors.Is(err, service.ErrNotParticipant):
		return httpx.Forbidden(c, "not_participant", "Not a participant")
	default:
		return httpx.Internal(c, internalCode)
	}
}

func paramUint(c *fiber.Ctx, key string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(key), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
