package ws

import (
	"errors"

	"github.com/hirelink/hirelink-backend/internal/service"
)

// MessageSend posts a message through the shared inbox service; the
// resulting new_message event reaches the room through the same broadcast
// path REST sends use. ClientID is optional and deduplicates reconnect
// replays.
type MessageSend struct {
	ConversationID uint   `json:"conversation_id"`
	Body           string `json:"body"`
	ClientID       string `json:"client_id"`
}

func (msg *MessageSend) GetType() string {
	return "send"
}

func (msg *MessageSend) Process(ctx *MessageContext) error {
	if ctx.UserID == 0 {
		return ctx.Conn.Close()
	}

	conversationID := msg.ConversationID
	if conversationID == 0 {
		conversationID = ctx.ConversationID
	}
	if conversationID != ctx.ConversationID {
		return SendError(ctx.Conn, "not_joined", "Not joined to this conversation")
	}

	if _, err := ctx.Inbox.PostMessage(conversationID, ctx.UserID, msg.Body, msg.ClientID); err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyBody):
			return SendError(ctx.Conn, "empty_body", "Message body is required")
		case errors.Is(err, service.ErrNotParticipant), errors.Is(err, service.ErrNotFound):
			return SendError(ctx.Conn, "not_participant", "Conversation not available")
		default:
			return SendError(ctx.Conn, "send_failed", "Failed to send message")
		}
	}
	return nil
}
