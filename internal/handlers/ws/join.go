package ws

import (
	"log"

	"github.com/hirelink/hirelink-backend/internal/middleware"
)

// MessageJoin authenticates the connection and subscribes it to a
// conversation's room. This is the only event accepted before
// authentication.
type MessageJoin struct {
	ConversationID uint   `json:"conversation_id"`
	Token          string `json:"token"`
}

func (msg *MessageJoin) GetType() string {
	return "join"
}

// Process is fail-closed: any credential or membership failure closes the
// connection without a structured error, so probes learn nothing about
// which conversations exist.
func (msg *MessageJoin) Process(ctx *MessageContext) error {
	claims, err := middleware.ParseToken(msg.Token)
	if err != nil {
		log.Printf("Realtime join rejected: bad token")
		return ctx.Conn.Close()
	}

	if _, err := ctx.Inbox.RequireParticipant(msg.ConversationID, claims.UserID); err != nil {
		log.Printf("Realtime join rejected for user %d on conversation %d: %v",
			claims.UserID, msg.ConversationID, err)
		return ctx.Conn.Close()
	}

	ctx.Rooms.Join(msg.ConversationID, ctx.Conn, claims.UserID)
	ctx.UserID = claims.UserID
	ctx.ConversationID = msg.ConversationID

	ctx.Rooms.Broadcast(msg.ConversationID, map[string]interface{}{
		"type":    "joined",
		"payload": map[string]uint{"conversation_id": msg.ConversationID},
	})
	return nil
}
