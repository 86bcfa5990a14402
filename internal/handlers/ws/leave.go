package ws

// MessageLeave detaches the connection from its room and returns it to the
// unauthenticated state. The participant row is untouched; leaving the
// conversation itself is the REST DELETE.
type MessageLeave struct {
	ConversationID uint `json:"conversation_id"`
}

func (msg *MessageLeave) GetType() string {
	return "leave"
}

func (msg *MessageLeave) Process(ctx *MessageContext) error {
	if ctx.UserID == 0 {
		return ctx.Conn.Close()
	}

	conversationID := ctx.ConversationID
	// Emit while still joined so the leaver and the rest of the room all
	// observe the detach.
	ctx.Rooms.Broadcast(conversationID, map[string]interface{}{
		"type":    "left",
		"payload": map[string]uint{"conversation_id": conversationID},
	})
	ctx.Rooms.Leave(conversationID, ctx.Conn)
	ctx.UserID = 0
	ctx.ConversationID = 0
	return nil
}
