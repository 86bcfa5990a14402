package ws

// MessagePing is a transport keepalive. Before authentication the only
// accepted event is join, so pre-auth pings are dropped without a reply.
type MessagePing struct {
}

func (msg *MessagePing) GetType() string {
	return "ping"
}

func (msg *MessagePing) Process(ctx *MessageContext) error {
	if ctx.UserID == 0 {
		return nil
	}
	return ctx.Conn.WriteJSON(map[string]string{
		"type": "pong",
	})
}

// MessagePong acknowledges a server ping; nothing to do.
type MessagePong struct {
}

func (msg *MessagePong) GetType() string {
	return "pong"
}

func (msg *MessagePong) Process(ctx *MessageContext) error {
	return nil
}
