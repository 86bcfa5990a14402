package handlers

import (
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/hirelink/hirelink-backend/internal/handlers/ws"
	"github.com/hirelink/hirelink-backend/internal/service"
)

type WebSocketHandler struct {
	inboxService *service.InboxService
	rooms        *ws.Rooms
}

func NewWebSocketHandler(inboxService *service.InboxService, rooms *ws.Rooms) *WebSocketHandler {
	return &WebSocketHandler{
		inboxService: inboxService,
		rooms:        rooms,
	}
}

// HandleWebSocket runs one connection's read loop. The connection starts
// unauthenticated; a join event carrying valid credentials moves it into a
// room, and close removes it unconditionally.
func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	// Room broadcasts and read-loop replies write to the same connection;
	// the wrapper serializes them.
	conn := ws.NewConn(c)
	ctx := &ws.MessageContext{
		Conn:  conn,
		Rooms: h.rooms,
		Inbox: h.inboxService,
	}

	defer h.rooms.Remove(conn)

	for {
		_, messageBytes, err := c.ReadMessage()
		if err != nil {
			break
		}

		msg, err := ws.Deserialize(messageBytes)
		if err != nil {
			ws.SendError(conn, "invalid_message", "Invalid message format")
			continue
		}

		if err := msg.Process(ctx); err != nil {
			log.Printf("Error processing %s event: %v", msg.GetType(), err)
			break
		}
	}
}
