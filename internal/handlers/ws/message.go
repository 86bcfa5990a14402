package ws

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/hirelink/hirelink-backend/internal/service"
)

// Client is the connection surface the room registry needs. Satisfied by
// *websocket.Conn; tests substitute fakes.
type Client interface {
	WriteJSON(v interface{}) error
	Close() error
}

// MessageContext carries per-connection state and dependencies through
// message processing. UserID and ConversationID are zero until a join
// succeeds; handlers treat that as the unauthenticated state.
type MessageContext struct {
	Conn  Client
	Rooms *Rooms
	Inbox *service.InboxService

	UserID         uint
	ConversationID uint
}

// Message interface for all WebSocket message types
type Message interface {
	GetType() string
	Process(ctx *MessageContext) error
}

// SerializedMessage is the wire format wrapper
type SerializedMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorResponse is sent to the offending connection only, never to the room.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func ToJson(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

func FromJson(jsonBytes []byte, msg Message) error {
	return json.Unmarshal(jsonBytes, msg)
}

func CreateMessage(msgType string, typeRegistry map[string]reflect.Type) (Message, error) {
	msgTypeReflect, ok := typeRegistry[msgType]
	if !ok {
		return nil, fmt.Errorf("unknown message type: %s", msgType)
	}

	instance := reflect.New(msgTypeReflect).Interface()
	return instance.(Message), nil
}

// SendError sends an error event to the client
func SendError(conn Client, code, message string) error {
	return conn.WriteJSON(ErrorResponse{
		Type:    "error",
		Message: message,
		Code:    code,
	})
}
