package models

import "time"

// Message is immutable once created. Ordering within a conversation is
// created_at, ties broken by id (assigned at insertion, monotonic).
type Message struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_messages_conv_created,priority:2" json:"created_at"`

	ConversationID uint `gorm:"not null;index:idx_messages_conv_created,priority:1" json:"conversation_id"`
	SenderID       uint `gorm:"not null;uniqueIndex:idx_client_sender;index" json:"sender_id"`
	Sender         User `gorm:"foreignKey:SenderID" json:"-"`

	// ClientID deduplicates reconnect replays on the realtime path.
	ClientID string `gorm:"type:varchar(36);uniqueIndex:idx_client_sender;not null" json:"client_id"`

	// Body is sanitized before storage; it never contains unsanitized markup.
	Body string `gorm:"type:text;not null" json:"body"`
}

type MessageResponse struct {
	ID             uint      `json:"id" msgpack:"id"`
	ConversationID uint      `json:"conversation_id" msgpack:"conversation_id"`
	SenderID       uint      `json:"sender_id" msgpack:"sender_id"`
	ClientID       string    `json:"client_id" msgpack:"client_id"`
	Body           string    `json:"body" msgpack:"body"`
	CreatedAt      time.Time `json:"created_at" msgpack:"created_at"`
}

func (m *Message) ToResponse() MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		ClientID:       m.ClientID,
		Body:           m.Body,
		CreatedAt:      m.CreatedAt,
	}
}
