package models

import "time"

// Conversation is a durable thread of messages between a fixed set of
// participants. It is created by a hire event (or an explicit creation call)
// and cascade-deleted together with its messages when the last participant
// leaves.
type Conversation struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Participants []Participant `gorm:"foreignKey:ConversationID" json:"-"`
	Messages     []Message     `gorm:"foreignKey:ConversationID" json:"-"`
}

// Participant links a user to a conversation. LastRead is a monotonically
// increasing watermark: messages created after it count as unread.
type Participant struct {
	ConversationID uint      `gorm:"primaryKey" json:"conversation_id"`
	UserID         uint      `gorm:"primaryKey" json:"user_id"`
	LastRead       time.Time `gorm:"not null" json:"last_read"`
}

// ConversationSummary is the inbox listing shape: one row per conversation
// the user participates in, with the most recent message and the unread
// count against the user's watermark.
type ConversationSummary struct {
	ID          uint             `json:"id" msgpack:"id"`
	CreatedAt   time.Time        `json:"created_at" msgpack:"created_at"`
	LastMessage *MessageResponse `json:"last_message" msgpack:"last_message"`
	UnreadCount int64            `json:"unread_count" msgpack:"unread_count"`
}
