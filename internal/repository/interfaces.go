package repository

import (
	"time"

	"github.com/hirelink/hirelink-backend/internal/models"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
}

// ConversationRepositoryInterface defines the contract for conversation and
// participant repository operations
type ConversationRepositoryInterface interface {
	Create(participantIDs []uint) (*models.Conversation, error)
	FindByID(id uint) (*models.Conversation, error)
	FindParticipant(conversationID, userID uint) (*models.Participant, error)
	ParticipantIDs(conversationID uint) ([]uint, error)
	AddParticipant(conversationID, userID uint) error
	// RemoveParticipant deletes the participant row and, when it was the last
	// one, the conversation and all its messages in the same transaction.
	// Returns the number of participants remaining.
	RemoveParticipant(conversationID, userID uint) (int64, error)
	// MarkRead advances the user's last_read watermark to at (never backward)
	// and returns the count of messages the move newly covered.
	MarkRead(conversationID, userID uint, at time.Time) (int64, error)
	ListSummaries(userID uint) ([]ConversationSummaryRow, error)
}

// MessageRepositoryInterface defines the contract for message repository operations
type MessageRepositoryInterface interface {
	Create(message *models.Message) error
	FindByID(id uint) (*models.Message, error)
	FindByClientID(clientID string, senderID uint) (*models.Message, error)
	// ListPageBefore returns up to limit messages of the conversation older
	// than before (all of them when before is nil), newest first.
	ListPageBefore(conversationID uint, before *time.Time, limit int) ([]models.Message, error)
}

// HireRepositoryInterface defines the contract for hire repository operations
type HireRepositoryInterface interface {
	// CreateWithConversation persists the hire, its conversation and both
	// participant rows atomically.
	CreateWithConversation(companyUserID, candidateUserID uint) (*models.Hire, error)
}
