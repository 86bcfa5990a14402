package repository

import (
	"time"

	"github.com/hirelink/hirelink-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// ConversationSummaryRow is a denormalized inbox row: conversation, its most
// recent message (nullable) and the unread count against the caller's
// last_read watermark.
//
// NOTE: deliberately not the full models.Message shape; one query, no N+1.
type ConversationSummaryRow struct {
	ConversationID        uint      `gorm:"column:conversation_id"`
	ConversationCreatedAt time.Time `gorm:"column:conversation_created_at"`

	UnreadCount int64 `gorm:"column:unread_count"`

	MessageID        *uint      `gorm:"column:message_id"`
	MessageSenderID  *uint      `gorm:"column:message_sender_id"`
	MessageClientID  *string    `gorm:"column:message_client_id"`
	MessageBody      *string    `gorm:"column:message_body"`
	MessageCreatedAt *time.Time `gorm:"column:message_created_at"`
}

func (r *ConversationRepository) Create(participantIDs []uint) (*models.Conversation, error) {
	conv := &models.Conversation{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		for _, userID := range participantIDs {
			part := &models.Participant{
				ConversationID: conv.ID,
				UserID:         userID,
				LastRead:       conv.CreatedAt,
			}
			if err := tx.Create(part).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (r *ConversationRepository) FindByID(id uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.First(&conv, id).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ConversationRepository) FindParticipant(conversationID, userID uint) (*models.Participant, error) {
	var part models.Participant
	err := r.db.Where("conversation_id = ? AND user_id = ?", conversationID, userID).First(&part).Error
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *ConversationRepository) ParticipantIDs(conversationID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Participant{}).
		Where("conversation_id = ?", conversationID).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *ConversationRepository) AddParticipant(conversationID, userID uint) error {
	part := &models.Participant{
		ConversationID: conversationID,
		UserID:         userID,
		LastRead:       time.Now().UTC(),
	}
	return r.db.Create(part).Error
}

// RemoveParticipant deletes the participant row; removing the last one
// cascade-deletes the conversation and its messages so no orphans remain.
func (r *ConversationRepository) RemoveParticipant(conversationID, userID uint) (int64, error) {
	var remaining int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("conversation_id = ? AND user_id = ?", conversationID, userID).
			Delete(&models.Participant{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Model(&models.Participant{}).
			Where("conversation_id = ?", conversationID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}

		if err := tx.Where("conversation_id = ?", conversationID).
			Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Conversation{}, conversationID).Error
	})
	return remaining, err
}

// MarkRead advances the watermark under a row lock so concurrent mark-read
// calls from multiple devices resolve to the furthest-forward value.
func (r *ConversationRepository) MarkRead(conversationID, userID uint, at time.Time) (int64, error) {
	var newlyCovered int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var part models.Participant
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("conversation_id = ? AND user_id = ?", conversationID, userID).
			First(&part).Error; err != nil {
			return err
		}

		if !at.After(part.LastRead) {
			// Watermark never moves backward; idempotent no-op.
			return nil
		}

		if err := tx.Model(&models.Message{}).
			Where("conversation_id = ? AND sender_id <> ? AND created_at > ? AND created_at <= ?",
				conversationID, userID, part.LastRead, at).
			Count(&newlyCovered).Error; err != nil {
			return err
		}

		return tx.Exec(`
			UPDATE participants
			SET last_read = GREATEST(last_read, ?)
			WHERE conversation_id = ? AND user_id = ?
		`, at, conversationID, userID).Error
	})
	return newlyCovered, err
}

func (r *ConversationRepository) ListSummaries(userID uint) ([]ConversationSummaryRow, error) {
	query := `
SELECT
	c.id AS conversation_id,
	c.created_at AS conversation_created_at,
	(
		SELECT COUNT(*) FROM messages u
		WHERE u.conversation_id = c.id
			AND u.sender_id <> p.user_id
			AND u.created_at > p.last_read
	) AS unread_count,
	m.id AS message_id,
	m.sender_id AS message_sender_id,
	m.client_id AS message_client_id,
	m.body AS message_body,
	m.created_at AS message_created_at
FROM participants p
JOIN conversations c ON c.id = p.conversation_id
LEFT JOIN LATERAL (
	SELECT id, sender_id, client_id, body, created_at
	FROM messages
	WHERE conversation_id = c.id
	ORDER BY created_at DESC, id DESC
	LIMIT 1
) m ON TRUE
WHERE p.user_id = ?
ORDER BY COALESCE(m.created_at, c.created_at) DESC, c.id DESC
`

	var rows []ConversationSummaryRow
	if err := r.db.Raw(query, userID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
