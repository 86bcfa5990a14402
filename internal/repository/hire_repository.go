package repository

import (
	"github.com/hirelink/hirelink-backend/internal/models"
	"gorm.io/gorm"
)

type HireRepository struct {
	db *gorm.DB
}

func NewHireRepository(db *gorm.DB) *HireRepository {
	return &HireRepository{db: db}
}

// CreateWithConversation persists the hire and its conversation in one
// transaction: the conversation exists exactly when the hire does.
func (r *HireRepository) CreateWithConversation(companyUserID, candidateUserID uint) (*models.Hire, error) {
	hire := &models.Hire{
		CompanyUserID:   companyUserID,
		CandidateUserID: candidateUserID,
		Status:          models.HireActive,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		conv := &models.Conversation{}
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		for _, userID := range []uint{companyUserID, candidateUserID} {
			part := &models.Participant{
				ConversationID: conv.ID,
				UserID:         userID,
				LastRead:       conv.CreatedAt,
			}
			if err := tx.Create(part).Error; err != nil {
				return err
			}
		}
		hire.ConversationID = conv.ID
		return tx.Create(hire).Error
	})
	if err != nil {
		return nil, err
	}
	return hire, nil
}
