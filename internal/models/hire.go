package models

import "time"

type HireStatus string

const (
	HireActive HireStatus = "active"
	HireEnded  HireStatus = "ended"
)

// Hire records a company hiring a candidate. Creating one also creates the
// conversation between the two parties.
type Hire struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CompanyUserID   uint       `gorm:"not null;index" json:"company_user_id"`
	CandidateUserID uint       `gorm:"not null;index" json:"candidate_user_id"`
	ConversationID  uint       `gorm:"not null" json:"conversation_id"`
	Status          HireStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
}
