package service

import (
	"errors"

	"github.com/hirelink/hirelink-backend/internal/models"
	"github.com/hirelink/hirelink-backend/internal/repository"
	"gorm.io/gorm"
)

// HireService records hire events. Each hire creates the conversation
// between the hiring company and the candidate as a side effect.
type HireService struct {
	hireRepo repository.HireRepositoryInterface
	userRepo repository.UserRepositoryInterface
}

func NewHireService(hireRepo repository.HireRepositoryInterface, userRepo repository.UserRepositoryInterface) *HireService {
	return &HireService{hireRepo: hireRepo, userRepo: userRepo}
}

func (s *HireService) HireCandidate(companyUserID, candidateUserID uint) (*models.Hire, error) {
	if candidateUserID == 0 || candidateUserID == companyUserID {
		return nil, ErrValidation
	}

	candidate, err := s.userRepo.FindByID(candidateUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if candidate.Role != models.RoleCandidate {
		return nil, ErrValidation
	}

	return s.hireRepo.CreateWithConversation(companyUserID, candidateUserID)
}
