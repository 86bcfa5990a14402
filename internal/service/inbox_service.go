package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hirelink/hirelink-backend/internal/cache"
	"github.com/hirelink/hirelink-backend/internal/models"
	"github.com/hirelink/hirelink-backend/internal/pagination"
	"github.com/hirelink/hirelink-backend/internal/repository"
	"github.com/hirelink/hirelink-backend/internal/sanitize"
	"github.com/hirelink/hirelink-backend/internal/validation"
	"gorm.io/gorm"
)

// Broadcaster fans an event out to every realtime connection currently in a
// conversation's room. Implemented by ws.Rooms.
type Broadcaster interface {
	Broadcast(conversationID uint, event interface{})
}

// InboxService is the single inbox core behind both the REST handlers and
// the realtime event handlers: membership checks, sanitized sends, watermark
// reads and departure all live here so the two transports cannot drift.
type InboxService struct {
	convRepo    repository.ConversationRepositoryInterface
	messageRepo repository.MessageRepositoryInterface
	rooms       Broadcaster
	inboxCache  *cache.InboxCache
}

func NewInboxService(
	convRepo repository.ConversationRepositoryInterface,
	messageRepo repository.MessageRepositoryInterface,
	rooms Broadcaster,
	inboxCache *cache.InboxCache,
) *InboxService {
	return &InboxService{
		convRepo:    convRepo,
		messageRepo: messageRepo,
		rooms:       rooms,
		inboxCache:  inboxCache,
	}
}

// RequireParticipant confirms membership: ErrNotFound when the conversation
// is missing, ErrNotParticipant when the caller is not in it. Every
// conversation-scoped operation on either transport goes through this check.
func (s *InboxService) RequireParticipant(conversationID, userID uint) (*models.Participant, error) {
	if _, err := s.convRepo.FindByID(conversationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	part, err := s.convRepo.FindParticipant(conversationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotParticipant
		}
		return nil, err
	}
	return part, nil
}

// CreateConversation persists a conversation with the given participant set.
// The caller is always included.
func (s *InboxService) CreateConversation(callerID uint, participantIDs []uint) (*models.Conversation, error) {
	seen := make(map[uint]bool)
	ids := make([]uint, 0, len(participantIDs)+1)
	if callerID != 0 {
		seen[callerID] = true
		ids = append(ids, callerID)
	}
	for _, id := range participantIDs {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, ErrValidation
	}
	return s.convRepo.Create(ids)
}

// ListConversations returns one summary per conversation the user belongs
// to: id, most recent message (or nil) and unread count.
func (s *InboxService) ListConversations(userID uint) ([]models.ConversationSummary, error) {
	if cached, ok := s.inboxCache.GetConversationList(userID); ok {
		return cached, nil
	}

	rows, err := s.convRepo.ListSummaries(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ConversationSummary, 0, len(rows))
	for _, row := range rows {
		summary := models.ConversationSummary{
			ID:          row.ConversationID,
			CreatedAt:   row.ConversationCreatedAt,
			UnreadCount: row.UnreadCount,
		}
		if row.MessageID != nil {
			summary.LastMessage = &models.MessageResponse{
				ID:             *row.MessageID,
				ConversationID: row.ConversationID,
				SenderID:       *row.MessageSenderID,
				ClientID:       *row.MessageClientID,
				Body:           *row.MessageBody,
				CreatedAt:      *row.MessageCreatedAt,
			}
		}
		summaries = append(summaries, summary)
	}

	if err := s.inboxCache.SetConversationList(userID, summaries); err != nil {
		log.Printf("Failed to cache inbox listing for user %d: %v", userID, err)
	}
	return summaries, nil
}

// ListMessages returns one page of history ending strictly before the
// cursor, ascending within the page, plus the cursor for the next older
// page ("" at end of history).
func (s *InboxService) ListMessages(conversationID, userID uint, before *time.Time, limit int) ([]models.Message, string, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	if _, err := s.RequireParticipant(conversationID, userID); err != nil {
		return nil, "", err
	}

	// limit+1 probe detects whether an older page exists.
	rows, err := s.messageRepo.ListPageBefore(conversationID, before, limit+1)
	if err != nil {
		return nil, "", err
	}

	page, next := pagination.AssemblePage(rows, limit)
	return page, next, nil
}

// PostMessage sanitizes, persists and broadcasts one message. The write is
// the unit of atomicity; the broadcast is best-effort and happens only after
// a successful commit. clientID deduplicates realtime replays and may be
// empty.
func (s *InboxService) PostMessage(conversationID, senderID uint, body, clientID string) (*models.Message, error) {
	if _, err := s.RequireParticipant(conversationID, senderID); err != nil {
		return nil, err
	}

	body = validation.TrimAndLimit(body, validation.MaxMessageLength())
	body = strings.TrimSpace(sanitize.HTML(body))
	if body == "" {
		return nil, ErrEmptyBody
	}

	if clientID != "" {
		if existing, err := s.messageRepo.FindByClientID(clientID, senderID); err == nil {
			// Replay of a message we already stored; do not re-broadcast.
			return existing, nil
		}
	} else {
		clientID = uuid.NewString()
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		ClientID:       clientID,
		Body:           body,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	s.broadcastNewMessage(message)
	s.invalidateParticipants(conversationID)
	return message, nil
}

// MarkRead advances the caller's watermark. Idempotent: with no new
// messages, a repeat call reports zero newly marked.
func (s *InboxService) MarkRead(conversationID, userID uint) (int64, error) {
	if _, err := s.RequireParticipant(conversationID, userID); err != nil {
		return 0, err
	}

	newlyMarked, err := s.convRepo.MarkRead(conversationID, userID, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if err := s.inboxCache.InvalidateConversationList(userID); err != nil {
		log.Printf("Failed to invalidate inbox cache for user %d: %v", userID, err)
	}
	return newlyMarked, nil
}

// LeaveConversation removes the caller's participant row. Removing the last
// participant deletes the conversation and all its messages. Not reversible.
func (s *InboxService) LeaveConversation(conversationID, userID uint) error {
	if _, err := s.RequireParticipant(conversationID, userID); err != nil {
		return err
	}

	s.invalidateParticipants(conversationID)
	_, err := s.convRepo.RemoveParticipant(conversationID, userID)
	return err
}

func (s *InboxService) broadcastNewMessage(message *models.Message) {
	if s.rooms == nil {
		return
	}
	s.rooms.Broadcast(message.ConversationID, map[string]interface{}{
		"type":    "new_message",
		"payload": message.ToResponse(),
	})
}

func (s *InboxService) invalidateParticipants(conversationID uint) {
	ids, err := s.convRepo.ParticipantIDs(conversationID)
	if err != nil {
		log.Printf("Failed to list participants of conversation %d: %v", conversationID, err)
		return
	}
	for _, id := range ids {
		if err := s.inboxCache.InvalidateConversationList(id); err != nil {
			log.Printf("Failed to invalidate inbox cache for user %d: %v", id, err)
		}
	}
}
