package cache

import (
	"fmt"
	"time"

	"github.com/hirelink/hirelink-backend/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

// ConversationListTTL bounds staleness of the inbox listing; every mutation
// invalidates the affected users' entries anyway.
const ConversationListTTL = 2 * time.Minute

// InboxCache caches per-user conversation listings. All methods are nil-safe
// so the service runs unchanged without Redis.
type InboxCache struct {
	redis *RedisCache
}

func NewInboxCache(redis *RedisCache) *InboxCache {
	return &InboxCache{redis: redis}
}

func conversationListKey(userID uint) string {
	return fmt.Sprintf("inbox:%d", userID)
}

// GetConversationList retrieves a cached inbox listing
func (ic *InboxCache) GetConversationList(userID uint) ([]models.ConversationSummary, bool) {
	if ic == nil || ic.redis == nil {
		return nil, false
	}
	data, err := ic.redis.Get(conversationListKey(userID))
	if err != nil || data == nil {
		return nil, false
	}

	var summaries []models.ConversationSummary
	if err := msgpack.Unmarshal(data, &summaries); err != nil {
		return nil, false
	}
	return summaries, true
}

// SetConversationList caches an inbox listing
func (ic *InboxCache) SetConversationList(userID uint, summaries []models.ConversationSummary) error {
	if ic == nil || ic.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(summaries)
	if err != nil {
		return err
	}
	return ic.redis.Set(conversationListKey(userID), data, ConversationListTTL)
}

// InvalidateConversationList removes a user's inbox listing from cache
func (ic *InboxCache) InvalidateConversationList(userID uint) error {
	if ic == nil || ic.redis == nil {
		return nil
	}
	return ic.redis.Delete(conversationListKey(userID))
}
