package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"storefront/internal/domain"
	"storefront/internal/ports/output"
)

// Compile-time check to ensure ConversationStore implements output.ConversationStore
var _ output.ConversationStore = (*ConversationStore)(nil)

// ConversationStore struct - Output adapter for in-memory conversation storage
// Entries expire after the idle timeout; stored values are snapshots so callers never share turn storage.
type ConversationStore struct {
	cache   *cache.Cache
	timeout time.Duration
}

// NewConversationStore creates a store whose entries expire after timeout of inactivity.
// A timeout <= 0 keeps conversations until they are deleted.
func NewConversationStore(timeout time.Duration) *ConversationStore {
	expiration := timeout
	cleanup := timeout / 3
	if timeout <= 0 {
		expiration = cache.NoExpiration
		cleanup = 0
	}
	return &ConversationStore{
		cache:   cache.New(expiration, cleanup),
		timeout: timeout,
	}
}

// GetTimeout returns the configured idle timeout
func (m *ConversationStore) GetTimeout() time.Duration {
	return m.timeout
}

// GetConversation returns a copy of the conversation, or nil when missing or expired.
func (m *ConversationStore) GetConversation(_ context.Context, id uuid.UUID) (*domain.Conversation, error) {
	value, found := m.cache.Get(id.String())
	if !found {
		return nil, nil
	}

	conv, ok := value.(*domain.Conversation)
	if !ok {
		m.cache.Delete(id.String())
		return nil, nil
	}

	if conv.IsExpired() {
		m.cache.Delete(id.String())
		return nil, nil
	}

	return conv.Snapshot(), nil
}

// SaveConversation stores a copy of the conversation and restarts its expiry.
func (m *ConversationStore) SaveConversation(_ context.Context, conv *domain.Conversation) error {
	m.cache.Set(conv.ID.String(), conv.Snapshot(), cache.DefaultExpiration)
	return nil
}

// DeleteConversation removes a conversation. Deleting a missing id is not an error.
func (m *ConversationStore) DeleteConversation(_ context.Context, id uuid.UUID) error {
	m.cache.Delete(id.String())
	return nil
}

// Count returns the number of stored conversations, expired ones included until purged
func (m *ConversationStore) Count() int {
	return m.cache.ItemCount()
}
