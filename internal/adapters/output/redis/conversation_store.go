package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/ports/output"
)

const keyPrefix = "storefront:conversation:"

var _ output.ConversationStore = (*ConversationStore)(nil)

// ConversationStore struct - conversations kept as JSON with the idle timeout as TTL
type ConversationStore struct {
	client  redis.UniversalClient
	timeout time.Duration
}

// NewConversationStore func
func NewConversationStore(client redis.UniversalClient, timeout time.Duration) *ConversationStore {
	return &ConversationStore{
		client:  client,
		timeout: timeout,
	}
}

func conversationKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// GetConversation returns nil when the key is missing, expired or unreadable
func (r *ConversationStore) GetConversation(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	data, err := r.client.Get(ctx, conversationKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		logrus.Errorf("redis get conversation %s: %v", id, err)
		return nil, fmt.Errorf("get conversation: %w: %v", domain.ErrStoreUnavailable, err)
	}

	var conv domain.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		logrus.Warnf("dropping unreadable conversation %s: %v", id, err)
		r.client.Del(ctx, conversationKey(id))
		return nil, nil
	}
	if conv.IsExpired() {
		r.client.Del(ctx, conversationKey(id))
		return nil, nil
	}
	return &conv, nil
}

// SaveConversation writes the conversation and restarts its TTL
func (r *ConversationStore) SaveConversation(ctx context.Context, conv *domain.Conversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("encode conversation: %w", err)
	}
	ttl := r.timeout
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, conversationKey(conv.ID), data, ttl).Err(); err != nil {
		logrus.Errorf("redis save conversation %s: %v", conv.ID, err)
		return fmt.Errorf("save conversation: %w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteConversation func
func (r *ConversationStore) DeleteConversation(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, conversationKey(id)).Err(); err != nil {
		logrus.Errorf("redis delete conversation %s: %v", id, err)
		return fmt.Errorf("delete conversation: %w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
