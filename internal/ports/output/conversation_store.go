package output

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

// ConversationStore interface - Output port
// Defines what the application needs for keeping assistant conversations
// between requests. Implementations must be thread-safe for concurrent access.
type ConversationStore interface {
	// GetConversation retrieves a conversation by id.
	// Returns nil if the conversation does not exist or has expired.
	// Returns an error only if there is a storage access failure.
	GetConversation(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)

	// SaveConversation creates or updates a conversation and refreshes its expiry.
	SaveConversation(ctx context.Context, conversation *domain.Conversation) error

	// DeleteConversation removes a conversation by id.
	// This operation is idempotent.
	DeleteConversation(ctx context.Context, id uuid.UUID) error
}
