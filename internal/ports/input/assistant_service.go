package input

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

// AssistantService interface - Input port (use case)
// Defines what the application can do with assistant conversations.
// Notifications go to the notifier attached with output.ContextWithNotifier.
type AssistantService interface {
	// Open starts a conversation, optionally about a product
	Open(ctx context.Context, productID *uuid.UUID) (*domain.Conversation, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)

	StartListening(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	AppendAudio(ctx context.Context, id uuid.UUID, chunk []byte) error
	StopListening(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)

	ProcessTextQuery(ctx context.Context, id uuid.UUID, query string) (*domain.Conversation, error)

	StopSpeaking(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	SpeechFinished(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)

	// ClearConversation empties the turns without touching the state
	ClearConversation(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)

	// Close releases timers and buffers and forgets the conversation
	Close(ctx context.Context, id uuid.UUID) error

	Stats() domain.AssistantStats
}
