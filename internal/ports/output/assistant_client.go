package output

import (
	"context"

	"storefront/internal/domain"
)

// AssistantClient interface - Output port
// Defines what the application needs from the shopping assistant endpoints.
// Failures wrap domain.ErrEndpointUnavailable or domain.ErrInvalidRequest.
type AssistantClient interface {
	// QueryText sends a text question with product and conversation context to the text endpoint.
	QueryText(ctx context.Context, request domain.AssistantTextRequest) (*domain.AssistantReply, error)

	// QueryVoice sends recorded audio with product context to the voice endpoint.
	// The reply carries the recognized transcript when the endpoint returns one.
	QueryVoice(ctx context.Context, request domain.AssistantVoiceRequest) (*domain.AssistantReply, error)

	// TextEndpoint names the text endpoint for user-facing messages.
	TextEndpoint() string

	// VoiceEndpoint names the voice endpoint for user-facing messages.
	VoiceEndpoint() string
}

// Embedder interface - Output port
type Embedder interface {
	// Embed returns the embedding of text.
	Embed(ctx context.Context, text string) ([]float32, error)
}
