package output

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

// AudioRecorder interface - Output port
// Buffers microphone audio per conversation.
type AudioRecorder interface {
	// Start opens a capture for the conversation. Fails with domain.ErrCaptureUnavailable.
	Start(ctx context.Context, conversationID uuid.UUID) error

	// Append adds a chunk to an open capture.
	Append(conversationID uuid.UUID, chunk []byte) error

	// Stop closes the capture and returns the recorded audio.
	Stop(conversationID uuid.UUID) (*domain.AssistantVoiceRequest, error)

	// Discard drops any open capture. Idempotent.
	Discard(conversationID uuid.UUID)
}

// SpeechSynthesizer interface - Output port
type SpeechSynthesizer interface {
	// Speak starts speaking text for the conversation and returns what is played.
	Speak(ctx context.Context, conversationID uuid.UUID, text string) (*domain.Utterance, error)

	// Cancel stops any playback of the conversation. Idempotent.
	Cancel(conversationID uuid.UUID)
}
