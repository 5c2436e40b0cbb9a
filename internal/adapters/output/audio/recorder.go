package audio

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/ports/output"
)

const (
	// DefaultMaxBytes caps one capture
	DefaultMaxBytes = 10 << 20

	captureFilename    = "voice.webm"
	captureContentType = "audio/webm"
)

var _ output.AudioRecorder = (*BufferRecorder)(nil)

// BufferRecorder struct - keeps uploaded audio chunks in memory until the capture stops
type BufferRecorder struct {
	mu       sync.Mutex
	captures map[uuid.UUID]*bytes.Buffer
	maxBytes int
}

// NewBufferRecorder func - maxBytes <= 0 uses DefaultMaxBytes
func NewBufferRecorder(maxBytes int) *BufferRecorder {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &BufferRecorder{
		captures: make(map[uuid.UUID]*bytes.Buffer),
		maxBytes: maxBytes,
	}
}

// Start opens an empty capture, replacing any leftover one
func (r *BufferRecorder) Start(ctx context.Context, conversationID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCaptureUnavailable, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.captures[conversationID] = &bytes.Buffer{}
	logrus.WithField("conversation_id", conversationID).Debug("Audio capture started")
	return nil
}

// Append adds a chunk; fails when no capture is open or the capture is full
func (r *BufferRecorder) Append(conversationID uuid.UUID, chunk []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	buf, ok := r.captures[conversationID]
	if !ok {
		return fmt.Errorf("no open capture: %w", domain.ErrInvalidTransition)
	}
	if buf.Len()+len(chunk) > r.maxBytes {
		return fmt.Errorf("%w: capture exceeds %d bytes", domain.ErrCaptureUnavailable, r.maxBytes)
	}
	buf.Write(chunk)
	return nil
}

// Stop closes the capture and returns its audio
func (r *BufferRecorder) Stop(conversationID uuid.UUID) (*domain.AssistantVoiceRequest, error) {
	r.mu.Lock()
	buf, ok := r.captures[conversationID]
	delete(r.captures, conversationID)
	r.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: no open capture", domain.ErrCaptureUnavailable)
	}
	logrus.WithField("conversation_id", conversationID).Debugf("Audio capture stopped with %d bytes", buf.Len())
	return &domain.AssistantVoiceRequest{
		Audio:       buf.Bytes(),
		Filename:    captureFilename,
		ContentType: captureContentType,
	}, nil
}

// Discard drops an open capture
func (r *BufferRecorder) Discard(conversationID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.captures, conversationID)
}

// Open reports whether a capture is open
func (r *BufferRecorder) Open(conversationID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.captures[conversationID]
	return ok
}
