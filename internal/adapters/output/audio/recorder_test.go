package audio

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

// TestBufferRecorderLifecycle tests start, append and stop
func TestBufferRecorderLifecycle(t *testing.T) {
	recorder := NewBufferRecorder(0)
	id := uuid.New()

	if err := recorder.Start(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = recorder.Append(id, []byte("abc"))
	_ = recorder.Append(id, []byte("def"))

	req, err := recorder.Stop(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(req.Audio) != "abcdef" {
		t.Errorf("expected concatenated audio, got %q", req.Audio)
	}
	if req.Filename != "voice.webm" || req.ContentType != "audio/webm" {
		t.Errorf("unexpected file metadata %s %s", req.Filename, req.ContentType)
	}
	if recorder.Open(id) {
		t.Error("expected capture to be closed after Stop")
	}
}

// TestBufferRecorderWithoutCapture tests append and stop with nothing open
func TestBufferRecorderWithoutCapture(t *testing.T) {
	recorder := NewBufferRecorder(0)
	id := uuid.New()

	if err := recorder.Append(id, []byte("x")); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	if _, err := recorder.Stop(id); !errors.Is(err, domain.ErrCaptureUnavailable) {
		t.Errorf("expected ErrCaptureUnavailable, got %v", err)
	}
}

// TestBufferRecorderLimit tests the capture size cap
func TestBufferRecorderLimit(t *testing.T) {
	recorder := NewBufferRecorder(4)
	id := uuid.New()
	_ = recorder.Start(context.Background(), id)

	if err := recorder.Append(id, []byte("1234")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := recorder.Append(id, []byte("5")); !errors.Is(err, domain.ErrCaptureUnavailable) {
		t.Errorf("expected ErrCaptureUnavailable, got %v", err)
	}
}

// TestBufferRecorderDiscard tests that a discarded capture is gone
func TestBufferRecorderDiscard(t *testing.T) {
	recorder := NewBufferRecorder(0)
	id := uuid.New()
	_ = recorder.Start(context.Background(), id)

	recorder.Discard(id)
	recorder.Discard(id)

	if recorder.Open(id) {
		t.Error("expected no open capture")
	}
}

// TestBufferRecorderCancelledContext tests start with a cancelled context
func TestBufferRecorderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewBufferRecorder(0).Start(ctx, uuid.New()); !errors.Is(err, domain.ErrCaptureUnavailable) {
		t.Errorf("expected ErrCaptureUnavailable, got %v", err)
	}
}
