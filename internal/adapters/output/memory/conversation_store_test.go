package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

const (
	testTimeout  = 30 * time.Minute
	testMaxTurns = 10
)

func newConversation(t *testing.T, store *ConversationStore) *domain.Conversation {
	t.Helper()
	conv, err := domain.NewConversation(nil, store.GetTimeout(), testMaxTurns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return conv
}

// ============================================================================
// Conversation store
// ============================================================================

// TestConversationStoreSaveAndGet tests round trip of a conversation
func TestConversationStoreSaveAndGet(t *testing.T) {
	store := NewConversationStore(testTimeout)
	ctx := context.Background()
	conv := newConversation(t, store)
	_ = conv.BeginQuery("hola", time.Now())

	if err := store.SaveConversation(ctx, conv); err != nil {
		t.Fatalf("expected no error on save, got %v", err)
	}

	got, err := store.GetConversation(ctx, conv.ID)
	if err != nil {
		t.Fatalf("expected no error on get, got %v", err)
	}
	if got == nil {
		t.Fatal("expected conversation, got nil")
	}
	if got.State != domain.AssistantStateAwaiting || len(got.Turns) != 1 {
		t.Errorf("unexpected conversation %+v", got)
	}
}

// TestConversationStoreReturnsCopies tests that mutating a loaded conversation does not change the stored one
func TestConversationStoreReturnsCopies(t *testing.T) {
	store := NewConversationStore(testTimeout)
	ctx := context.Background()
	conv := newConversation(t, store)
	_ = store.SaveConversation(ctx, conv)

	conv.State = domain.AssistantStateSpeaking
	loaded, _ := store.GetConversation(ctx, conv.ID)
	if loaded.State != domain.AssistantStateIdle {
		t.Errorf("expected stored state idle, got %s", loaded.State)
	}

	loaded.Transcript = "changed"
	again, _ := store.GetConversation(ctx, conv.ID)
	if again.Transcript != "" {
		t.Errorf("expected stored transcript untouched, got %q", again.Transcript)
	}
}

// TestConversationStoreMissing tests that unknown ids return nil without error
func TestConversationStoreMissing(t *testing.T) {
	store := NewConversationStore(testTimeout)
	got, err := store.GetConversation(context.Background(), uuid.New())
	if err != nil || got != nil {
		t.Errorf("expected nil, nil; got %v, %v", got, err)
	}
}

// TestConversationStoreExpired tests lazy removal of expired conversations
func TestConversationStoreExpired(t *testing.T) {
	store := NewConversationStore(5 * time.Minute)
	ctx := context.Background()
	conv := newConversation(t, store)
	conv.LastAccessTime = time.Now().Add(-6 * time.Minute)
	_ = store.SaveConversation(ctx, conv)

	got, err := store.GetConversation(ctx, conv.ID)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if got != nil {
		t.Error("expected nil for expired conversation")
	}
	if store.Count() != 0 {
		t.Errorf("expected expired conversation to be deleted, %d left", store.Count())
	}
}

// TestConversationStoreDeleteIsIdempotent tests deletion
func TestConversationStoreDeleteIsIdempotent(t *testing.T) {
	store := NewConversationStore(0)
	ctx := context.Background()
	conv := newConversation(t, store)
	_ = store.SaveConversation(ctx, conv)

	if err := store.DeleteConversation(ctx, conv.ID); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if err := store.DeleteConversation(ctx, conv.ID); err != nil {
		t.Errorf("expected no error deleting twice, got %v", err)
	}
	if got, _ := store.GetConversation(ctx, conv.ID); got != nil {
		t.Error("expected conversation to be gone")
	}
}
