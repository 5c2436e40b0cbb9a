package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

const testSessionID = "01JABCDEFGHJKMNPQRSTVWXYZ0"

func newTestCartService(products ...*domain.Product) (*CartService, *MockCartStore, *MockProductStore) {
	productStore := newMockProductStore(products...)
	cartStore := &MockCartStore{Products: productStore}
	return NewCartService(cartStore, productStore), cartStore, productStore
}

// TestAddItem_MergesIntoExistingLine tests that adding the same product twice keeps one line
func TestAddItem_MergesIntoExistingLine(t *testing.T) {
	product := newTestProduct("Auriculares Bose", 10, "Audio")
	service, _, _ := newTestCartService(product)
	cart := service.Open(testSessionID, &recordingNotifier{})
	ctx := context.Background()

	if _, err := cart.AddItem(ctx, product.ID, 2); err != nil {
		t.Fatalf("first AddItem: %v", err)
	}
	view, err := cart.AddItem(ctx, product.ID, 3)
	if err != nil {
		t.Fatalf("second AddItem: %v", err)
	}

	if len(view.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(view.Lines))
	}
	if view.Lines[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", view.Lines[0].Quantity)
	}
	if view.TotalItems() != 5 || view.TotalPrice() != 50 {
		t.Errorf("expected totals 5 / 50, got %d / %v", view.TotalItems(), view.TotalPrice())
	}
}

// TestAddItem_QuantityBelowOneTreatedAsOne tests the quantity default
func TestAddItem_QuantityBelowOneTreatedAsOne(t *testing.T) {
	product := newTestProduct("Canon EOS", 499.99, "Cámaras")
	service, _, _ := newTestCartService(product)
	cart := service.Open(testSessionID, nil)

	view, err := cart.AddItem(context.Background(), product.ID, 0)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if view.TotalItems() != 1 {
		t.Errorf("expected 1 item, got %d", view.TotalItems())
	}
}

// TestAddItem_NotifiesWithProductName tests the success notification
func TestAddItem_NotifiesWithProductName(t *testing.T) {
	product := newTestProduct("Canon EOS", 499.99, "")
	service, _, _ := newTestCartService(product)
	notifier := &recordingNotifier{}
	cart := service.Open(testSessionID, notifier)

	if _, err := cart.AddItem(context.Background(), product.ID, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	last := notifier.last()
	if last.Title != "Producto añadido" || last.Description != "Canon EOS se ha añadido al carrito" {
		t.Errorf("unexpected notification %+v", last)
	}
}

// TestAddItem_UnknownProductDoesNotMutate tests that a missing product fails without touching the store
func TestAddItem_UnknownProductDoesNotMutate(t *testing.T) {
	service, cartStore, _ := newTestCartService()
	notifier := &recordingNotifier{}
	cart := service.Open(testSessionID, notifier)

	view, err := cart.AddItem(context.Background(), uuid.New(), 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if cartStore.UpsertCalls != 0 {
		t.Errorf("expected no upsert, got %d", cartStore.UpsertCalls)
	}
	if !view.IsEmpty() {
		t.Error("expected view unchanged")
	}
	if notifier.count() != 1 || notifier.last().Variant != domain.NotificationDestructive {
		t.Errorf("expected one destructive notification, got %+v", notifier.Notifications)
	}
}

// TestAddItem_StoreFailure tests that an upsert failure maps to ErrStoreUnavailable
func TestAddItem_StoreFailure(t *testing.T) {
	product := newTestProduct("Canon EOS", 499.99, "")
	service, cartStore, _ := newTestCartService(product)
	cartStore.UpsertItemFunc = func(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) error {
		return errors.New("connection refused")
	}
	cart := service.Open(testSessionID, nil)

	_, err := cart.AddItem(context.Background(), product.ID, 1)
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
	if service.IsBusy(testSessionID) {
		t.Error("expected busy flag released after failure")
	}
}

// TestSetQuantity_NonPositiveRemovesLine tests that quantity <= 0 behaves like RemoveItem
func TestSetQuantity_NonPositiveRemovesLine(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
	}{
		{"zero", 0},
		{"negative", -1},
		{"very negative", -999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := newTestProduct("Xiaomi 14", 699, "Móviles")
			service, _, _ := newTestCartService(product)
			cart := service.Open(testSessionID, nil)
			ctx := context.Background()

			view, _ := cart.AddItem(ctx, product.ID, 2)
			lineID := view.Lines[0].ID

			view, err := cart.SetQuantity(ctx, lineID, tt.quantity)
			if err != nil {
				t.Fatalf("SetQuantity: %v", err)
			}
			if _, ok := view.Line(lineID); ok {
				t.Error("expected line to be removed")
			}
			if view.TotalItems() != 0 {
				t.Errorf("expected no items left, got %d", view.TotalItems())
			}
		})
	}
}

// TestSetQuantity_UpdatesLine tests a positive quantity overwrite
func TestSetQuantity_UpdatesLine(t *testing.T) {
	product := newTestProduct("Xiaomi 14", 699, "Móviles")
	service, _, _ := newTestCartService(product)
	cart := service.Open(testSessionID, nil)
	ctx := context.Background()

	view, _ := cart.AddItem(ctx, product.ID, 2)
	view, err := cart.SetQuantity(ctx, view.Lines[0].ID, 7)
	if err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if view.TotalItems() != 7 {
		t.Errorf("expected 7 items, got %d", view.TotalItems())
	}
}

// TestRemoveItem_UnknownLineIsNotAnError tests idempotent removal
func TestRemoveItem_UnknownLineIsNotAnError(t *testing.T) {
	service, _, _ := newTestCartService()
	cart := service.Open(testSessionID, nil)

	if _, err := cart.RemoveItem(context.Background(), uuid.New()); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

// TestRemoveItem_ScopedToSession tests that another session's line is untouched
func TestRemoveItem_ScopedToSession(t *testing.T) {
	product := newTestProduct("Sony WH-1000XM5", 349, "Audio")
	service, cartStore, _ := newTestCartService(product)
	ctx := context.Background()

	other := service.Open("other-session", nil)
	view, _ := other.AddItem(ctx, product.ID, 1)

	mine := service.Open(testSessionID, nil)
	if _, err := mine.RemoveItem(ctx, view.Lines[0].ID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if len(cartStore.Items) != 1 {
		t.Errorf("expected other session's line to survive, got %d items", len(cartStore.Items))
	}
}

// TestClear_EmptiesView tests Clear
func TestClear_EmptiesView(t *testing.T) {
	a := newTestProduct("A", 1, "")
	b := newTestProduct("B", 2, "")
	service, _, _ := newTestCartService(a, b)
	notifier := &recordingNotifier{}
	cart := service.Open(testSessionID, notifier)
	ctx := context.Background()

	_, _ = cart.AddItem(ctx, a.ID, 1)
	_, _ = cart.AddItem(ctx, b.ID, 1)

	view, err := cart.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if !view.IsEmpty() || !cart.View().IsEmpty() {
		t.Error("expected empty cart")
	}
	if notifier.last().Title != "Carrito limpiado" {
		t.Errorf("unexpected notification %+v", notifier.last())
	}

	reloaded, _ := cart.Load(ctx)
	if !reloaded.IsEmpty() {
		t.Error("expected store to be empty")
	}
}

// TestLoad_FailureKeepsPreviousView tests that a failed reload leaves the view as it was
func TestLoad_FailureKeepsPreviousView(t *testing.T) {
	product := newTestProduct("Dell XPS", 1299, "Portátiles")
	service, cartStore, _ := newTestCartService(product)
	notifier := &recordingNotifier{}
	cart := service.Open(testSessionID, notifier)
	ctx := context.Background()

	before, _ := cart.AddItem(ctx, product.ID, 1)
	notificationsBefore := notifier.count()

	calls := 0
	cartStore.ListLinesFunc = func(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
		calls++
		return nil, errors.New("timeout")
	}

	after, err := cart.Load(ctx)
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
	if len(after.Lines) != len(before.Lines) || after.TotalItems() != before.TotalItems() {
		t.Errorf("expected previous view, got %+v", after)
	}
	if calls != 1 {
		t.Errorf("expected no retry, got %d calls", calls)
	}
	if notifier.count() != notificationsBefore+1 {
		t.Errorf("expected exactly one notification, got %d", notifier.count()-notificationsBefore)
	}
}

// TestLoad_MissingProductUsesPlaceholder tests the snapshot fallback
func TestLoad_MissingProductUsesPlaceholder(t *testing.T) {
	service, cartStore, _ := newTestCartService()
	cartStore.Items = []domain.CartItem{{ID: uuid.New(), SessionID: testSessionID, ProductID: uuid.New(), Quantity: 1}}
	cart := service.Open(testSessionID, nil)

	view, err := cart.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if view.Lines[0].Product.Name != domain.UnnamedProduct || view.TotalPrice() != 0 {
		t.Errorf("unexpected line %+v", view.Lines[0])
	}
}

// TestMutation_RejectedWhileBusy tests the per-session busy flag
func TestMutation_RejectedWhileBusy(t *testing.T) {
	product := newTestProduct("GoPro Hero", 399, "Cámaras")
	service, cartStore, _ := newTestCartService(product)
	ctx := context.Background()

	started := make(chan struct{})
	proceed := make(chan struct{})
	cartStore.UpsertItemFunc = func(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) error {
		close(started)
		<-proceed
		return nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := service.Open(testSessionID, nil).AddItem(ctx, product.ID, 1)
		done <- err
	}()
	<-started

	notifier := &recordingNotifier{}
	_, err := service.Open(testSessionID, notifier).Clear(ctx)
	if !errors.Is(err, domain.ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
	if notifier.count() != 1 {
		t.Errorf("expected one notification, got %d", notifier.count())
	}

	// Another session is not affected
	if _, err := service.Open("other-session", nil).Clear(ctx); err != nil {
		t.Errorf("expected other session to proceed, got %v", err)
	}

	close(proceed)
	if err := <-done; err != nil {
		t.Errorf("expected first mutation to succeed, got %v", err)
	}
	if service.IsBusy(testSessionID) {
		t.Error("expected busy flag released")
	}
}

// TestResolveSessionID_Idempotent tests create-if-absent semantics
func TestResolveSessionID_Idempotent(t *testing.T) {
	storage := mapStorage{}

	first, err := ResolveSessionID(storage)
	if err != nil {
		t.Fatalf("ResolveSessionID: %v", err)
	}
	second, err := ResolveSessionID(storage)
	if err != nil {
		t.Fatalf("ResolveSessionID: %v", err)
	}

	if first == "" || first != second {
		t.Errorf("expected identical non-empty ids, got %q and %q", first, second)
	}
	if storage[domain.SessionIDKey] != first {
		t.Errorf("expected id persisted under %s", domain.SessionIDKey)
	}
}

// TestResolveSessionID_KeepsExisting tests that a stored id is returned unchanged
func TestResolveSessionID_KeepsExisting(t *testing.T) {
	storage := mapStorage{domain.SessionIDKey: "session_123"}

	id, err := ResolveSessionID(storage)
	if err != nil {
		t.Fatalf("ResolveSessionID: %v", err)
	}
	if id != "session_123" {
		t.Errorf("expected stored id, got %q", id)
	}
}
