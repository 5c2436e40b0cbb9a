package output

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

// CartStore interface - Output port
// Every operation is scoped to one cart session id.
// Implementations must make UpsertItem atomic per (session, product).
type CartStore interface {
	// ListLines returns the lines of a session joined with their product snapshot, oldest first.
	ListLines(ctx context.Context, sessionID string) ([]domain.CartLine, error)

	// UpsertItem inserts a line or adds quantity to the existing line of the same product.
	UpsertItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int, now time.Time) error

	// SetQuantity overwrites the quantity of a line. Unknown lines are not an error.
	SetQuantity(ctx context.Context, sessionID string, lineID uuid.UUID, quantity int, now time.Time) error

	// DeleteItem removes a line. Unknown lines are not an error.
	DeleteItem(ctx context.Context, sessionID string, lineID uuid.UUID) error

	// ClearSession removes every line of the session.
	ClearSession(ctx context.Context, sessionID string) error
}
