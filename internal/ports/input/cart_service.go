package input

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/ports/output"
)

// CartService interface - Input port (use case)
// Defines what the application can do with shopping carts
type CartService interface {
	// Open binds a cart session to sessionID. Failures are also reported to notifier.
	Open(sessionID string, notifier output.Notifier) CartSession
}

// CartSession interface - one shopper's cart
type CartSession interface {
	SessionID() string
	Load(ctx context.Context) (domain.CartView, error)
	AddItem(ctx context.Context, productID uuid.UUID, quantity int) (domain.CartView, error)
	RemoveItem(ctx context.Context, lineID uuid.UUID) (domain.CartView, error)
	SetQuantity(ctx context.Context, lineID uuid.UUID, quantity int) (domain.CartView, error)
	Clear(ctx context.Context) (domain.CartView, error)
	View() domain.CartView
}

// CheckoutService interface - Input port (use case)
type CheckoutService interface {
	// Checkout validates the payment form, simulates the payment and empties the cart.
	Checkout(ctx context.Context, cart CartSession, request domain.CheckoutRequest) (*domain.OrderConfirmation, error)
}
