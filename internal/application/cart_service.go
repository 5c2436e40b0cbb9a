package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/ports/input"
	"storefront/internal/ports/output"
)

// CartService struct - Application service opening cart sessions
type CartService struct {
	store    output.CartStore
	products output.ProductStore
	busy     sync.Map // session id -> struct{}
	now      func() time.Time
}

// NewCartService func - Creates new cart service
func NewCartService(store output.CartStore, products output.ProductStore) *CartService {
	return &CartService{
		store:    store,
		products: products,
		now:      time.Now,
	}
}

var _ input.CartService = (*CartService)(nil)

// Open func - Use case: bind a cart session to a session id
func (s *CartService) Open(sessionID string, notifier output.Notifier) input.CartSession {
	return &CartSession{
		service:   s,
		sessionID: sessionID,
		notifier:  notifier,
	}
}

// acquire marks the session busy. It fails when another mutation holds it.
func (s *CartService) acquire(sessionID string) (release func(), ok bool) {
	if _, loaded := s.busy.LoadOrStore(sessionID, struct{}{}); loaded {
		return nil, false
	}
	return func() { s.busy.Delete(sessionID) }, true
}

// IsBusy reports whether a mutation of the session is in progress
func (s *CartService) IsBusy(sessionID string) bool {
	_, ok := s.busy.Load(sessionID)
	return ok
}

// CartSession struct - one shopper's cart bound to a session id
type CartSession struct {
	service   *CartService
	sessionID string
	notifier  output.Notifier

	mu   sync.RWMutex
	view domain.CartView
}

var _ input.CartSession = (*CartSession)(nil)

// SessionID func
func (c *CartSession) SessionID() string {
	return c.sessionID
}

// View returns the last loaded cart content
func (c *CartSession) View() domain.CartView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.NewCartView(c.view.Lines)
}

// Load func - Use case: read the session's lines; on failure the previous view stays
func (c *CartSession) Load(ctx context.Context) (domain.CartView, error) {
	if err := c.reload(ctx); err != nil {
		notifyError(c.notifier, "Error", "No se pudo cargar el carrito")
		return c.View(), err
	}
	return c.View(), nil
}

// AddItem func - Use case: add quantity of a product, merging into an existing line
func (c *CartSession) AddItem(ctx context.Context, productID uuid.UUID, quantity int) (domain.CartView, error) {
	if quantity < 1 {
		quantity = 1
	}

	release, err := c.begin()
	if err != nil {
		return c.View(), err
	}
	defer release()

	product, err := c.service.products.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notifyError(c.notifier, "Error", "Producto no encontrado")
			return c.View(), fmt.Errorf("add item %s: %w", productID, domain.ErrNotFound)
		}
		notifyError(c.notifier, "Error", "No se pudo añadir el producto al carrito")
		return c.View(), storeError("add item", err)
	}

	if err := c.service.store.UpsertItem(ctx, c.sessionID, productID, quantity, c.service.now()); err != nil {
		notifyError(c.notifier, "Error", "No se pudo añadir el producto al carrito")
		return c.View(), storeError("add item", err)
	}

	notifyInfo(c.notifier, "Producto añadido", fmt.Sprintf("%s se ha añadido al carrito", product.Name))
	return c.afterMutation(ctx)
}

// RemoveItem func - Use case: delete one line of this session
func (c *CartSession) RemoveItem(ctx context.Context, lineID uuid.UUID) (domain.CartView, error) {
	release, err := c.begin()
	if err != nil {
		return c.View(), err
	}
	defer release()

	if err := c.service.store.DeleteItem(ctx, c.sessionID, lineID); err != nil {
		notifyError(c.notifier, "Error", "No se pudo eliminar el producto del carrito")
		return c.View(), storeError("remove item", err)
	}

	notifyInfo(c.notifier, "Producto eliminado", "El producto se ha eliminado del carrito")
	return c.afterMutation(ctx)
}

// SetQuantity func - Use case: overwrite a line's quantity; zero or less removes the line
func (c *CartSession) SetQuantity(ctx context.Context, lineID uuid.UUID, quantity int) (domain.CartView, error) {
	if quantity <= 0 {
		return c.RemoveItem(ctx, lineID)
	}

	release, err := c.begin()
	if err != nil {
		return c.View(), err
	}
	defer release()

	if err := c.service.store.SetQuantity(ctx, c.sessionID, lineID, quantity, c.service.now()); err != nil {
		notifyError(c.notifier, "Error", "No se pudo actualizar la cantidad")
		return c.View(), storeError("set quantity", err)
	}
	return c.afterMutation(ctx)
}

// Clear func - Use case: delete every line of the session
func (c *CartSession) Clear(ctx context.Context) (domain.CartView, error) {
	release, err := c.begin()
	if err != nil {
		return c.View(), err
	}
	defer release()

	if err := c.service.store.ClearSession(ctx, c.sessionID); err != nil {
		notifyError(c.notifier, "Error", "No se pudo limpiar el carrito")
		return c.View(), storeError("clear cart", err)
	}

	c.mu.Lock()
	c.view = domain.NewCartView(nil)
	c.mu.Unlock()

	notifyInfo(c.notifier, "Carrito limpiado", "Se han eliminado todos los productos del carrito")
	return c.View(), nil
}

func (c *CartSession) begin() (func(), error) {
	release, ok := c.service.acquire(c.sessionID)
	if !ok {
		notifyError(c.notifier, "Carrito ocupado", "Espera a que termine la operación anterior")
		return nil, fmt.Errorf("cart %s: %w", c.sessionID, domain.ErrBusy)
	}
	return release, nil
}

// afterMutation reloads the view. A failed reload keeps the mutation but reports the error.
func (c *CartSession) afterMutation(ctx context.Context) (domain.CartView, error) {
	if err := c.reload(ctx); err != nil {
		notifyError(c.notifier, "Error", "Error al cargar el carrito")
		return c.View(), err
	}
	return c.View(), nil
}

func (c *CartSession) reload(ctx context.Context) error {
	lines, err := c.service.store.ListLines(ctx, c.sessionID)
	if err != nil {
		logrus.WithField("session_id", c.sessionID).Errorln(err)
		return storeError("load cart", err)
	}

	c.mu.Lock()
	c.view = domain.NewCartView(lines)
	c.mu.Unlock()
	return nil
}

// storeError wraps a store failure with domain.ErrStoreUnavailable unless it already carries it
func storeError(op string, err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}
