package http

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	"storefront/internal/ports/input"
)

func (hdl *HTTPHandler) openCart(c *fiber.Ctx) input.CartSession {
	return hdl.srv.Cart.Open(sessionIDOf(c), collectorOf(c))
}

// cartResult writes the cart view, with the error status when err is set
func cartResult(c *fiber.Ctx, cart input.CartSession, view domain.CartView, err error) error {
	data := newCartResponse(cart.SessionID(), view)
	if err != nil {
		return fail(c, err, data)
	}
	return ok(c, data)
}

// GetCart godoc
// @Summary Get cart
// @Description Cart of the session cookie
// @Tags Cart
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/cart	[get]
// @Produce json
func (hdl *HTTPHandler) GetCart(c *fiber.Ctx) error {
	cart := hdl.openCart(c)
	view, err := cart.Load(c.UserContext())
	return cartResult(c, cart, view, err)
}

// AddCartItem godoc
// @Summary Add to cart
// @Tags Cart
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/cart/items	[post]
// @Produce json
// @param AddCartItem body AddCartItemRequest true "AddCartItem"
func (hdl *HTTPHandler) AddCartItem(c *fiber.Ctx) error {
	var request AddCartItemRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, err)
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return badRequest(c, err)
	}
	cart := hdl.openCart(c)
	view, err := cart.AddItem(c.UserContext(), request.ProductID, request.Quantity)
	return cartResult(c, cart, view, err)
}

// UpdateCartItem godoc
// @Summary Set line quantity
// @Description A quantity of zero or less removes the line
// @Tags Cart
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/cart/items/{id}	[put]
// @Produce json
// @param id path string true "line uuid"
// @param UpdateCartItem body UpdateCartItemRequest true "UpdateCartItem"
func (hdl *HTTPHandler) UpdateCartItem(c *fiber.Ctx) error {
	lineID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	var request UpdateCartItemRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, err)
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return badRequest(c, err)
	}
	cart := hdl.openCart(c)
	view, err := cart.SetQuantity(c.UserContext(), lineID, request.Quantity)
	return cartResult(c, cart, view, err)
}

// RemoveCartItem godoc
// @Summary Remove line
// @Tags Cart
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/cart/items/{id}	[delete]
// @Produce json
// @param id path string true "line uuid"
func (hdl *HTTPHandler) RemoveCartItem(c *fiber.Ctx) error {
	lineID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	cart := hdl.openCart(c)
	view, err := cart.RemoveItem(c.UserContext(), lineID)
	return cartResult(c, cart, view, err)
}

// ClearCart godoc
// @Summary Empty cart
// @Tags Cart
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/cart	[delete]
// @Produce json
func (hdl *HTTPHandler) ClearCart(c *fiber.Ctx) error {
	cart := hdl.openCart(c)
	view, err := cart.Clear(c.UserContext())
	return cartResult(c, cart, view, err)
}

// Checkout godoc
// @Summary Pay for the cart
// @Description Validates the card form, simulates the payment and empties the cart
// @Tags Cart
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/checkout	[post]
// @Produce json
// @param Checkout body CheckoutRequest true "Checkout"
func (hdl *HTTPHandler) Checkout(c *fiber.Ctx) error {
	var request CheckoutRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, err)
	}
	cart := hdl.openCart(c)
	order, err := hdl.srv.Checkout.Checkout(c.UserContext(), cart, domain.CheckoutRequest{
		Email:          request.Email,
		CardNumber:     request.CardNumber,
		ExpiryDate:     request.ExpiryDate,
		CVV:            request.CVV,
		CardholderName: request.CardholderName,
	})
	if err != nil {
		return fail(c, err, nil)
	}
	return ok(c, OrderResponse{
		OrderID:   order.OrderID,
		Total:     order.Total,
		ItemCount: order.ItemCount,
		PaidAt:    order.PaidAt,
	})
}
