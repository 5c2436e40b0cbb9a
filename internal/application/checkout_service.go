package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/ports/input"
	"storefront/pkg/validator"
)

// checkoutForm carries the validation rules of the payment form
type checkoutForm struct {
	Email          string `validate:"required,email"`
	CardNumber     string `validate:"required,digits=13-19"`
	ExpiryDate     string `validate:"required,expiry"`
	CVV            string `validate:"required,digits=3-4"`
	CardholderName string `validate:"required"`
}

// CheckoutService struct - Application service simulating payment
type CheckoutService struct {
	validator       validator.Validator
	processingDelay time.Duration
	now             func() time.Time
}

// NewCheckoutService func - Creates new checkout service
func NewCheckoutService(v validator.Validator, processingDelay time.Duration) *CheckoutService {
	if processingDelay < 0 {
		processingDelay = 0
	}
	return &CheckoutService{
		validator:       v,
		processingDelay: processingDelay,
		now:             time.Now,
	}
}

var _ input.CheckoutService = (*CheckoutService)(nil)

// Checkout func - Use case: pay for the cart and empty it
func (s *CheckoutService) Checkout(ctx context.Context, cart input.CartSession, request domain.CheckoutRequest) (*domain.OrderConfirmation, error) {
	form := checkoutForm{
		Email:          request.Email,
		CardNumber:     validator.StripSpaces(request.CardNumber),
		ExpiryDate:     request.ExpiryDate,
		CVV:            request.CVV,
		CardholderName: request.CardholderName,
	}
	if err := s.validator.ValidateStruct(form); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	view, err := cart.Load(ctx)
	if err != nil {
		return nil, err
	}
	if view.IsEmpty() {
		return nil, fmt.Errorf("checkout %s: %w", cart.SessionID(), domain.ErrEmptyCart)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.processingDelay):
	}

	if _, err := cart.Clear(ctx); err != nil {
		return nil, err
	}

	now := s.now()
	confirmation := &domain.OrderConfirmation{
		OrderID:   domain.NewOrderID(now),
		Total:     view.TotalPrice(),
		ItemCount: view.TotalItems(),
		PaidAt:    now,
	}
	logrus.WithFields(logrus.Fields{
		"order_id":   confirmation.OrderID,
		"session_id": cart.SessionID(),
		"total":      confirmation.Total,
	}).Info("Payment simulated")
	return confirmation, nil
}
