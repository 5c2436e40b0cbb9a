package domain

import "errors"

// Storefront error types

var (
	// ErrNotFound indicates the requested product, cart line or conversation does not exist
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable indicates the product/cart store could not be reached or failed
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrEndpointUnavailable indicates an assistant endpoint failed (transport error, non-2xx or success:false)
	ErrEndpointUnavailable = errors.New("assistant endpoint unavailable")

	// ErrCaptureUnavailable indicates audio capture could not start or produced unusable audio
	ErrCaptureUnavailable = errors.New("audio capture unavailable")

	// ErrBusy indicates another operation of the same session is still in flight
	ErrBusy = errors.New("operation already in progress")

	// ErrInvalidRequest indicates an invalid request was made (4xx client errors)
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidTransition indicates an operation not allowed in the current assistant state
	ErrInvalidTransition = errors.New("invalid assistant state transition")

	// ErrEmptyCart indicates checkout was attempted with no cart lines
	ErrEmptyCart = errors.New("cart is empty")
)
