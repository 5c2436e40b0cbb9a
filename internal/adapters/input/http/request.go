package http

import "github.com/google/uuid"

type (
	// QueryProductRequest struct - HTTP query request DTO
	QueryProductRequest struct {
		Search   *string `json:"search" form:"search" query:"search"`
		Category *string `json:"category" form:"category" query:"category"`

		Limit   *int    `json:"limit,omitempty" form:"limit" query:"limit" validate:"omitempty,gte=1,lte=100"`
		Page    *int    `json:"page,omitempty" form:"page" query:"page" validate:"omitempty,gte=1"`
		OrderBy *string `json:"order_by,omitempty" form:"order_by" query:"order_by" validate:"omitempty,oneof=created_at name price category"`
		Asc     *bool   `json:"asc,omitempty" form:"asc" query:"asc"`
	}

	// SearchRequest struct - free text recommendation search
	SearchRequest struct {
		Query string `json:"q" form:"q" query:"q" validate:"required,max=500"`
	}

	// AddCartItemRequest struct
	AddCartItemRequest struct {
		ProductID uuid.UUID `json:"product_id" validate:"required"`
		Quantity  int       `json:"quantity" validate:"omitempty,gte=1,lte=999"`
	}

	// UpdateCartItemRequest struct - zero or less removes the line
	UpdateCartItemRequest struct {
		Quantity int `json:"quantity" validate:"lte=999"`
	}

	// CheckoutRequest struct - payment form
	CheckoutRequest struct {
		Email          string `json:"email"`
		CardNumber     string `json:"card_number"`
		ExpiryDate     string `json:"expiry_date"`
		CVV            string `json:"cvv"`
		CardholderName string `json:"cardholder_name"`
	}

	// OpenConversationRequest struct
	OpenConversationRequest struct {
		ProductID *uuid.UUID `json:"product_id"`
	}

	// TextQueryRequest struct
	TextQueryRequest struct {
		Query string `json:"query" validate:"required,max=2000"`
	}
)
