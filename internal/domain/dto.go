package domain

import (
	"time"

	"github.com/google/uuid"
)

// DTOs (Data Transfer Objects) - Domain layer request/response structures

type (
	// QueryProductRequest struct - Domain query request DTO
	QueryProductRequest struct {
		ID       *uuid.UUID
		Search   *string
		Category *string

		Limit      *int
		Page       *int
		OrderBy    *string
		Asc        *bool
		Pagination *Pagination
		SortMethod *SortMethod
	}

	// Pagination struct
	Pagination struct {
		Limit  int
		Offset int
	}

	// SortMethod struct
	SortMethod struct {
		Asc     bool
		OrderBy string
	}

	// ProductListResponse struct - Domain list response DTO
	ProductListResponse struct {
		Products    []Product
		CurrentPage *int
		PerPage     *int
		TotalItem   *int64
	}

	// SimilarityQuery struct - similarity lookup parameters
	SimilarityQuery struct {
		Threshold float64
		Count     int
	}

	// SimilarProduct struct - product found by embedding similarity
	SimilarProduct struct {
		Product    Product
		Similarity float64
		Reason     string
	}

	// AssistantTextRequest struct - payload of the text endpoint
	AssistantTextRequest struct {
		Query               string             `json:"query"`
		ProductContext      *ProductContext    `json:"product_context"`
		ConversationContext []ConversationTurn `json:"conversation_context"`
		UserIntent          Intent             `json:"user_intent"`
		UseVoice            bool               `json:"use_voice"`
		EnhanceResponse     bool               `json:"enhance_response"`
	}

	// AssistantVoiceRequest struct - payload of the voice endpoint
	AssistantVoiceRequest struct {
		Audio          []byte
		Filename       string
		ContentType    string
		ProductContext *ProductContext
	}

	// AssistantReply struct - answer from either endpoint
	AssistantReply struct {
		Response   string
		Transcript string
	}

	// CheckoutRequest struct - payment form
	CheckoutRequest struct {
		Email          string
		CardNumber     string
		ExpiryDate     string
		CVV            string
		CardholderName string
	}

	// OrderConfirmation struct - result of a simulated payment
	OrderConfirmation struct {
		OrderID   string
		Total     float64
		ItemCount int
		PaidAt    time.Time
	}

	// PopularProduct struct
	PopularProduct struct {
		ProductID uuid.UUID `json:"product_id"`
		Name      string    `json:"name"`
		Additions int64     `json:"additions"`
	}

	// CategoryCount struct
	CategoryCount struct {
		Name  string `json:"name"`
		Value int64  `json:"value"`
	}

	// StoreMetrics struct - aggregate numbers read from the store
	StoreMetrics struct {
		TotalProducts        int64
		ActiveSessions       int64
		PopularProducts      []PopularProduct
		CategoryDistribution []CategoryCount
	}

	// AssistantStats struct - measured assistant usage
	AssistantStats struct {
		TotalQueries      int64
		FailedQueries     int64
		AvgResponseTimeMs int64
	}

	// DashboardMetrics struct - admin dashboard numbers
	DashboardMetrics struct {
		StoreMetrics
		Assistant AssistantStats
	}
)

// NotificationVariant distinguishes informational from failure notifications
type NotificationVariant string

const (
	// NotificationDefault const
	NotificationDefault NotificationVariant = "default"
	// NotificationDestructive const
	NotificationDestructive NotificationVariant = "destructive"
)

// Notification is a transient user-facing message
type Notification struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Variant     NotificationVariant `json:"variant"`
}

// Utterance describes speech the client should play
type Utterance struct {
	Text   string  `json:"text"`
	Lang   string  `json:"lang"`
	Rate   float64 `json:"rate"`
	Pitch  float64 `json:"pitch"`
	Volume float64 `json:"volume"`
}
