package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// NotFound response
	NotFound = Status{Code: http.StatusNotFound, Message: []string{"Sorry, Data not found"}}
	// ConFlict response
	ConFlict = Status{Code: http.StatusConflict, Message: []string{"Sorry, Data is conflict"}}
	// Unprocessable response
	Unprocessable = Status{Code: http.StatusUnprocessableEntity, Message: []string{"Sorry, We are not able to process your request"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
	// ServiceUnavailable response
	ServiceUnavailable = Status{Code: http.StatusServiceUnavailable, Message: []string{"Service Unavailable"}}
)

// ResponseBody struct - Generic HTTP response wrapper
type ResponseBody struct {
	Status        Status                `json:"status,omitempty"`
	Data          interface{}           `json:"data,omitempty"`
	Notifications []domain.Notification `json:"notifications,omitempty"`

	CurrentPage *int   `json:"current_page,omitempty"`
	PerPage     *int   `json:"per_page,omitempty"`
	TotalItem   *int64 `json:"total_item,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

type (
	// ProductResponse struct - HTTP response DTO for a single product
	ProductResponse struct {
		ID          uuid.UUID `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Price       float64   `json:"price"`
		ImageURL    *string   `json:"image_url"`
		Category    *string   `json:"category"`
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
	}

	// SimilarProductResponse struct
	SimilarProductResponse struct {
		ProductResponse
		Similarity float64 `json:"similarity"`
		Reason     string  `json:"reason"`
	}

	// CartLineResponse struct
	CartLineResponse struct {
		ID        uuid.UUID `json:"id"`
		ProductID uuid.UUID `json:"product_id"`
		Quantity  int       `json:"quantity"`
		Name      string    `json:"name"`
		Price     float64   `json:"price"`
		ImageURL  *string   `json:"image_url"`
		Subtotal  float64   `json:"subtotal"`
	}

	// CartResponse struct
	CartResponse struct {
		SessionID  string             `json:"session_id"`
		Items      []CartLineResponse `json:"items"`
		TotalItems int                `json:"total_items"`
		TotalPrice float64            `json:"total_price"`
	}

	// ConversationResponse struct
	ConversationResponse struct {
		ID         uuid.UUID                 `json:"id"`
		State      domain.AssistantState     `json:"state"`
		IsBusy     bool                      `json:"is_busy"`
		Transcript string                    `json:"transcript"`
		Product    *domain.ProductContext    `json:"product"`
		Turns      []domain.ConversationTurn `json:"conversation"`
		Utterance  *domain.Utterance         `json:"utterance,omitempty"`
	}

	// OrderResponse struct
	OrderResponse struct {
		OrderID   string    `json:"order_id"`
		Total     float64   `json:"total"`
		ItemCount int       `json:"item_count"`
		PaidAt    time.Time `json:"paid_at"`
	}

	// MetricsResponse struct
	MetricsResponse struct {
		TotalProducts        int64                   `json:"total_products"`
		ActiveSessions       int64                   `json:"active_sessions"`
		TotalQueries         int64                   `json:"total_queries"`
		FailedQueries        int64                   `json:"failed_queries"`
		AvgResponseTimeMs    int64                   `json:"avg_response_time_ms"`
		PopularProducts      []domain.PopularProduct `json:"popular_products"`
		CategoryDistribution []domain.CategoryCount  `json:"category_distribution"`
	}
)

func newProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func newSimilarResponse(similar []domain.SimilarProduct) []SimilarProductResponse {
	data := make([]SimilarProductResponse, 0, len(similar))
	for _, s := range similar {
		data = append(data, SimilarProductResponse{
			ProductResponse: newProductResponse(s.Product),
			Similarity:      s.Similarity,
			Reason:          s.Reason,
		})
	}
	return data
}

func newCartResponse(sessionID string, view domain.CartView) CartResponse {
	items := make([]CartLineResponse, 0, len(view.Lines))
	for _, line := range view.Lines {
		items = append(items, CartLineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			ImageURL:  line.Product.ImageURL,
			Subtotal:  domain.NewCartView([]domain.CartLine{line}).TotalPrice(),
		})
	}
	return CartResponse{
		SessionID:  sessionID,
		Items:      items,
		TotalItems: view.TotalItems(),
		TotalPrice: view.TotalPrice(),
	}
}

func newConversationResponse(conv *domain.Conversation) *ConversationResponse {
	if conv == nil {
		return nil
	}
	turns := conv.GetHistory()
	if turns == nil {
		turns = make([]domain.ConversationTurn, 0)
	}
	return &ConversationResponse{
		ID:         conv.ID,
		State:      conv.State,
		IsBusy:     conv.IsBusy(),
		Transcript: conv.Transcript,
		Product:    conv.Product,
		Turns:      turns,
		Utterance:  conv.Utterance,
	}
}
