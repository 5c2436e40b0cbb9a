package input

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

// CatalogService interface - Input port (use case)
type CatalogService interface {
	ListProducts(ctx context.Context, query domain.QueryProductRequest) (*domain.ProductListResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

// RecommendationService interface - Input port (use case)
// Defines the embedding based product suggestions
type RecommendationService interface {
	// ForProduct returns products similar to id, each with a reason
	ForProduct(ctx context.Context, id uuid.UUID) ([]domain.SimilarProduct, error)

	// Search returns products similar to free text
	Search(ctx context.Context, text string) ([]domain.SimilarProduct, error)

	// BackfillEmbeddings embeds every product lacking an embedding and returns how many were stored
	BackfillEmbeddings(ctx context.Context) (int, error)
}

// DashboardService interface - Input port (use case)
type DashboardService interface {
	Metrics(ctx context.Context) (*domain.DashboardMetrics, error)
}
