package output

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

// ProductStore interface - Output port
// Defines what the application needs from the product catalog storage,
// including the embedding similarity lookup used for recommendations.
type ProductStore interface {
	// FindProducts returns one page of products matching the query and the total match count.
	FindProducts(ctx context.Context, query domain.QueryProductRequest) ([]domain.Product, int64, error)

	// GetProduct returns a product by id or domain.ErrNotFound.
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// FindSimilar returns products whose embedding is at least query.Threshold similar
	// to the embedding of productID, most similar first, excluding productID itself.
	FindSimilar(ctx context.Context, productID uuid.UUID, query domain.SimilarityQuery) ([]domain.SimilarProduct, error)

	// FindSimilarByEmbedding is FindSimilar against an arbitrary embedding.
	FindSimilarByEmbedding(ctx context.Context, embedding []float32, query domain.SimilarityQuery) ([]domain.SimilarProduct, error)

	// ProductsWithoutEmbedding returns up to limit products lacking an embedding.
	ProductsWithoutEmbedding(ctx context.Context, limit int) ([]domain.Product, error)

	// SaveEmbedding stores the embedding of a product.
	SaveEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error
}

// MetricsStore interface - Output port
// Aggregates storefront activity for the admin dashboard.
type MetricsStore interface {
	// StoreMetrics counts products, sessions with cart activity since activeSince,
	// products most added since popularSince and the category distribution.
	StoreMetrics(ctx context.Context, activeSince, popularSince time.Time, popularLimit int) (*domain.StoreMetrics, error)
}
