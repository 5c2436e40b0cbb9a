package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/ports/input"
	"storefront/internal/ports/output"
)

// RecommendationConfig holds the similarity lookup parameters
type RecommendationConfig struct {
	MatchThreshold float64
	MatchCount     int
	BackfillBatch  int
}

// RecommendationService struct - Application service for embedding based suggestions
type RecommendationService struct {
	repo     output.ProductStore
	embedder output.Embedder
	cfg      RecommendationConfig
}

// NewRecommendationService func - Creates new recommendation service. embedder may be nil.
func NewRecommendationService(repo output.ProductStore, embedder output.Embedder, cfg RecommendationConfig) *RecommendationService {
	if cfg.MatchThreshold <= 0 {
		cfg.MatchThreshold = 0.6
	}
	if cfg.MatchCount <= 0 {
		cfg.MatchCount = 4
	}
	if cfg.BackfillBatch <= 0 {
		cfg.BackfillBatch = 50
	}
	return &RecommendationService{
		repo:     repo,
		embedder: embedder,
		cfg:      cfg,
	}
}

var _ input.RecommendationService = (*RecommendationService)(nil)

func (s *RecommendationService) query() domain.SimilarityQuery {
	return domain.SimilarityQuery{Threshold: s.cfg.MatchThreshold, Count: s.cfg.MatchCount}
}

// ForProduct func - Use case: products similar to the one being viewed
func (s *RecommendationService) ForProduct(ctx context.Context, id uuid.UUID) ([]domain.SimilarProduct, error) {
	if _, err := s.repo.GetProduct(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, storeError("recommendations", err)
	}

	similar, err := s.repo.FindSimilar(ctx, id, s.query())
	if err != nil {
		logrus.Errorln(err)
		return nil, storeError("recommendations", err)
	}
	return annotate(similar), nil
}

// Search func - Use case: products similar to free text
func (s *RecommendationService) Search(ctx context.Context, text string) ([]domain.SimilarProduct, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty search: %w", domain.ErrInvalidRequest)
	}
	if s.embedder == nil {
		return nil, fmt.Errorf("no embedder configured: %w", domain.ErrEndpointUnavailable)
	}

	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	similar, err := s.repo.FindSimilarByEmbedding(ctx, embedding, s.query())
	if err != nil {
		logrus.Errorln(err)
		return nil, storeError("similarity search", err)
	}
	return annotate(similar), nil
}

// BackfillEmbeddings func - Use case: embed every product lacking an embedding
func (s *RecommendationService) BackfillEmbeddings(ctx context.Context) (int, error) {
	if s.embedder == nil {
		return 0, fmt.Errorf("no embedder configured: %w", domain.ErrEndpointUnavailable)
	}

	stored := 0
	for {
		products, err := s.repo.ProductsWithoutEmbedding(ctx, s.cfg.BackfillBatch)
		if err != nil {
			return stored, storeError("backfill embeddings", err)
		}
		if len(products) == 0 {
			return stored, nil
		}

		for _, p := range products {
			embedding, err := s.embedder.Embed(ctx, embeddingText(p))
			if err != nil {
				return stored, fmt.Errorf("embed product %s: %w", p.ID, err)
			}
			if len(embedding) == 0 {
				return stored, fmt.Errorf("embed product %s: empty embedding: %w", p.ID, domain.ErrEndpointUnavailable)
			}
			if err := s.repo.SaveEmbedding(ctx, p.ID, embedding); err != nil {
				return stored, storeError("backfill embeddings", err)
			}
			stored++
		}
		logrus.Infof("Embedded %d products", stored)
	}
}

func embeddingText(p domain.Product) string {
	return strings.TrimSpace(fmt.Sprintf("%s. %s. %s", p.Name, p.CategoryName(), p.Description))
}

func annotate(similar []domain.SimilarProduct) []domain.SimilarProduct {
	for i := range similar {
		similar[i].Reason = similarityReason(similar[i])
	}
	return similar
}

// similarityReason explains a suggestion from its similarity score
func similarityReason(p domain.SimilarProduct) string {
	percent := int(math.Round(p.Similarity * 100))
	switch {
	case p.Similarity > 0.8:
		return fmt.Sprintf("🌟 %d%% de similitud - Características muy parecidas", percent)
	case p.Similarity > 0.7:
		category := unknownCategory
		if p.Product.Category != nil && *p.Product.Category != "" {
			category = *p.Product.Category
		}
		return fmt.Sprintf("⭐ Alternativa popular en %s", category)
	default:
		return fmt.Sprintf("💡 Mejor relación calidad-precio con %d%% de similitud", percent)
	}
}
