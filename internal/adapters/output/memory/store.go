package memory

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"storefront/internal/domain"
	"storefront/internal/ports/output"
)

var (
	_ output.ProductStore = (*Store)(nil)
	_ output.CartStore    = (*Store)(nil)
	_ output.MetricsStore = (*Store)(nil)
)

// Store struct - in-process catalog and cart storage used when no database is configured
type Store struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product
	items    map[uuid.UUID]*domain.CartItem
}

// NewStore creates a store holding a copy of the given products
func NewStore(products ...domain.Product) *Store {
	s := &Store{
		products: make(map[uuid.UUID]*domain.Product),
		items:    make(map[uuid.UUID]*domain.CartItem),
	}
	for i := range products {
		s.PutProduct(products[i])
	}
	return s
}

// PutProduct inserts or replaces a product, assigning an id when missing
func (s *Store) PutProduct(product domain.Product) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	s.products[product.ID] = &product
	return product.ID
}

// DeleteProduct removes a product without touching cart lines that reference it
func (s *Store) DeleteProduct(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

// ============================================================================
// ProductStore
// ============================================================================

// GetProduct returns a copy of a product or domain.ErrNotFound
func (s *Store) GetProduct(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("get product %s: %w", id, domain.ErrNotFound)
	}
	product := *p
	return &product, nil
}

// FindProducts filters, sorts and pages the catalog
func (s *Store) FindProducts(_ context.Context, query domain.QueryProductRequest) ([]domain.Product, int64, error) {
	var keyword string
	if query.Search != nil {
		unescaped, err := url.QueryUnescape(*query.Search)
		if err != nil {
			return nil, 0, fmt.Errorf("find products: %w", domain.ErrInvalidRequest)
		}
		keyword = strings.ToLower(unescaped)
	}

	s.mu.RLock()
	matches := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if query.ID != nil && p.ID != *query.ID {
			continue
		}
		if query.Category != nil && (p.Category == nil || *p.Category != *query.Category) {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(p.Name), keyword) &&
			!strings.Contains(strings.ToLower(p.Description), keyword) {
			continue
		}
		matches = append(matches, *p)
	}
	s.mu.RUnlock()

	if query.SortMethod != nil {
		sortProducts(matches, query.SortMethod.OrderBy, query.SortMethod.Asc)
	}

	total := int64(len(matches))
	if query.Pagination != nil {
		start := min(query.Pagination.Offset, len(matches))
		end := len(matches)
		if query.Pagination.Limit > 0 {
			end = min(start+query.Pagination.Limit, len(matches))
		}
		matches = matches[start:end]
	}
	for i := range matches {
		matches[i].Embedding = nil
	}
	return matches, total, nil
}

func sortProducts(products []domain.Product, orderBy string, asc bool) {
	less := func(a, b domain.Product) bool {
		switch orderBy {
		case "name":
			return a.Name < b.Name
		case "price":
			return a.Price < b.Price
		case "category":
			return a.CategoryName() < b.CategoryName()
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(products, func(i, j int) bool {
		if asc {
			return less(products[i], products[j])
		}
		return less(products[j], products[i])
	})
}

// FindSimilar ranks products by cosine similarity to the embedding of productID
func (s *Store) FindSimilar(ctx context.Context, productID uuid.UUID, query domain.SimilarityQuery) ([]domain.SimilarProduct, error) {
	s.mu.RLock()
	source, ok := s.products[productID]
	var target []float32
	if ok && source.Embedding != nil {
		target = source.Embedding.Slice()
	}
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("find similar %s: %w", productID, domain.ErrNotFound)
	}
	if target == nil {
		return []domain.SimilarProduct{}, nil
	}
	return s.rank(target, productID, query), nil
}

// FindSimilarByEmbedding ranks products by cosine similarity to embedding
func (s *Store) FindSimilarByEmbedding(_ context.Context, embedding []float32, query domain.SimilarityQuery) ([]domain.SimilarProduct, error) {
	return s.rank(embedding, uuid.Nil, query), nil
}

func (s *Store) rank(target []float32, exclude uuid.UUID, query domain.SimilarityQuery) []domain.SimilarProduct {
	s.mu.RLock()
	result := make([]domain.SimilarProduct, 0)
	for id, p := range s.products {
		if id == exclude || p.Embedding == nil {
			continue
		}
		similarity := cosineSimilarity(target, p.Embedding.Slice())
		if similarity < query.Threshold {
			continue
		}
		product := *p
		product.Embedding = nil
		result = append(result, domain.SimilarProduct{Product: product, Similarity: similarity})
	}
	s.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Similarity > result[j].Similarity
	})
	if query.Count > 0 && len(result) > query.Count {
		result = result[:query.Count]
	}
	return result
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// ProductsWithoutEmbedding returns up to limit products lacking an embedding, oldest first
func (s *Store) ProductsWithoutEmbedding(_ context.Context, limit int) ([]domain.Product, error) {
	s.mu.RLock()
	result := make([]domain.Product, 0)
	for _, p := range s.products {
		if p.Embedding == nil {
			result = append(result, *p)
		}
	}
	s.mu.RUnlock()

	sortProducts(result, "created_at", true)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// SaveEmbedding stores the embedding of a product
func (s *Store) SaveEmbedding(_ context.Context, id uuid.UUID, embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return fmt.Errorf("save embedding %s: %w", id, domain.ErrNotFound)
	}
	vector := pgvector.NewVector(embedding)
	p.Embedding = &vector
	return nil
}

// ============================================================================
// CartStore
// ============================================================================

// ListLines returns the lines of a session, oldest first
func (s *Store) ListLines(_ context.Context, sessionID string) ([]domain.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*domain.CartItem, 0)
	for _, item := range s.items {
		if item.SessionID == sessionID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return bytes.Compare(items[i].ID[:], items[j].ID[:]) < 0
	})

	lines := make([]domain.CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, domain.NewCartLine(*item, s.products[item.ProductID]))
	}
	return lines, nil
}

// UpsertItem adds quantity to the line of the product or inserts it, under one lock
func (s *Store) UpsertItem(_ context.Context, sessionID string, productID uuid.UUID, quantity int, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.SessionID == sessionID && item.ProductID == productID {
			item.Quantity += quantity
			item.UpdatedAt = now
			return nil
		}
	}
	item := &domain.CartItem{
		ID:        uuid.New(),
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.items[item.ID] = item
	return nil
}

// SetQuantity overwrites the quantity of a line of this session
func (s *Store) SetQuantity(_ context.Context, sessionID string, lineID uuid.UUID, quantity int, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item, ok := s.items[lineID]; ok && item.SessionID == sessionID {
		item.Quantity = quantity
		item.UpdatedAt = now
	}
	return nil
}

// DeleteItem removes a line of this session
func (s *Store) DeleteItem(_ context.Context, sessionID string, lineID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item, ok := s.items[lineID]; ok && item.SessionID == sessionID {
		delete(s.items, lineID)
	}
	return nil
}

// ClearSession removes every line of this session
func (s *Store) ClearSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, item := range s.items {
		if item.SessionID == sessionID {
			delete(s.items, id)
		}
	}
	return nil
}

// ============================================================================
// MetricsStore
// ============================================================================

// StoreMetrics aggregates the catalog and the cart lines
func (s *Store) StoreMetrics(_ context.Context, activeSince, popularSince time.Time, popularLimit int) (*domain.StoreMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metrics := &domain.StoreMetrics{TotalProducts: int64(len(s.products))}

	sessions := make(map[string]struct{})
	additions := make(map[uuid.UUID]int64)
	for _, item := range s.items {
		if !item.UpdatedAt.Before(activeSince) {
			sessions[item.SessionID] = struct{}{}
		}
		if !item.CreatedAt.Before(popularSince) {
			additions[item.ProductID]++
		}
	}
	metrics.ActiveSessions = int64(len(sessions))

	metrics.PopularProducts = make([]domain.PopularProduct, 0, len(additions))
	for id, count := range additions {
		name := domain.UnnamedProduct
		if p, ok := s.products[id]; ok {
			name = p.Name
		}
		metrics.PopularProducts = append(metrics.PopularProducts, domain.PopularProduct{ProductID: id, Name: name, Additions: count})
	}
	sort.SliceStable(metrics.PopularProducts, func(i, j int) bool {
		a, b := metrics.PopularProducts[i], metrics.PopularProducts[j]
		if a.Additions != b.Additions {
			return a.Additions > b.Additions
		}
		return a.Name < b.Name
	})
	if popularLimit > 0 && len(metrics.PopularProducts) > popularLimit {
		metrics.PopularProducts = metrics.PopularProducts[:popularLimit]
	}

	categories := make(map[string]int64)
	for _, p := range s.products {
		categories[p.CategoryName()]++
	}
	metrics.CategoryDistribution = make([]domain.CategoryCount, 0, len(categories))
	for name, value := range categories {
		metrics.CategoryDistribution = append(metrics.CategoryDistribution, domain.CategoryCount{Name: name, Value: value})
	}
	sort.SliceStable(metrics.CategoryDistribution, func(i, j int) bool {
		a, b := metrics.CategoryDistribution[i], metrics.CategoryDistribution[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		return a.Name < b.Name
	})
	return metrics, nil
}
