package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/ports/input"
	"storefront/internal/ports/output"
)

const (
	defaultPage    = 1
	defaultPerPage = 100
	defaultOrderBy = "created_at"
)

// sortableColumns lists the product columns a listing may be ordered by
var sortableColumns = map[string]bool{
	"created_at": true,
	"name":       true,
	"price":      true,
	"category":   true,
}

// CatalogService struct - Application service implementing catalog use cases
type CatalogService struct {
	repo output.ProductStore
}

// NewCatalogService func - Creates new catalog service
func NewCatalogService(repo output.ProductStore) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

var _ input.CatalogService = (*CatalogService)(nil)

// GetProduct func - Use case: Get one product
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logrus.Errorln(err)
		}
		return nil, err
	}
	return product, nil
}

// ListProducts func - Use case: Get products with pagination and filtering
func (s *CatalogService) ListProducts(ctx context.Context, condition domain.QueryProductRequest) (*domain.ProductListResponse, error) {
	page := defaultPage
	if condition.Page != nil && *condition.Page > 0 {
		page = *condition.Page
	}
	perPage := defaultPerPage
	if condition.Limit != nil && *condition.Limit > 0 {
		perPage = *condition.Limit
	}
	condition.Page = &page
	condition.Limit = &perPage
	condition.Pagination = &domain.Pagination{
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	}

	asc := true
	if condition.Asc != nil {
		asc = *condition.Asc
	}
	orderBy := defaultOrderBy
	if condition.OrderBy != nil {
		if !sortableColumns[*condition.OrderBy] {
			return nil, fmt.Errorf("order by %q: %w", *condition.OrderBy, domain.ErrInvalidRequest)
		}
		orderBy = *condition.OrderBy
	}
	condition.SortMethod = &domain.SortMethod{
		Asc:     asc,
		OrderBy: orderBy,
	}

	products, total, err := s.repo.FindProducts(ctx, condition)
	if err != nil {
		logrus.Errorln(err)
		return nil, storeError("list products", err)
	}

	return &domain.ProductListResponse{
		Products:    products,
		CurrentPage: &page,
		PerPage:     &perPage,
		TotalItem:   &total,
	}, nil
}
