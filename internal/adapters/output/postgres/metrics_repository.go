package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/domain"
	"storefront/internal/ports/output"
)

// MetricsRepository struct - aggregate queries for the admin dashboard
type MetricsRepository struct {
	dbGorm *gorm.DB
}

var _ output.MetricsStore = (*MetricsRepository)(nil)

// NewMetricsRepository func
func NewMetricsRepository(dbGorm *gorm.DB) *MetricsRepository {
	return &MetricsRepository{
		dbGorm: dbGorm,
	}
}

type popularRow struct {
	ProductID uuid.UUID
	Name      string
	Additions int64
}

type categoryRow struct {
	Name  string
	Value int64
}

// StoreMetrics func
func (p *MetricsRepository) StoreMetrics(ctx context.Context, activeSince, popularSince time.Time, popularLimit int) (*domain.StoreMetrics, error) {
	db := p.dbGorm.WithContext(ctx)
	metrics := &domain.StoreMetrics{}

	if err := db.Model(&domain.Product{}).Count(&metrics.TotalProducts).Error; err != nil {
		return nil, wrapError("count products", err)
	}

	if err := db.Model(&domain.CartItem{}).
		Where("updated_at >= ?", activeSince).
		Distinct("session_id").
		Count(&metrics.ActiveSessions).Error; err != nil {
		return nil, wrapError("count active sessions", err)
	}

	var popular []popularRow
	if err := db.Table("cart_items").
		Select("cart_items.product_id, COALESCE(products.name, ?) AS name, COUNT(*) AS additions", domain.UnnamedProduct).
		Joins("LEFT JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.created_at >= ?", popularSince).
		Group("cart_items.product_id, products.name").
		Order("additions DESC").
		Limit(popularLimit).
		Scan(&popular).Error; err != nil {
		return nil, wrapError("popular products", err)
	}
	metrics.PopularProducts = make([]domain.PopularProduct, 0, len(popular))
	for _, row := range popular {
		metrics.PopularProducts = append(metrics.PopularProducts, domain.PopularProduct(row))
	}

	var categories []categoryRow
	if err := db.Model(&domain.Product{}).
		Select("COALESCE(NULLIF(category, ''), ?) AS name, COUNT(*) AS value", domain.UncategorizedLabel).
		Group("name").
		Order("value DESC").
		Scan(&categories).Error; err != nil {
		return nil, wrapError("category distribution", err)
	}
	metrics.CategoryDistribution = make([]domain.CategoryCount, 0, len(categories))
	for _, row := range categories {
		metrics.CategoryDistribution = append(metrics.CategoryDistribution, domain.CategoryCount(row))
	}

	return metrics, nil
}
