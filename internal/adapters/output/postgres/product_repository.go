package postgres

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"storefront/internal/domain"
	"storefront/internal/ports/output"
)

const productColumns = "products.id, products.name, products.description, products.price, products.image_url, products.category, products.created_at, products.updated_at"

// ProductRepository struct - Secondary/Driven adapter for PostgreSQL
type ProductRepository struct {
	dbGorm *gorm.DB
}

var _ output.ProductStore = (*ProductRepository)(nil)

// NewProductRepository func - Creates new PostgreSQL product repository
func NewProductRepository(dbGorm *gorm.DB) *ProductRepository {
	return &ProductRepository{
		dbGorm: dbGorm,
	}
}

type similarRow struct {
	domain.Product
	Similarity float64
}

func (p *ProductRepository) condition(condition domain.QueryProductRequest) map[string]interface{} {
	expression := make(map[string]interface{})
	if condition.ID != nil {
		expression["id"] = *condition.ID
	}
	if condition.Category != nil {
		expression["category"] = *condition.Category
	}
	return expression
}

// GetProduct func - Retrieves one product by id
func (p *ProductRepository) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	if err := p.dbGorm.WithContext(ctx).Omit("embedding").Where("id = ?", id).First(&product).Error; err != nil {
		return nil, wrapError("get product", err)
	}
	return &product, nil
}

// FindProducts func - Retrieves products with filtering and pagination
func (p *ProductRepository) FindProducts(ctx context.Context, condition domain.QueryProductRequest) ([]domain.Product, int64, error) {
	var products []domain.Product

	tx := p.dbGorm.WithContext(ctx).Model(&domain.Product{}).Where(p.condition(condition))
	if condition.Search != nil && *condition.Search != "" {
		keyword, err := url.QueryUnescape(*condition.Search)
		if err != nil {
			logrus.Errorln(err)
			return nil, 0, wrapError("find products", err)
		}
		tx = tx.Where("name ILIKE ? OR description ILIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}

	// count and page from separate statements built on the same filters
	tx = tx.Session(&gorm.Session{})

	var totalItem int64
	if err := tx.Count(&totalItem).Error; err != nil {
		logrus.Errorln(err)
		return nil, 0, wrapError("count products", err)
	}

	if condition.SortMethod != nil {
		order := condition.SortMethod.OrderBy
		if order == "" {
			order = "created_at"
		}
		if condition.SortMethod.Asc {
			tx = tx.Order(order + " ASC")
		} else {
			tx = tx.Order(order + " DESC")
		}
	}
	if condition.Pagination != nil {
		tx = tx.Limit(condition.Pagination.Limit).Offset(condition.Pagination.Offset)
	}

	if err := tx.Omit("embedding").Find(&products).Error; err != nil {
		logrus.Errorln(err)
		return nil, 0, wrapError("find products", err)
	}
	return products, totalItem, nil
}

// FindSimilar func - cosine similarity against the embedding of another product
func (p *ProductRepository) FindSimilar(ctx context.Context, productID uuid.UUID, query domain.SimilarityQuery) ([]domain.SimilarProduct, error) {
	var rows []similarRow

	err := p.dbGorm.WithContext(ctx).
		Table("products").
		Select(productColumns+", 1 - (products.embedding <=> source.embedding) AS similarity").
		Joins("JOIN products AS source ON source.id = ?", productID).
		Where("products.id <> source.id").
		Where("products.embedding IS NOT NULL AND source.embedding IS NOT NULL").
		Where("1 - (products.embedding <=> source.embedding) >= ?", query.Threshold).
		Order("similarity DESC").
		Limit(query.Count).
		Scan(&rows).Error
	if err != nil {
		logrus.Errorln(err)
		return nil, wrapError("find similar products", err)
	}
	return toSimilar(rows), nil
}

// FindSimilarByEmbedding func - cosine similarity against an arbitrary embedding
func (p *ProductRepository) FindSimilarByEmbedding(ctx context.Context, embedding []float32, query domain.SimilarityQuery) ([]domain.SimilarProduct, error) {
	var rows []similarRow
	queryVector := pgvector.NewVector(embedding)

	err := p.dbGorm.WithContext(ctx).
		Table("products").
		Select(productColumns+", 1 - (products.embedding <=> ?) AS similarity", queryVector).
		Where("products.embedding IS NOT NULL").
		Where("1 - (products.embedding <=> ?) >= ?", queryVector, query.Threshold).
		Order("similarity DESC").
		Limit(query.Count).
		Scan(&rows).Error
	if err != nil {
		logrus.Errorln(err)
		return nil, wrapError("search similar products", err)
	}
	return toSimilar(rows), nil
}

// ProductsWithoutEmbedding func - products waiting for an embedding, oldest first
func (p *ProductRepository) ProductsWithoutEmbedding(ctx context.Context, limit int) ([]domain.Product, error) {
	var products []domain.Product
	err := p.dbGorm.WithContext(ctx).
		Omit("embedding").
		Where("embedding IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, wrapError("products without embedding", err)
	}
	return products, nil
}

// SaveEmbedding func - stores a product embedding
func (p *ProductRepository) SaveEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	tx := p.dbGorm.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Update("embedding", pgvector.NewVector(embedding))
	if tx.Error != nil {
		return wrapError("save embedding", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return wrapError("save embedding", gorm.ErrRecordNotFound)
	}
	return nil
}

func toSimilar(rows []similarRow) []domain.SimilarProduct {
	result := make([]domain.SimilarProduct, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.SimilarProduct{
			Product:    row.Product,
			Similarity: row.Similarity,
		})
	}
	return result
}
