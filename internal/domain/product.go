package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// EmbeddingDimensions is the width of the product embedding column
const EmbeddingDimensions = 768

// Product struct - Core catalog entity
type Product struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key;"`
	Name        string           `gorm:"type:varchar(255);not null;"`
	Description string           `gorm:"type:text"`
	Price       float64          `gorm:"type:numeric(10,2);not null;default:0"`
	ImageURL    *string          `gorm:"column:image_url;type:text"`
	Category    *string          `gorm:"type:varchar(100);index"`
	Embedding   *pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt   time.Time        `gorm:"type:timestamp"`
	UpdatedAt   time.Time        `gorm:"type:timestamp"`
}

// TableName func
func (p *Product) TableName() string {
	return "products"
}

// BeforeCreate hook - generates UUID before creating when none was given
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID != uuid.Nil {
		return nil
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// CategoryName returns the category or the placeholder used for uncategorized products
func (p *Product) CategoryName() string {
	if p.Category == nil || *p.Category == "" {
		return UncategorizedLabel
	}
	return *p.Category
}

// UncategorizedLabel is shown for products without a category
const UncategorizedLabel = "Sin categoría"

// ProductContext is the product description handed to the assistant endpoints
type ProductContext struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    *string   `json:"category"`
}

// NewProductContext builds the assistant context for a product
func NewProductContext(p *Product) *ProductContext {
	if p == nil {
		return nil
	}
	return &ProductContext{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
	}
}

// MigrateDatabase func - enables pgvector and auto-migrates the storefront schema
func MigrateDatabase(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("migrate: %w", ErrStoreUnavailable)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("migrate: enable vector extension: %w", err)
	}

	if err := db.AutoMigrate(&Product{}, &CartItem{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
