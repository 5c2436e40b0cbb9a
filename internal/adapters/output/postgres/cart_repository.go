package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/domain"
	"storefront/internal/ports/output"
)

// CartRepository struct - Secondary/Driven adapter for PostgreSQL
type CartRepository struct {
	dbGorm *gorm.DB
}

var _ output.CartStore = (*CartRepository)(nil)

// NewCartRepository func - Creates new PostgreSQL cart repository
func NewCartRepository(dbGorm *gorm.DB) *CartRepository {
	return &CartRepository{
		dbGorm: dbGorm,
	}
}

type cartLineRow struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	CreatedAt time.Time
	Name      *string
	Price     *float64
	ImageURL  *string
}

// ListLines func - lines of a session joined with products; a deleted product leaves NULL columns
func (p *CartRepository) ListLines(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	var rows []cartLineRow
	err := p.dbGorm.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.id, cart_items.product_id, cart_items.quantity, cart_items.created_at, products.name, products.price, products.image_url").
		Joins("LEFT JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.session_id = ?", sessionID).
		Order("cart_items.created_at ASC, cart_items.id ASC").
		Scan(&rows).Error
	if err != nil {
		logrus.Errorln(err)
		return nil, wrapError("list cart lines", err)
	}

	lines := make([]domain.CartLine, 0, len(rows))
	for _, row := range rows {
		item := domain.CartItem{ID: row.ID, ProductID: row.ProductID, Quantity: row.Quantity, CreatedAt: row.CreatedAt}
		var product *domain.Product
		if row.Name != nil {
			product = &domain.Product{Name: *row.Name, ImageURL: row.ImageURL}
			if row.Price != nil {
				product.Price = *row.Price
			}
		}
		lines = append(lines, domain.NewCartLine(item, product))
	}
	return lines, nil
}

// UpsertItem func - single statement insert-or-increment keyed on (session_id, product_id)
func (p *CartRepository) UpsertItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int, now time.Time) error {
	item := domain.CartItem{
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := p.dbGorm.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + EXCLUDED.quantity"),
				"updated_at": now,
			}),
		}).
		Create(&item).Error
	if err != nil {
		logrus.Errorln(err)
		return wrapError("upsert cart item", err)
	}
	return nil
}

// SetQuantity func - overwrites the quantity of a line of this session
func (p *CartRepository) SetQuantity(ctx context.Context, sessionID string, lineID uuid.UUID, quantity int, now time.Time) error {
	err := p.dbGorm.WithContext(ctx).
		Model(&domain.CartItem{}).
		Where("id = ? AND session_id = ?", lineID, sessionID).
		Updates(map[string]interface{}{"quantity": quantity, "updated_at": now}).Error
	if err != nil {
		logrus.Errorln(err)
		return wrapError("set cart quantity", err)
	}
	return nil
}

// DeleteItem func - removes a line of this session
func (p *CartRepository) DeleteItem(ctx context.Context, sessionID string, lineID uuid.UUID) error {
	err := p.dbGorm.WithContext(ctx).
		Where("id = ? AND session_id = ?", lineID, sessionID).
		Delete(&domain.CartItem{}).Error
	if err != nil {
		logrus.Errorln(err)
		return wrapError("delete cart item", err)
	}
	return nil
}

// ClearSession func - removes every line of this session
func (p *CartRepository) ClearSession(ctx context.Context, sessionID string) error {
	err := p.dbGorm.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&domain.CartItem{}).Error
	if err != nil {
		logrus.Errorln(err)
		return wrapError("clear cart", err)
	}
	return nil
}
