package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnnamedProduct is shown for cart lines whose product row is gone
const UnnamedProduct = "Producto sin nombre"

// CartItem struct - persisted cart line, unique per (session, product)
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;"`
	SessionID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_items_session_product;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_session_product"`
	Quantity  int       `gorm:"not null;check:quantity > 0"`
	CreatedAt time.Time `gorm:"type:timestamp"`
	UpdatedAt time.Time `gorm:"type:timestamp"`
}

// TableName func
func (c *CartItem) TableName() string {
	return "cart_items"
}

// BeforeCreate hook - generates UUID before creating when none was given
func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID != uuid.Nil {
		return nil
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// ProductSnapshot is the product data shown next to a cart line
type ProductSnapshot struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL *string `json:"image_url"`
}

// CartLine is a cart item joined with its product snapshot
type CartLine struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Product   ProductSnapshot `json:"product"`
}

// NewCartLine joins an item with its product. A nil product yields the placeholder snapshot.
func NewCartLine(item CartItem, product *Product) CartLine {
	line := CartLine{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Product:   ProductSnapshot{Name: UnnamedProduct},
	}
	if product == nil {
		return line
	}
	if product.Name != "" {
		line.Product.Name = product.Name
	}
	line.Product.Price = product.Price
	line.Product.ImageURL = product.ImageURL
	return line
}

// CartView is the current content of one cart session
type CartView struct {
	Lines []CartLine
}

// NewCartView copies lines into a view
func NewCartView(lines []CartLine) CartView {
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return CartView{Lines: out}
}

// TotalItems is the sum of line quantities
func (v CartView) TotalItems() int {
	total := 0
	for _, l := range v.Lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is the sum of price × quantity, accumulated in cents
func (v CartView) TotalPrice() float64 {
	var cents int64
	for _, l := range v.Lines {
		cents += int64(math.Round(l.Product.Price*100)) * int64(l.Quantity)
	}
	return float64(cents) / 100
}

// IsEmpty reports whether the cart has no lines
func (v CartView) IsEmpty() bool {
	return len(v.Lines) == 0
}

// Line returns the line with the given id
func (v CartView) Line(id uuid.UUID) (CartLine, bool) {
	for _, l := range v.Lines {
		if l.ID == id {
			return l, true
		}
	}
	return CartLine{}, false
}
