package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestCartViewTotals tests that totals are derived from the lines
func TestCartViewTotals(t *testing.T) {
	view := NewCartView([]CartLine{
		{ID: uuid.New(), Quantity: 2, Product: ProductSnapshot{Name: "A", Price: 10}},
		{ID: uuid.New(), Quantity: 1, Product: ProductSnapshot{Name: "B", Price: 5.5}},
	})

	if got := view.TotalItems(); got != 3 {
		t.Errorf("expected 3 items, got %d", got)
	}
	if got := view.TotalPrice(); got != 25.5 {
		t.Errorf("expected total 25.5, got %v", got)
	}
}

// TestCartViewTotalPriceAvoidsFloatDrift tests cent accumulation
func TestCartViewTotalPriceAvoidsFloatDrift(t *testing.T) {
	view := NewCartView([]CartLine{
		{Quantity: 3, Product: ProductSnapshot{Price: 0.1}},
		{Quantity: 1, Product: ProductSnapshot{Price: 0.2}},
	})
	if got := view.TotalPrice(); got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}
}

// TestCartViewEmpty tests the zero view
func TestCartViewEmpty(t *testing.T) {
	view := NewCartView(nil)
	if !view.IsEmpty() {
		t.Error("expected empty view")
	}
	if view.TotalItems() != 0 || view.TotalPrice() != 0 {
		t.Errorf("expected zero totals, got %d and %v", view.TotalItems(), view.TotalPrice())
	}
}

// TestNewCartLineMissingProduct tests the placeholder snapshot
func TestNewCartLineMissingProduct(t *testing.T) {
	item := CartItem{ID: uuid.New(), ProductID: uuid.New(), Quantity: 2}
	line := NewCartLine(item, nil)

	if line.Product.Name != UnnamedProduct {
		t.Errorf("expected %q, got %q", UnnamedProduct, line.Product.Name)
	}
	if line.Product.Price != 0 || line.Product.ImageURL != nil {
		t.Errorf("expected zero price and no image, got %+v", line.Product)
	}
	if line.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", line.Quantity)
	}
}

// TestNewCartLineWithProduct tests the snapshot copy
func TestNewCartLineWithProduct(t *testing.T) {
	image := "https://example.com/p.png"
	product := &Product{ID: uuid.New(), Name: "Canon EOS", Price: 499.99, ImageURL: &image}
	line := NewCartLine(CartItem{ID: uuid.New(), ProductID: product.ID, Quantity: 1}, product)

	if line.Product.Name != "Canon EOS" || line.Product.Price != 499.99 {
		t.Errorf("unexpected snapshot %+v", line.Product)
	}
	if line.Product.ImageURL == nil || *line.Product.ImageURL != image {
		t.Error("expected image url to be copied")
	}
}

// TestCartViewLine tests lookup by line id
func TestCartViewLine(t *testing.T) {
	id := uuid.New()
	view := NewCartView([]CartLine{{ID: id, Quantity: 4}})

	if line, ok := view.Line(id); !ok || line.Quantity != 4 {
		t.Errorf("expected line with quantity 4, got %+v (found=%v)", line, ok)
	}
	if _, ok := view.Line(uuid.New()); ok {
		t.Error("expected unknown id to be absent")
	}
}

// TestNewSessionID tests id generation
func TestNewSessionID(t *testing.T) {
	now := time.Now()
	a, err := NewSessionID(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := NewSessionID(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a) != 26 {
		t.Errorf("expected 26 character id, got %d", len(a))
	}
	if a == b {
		t.Error("expected distinct ids")
	}
	if a[:10] != b[:10] {
		t.Errorf("expected shared timestamp prefix, got %s and %s", a, b)
	}
}

// TestProductCategoryName tests the uncategorized placeholder
func TestProductCategoryName(t *testing.T) {
	p := &Product{}
	if p.CategoryName() != UncategorizedLabel {
		t.Errorf("expected %q, got %q", UncategorizedLabel, p.CategoryName())
	}
	category := "Audio"
	p.Category = &category
	if p.CategoryName() != "Audio" {
		t.Errorf("expected Audio, got %q", p.CategoryName())
	}
}
