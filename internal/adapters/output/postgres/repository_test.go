package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront/internal/domain"
)

type capturedStatement struct {
	SQL  string
	Vars []interface{}
}

// newDryRunDB opens a postgres dialect without connecting and records every statement it builds
func newDryRunDB(t *testing.T) (*gorm.DB, *[]capturedStatement) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=test dbname=test sslmode=disable"}), &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open dry run db: %v", err)
	}

	statements := &[]capturedStatement{}
	record := func(tx *gorm.DB) {
		if tx.Statement.SQL.Len() == 0 {
			return
		}
		*statements = append(*statements, capturedStatement{
			SQL:  tx.Statement.SQL.String(),
			Vars: append([]interface{}(nil), tx.Statement.Vars...),
		})
	}
	_ = db.Callback().Create().After("gorm:create").Register("test:record_create", record)
	_ = db.Callback().Query().After("gorm:query").Register("test:record_query", record)
	_ = db.Callback().Row().After("gorm:row").Register("test:record_row", record)
	_ = db.Callback().Update().After("gorm:update").Register("test:record_update", record)
	_ = db.Callback().Delete().After("gorm:delete").Register("test:record_delete", record)
	return db, statements
}

func findStatement(statements []capturedStatement, fragment string) (capturedStatement, bool) {
	for _, s := range statements {
		if strings.Contains(s.SQL, fragment) {
			return s, true
		}
	}
	return capturedStatement{}, false
}

func hasVar(vars []interface{}, want interface{}) bool {
	for _, v := range vars {
		if v == want {
			return true
		}
	}
	return false
}

// TestCartRepositoryUpsertIsSingleStatement tests that adding to the cart increments on conflict
func TestCartRepositoryUpsertIsSingleStatement(t *testing.T) {
	db, statements := newDryRunDB(t)
	repo := NewCartRepository(db)

	err := repo.UpsertItem(context.Background(), "01HZX", uuid.New(), 2, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(*statements) != 1 {
		t.Fatalf("expected exactly one statement, got %d: %v", len(*statements), *statements)
	}
	sql := (*statements)[0].SQL
	if !strings.Contains(sql, `ON CONFLICT ("session_id","product_id")`) {
		t.Errorf("expected conflict target on session and product, got: %s", sql)
	}
	if !strings.Contains(sql, "cart_items.quantity + EXCLUDED.quantity") {
		t.Errorf("expected quantity increment, got: %s", sql)
	}
}

// TestCartRepositoryScopesBySession tests that line mutations are restricted to the session
func TestCartRepositoryScopesBySession(t *testing.T) {
	db, statements := newDryRunDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	_ = repo.SetQuantity(ctx, "session-a", uuid.New(), 3, time.Now())
	_ = repo.DeleteItem(ctx, "session-a", uuid.New())
	_ = repo.ClearSession(ctx, "session-a")

	if len(*statements) != 3 {
		t.Fatalf("expected 3 statements, got %d: %v", len(*statements), *statements)
	}
	for _, stmt := range *statements {
		if !strings.Contains(stmt.SQL, "session_id") || !hasVar(stmt.Vars, "session-a") {
			t.Errorf("expected statement scoped by session_id, got: %s %v", stmt.SQL, stmt.Vars)
		}
	}
}

// TestProductRepositoryFindProductsBuildsFilters tests search, category, order and paging
func TestProductRepositoryFindProductsBuildsFilters(t *testing.T) {
	db, statements := newDryRunDB(t)
	repo := NewProductRepository(db)

	search := "auriculares%20bose"
	category := "Audio"
	_, _, err := repo.FindProducts(context.Background(), domain.QueryProductRequest{
		Search:     &search,
		Category:   &category,
		Pagination: &domain.Pagination{Limit: 10, Offset: 20},
		SortMethod: &domain.SortMethod{OrderBy: "price", Asc: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := findStatement(*statements, "count(*)"); !ok {
		t.Errorf("expected a count statement, got: %v", *statements)
	}
	paged, ok := findStatement(*statements, "ORDER BY")
	if !ok {
		t.Fatalf("expected a paged select, got: %v", *statements)
	}
	for _, fragment := range []string{"ILIKE", `"category" = `, "ORDER BY price ASC", "LIMIT $", "OFFSET $"} {
		if !strings.Contains(paged.SQL, fragment) {
			t.Errorf("expected %q in: %s", fragment, paged.SQL)
		}
	}
	for _, want := range []interface{}{"%auriculares bose%", "Audio", 10, 20} {
		if !hasVar(paged.Vars, want) {
			t.Errorf("expected bound value %v, got %v", want, paged.Vars)
		}
	}
	if strings.Contains(paged.SQL, "embedding") {
		t.Errorf("expected embedding column to be omitted, got: %s", paged.SQL)
	}
}

// TestProductRepositoryFindSimilarQuery tests the cosine similarity lookup
func TestProductRepositoryFindSimilarQuery(t *testing.T) {
	db, statements := newDryRunDB(t)
	repo := NewProductRepository(db)

	// dry run cannot scan rows; only the statement is checked
	_, _ = repo.FindSimilar(context.Background(), uuid.New(), domain.SimilarityQuery{Threshold: 0.6, Count: 4})

	stmt, ok := findStatement(*statements, "similarity")
	if !ok {
		t.Fatalf("expected a similarity statement, got: %v", *statements)
	}
	for _, fragment := range []string{"<=>", "products.id <> source.id", "ORDER BY similarity DESC", "LIMIT $"} {
		if !strings.Contains(stmt.SQL, fragment) {
			t.Errorf("expected %q in: %s", fragment, stmt.SQL)
		}
	}
	if !hasVar(stmt.Vars, 0.6) || !hasVar(stmt.Vars, 4) {
		t.Errorf("expected threshold 0.6 and count 4 bound, got %v", stmt.Vars)
	}
}

// TestWrapError tests mapping of store errors
func TestWrapError(t *testing.T) {
	if wrapError("op", nil) != nil {
		t.Error("expected nil for nil error")
	}
	if err := wrapError("op", gorm.ErrRecordNotFound); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := wrapError("op", gorm.ErrInvalidDB); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}
