package search

import (
	"context"
	"testing"

	"github.com/Averyy/jlcpcb-mcp/internal/domain"
)

// mockCatalog implements the Catalog contract for tests.
type mockCatalog struct {
	searchFn        func(ctx context.Context, q *domain.CatalogQuery) (*domain.CatalogPage, error)
	getByIDFn       func(ctx context.Context, id string) (*domain.ComponentRecord, error)
	categoriesFn    func(ctx context.Context) ([]domain.Category, error)
	subcategoriesFn func(ctx context.Context, category string) ([]domain.Subcategory, error)
}

func (m *mockCatalog) Search(ctx context.Context, q *domain.CatalogQuery) (*domain.CatalogPage, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &domain.CatalogPage{}, nil
}

func (m *mockCatalog) GetByID(ctx context.Context, id string) (*domain.ComponentRecord, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatalog) Categories(ctx context.Context) ([]domain.Category, error) {
	if m.categoriesFn != nil {
		return m.categoriesFn(ctx)
	}
	return nil, nil
}

func (m *mockCatalog) Subcategories(ctx context.Context, category string) ([]domain.Subcategory, error) {
	if m.subcategoriesFn != nil {
		return m.subcategoriesFn(ctx, category)
	}
	return nil, nil
}

func newTestService(mc *mockCatalog) *Service {
	return New(mc, 20, 100)
}

// capturePlan runs one search and returns the catalog query the service
// planned for it.
func capturePlan(t *testing.T, req *Request) *domain.CatalogQuery {
	t.Helper()
	mc := &mockCatalog{}
	var captured *domain.CatalogQuery
	mc.searchFn = func(_ context.Context, q *domain.CatalogQuery) (*domain.CatalogPage, error) {
		captured = q
		return &domain.CatalogPage{}, nil
	}
	if _, err := newTestService(mc).Search(context.Background(), req); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if captured == nil {
		t.Fatal("catalog was not queried")
	}
	return captured
}
