package search

import (
	"context"

	"github.com/Averyy/jlcpcb-mcp/internal/domain"
)

// Catalog defines the catalog store contract for search operations.
type Catalog interface {
	Search(ctx context.Context, q *domain.CatalogQuery) (*domain.CatalogPage, error)
	GetByID(ctx context.Context, id string) (*domain.ComponentRecord, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Subcategories(ctx context.Context, category string) ([]domain.Subcategory, error)
}
