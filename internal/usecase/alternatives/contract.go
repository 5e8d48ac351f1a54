package alternatives

import (
	"context"

	"github.com/Averyy/jlcpcb-mcp/internal/domain"
)

// Catalog defines the catalog store contract for the alternatives engine.
type Catalog interface {
	Search(ctx context.Context, q *domain.CatalogQuery) (*domain.CatalogPage, error)
	GetByID(ctx context.Context, id string) (*domain.ComponentRecord, error)
}
