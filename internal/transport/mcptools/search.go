package mcptools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	searchuc "github.com/Averyy/jlcpcb-mcp/internal/usecase/search"
)

// SearchPartsInput is the search_parts tool schema.
type SearchPartsInput struct {
	Query        string `json:"query,omitempty" jsonschema:"Free-text query, values and packages are understood (10k 1% 0603 resistor)"`
	Subcategory  string `json:"subcategory,omitempty" jsonschema:"Subcategory name or alias (mlcc, chip resistor)"`
	Package      string `json:"package,omitempty" jsonschema:"Package name, families expand to variants (SOT-23)"`
	Manufacturer string `json:"manufacturer,omitempty" jsonschema:"Manufacturer name or alias (ti, st)"`
	MinStock     int    `json:"min_stock,omitempty" jsonschema:"Minimum stock level"`
	LibraryType  string `json:"library_type,omitempty" jsonschema:"basic, preferred, extended or no_fee"`
	SortBy       string `json:"sort_by,omitempty" jsonschema:"stock (default) or price"`
	SortAsc      bool   `json:"sort_asc,omitempty" jsonschema:"Sort ascending instead of descending"`
	Offset       int    `json:"offset,omitempty" jsonschema:"Pagination offset"`
	Limit        int    `json:"limit,omitempty" jsonschema:"Page size, default 20"`
}

func (h *Handler) searchParts(ctx context.Context, _ *mcp.CallToolRequest, input SearchPartsInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.Query) == "" && input.Subcategory == "" && input.Package == "" && input.Manufacturer == "" {
		return errorResult("empty search", "Provide a query or at least one filter"), nil, nil
	}

	resp, err := h.search.Search(ctx, &searchuc.Request{
		Query:        input.Query,
		Subcategory:  input.Subcategory,
		Package:      input.Package,
		Manufacturer: input.Manufacturer,
		MinStock:     input.MinStock,
		LibraryType:  input.LibraryType,
		SortBy:       input.SortBy,
		SortAsc:      input.SortAsc,
		Offset:       input.Offset,
		Limit:        input.Limit,
	})
	if err != nil {
		return h.fail("search_parts", err)
	}

	h.logger.Debug("search_parts",
		zap.String("query", input.Query),
		zap.Int("total", resp.Total))
	return jsonResult(searchToDTO(resp))
}
