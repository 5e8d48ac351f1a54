package mcptools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Averyy/jlcpcb-mcp/internal/version"
)

// ListCategoriesInput is the list_categories tool schema. The tool takes no
// parameters.
type ListCategoriesInput struct{}

func (h *Handler) listCategories(ctx context.Context, _ *mcp.CallToolRequest, _ ListCategoriesInput) (*mcp.CallToolResult, any, error) {
	cats, err := h.search.Categories(ctx)
	if err != nil {
		return h.fail("list_categories", err)
	}
	return jsonResult(categoriesToDTO(cats))
}

// GetSubcategoriesInput is the get_subcategories tool schema.
type GetSubcategoriesInput struct {
	Category string `json:"category" jsonschema:"Category name (Resistors, Capacitors)"`
}

func (h *Handler) getSubcategories(ctx context.Context, _ *mcp.CallToolRequest, input GetSubcategoriesInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.Category) == "" {
		return errorResult("missing category", "Provide a category name"), nil, nil
	}

	subs, err := h.search.Subcategories(ctx, input.Category)
	if err != nil {
		return h.fail("get_subcategories", err)
	}
	return jsonResult(subcategoriesToDTO(subs))
}

// GetVersionInput is the get_version tool schema. The tool takes no
// parameters.
type GetVersionInput struct{}

func (h *Handler) getVersion(_ context.Context, _ *mcp.CallToolRequest, _ GetVersionInput) (*mcp.CallToolResult, any, error) {
	return jsonResult(map[string]string{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
	})
}
