package mcptools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	alternativesuc "github.com/Averyy/jlcpcb-mcp/internal/usecase/alternatives"
)

// GetPartInput is the get_part tool schema.
type GetPartInput struct {
	ID string `json:"id" jsonschema:"LCSC id (C25804) or manufacturer part number"`
}

func (h *Handler) getPart(ctx context.Context, _ *mcp.CallToolRequest, input GetPartInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.ID) == "" {
		return errorResult("missing part id", "Provide an LCSC id or part number"), nil, nil
	}

	rec, err := h.search.GetPart(ctx, input.ID)
	if err != nil {
		return h.fail("get_part", err)
	}
	return jsonResult(partToDTO(rec))
}

// FindAlternativesInput is the find_alternatives tool schema.
type FindAlternativesInput struct {
	ID          string `json:"id" jsonschema:"LCSC id or part number of the original part"`
	MinStock    int    `json:"min_stock,omitempty" jsonschema:"Minimum candidate stock"`
	SamePackage bool   `json:"same_package,omitempty" jsonschema:"Only candidates in the original's package"`
	LibraryType string `json:"library_type,omitempty" jsonschema:"Restrict candidate tiers (basic, preferred, extended, no_fee)"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Max alternatives, default 5"`
}

func (h *Handler) findAlternatives(ctx context.Context, _ *mcp.CallToolRequest, input FindAlternativesInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.ID) == "" {
		return errorResult("missing part id", "Provide an LCSC id or part number"), nil, nil
	}

	resp, err := h.alternatives.Find(ctx, alternativesuc.Request{
		PartID:      input.ID,
		MinStock:    input.MinStock,
		SamePackage: input.SamePackage,
		LibraryType: input.LibraryType,
		Limit:       input.Limit,
	})
	if err != nil {
		return h.fail("find_alternatives", err)
	}
	return jsonResult(alternativesToDTO(resp))
}
