// Package mcptools exposes the engine as MCP tools. Handlers translate tool
// inputs into usecase requests and render JSON text results; user-facing
// failures become IsError results with a recovery hint so the caller can
// self-correct, while store failures propagate as protocol errors.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/Averyy/jlcpcb-mcp/internal/domain"
	alternativesuc "github.com/Averyy/jlcpcb-mcp/internal/usecase/alternatives"
	searchuc "github.com/Averyy/jlcpcb-mcp/internal/usecase/search"
)

// Searcher is the slice of the search service the tools consume.
type Searcher interface {
	Search(ctx context.Context, req *searchuc.Request) (*searchuc.Response, error)
	GetPart(ctx context.Context, id string) (*domain.ComponentRecord, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Subcategories(ctx context.Context, category string) ([]domain.Subcategory, error)
}

// AlternativesFinder is the slice of the alternatives service the tools
// consume.
type AlternativesFinder interface {
	Find(ctx context.Context, req alternativesuc.Request) (*alternativesuc.Response, error)
}

// Handler holds the services behind the MCP tools.
type Handler struct {
	search       Searcher
	alternatives AlternativesFinder
	logger       *zap.Logger
}

// NewHandler creates the MCP tool handler.
func NewHandler(search Searcher, alternatives AlternativesFinder, logger *zap.Logger) *Handler {
	return &Handler{
		search:       search,
		alternatives: alternatives,
		logger:       logger,
	}
}

// Register adds every tool to the MCP server.
func (h *Handler) Register(srv *mcp.Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name: "search_parts",
		Description: "Search the JLCPCB parts catalog. Accepts free-text queries " +
			"(\"10k 1% 0603 resistor\", \"qwiic connector\") plus explicit filters; " +
			"values, packages, tolerances and tiers are understood in the text.",
	}, h.searchParts)

	mcp.AddTool(srv, &mcp.Tool{
		Name: "get_part",
		Description: "Fetch one part by LCSC id (C25804) or manufacturer part " +
			"number. Part numbers tolerate packaging suffixes like -TR.",
	}, h.getPart)

	mcp.AddTool(srv, &mcp.Tool{
		Name: "find_alternatives",
		Description: "Find drop-in alternatives for a part, verified against " +
			"per-category compatibility rules and ranked by assembly tier, stock " +
			"and price. Categories without rules return unverified similar parts.",
	}, h.findAlternatives)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_categories",
		Description: "List all catalog categories with their subcategories and part counts.",
	}, h.listCategories)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_subcategories",
		Description: "List the subcategories of one category by name.",
	}, h.getSubcategories)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_version",
		Description: "Report the server version and build metadata.",
	}, h.getVersion)
}

// fail maps a usecase error to a tool result. Caller mistakes come back as
// IsError results the model can react to; anything else is a protocol error.
func (h *Handler) fail(op string, err error) (*mcp.CallToolResult, any, error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return errorResult(err.Error(), "Check the part id or category name"), nil, nil
	case errors.Is(err, domain.ErrAmbiguousName):
		return errorResult(err.Error(), "Pick one of the listed names"), nil, nil
	case errors.Is(err, domain.ErrInvalidRequest):
		return errorResult(err.Error(), "Fix the request parameters"), nil, nil
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		return nil, nil, err
	}
}

func errorResult(msg, hint string) *mcp.CallToolResult {
	if hint != "" {
		msg = msg + ". " + hint
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
