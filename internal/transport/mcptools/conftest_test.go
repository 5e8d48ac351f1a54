package mcptools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/Averyy/jlcpcb-mcp/internal/domain"
	alternativesuc "github.com/Averyy/jlcpcb-mcp/internal/usecase/alternatives"
	searchuc "github.com/Averyy/jlcpcb-mcp/internal/usecase/search"
)

type mockSearcher struct {
	searchFn        func(ctx context.Context, req *searchuc.Request) (*searchuc.Response, error)
	getPartFn       func(ctx context.Context, id string) (*domain.ComponentRecord, error)
	categoriesFn    func(ctx context.Context) ([]domain.Category, error)
	subcategoriesFn func(ctx context.Context, category string) ([]domain.Subcategory, error)
}

func (m *mockSearcher) Search(ctx context.Context, req *searchuc.Request) (*searchuc.Response, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return &searchuc.Response{}, nil
}

func (m *mockSearcher) GetPart(ctx context.Context, id string) (*domain.ComponentRecord, error) {
	if m.getPartFn != nil {
		return m.getPartFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockSearcher) Categories(ctx context.Context) ([]domain.Category, error) {
	if m.categoriesFn != nil {
		return m.categoriesFn(ctx)
	}
	return nil, nil
}

func (m *mockSearcher) Subcategories(ctx context.Context, category string) ([]domain.Subcategory, error) {
	if m.subcategoriesFn != nil {
		return m.subcategoriesFn(ctx, category)
	}
	return nil, nil
}

type mockAlternatives struct {
	findFn func(ctx context.Context, req alternativesuc.Request) (*alternativesuc.Response, error)
}

func (m *mockAlternatives) Find(ctx context.Context, req alternativesuc.Request) (*alternativesuc.Response, error) {
	if m.findFn != nil {
		return m.findFn(ctx, req)
	}
	return nil, domain.ErrNotFound
}

func newTestHandler(ms *mockSearcher, ma *mockAlternatives) *Handler {
	if ms == nil {
		ms = &mockSearcher{}
	}
	if ma == nil {
		ma = &mockAlternatives{}
	}
	return NewHandler(ms, ma, zap.NewNop())
}

// resultText extracts the single text content of a tool result.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) != 1 {
		t.Fatalf("result content = %+v, want exactly one item", res)
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", res.Content[0])
	}
	return text.Text
}

// decodeResult unmarshals a JSON tool result into out.
func decodeResult(t *testing.T, res *mcp.CallToolResult, out any) {
	t.Helper()
	if res.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, res))
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), out); err != nil {
		t.Fatalf("decode result: %v", err)
	}
}

func testPart() *domain.ComponentRecord {
	return &domain.ComponentRecord{
		LCSC:            "C25804",
		MPN:             "0603WAF1002T5E",
		Manufacturer:    "UNI-ROYAL(Uniroyal Elec)",
		Package:         "0603",
		CategoryName:    "Resistors",
		SubcategoryName: "Chip Resistor - Surface Mount",
		LibraryTier:     domain.TierBasic,
		Stock:           500000,
		Price:           0.0008,
		Description:     "10kΩ ±1% 1/10W 0603 chip resistor",
		HasFootprint:    true,
		Attributes:      map[string]string{"Resistance": "10kΩ", "Tolerance": "±1%"},
	}
}
