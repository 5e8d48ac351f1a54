package alternatives

import (
	"context"

	"github.com/Averyy/jlcpcb-mcp/internal/domain"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/compat"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/spec"
)

type mockCatalog struct {
	searchFn  func(ctx context.Context, q *domain.CatalogQuery) (*domain.CatalogPage, error)
	getByIDFn func(ctx context.Context, id string) (*domain.ComponentRecord, error)
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

func newTestService(mc *mockCatalog) *Service {
	reg := spec.NewRegistry()
	return New(mc, compat.NewTable(), reg, spec.NewMatcher(reg))
}

// capturePlan wires the mock to record the planned query and return the
// given page.
func capturePlan(mc *mockCatalog, page *domain.CatalogPage) *domain.CatalogQuery {
	captured := &domain.CatalogQuery{}
	mc.searchFn = func(_ context.Context, q *domain.CatalogQuery) (*domain.CatalogPage, error) {
		*captured = *q
		return page, nil
	}
	return captured
}

func chipResistor(lcsc string, tier domain.LibraryTier, stock int, price float64, attrs map[string]string) *domain.ComponentRecord {
	return &domain.ComponentRecord{
		LCSC:            lcsc,
		MPN:             "RC0402-" + lcsc,
		Manufacturer:    "UNI-ROYAL(Uniroyal Elec)",
		Package:         "0402",
		CategoryID:      10,
		CategoryName:    "Resistors",
		SubcategoryID:   1,
		SubcategoryName: "Chip Resistor - Surface Mount",
		LibraryTier:     tier,
		Stock:           stock,
		Price:           price,
		MinOrderQty:     100,
		Description:     "82kΩ ±1% 1/16W 0402 chip resistor",
		HasFootprint:    true,
		Attributes:      attrs,
	}
}

func resistorAttrs(resistance, tolerance, power string) map[string]string {
	return map[string]string{
		"Resistance":   resistance,
		"Tolerance":    tolerance,
		"Power(Watts)": power,
	}
}

func mlcc(lcsc string, tier domain.LibraryTier, stock int, attrs map[string]string) *domain.ComponentRecord {
	return &domain.ComponentRecord{
		LCSC:            lcsc,
		MPN:             "CL05-" + lcsc,
		Manufacturer:    "Samsung Electro-Mechanics",
		Package:         "0402",
		CategoryID:      11,
		CategoryName:    "Capacitors",
		SubcategoryID:   3,
		SubcategoryName: "Multilayer Ceramic Capacitors MLCC - SMD/SMT",
		LibraryTier:     tier,
		Stock:           stock,
		Price:           0.004,
		Description:     "100nF MLCC",
		HasFootprint:    true,
		Attributes:      attrs,
	}
}

func mlccAttrs(capacitance, voltage, coeff string) map[string]string {
	return map[string]string{
		"Capacitance":             capacitance,
		"Voltage Rating":          voltage,
		"Temperature Coefficient": coeff,
	}
}

func led(lcsc string, tier domain.LibraryTier, stock int, color, current string) *domain.ComponentRecord {
	return &domain.ComponentRecord{
		LCSC:            lcsc,
		MPN:             "LED-" + lcsc,
		Manufacturer:    "Hubei KENTO Elec",
		Package:         "0603",
		SubcategoryID:   8,
		SubcategoryName: "LED Indication - Discrete",
		LibraryTier:     tier,
		Stock:           stock,
		Price:           0.01,
		HasFootprint:    true,
		Attributes: map[string]string{
			"Emitted Color":   color,
			"Forward Current": current,
		},
	}
}
