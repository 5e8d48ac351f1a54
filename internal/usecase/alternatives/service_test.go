package alternatives

import (
	"context"
	"errors"
	"testing"

	"github.com/Averyy/jlcpcb-mcp/internal/domain"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/units"
)

func TestFind_ResistorAlternatives(t *testing.T) {
	original := chipResistor("C105", domain.TierExtended, 5000, 0.012, resistorAttrs("82kΩ", "±1%", "1/16W"))
	page := &domain.CatalogPage{Records: []*domain.ComponentRecord{
		original,
		chipResistor("C200", domain.TierBasic, 150000, 0.004, resistorAttrs("82kΩ", "±1%", "1/16W")),
		chipResistor("C201", domain.TierExtended, 90000, 0.003, resistorAttrs("100kΩ", "±1%", "1/16W")),
		chipResistor("C202", domain.TierBasic, 200000, 0.004, resistorAttrs("82kΩ", "±5%", "1/16W")),
	}}
	mc := &mockCatalog{getByIDFn: func(context.Context, string) (*domain.ComponentRecord, error) {
		return original, nil
	}}
	q := capturePlan(mc, page)

	resp, err := newTestService(mc).Find(context.Background(), Request{PartID: "C105"})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if resp.SimilarParts != nil {
		t.Fatal("supported subcategory must not degrade to similar parts")
	}
	alt := resp.Alternatives
	if len(alt.Alternatives) != 1 {
		t.Fatalf("alternatives = %d, want 1", len(alt.Alternatives))
	}
	if got := alt.Alternatives[0].Part.LCSC; got != "C200" {
		t.Errorf("top alternative = %s, want C200", got)
	}
	if !alt.FeeEliminated {
		t.Error("extended to basic swap should report the fee eliminated")
	}
	if alt.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %s, want %s", alt.Confidence, ConfidenceHigh)
	}

	if q.SubcategoryID != 1 {
		t.Errorf("planned subcategory id = %d, want 1", q.SubcategoryID)
	}
	if q.Quantity == nil || q.Quantity.Kind() != units.Resistance || q.Quantity.Value() != 82000 {
		t.Errorf("planned quantity = %+v, want 82kΩ", q.Quantity)
	}
	if q.Limit != DefaultLimit*overfetchFactor {
		t.Errorf("planned limit = %d, want %d", q.Limit, DefaultLimit*overfetchFactor)
	}
	if q.SortBy != domain.SortByStock {
		t.Errorf("planned sort = %q, want stock", q.SortBy)
	}
}

func TestFind_ValueMatchWithinTolerance(t *testing.T) {
	original := chipResistor("C105", domain.TierExtended, 5000, 0.01, resistorAttrs("82kΩ", "±1%", "1/16W"))
	page := &domain.CatalogPage{Records: []*domain.ComponentRecord{
		chipResistor("C210", domain.TierBasic, 10000, 0.004, resistorAttrs("82.5kΩ", "±1%", "1/16W")),
		chipResistor("C211", domain.TierBasic, 10000, 0.004, resistorAttrs("84kΩ", "±1%", "1/16W")),
	}}
	mc := &mockCatalog{
		getByIDFn: func(context.Context, string) (*domain.ComponentRecord, error) { return original, nil },
		searchFn: func(context.Context, *domain.CatalogQuery) (*domain.CatalogPage, error) {
			return page, nil
		},
	}

	resp, err := newTestService(mc).Find(context.Background(), Request{PartID: "C105"})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	alts := resp.Alternatives.Alternatives
	if len(alts) != 1 || alts[0].Part.LCSC != "C210" {
		t.Fatalf("alternatives = %+v, want only C210 within the value tolerance", lcscs(alts))
	}
}

func TestFind_VoltageSameOrBetter(t *testing.T) {
	original := mlcc("C1525", domain.TierExtended, 40000, mlccAttrs("100nF", "16V", "X7R"))
	page := &domain.CatalogPage{Records: []*domain.ComponentRecord{
		mlcc("C300", domain.TierBasic, 500000, mlccAttrs("100nF", "25V", "X7R")),
		mlcc("C301", domain.TierBasic, 500000, mlccAttrs("100nF", "10V", "X7R")),
		mlcc("C302", domain.TierBasic, 500000, mlccAttrs("100nF", "50V", "X5R")),
	}}
	mc := &mockCatalog{
		getByIDFn: func(context.Context, string) (*domain.ComponentRecord, error) { return original, nil },
		searchFn: func(context.Context, *domain.CatalogQuery) (*domain.CatalogPage, error) {
			return page, nil
		},
	}

	resp, err := newTestService(mc).Find(context.Background(), Request{PartID: "C1525"})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	alts := resp.Alternatives.Alternatives
	if len(alts) != 1 || alts[0].Part.LCSC != "C300" {
		t.Fatalf("alternatives = %v, want only C300 (higher voltage, same dielectric)", lcscs(alts))
	}
}

func TestFind_LEDColorMustMatch(t *testing.T) {
	original := led("C2286", domain.TierExtended, 30000, "Red", "20mA")
	page := &domain.CatalogPage{Records: []*domain.ComponentRecord{
		led("C400", domain.TierBasic, 100000, "red", "25mA"),
		led("C401", domain.TierBasic, 100000, "Blue", "25mA"),
	}}
	mc := &mockCatalog{getByIDFn: func(context.Context, string) (*domain.ComponentRecord, error) {
		return original, nil
	}}
	q := capturePlan(mc, page)

	resp, err := newTestService(mc).Find(context.Background(), Request{PartID: "C2286"})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	alts := resp.Alternatives.Alternatives
	if len(alts) != 1 || alts[0].Part.LCSC != "C400" {
		t.Fatalf("alternatives = %v, want only the red LED", lcscs(alts))
	}
	if q.Quantity != nil {
		t.Error("categorical primary spec must not plan a numeric range")
	}
	if q.Text != "Red" {
		t.Errorf("planned text hint = %q, want the primary value", q.Text)
	}
}

func TestFind_UnverifiableSpecFlagged(t *testing.T) {
	original := chipResistor("C105", domain.TierExtended, 5000, 0.01, resistorAttrs("82kΩ", "±1%", "1/16W"))
	missingPower := chipResistor("C220", domain.TierBasic, 10000, 0.004, map[string]string{
		"Resistance": "82kΩ",
		"Tolerance":  "±1%",
	})
	mc := &mockCatalog{
		getByIDFn: func(context.Context, string) (*domain.ComponentRecord, error) { return original, nil },
		searchFn: func(context.Context, *domain.CatalogQuery) (*domain.CatalogPage, error) {
			return &domain.CatalogPage{Records: []*domain.ComponentRecord{missingPower}}, nil
		},
	}

	resp, err := newTestService(mc).Find(context.Background(), Request{PartID: "C105"})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	alt := resp.Alternatives
	if len(alt.Alternatives) != 1 {
		t.Fatalf("candidate with an unverifiable spec must pass flagged, got %d", len(alt.Alternatives))
	}
	cand := alt.Alternatives[0]
	if !contains(cand.SpecsUnverified, "Power(Watts)") {
		t.Errorf("unverified specs = %v, want Power(Watts)", cand.SpecsUnverified)
	}
	if alt.Confidence != ConfidenceMedium {
		t.Errorf("confidence = %s, want %s", alt.Confidence, ConfidenceMedium)
	}
}

func TestFind_UnsupportedCategorySimilarParts(t *testing.T) {
	original := &domain.ComponentRecord{
		LCSC:            "C96496",
		SubcategoryID:   99,
		SubcategoryName: "Buzzers",
		LibraryTier:     domain.TierExtended,
		Package:         "SMD",
		Attributes: map[string]string{
			"Rated Voltage":   "5V",
			"Sound Pressure":  "85dB",
			"Resonance Point": "2.7kHz",
		},
	}
	other := &domain.ComponentRecord{LCSC: "C500", SubcategoryID: 99, SubcategoryName: "Buzzers", Stock: 900}
	mc := &mockCatalog{getByIDFn: func(context.Context, string) (*domain.ComponentRecord, error) {
		return original, nil
	}}
	q := capturePlan(mc, &domain.CatalogPage{Records: []*domain.ComponentRecord{original, other}})

	resp, err := newTestService(mc).Find(context.Background(), Request{PartID: "C96496"})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if resp.Alternatives != nil {
		t.Fatal("unsupported subcategory must never claim verified alternatives")
	}
	sim := resp.SimilarParts
	if len(sim.SimilarParts) != 1 || sim.SimilarParts[0].LCSC != "C500" {
		t.Fatalf("similar parts = %+v, want C500 with the original excluded", sim.SimilarParts)
	}
	want := []string{"Rated Voltage", "Resonance Point", "Sound Pressure"}
	if len(sim.SpecsToVerify) != len(want) {
		t.Fatalf("specs to verify = %v, want %v", sim.SpecsToVerify, want)
	}
	for i, name := range want {
		if sim.SpecsToVerify[i] != name {
			t.Errorf("specs to verify[%d] = %q, want %q", i, sim.SpecsToVerify[i], name)
		}
	}
	if q.SubcategoryID != 99 {
		t.Errorf("planned subcategory id = %d, want 99", q.SubcategoryID)
	}
}

// Excluding the original from its own result page must not shrink the
// response below the requested limit.
func TestFind_SimilarPartsLimitSurvivesSelfExclusion(t *testing.T) {
	original := &domain.ComponentRecord{
		LCSC:            "C96496",
		SubcategoryID:   99,
		SubcategoryName: "Buzzers",
		LibraryTier:     domain.TierExtended,
		Attributes:      map[string]string{"Rated Voltage": "5V"},
	}
	other := &domain.ComponentRecord{LCSC: "C500", SubcategoryID: 99, SubcategoryName: "Buzzers", Stock: 900}
	mc := &mockCatalog{getByIDFn: func(context.Context, string) (*domain.ComponentRecord, error) {
		return original, nil
	}}
	q := capturePlan(mc, &domain.CatalogPage{Records: []*domain.ComponentRecord{original, other}})

	resp, err := newTestService(mc).Find(context.Background(), Request{PartID: "C96496", Limit: 1})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if q.Limit != 2 {
		t.Errorf("planned limit = %d, want 2", q.Limit)
	}
	sim := resp.SimilarParts
	if len(sim.SimilarParts) != 1 || sim.SimilarParts[0].LCSC != "C500" {
		t.Fatalf("similar parts = %+v, want exactly C500", sim.SimilarParts)
	}
}

func TestFind_AlreadyOptimal(t *testing.T) {
	original := chipResistor("C105", domain.TierBasic, 5000, 0.004, resistorAttrs("82kΩ", "±1%", "1/16W"))
	mc := &mockCatalog{
		getByIDFn: func(context.Context, string) (*domain.ComponentRecord, error) { return original, nil },
		searchFn: func(context.Context, *domain.CatalogQuery) (*domain.CatalogPage, error) {
			return &domain.CatalogPage{Records: []*domain.ComponentRecord{original}}, nil
		},
	}

	resp, err := newTestService(mc).Find(context.Background(), Request{PartID: "C105"})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	alt := resp.Alternatives
	if len(alt.Alternatives) != 0 {
		t.Fatalf("alternatives = %v, want none", lcscs(alt.Alternatives))
	}
	if alt.EmptyReason != ReasonAlreadyOptimal {
		t.Errorf("empty reason = %q, want %q", alt.EmptyReason, ReasonAlreadyOptimal)
	}
}

func TestFind_NoSearchResults(t *testing.T) {
	original := chipResistor("C105", domain.TierExtended, 5000, 0.01, resistorAttrs("82kΩ", "±1%", "1/16W"))
	mc := &mockCatalog{
		getByIDFn: func(context.Context, string) (*domain.ComponentRecord, error) { return original, nil },
		searchFn: func(context.Context, *domain.CatalogQuery) (*domain.CatalogPage, error) {
			return &domain.CatalogPage{}, nil
		},
	}

	resp, err := newTestService(mc).Find(context.Background(), Request{PartID: "C105"})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got := resp.Alternatives.EmptyReason; got != ReasonNoSearchResults {
		t.Errorf("empty reason = %q, want %q", got, ReasonNoSearchResults)
	}
}

func TestFind_NoneCompatible(t *testing.T) {
	original := chipResistor("C105", domain.TierExtended, 5000, 0.01, resistorAttrs("82kΩ", "±1%", "1/16W"))
	mc := &mockCatalog{
		getByIDFn: func(context.Context, string) (*domain.ComponentRecord, error) { return original, nil },
		searchFn: func(context.Context, *domain.CatalogQuery) (*domain.CatalogPage, error) {
			return &domain.CatalogPage{Records: []*domain.ComponentRecord{
				chipResistor("C201", domain.TierBasic, 90000, 0.003, resistorAttrs("100kΩ", "±1%", "1/16W")),
			}}, nil
		},
	}

	resp, err := newTestService(mc).Find(context.Background(), Request{PartID: "C105"})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got := resp.Alternatives.EmptyReason; got != ReasonNoneCompatible {
		t.Errorf("empty reason = %q, want %q", got, ReasonNoneCompatible)
	}
}

func TestFind_RequestFiltersPropagate(t *testing.T) {
	original := chipResistor("C105", domain.TierExtended, 5000, 0.01, resistorAttrs("82kΩ", "±1%", "1/16W"))
	mc := &mockCatalog{getByIDFn: func(context.Context, string) (*domain.ComponentRecord, error) {
		return original, nil
	}}
	q := capturePlan(mc, &domain.CatalogPage{})

	_, err := newTestService(mc).Find(context.Background(), Request{
		PartID:      "C105",
		MinStock:    1000,
		SamePackage: true,
		LibraryType: domain.LibraryNoFee,
		Limit:       3,
	})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if q.MinStock != 1000 {
		t.Errorf("min stock = %d, want 1000", q.MinStock)
	}
	if q.Package != "0402" {
		t.Errorf("package = %q, want the original's package", q.Package)
	}
	if q.LibraryType != domain.LibraryNoFee {
		t.Errorf("library type = %q, want no_fee", q.LibraryType)
	}
	if q.Limit != 3*overfetchFactor {
		t.Errorf("limit = %d, want %d", q.Limit, 3*overfetchFactor)
	}
}

func TestFind_LimitTruncatesRanked(t *testing.T) {
	original := chipResistor("C105", domain.TierExtended, 5000, 0.01, resistorAttrs("82kΩ", "±1%", "1/16W"))
	records := []*domain.ComponentRecord{original}
	for _, id := range []string{"C230", "C231", "C232"} {
		records = append(records, chipResistor(id, domain.TierBasic, 50000, 0.004, resistorAttrs("82kΩ", "±1%", "1/16W")))
	}
	mc := &mockCatalog{
		getByIDFn: func(context.Context, string) (*domain.ComponentRecord, error) { return original, nil },
		searchFn: func(context.Context, *domain.CatalogQuery) (*domain.CatalogPage, error) {
			return &domain.CatalogPage{Records: records}, nil
		},
	}

	resp, err := newTestService(mc).Find(context.Background(), Request{PartID: "C105", Limit: 2})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	alts := resp.Alternatives.Alternatives
	if len(alts) != 2 {
		t.Fatalf("alternatives = %d, want the requested limit of 2", len(alts))
	}
	// Equal score and stock; part id breaks the tie.
	if alts[0].Part.LCSC != "C230" || alts[1].Part.LCSC != "C231" {
		t.Errorf("ranked order = %v, want [C230 C231]", lcscs(alts))
	}
}

func TestFind_PriceDelta(t *testing.T) {
	original := chipResistor("C105", domain.TierExtended, 5000, 0.012, resistorAttrs("82kΩ", "±1%", "1/16W"))
	mc := &mockCatalog{
		getByIDFn: func(context.Context, string) (*domain.ComponentRecord, error) { return original, nil },
		searchFn: func(context.Context, *domain.CatalogQuery) (*domain.CatalogPage, error) {
			return &domain.CatalogPage{Records: []*domain.ComponentRecord{
				chipResistor("C200", domain.TierBasic, 150000, 0.004, resistorAttrs("82kΩ", "±1%", "1/16W")),
			}}, nil
		},
	}

	resp, err := newTestService(mc).Find(context.Background(), Request{PartID: "C105"})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got, want := resp.Alternatives.PriceDelta, 0.012-0.004; got != want {
		t.Errorf("price delta = %v, want %v", got, want)
	}
}

func TestFind_PartNotFound(t *testing.T) {
	mc := &mockCatalog{getByIDFn: func(context.Context, string) (*domain.ComponentRecord, error) {
		return nil, domain.ErrNotFound
	}}

	_, err := newTestService(mc).Find(context.Background(), Request{PartID: "C404"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFind_SearchErrorSurfaces(t *testing.T) {
	original := chipResistor("C105", domain.TierExtended, 5000, 0.01, resistorAttrs("82kΩ", "±1%", "1/16W"))
	mc := &mockCatalog{
		getByIDFn: func(context.Context, string) (*domain.ComponentRecord, error) { return original, nil },
		searchFn: func(context.Context, *domain.CatalogQuery) (*domain.CatalogPage, error) {
			return nil, domain.ErrStoreUnavailable
		},
	}

	_, err := newTestService(mc).Find(context.Background(), Request{PartID: "C105"})
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
}

func lcscs(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Part.LCSC
	}
	return out
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
