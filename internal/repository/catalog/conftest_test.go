package catalog

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/Averyy/jlcpcb-mcp/internal/db"
	"github.com/Averyy/jlcpcb-mcp/internal/domain"
)

// mockStore implements the consumer interfaces for tests.
type mockStore struct {
	hGetAllFn     func(ctx context.Context, key string) (map[string]string, error)
	getFn         func(ctx context.Context, key string) ([]byte, error)
	searchFn      func(ctx context.Context, q *db.Query) (*db.SearchResult, error)
	hSetMultiFn   func(ctx context.Context, items []db.HashSetItem) error
	setFn         func(ctx context.Context, key string, value []byte) error
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hGetAllFn != nil {
		return m.hGetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Search(ctx context.Context, q *db.Query) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hSetMultiFn != nil {
		return m.hSetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

// testCategories is the fixture category tree behind the test resolver.
func testCategories() []domain.Category {
	return []domain.Category{
		{ID: 10, Name: "Resistors", Count: 3, Subcategories: []domain.Subcategory{
			{ID: 1, Name: "Chip Resistor - Surface Mount", CategoryID: 10, CategoryName: "Resistors", Count: 2},
			{ID: 2, Name: "Through Hole Resistors", CategoryID: 10, CategoryName: "Resistors", Count: 1},
		}},
		{ID: 11, Name: "Capacitors", Count: 2, Subcategories: []domain.Subcategory{
			{ID: 3, Name: "Multilayer Ceramic Capacitors MLCC - SMD/SMT", CategoryID: 11, CategoryName: "Capacitors", Count: 2},
		}},
		{ID: 12, Name: "Crystals/Oscillators", Count: 2, Subcategories: []domain.Subcategory{
			{ID: 4, Name: "Crystals", CategoryID: 12, CategoryName: "Crystals/Oscillators", Count: 1},
			{ID: 5, Name: "Crystal Oscillators", CategoryID: 12, CategoryName: "Crystals/Oscillators", Count: 1},
		}},
		{ID: 13, Name: "Connectors", Count: 2, Subcategories: []domain.Subcategory{
			{ID: 6, Name: "Wire To Board / Wire To Wire Connector", CategoryID: 13, CategoryName: "Connectors", Count: 1},
			{ID: 7, Name: "USB Connectors", CategoryID: 13, CategoryName: "Connectors", Count: 1},
		}},
	}
}

func newTestResolver() *Resolver {
	var subs []domain.Subcategory
	for _, c := range testCategories() {
		subs = append(subs, c.Subcategories...)
	}
	return NewResolver(subs)
}

// newTestRepo builds an initialized repository over the fixture categories.
func newTestRepo(t *testing.T, ms *mockStore) *Repo {
	t.Helper()
	cache, err := json.Marshal(categoriesToDTO(testCategories()))
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	prevGet := ms.getFn
	ms.getFn = func(_ context.Context, key string) ([]byte, error) {
		if key == "jlc:categories" {
			return cache, nil
		}
		return nil, db.ErrKeyNotFound
	}
	repo := New(ms, Options{KeyPrefix: "jlc:"})
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	ms.getFn = prevGet
	return repo
}

// testResistorFields is a stored chip resistor hash the way the loader
// writes it.
func testResistorFields(lcsc string, ohms float64, stock int) map[string]string {
	return map[string]string{
		fieldLCSC:            lcsc,
		fieldMPN:             "0603WAF1002T5E",
		fieldManufacturer:    "UNI-ROYAL(Uniroyal Elec)",
		fieldPackage:         "0603",
		fieldCategoryID:      "10",
		fieldCategoryName:    "Resistors",
		fieldSubcategoryID:   "1",
		fieldSubcategoryName: "Chip Resistor - Surface Mount",
		fieldTier:            "b",
		fieldStock:           strconv.Itoa(stock),
		fieldPrice:           "0.0008",
		fieldMinOrderQty:     "100",
		fieldDescription:     "10kOhms 1% 0603 Chip Resistor",
		fieldResOhms:         formatNumeric(ohms),
		fieldTolPct:          "1",
		fieldAttrs:           `{"Resistance":"10kΩ","Tolerance":"±1%","Power(Watts)":"100mW"}`,
	}
}
