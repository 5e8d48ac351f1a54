package catalog

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/Averyy/jlcpcb-mcp/internal/db"
	"github.com/Averyy/jlcpcb-mcp/internal/domain"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/compat"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/spec"
)

const loadBatchSize = 500

// loaderStore is the consumer interface for catalog ingestion (ISP).
type loaderStore interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	Set(ctx context.Context, key string, value []byte) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Loader ingests catalog dumps: it creates the search index and bulk-loads
// part records from JSONL, materializing the typed filter fields through
// the spec registry as it goes.
type Loader struct {
	store    loaderStore
	prefix   string
	registry *spec.Registry
	rules    *compat.Table
}

// NewLoader creates a catalog loader.
func NewLoader(s loaderStore, prefix string, reg *spec.Registry, rules *compat.Table) *Loader {
	return &Loader{store: s, prefix: prefix, registry: reg, rules: rules}
}

// EnsureIndex creates the part search index if it does not exist yet.
func (l *Loader) EnsureIndex(ctx context.Context) error {
	def := indexDefinition(l.prefix)
	if err := l.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", def.Name, err)
	}
	return nil
}

// indexDefinition builds the FT schema for part records. TAG fields carry
// the exact-match filters, NUMERIC fields the range filters, and the
// description is the full-text surface.
func indexDefinition(prefix string) *db.IndexDefinition {
	return db.NewIndex(prefix + "parts:idx").
		Prefix(prefix + "part:").
		Tag(fieldMPN).
		Tag(fieldManufacturer).
		Tag(fieldPackage).
		Tag(fieldCategoryID).
		Tag(fieldSubcategoryID).
		Tag(fieldTier).
		Tag(fieldMounting).
		Tag(fieldPins).
		NumericSortable(fieldStock).
		NumericSortable(fieldPrice).
		Numeric(fieldResOhms).
		Numeric(fieldCapF).
		Numeric(fieldIndH).
		Numeric(fieldVoltV).
		Numeric(fieldAmpA).
		Numeric(fieldWattW).
		Numeric(fieldFreqHz).
		Numeric(fieldTolPct).
		Text(fieldDescription).
		MustBuild()
}

// jsonRecord is one line of a catalog JSONL dump.
type jsonRecord struct {
	LCSC          string            `json:"lcsc"`
	MPN           string            `json:"mpn"`
	Manufacturer  string            `json:"manufacturer"`
	Package       string            `json:"package"`
	Stock         int               `json:"stock"`
	LibraryType   string            `json:"library_type"`
	CategoryID    int               `json:"category_id"`
	Category      string            `json:"category"`
	SubcategoryID int               `json:"subcategory_id"`
	Subcategory   string            `json:"subcategory"`
	Price         float64           `json:"price"`
	MinOrder      int               `json:"min_order"`
	Description   string            `json:"description"`
	Datasheet     string            `json:"datasheet"`
	HasFootprint  bool              `json:"has_footprint"`
	Attributes    map[string]string `json:"attributes"`
}

func (j *jsonRecord) toRecord() *domain.ComponentRecord {
	return &domain.ComponentRecord{
		LCSC:            j.LCSC,
		MPN:             j.MPN,
		Manufacturer:    j.Manufacturer,
		Package:         j.Package,
		CategoryID:      j.CategoryID,
		CategoryName:    j.Category,
		SubcategoryID:   j.SubcategoryID,
		SubcategoryName: j.Subcategory,
		LibraryTier:     domain.ParseLibraryTier(j.LibraryType),
		Stock:           j.Stock,
		Price:           j.Price,
		MinOrderQty:     j.MinOrder,
		Description:     j.Description,
		DatasheetURL:    j.Datasheet,
		HasFootprint:    j.HasFootprint,
		Attributes:      j.Attributes,
	}
}

// LoadJSONL reads part records line by line, writes them in batches and
// rebuilds the category cache from what it saw. Returns the number of
// records loaded. A malformed line aborts the load with its line number;
// a partial load is safe to rerun.
func (l *Loader) LoadJSONL(ctx context.Context, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	cats := make(map[int]*domain.Category)
	subs := make(map[subKey]*domain.Subcategory)

	var batch []db.HashSetItem
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := l.store.HSetMulti(ctx, batch); err != nil {
			return fmt.Errorf("write batch: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	loaded := 0
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var jr jsonRecord
		if err := json.Unmarshal(raw, &jr); err != nil {
			return loaded, fmt.Errorf("line %d: %w", line, err)
		}
		if jr.LCSC == "" {
			return loaded, fmt.Errorf("line %d: record without part id", line)
		}

		rec := jr.toRecord()
		fields, err := buildHashFields(rec, l.registry, l.rules)
		if err != nil {
			return loaded, fmt.Errorf("line %d: %w", line, err)
		}
		batch = append(batch, db.HashSetItem{Key: l.prefix + "part:" + rec.LCSC, Fields: fields})
		loaded++

		c, ok := cats[rec.CategoryID]
		if !ok {
			c = &domain.Category{ID: rec.CategoryID, Name: rec.CategoryName}
			cats[rec.CategoryID] = c
		}
		c.Count++
		sk := subKey{categoryID: rec.CategoryID, subID: rec.SubcategoryID}
		s, ok := subs[sk]
		if !ok {
			s = &domain.Subcategory{
				ID:           rec.SubcategoryID,
				Name:         rec.SubcategoryName,
				CategoryID:   rec.CategoryID,
				CategoryName: rec.CategoryName,
			}
			subs[sk] = s
		}
		s.Count++

		if len(batch) >= loadBatchSize {
			if err := flush(); err != nil {
				return loaded, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return loaded, fmt.Errorf("read catalog dump: %w", err)
	}
	if err := flush(); err != nil {
		return loaded, err
	}

	if err := l.writeCategoryCache(ctx, cats, subs); err != nil {
		return loaded, err
	}
	return loaded, nil
}

// subKey identifies a subcategory within its category during a load.
type subKey struct {
	categoryID int
	subID      int
}

func (l *Loader) writeCategoryCache(
	ctx context.Context,
	cats map[int]*domain.Category,
	subs map[subKey]*domain.Subcategory,
) error {
	out := make([]domain.Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	for i := range out {
		for key, s := range subs {
			if key.categoryID == out[i].ID {
				out[i].Subcategories = append(out[i].Subcategories, *s)
			}
		}
		sort.Slice(out[i].Subcategories, func(a, b int) bool {
			return out[i].Subcategories[a].ID < out[i].Subcategories[b].ID
		})
	}

	data, err := json.Marshal(categoriesToDTO(out))
	if err != nil {
		return fmt.Errorf("encode category cache: %w", err)
	}
	if err := l.store.Set(ctx, l.prefix+"categories", data); err != nil {
		return fmt.Errorf("write category cache: %w", err)
	}
	return nil
}
