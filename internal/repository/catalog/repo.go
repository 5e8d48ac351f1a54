// Package catalog plans structured part searches against the Redis-backed
// catalog and owns the pagination-correctness contract: value filters are
// pushed into the index as typed numeric ranges, so the reported total and
// every page are exact regardless of sort order. No caller re-implements
// pagination math on top of this package.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/Averyy/jlcpcb-mcp/internal/db"
	"github.com/Averyy/jlcpcb-mcp/internal/domain"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/query"
)

// DefaultValueMatchPct is the relative width of a primary-value range
// filter, matching the engine's value-match tolerance.
const DefaultValueMatchPct = 2.0

// store is the consumer interface for the catalog repository (ISP).
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Search(ctx context.Context, q *db.Query) (*db.SearchResult, error)
}

// Options tunes the repository.
type Options struct {
	// KeyPrefix namespaces all catalog keys ("jlc:").
	KeyPrefix string
	// ValueMatchPct overrides the primary-value range width.
	ValueMatchPct float64
}

// Repo implements the catalog store contract for the search and
// alternatives services.
type Repo struct {
	store         store
	prefix        string
	valueMatchPct float64

	// Loaded by Init, read-only afterwards.
	categories []domain.Category
	resolver   *Resolver
}

// New creates a catalog repository. Call Init before serving queries.
func New(s store, opts Options) *Repo {
	pct := opts.ValueMatchPct
	if pct <= 0 {
		pct = DefaultValueMatchPct
	}
	return &Repo{store: s, prefix: opts.KeyPrefix, valueMatchPct: pct}
}

// Init loads the category cache written at ingest time and builds the
// subcategory resolver from it.
func (r *Repo) Init(ctx context.Context) error {
	raw, err := r.store.Get(ctx, r.categoriesKey())
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return fmt.Errorf("category cache missing, run catalog load: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("load category cache: %w", err)
	}
	var dtos []categoryDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return fmt.Errorf("decode category cache: %w", err)
	}
	r.categories = categoriesFromDTO(dtos)

	var subs []domain.Subcategory
	for _, c := range r.categories {
		subs = append(subs, c.Subcategories...)
	}
	r.resolver = NewResolver(subs)
	return nil
}

// Categories returns the cached category tree.
func (r *Repo) Categories(_ context.Context) ([]domain.Category, error) {
	if r.categories == nil {
		return nil, fmt.Errorf("category cache not loaded: %w", domain.ErrStoreUnavailable)
	}
	return r.categories, nil
}

// Subcategories returns the subcategories of one category, by name.
func (r *Repo) Subcategories(_ context.Context, category string) ([]domain.Subcategory, error) {
	lower := strings.ToLower(strings.TrimSpace(category))
	var names []string
	for _, c := range r.categories {
		if strings.ToLower(c.Name) == lower {
			return c.Subcategories, nil
		}
		if strings.Contains(strings.ToLower(c.Name), lower) {
			names = append(names, c.Name)
		}
	}
	if len(names) == 1 {
		for _, c := range r.categories {
			if c.Name == names[0] {
				return c.Subcategories, nil
			}
		}
	}
	if len(names) > 1 {
		return nil, domain.NewAmbiguousName(category, names)
	}
	return nil, fmt.Errorf("category %q: %w", category, domain.ErrNotFound)
}

// Resolver exposes subcategory name resolution to the services.
func (r *Repo) Resolver() *Resolver {
	return r.resolver
}

// Search executes one planned query and returns a page of records plus
// the exact total.
func (r *Repo) Search(ctx context.Context, req *domain.CatalogQuery) (*domain.CatalogPage, error) {
	if req.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive: %w", domain.ErrInvalidRequest)
	}

	q, err := r.plan(req)
	if err != nil {
		return nil, err
	}

	res, err := r.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("catalog search: %w", err)
	}

	records := make([]*domain.ComponentRecord, 0, len(res.Entries))
	for _, e := range res.Entries {
		records = append(records, parseHashFields(e.Fields))
	}
	return &domain.CatalogPage{Records: records, Total: res.Total}, nil
}

// plan translates a request into the store's structured query form.
func (r *Repo) plan(req *domain.CatalogQuery) (*db.Query, error) {
	q := &db.Query{
		Index:  r.indexName(),
		Offset: req.Offset,
		Limit:  req.Limit,
	}

	switch {
	case req.SubcategoryID > 0:
		q.Tags = append(q.Tags, db.TagPredicate{
			Field: fieldSubcategoryID, Values: []string{strconv.Itoa(req.SubcategoryID)},
		})
	case req.Subcategory != "":
		sub, err := r.resolver.Resolve(req.Subcategory)
		if err != nil {
			return nil, err
		}
		q.Tags = append(q.Tags, db.TagPredicate{
			Field: fieldSubcategoryID, Values: []string{strconv.Itoa(sub.ID)},
		})
	}

	if req.Package != "" {
		values := query.PackageVariants(req.Package)
		if values == nil {
			values = []string{req.Package}
		}
		q.Tags = append(q.Tags, db.TagPredicate{Field: fieldPackage, Values: values})
	}

	if req.Manufacturer != "" {
		q.Tags = append(q.Tags, db.TagPredicate{
			Field: fieldManufacturer, Values: []string{CanonicalManufacturer(req.Manufacturer)},
		})
	}

	if req.LibraryType != "" {
		tiers, err := tierCodes(req.LibraryType)
		if err != nil {
			return nil, err
		}
		q.Tags = append(q.Tags, db.TagPredicate{Field: fieldTier, Values: tiers})
	}

	if req.Mounting != "" {
		q.Tags = append(q.Tags, db.TagPredicate{Field: fieldMounting, Values: []string{req.Mounting}})
	}
	if req.Pins != "" {
		q.Tags = append(q.Tags, db.TagPredicate{Field: fieldPins, Values: []string{req.Pins}})
	}

	if req.MinStock > 0 {
		q.Ranges = append(q.Ranges, db.RangePredicate{
			Field: fieldStock, Min: float64(req.MinStock), Max: db.Unbounded,
		})
	}

	if req.Quantity != nil {
		field, ok := kindField(req.Quantity.Kind())
		if !ok {
			return nil, fmt.Errorf("no value field for kind %q: %w",
				req.Quantity.Kind(), domain.ErrInvalidRequest)
		}
		v := req.Quantity.Value()
		w := r.valueMatchPct / 100
		q.Ranges = append(q.Ranges, db.RangePredicate{
			Field: field, Min: v * (1 - w), Max: v * (1 + w),
		})
	}

	if req.MaxTolerancePct > 0 {
		q.Ranges = append(q.Ranges, db.RangePredicate{
			Field: fieldTolPct, Min: 0, Max: req.MaxTolerancePct,
		})
	}

	if req.ConnectorTerm != "" {
		q.Texts = append(q.Texts, db.TextPredicate{
			Field: fieldDescription, Terms: []string{req.ConnectorTerm},
		})
	}
	for _, term := range strings.Fields(req.Text) {
		// Punctuation-only tokens like the "@" in "600Ω @ 100MHz" never
		// reach the full-text index, so requiring them matches nothing.
		if !hasAlnum(term) {
			continue
		}
		q.Texts = append(q.Texts, db.TextPredicate{
			Field: fieldDescription, Terms: []string{term},
		})
	}

	switch req.SortBy {
	case "", domain.SortByStock:
		q.SortBy = fieldStock
		q.SortDesc = !req.SortAsc
	case domain.SortByPrice:
		q.SortBy = fieldPrice
		q.SortDesc = !req.SortAsc
	default:
		return nil, fmt.Errorf("unknown sort key %q: %w", req.SortBy, domain.ErrInvalidRequest)
	}

	return q, nil
}

// hasAlnum reports whether the token carries at least one letter or
// digit the text index could have tokenized.
func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// GetByID fetches one part with full detail. Catalog ids resolve
// directly; anything else is treated as a manufacturer part number and
// tried through its normalization variants, then as full text.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.ComponentRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("empty part id: %w", domain.ErrInvalidRequest)
	}

	if looksLikeLCSC(id) {
		fields, err := r.store.HGetAll(ctx, r.partKey(strings.ToUpper(id)))
		if err != nil {
			return nil, fmt.Errorf("get part %s: %w", id, err)
		}
		if len(fields) == 0 {
			return nil, fmt.Errorf("part %s: %w", id, domain.ErrNotFound)
		}
		return parseHashFields(fields), nil
	}

	for _, variant := range mpnVariants(id) {
		res, err := r.store.Search(ctx, &db.Query{
			Index: r.indexName(),
			Tags:  []db.TagPredicate{{Field: fieldMPN, Values: []string{variant}}},
			Limit: 1,
		})
		if err != nil {
			return nil, fmt.Errorf("lookup mpn %s: %w", variant, err)
		}
		if len(res.Entries) > 0 {
			return parseHashFields(res.Entries[0].Fields), nil
		}
	}

	res, err := r.store.Search(ctx, &db.Query{
		Index:    r.indexName(),
		Texts:    []db.TextPredicate{{Field: fieldDescription, Terms: []string{id}}},
		SortBy:   fieldStock,
		SortDesc: true,
		Limit:    1,
	})
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", id, err)
	}
	if len(res.Entries) == 0 {
		return nil, fmt.Errorf("part %s: %w", id, domain.ErrNotFound)
	}
	return parseHashFields(res.Entries[0].Fields), nil
}

// tierCodes maps a library type filter value to storage tier codes.
func tierCodes(libraryType string) ([]string, error) {
	switch strings.ToLower(strings.TrimSpace(libraryType)) {
	case string(domain.TierBasic), "b":
		return []string{"b"}, nil
	case string(domain.TierPreferred), "p":
		return []string{"p"}, nil
	case string(domain.TierExtended), "e":
		return []string{"e"}, nil
	case domain.LibraryNoFee:
		return []string{"b", "p"}, nil
	default:
		return nil, fmt.Errorf("unknown library type %q: %w", libraryType, domain.ErrInvalidRequest)
	}
}

func (r *Repo) partKey(id string) string {
	return r.prefix + "part:" + id
}

func (r *Repo) indexName() string {
	return r.prefix + "parts:idx"
}

func (r *Repo) categoriesKey() string {
	return r.prefix + "categories"
}
