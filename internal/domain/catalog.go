package domain

import "github.com/Averyy/jlcpcb-mcp/internal/domain/units"

// Sort keys accepted by CatalogQuery.SortBy.
const (
	SortByStock = "stock"
	SortByPrice = "price"
)

// LibraryNoFee is the library type filter value meaning basic or
// preferred, the tiers without a per-unique-part assembly fee.
const LibraryNoFee = "no_fee"

// CatalogQuery is one planned catalog search. Zero values mean
// "no filter".
type CatalogQuery struct {
	// Subcategory is a name or alias, resolved by the planner.
	// Ignored when SubcategoryID is set.
	Subcategory   string
	SubcategoryID int
	// Package expands to its electrical-equivalent family variants when
	// it names a known family token.
	Package      string
	Manufacturer string
	MinStock     int
	// LibraryType is basic, preferred, extended or no_fee.
	LibraryType string
	Mounting    string
	// Pins uses the catalog's count-display convention ("8P").
	Pins string
	// Quantity constrains the subcategory's primary value field to a
	// relative window around the parsed value.
	Quantity        *units.Quantity
	MaxTolerancePct float64
	// Text terms are ANDed full-text predicates over the description.
	Text string
	// ConnectorTerm is an extra required full-text term carrying a
	// connector series ("SH", "HY2.0").
	ConnectorTerm string
	SortBy        string
	SortAsc       bool
	Offset        int
	Limit         int
}

// CatalogPage is a page of records plus the exact total match count.
type CatalogPage struct {
	Records []*ComponentRecord
	Total   int
}
