package domain

// LibraryTier is the assembly pricing category of a part.
// basic and preferred parts carry no per-unique-part assembly fee,
// extended parts do.
type LibraryTier string

// Library tiers.
const (
	TierBasic     LibraryTier = "basic"
	TierPreferred LibraryTier = "preferred"
	TierExtended  LibraryTier = "extended"
)

// NoFee reports whether the tier avoids the per-unique-part assembly fee.
func (t LibraryTier) NoFee() bool {
	return t == TierBasic || t == TierPreferred
}

// ParseLibraryTier maps catalog tier codes ("b"/"p"/"e") and full names
// to a LibraryTier. Unknown codes map to TierExtended, the conservative
// choice for fee estimation.
func ParseLibraryTier(s string) LibraryTier {
	switch s {
	case "b", "base", "basic":
		return TierBasic
	case "p", "preferred":
		return TierPreferred
	default:
		return TierExtended
	}
}

// Code returns the single-letter storage code for the tier.
func (t LibraryTier) Code() string {
	switch t {
	case TierBasic:
		return "b"
	case TierPreferred:
		return "p"
	default:
		return "e"
	}
}

// ComponentRecord is a read-only catalog record. The engine borrows these
// from the store and never mutates them. Attributes maps spec names to
// manufacturer-formatted display strings ("10kΩ", "±1%", "1.5V~2.5V").
type ComponentRecord struct {
	LCSC            string
	MPN             string
	Manufacturer    string
	Package         string
	CategoryID      int
	CategoryName    string
	SubcategoryID   int
	SubcategoryName string
	LibraryTier     LibraryTier
	Stock           int
	Price           float64
	MinOrderQty     int
	Description     string
	DatasheetURL    string
	HasFootprint    bool
	Attributes      map[string]string
}

// Attribute returns the display string for a spec name, if present.
func (c *ComponentRecord) Attribute(name string) (string, bool) {
	v, ok := c.Attributes[name]
	return v, ok
}

// Category is a top-level catalog category with its subcategories.
type Category struct {
	ID            int
	Name          string
	Count         int
	Subcategories []Subcategory
}

// Subcategory is a second-level catalog grouping. The subcategory uniquely
// determines which compatibility rule, if any, applies to its parts.
type Subcategory struct {
	ID           int
	Name         string
	CategoryID   int
	CategoryName string
	Count        int
}
