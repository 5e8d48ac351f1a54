// Package query turns free-text component queries into structured filters.
// Interpretation is a single forward pass: each extraction step either
// succeeds and narrows the text, or leaves it untouched for the next step
// and the final full-text fallback. No step ever fails the whole query.
package query

import (
	"strconv"

	"github.com/Averyy/jlcpcb-mcp/internal/domain"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/units"
)

// Op is a filter comparison operator.
type Op string

// Operators.
const (
	OpEq Op = "eq"
	OpGe Op = "ge"
	OpLe Op = "le"
)

// SpecFilter is a single structured predicate on a named attribute.
// Immutable after creation.
type SpecFilter struct {
	Name     string
	Op       Op
	RawValue string
}

// Mounting type canonical values, matching the catalog's vocabulary.
const (
	MountingThroughHole = "Through Hole"
	MountingSMD         = "SMD"
)

// ParsedQuery is the structured interpretation of one free-text query.
// Produced once per incoming query and discarded after the search it
// drives.
type ParsedQuery struct {
	// Quantity is the single physical quantity extracted from the text,
	// nil when none was found.
	Quantity *units.Quantity
	// Package is the extracted package token ("0603", "SOT-23"), empty
	// when none was found.
	Package string
	// PinCount is the extracted pin/position count, 0 when absent.
	PinCount int
	// MountingType is MountingThroughHole or MountingSMD, empty when
	// no mounting token appeared.
	MountingType string
	// TolerancePct is the explicit tolerance, negative when absent.
	TolerancePct float64
	// LibraryType is the extracted tier, empty when absent.
	LibraryType domain.LibraryTier
	// Connector carries JST-series / maker-brand connector hints.
	Connector *ConnectorSpec
	// ModelNumber is a detected manufacturer model number ("TP4056"),
	// empty when absent.
	ModelNumber string
	// RemainingText is the residue left for full-text search.
	RemainingText string
}

// HasTolerance reports whether an explicit tolerance was extracted.
func (p *ParsedQuery) HasTolerance() bool { return p.TolerancePct >= 0 }

// PinCountDisplay returns the catalog's count-display convention ("8P"),
// or "" when no pin count was extracted.
func (p *ParsedQuery) PinCountDisplay() string {
	if p.PinCount <= 0 {
		return ""
	}
	return strconv.Itoa(p.PinCount) + "P"
}
