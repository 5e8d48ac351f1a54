// Package spec maps catalog attribute names to comparison semantics:
// a unit parser for physically comparable attributes, case-insensitive
// string equality for categorical ones, and a paired comparator for
// impedance-at-frequency. Unknown attribute names compare as strings,
// which fails open rather than silently excluding parts.
package spec

import (
	"strings"

	"github.com/Averyy/jlcpcb-mcp/internal/domain/units"
)

// HandlerKind selects the comparison strategy for an attribute.
type HandlerKind int

// Handler kinds.
const (
	// Numeric attributes parse through the units library and compare
	// within a relative tolerance.
	Numeric HandlerKind = iota
	// StringMatch attributes compare as trimmed, case-insensitive strings.
	StringMatch
	// Special attributes dispatch to a dedicated comparator
	// (impedance-at-frequency pairs).
	Special
)

// Handler is the resolved comparison strategy for one attribute name.
type Handler struct {
	Kind HandlerKind
	// Unit is the physical kind for Numeric handlers.
	Unit units.Kind
}

// Registry resolves attribute names to handlers. Built once at startup,
// read-only afterwards; safe for unsynchronized concurrent reads.
type Registry struct {
	handlers map[string]Handler
}

// numericSpecs maps every physically comparable attribute name observed in
// the catalog to its unit parser. Keys are lowercase.
var numericSpecs = map[string]units.Kind{
	"resistance":              units.Resistance,
	"dc resistance":           units.Resistance,
	"dc resistance (dcr)":     units.Resistance,
	"on-resistance":           units.Resistance,
	"capacitance":             units.Capacitance,
	"inductance":              units.Inductance,
	"voltage rating":          units.Voltage,
	"voltage rated":           units.Voltage,
	"voltage - rated":         units.Voltage,
	"rated voltage":           units.Voltage,
	"output voltage":          units.Voltage,
	"voltage - output":        units.Voltage,
	"forward voltage":         units.Voltage,
	"reverse voltage":         units.Voltage,
	"zener voltage":           units.Voltage,
	"dropout voltage":         units.Voltage,
	"breakdown voltage":       units.Voltage,
	"drain source voltage":    units.Voltage,
	"input voltage":           units.Voltage,
	"clamping voltage":        units.Voltage,
	"rated current":           units.Current,
	"current rating":          units.Current,
	"output current":          units.Current,
	"forward current":         units.Current,
	"current - output":        units.Current,
	"saturation current":      units.Current,
	"quiescent current":       units.Current,
	"drain current":           units.Current,
	"collector current":       units.Current,
	"trip current":            units.Current,
	"hold current":            units.Current,
	"power":                   units.Power,
	"power(watts)":            units.Power,
	"power dissipation":       units.Power,
	"rated power":             units.Power,
	"tolerance":               units.Percent,
	"frequency":               units.Frequency,
	"frequency tolerance":     units.Percent,
	"load capacitance":        units.Capacitance,
	"equivalent capacitance":  units.Capacitance,
	"operating frequency":     units.Frequency,
	"switching frequency":     units.Frequency,
}

// stringSpecs lists attribute names that are inherently categorical and
// always compare case-insensitively, never numerically. Lowercase keys.
var stringSpecs = map[string]struct{}{
	"emitted color":       {},
	"color":               {},
	"lens color":          {},
	"number of pins":      {},
	"number of contacts":  {},
	"number of positions": {},
	"number of rows":      {},
	"number of channels":  {},
	"number of resistors": {},
	"gender":              {},
	"connector type":      {},
	"interface type":      {},
	"mounting type":       {},
	"circuit":             {},
	"configuration":       {},
	"polarity":            {},
	"type":                {},
	"direction":           {},
	"output type":         {},
	"technology":          {},
}

const impedanceSpecName = "impedance @ frequency"

// NewRegistry builds the default registry from the static tables.
func NewRegistry() *Registry {
	handlers := make(map[string]Handler, len(numericSpecs)+len(stringSpecs)+1)
	for name, kind := range numericSpecs {
		handlers[name] = Handler{Kind: Numeric, Unit: kind}
	}
	for name := range stringSpecs {
		if _, dup := handlers[name]; dup {
			// Static table invariant: a name maps to exactly one handler.
			panic("spec: attribute registered as both numeric and string: " + name)
		}
		handlers[name] = Handler{Kind: StringMatch}
	}
	handlers[impedanceSpecName] = Handler{Kind: Special}
	return &Registry{handlers: handlers}
}

// Lookup resolves an attribute name. Unknown names resolve to StringMatch.
func (r *Registry) Lookup(name string) Handler {
	if h, ok := r.handlers[normalizeName(name)]; ok {
		return h
	}
	return Handler{Kind: StringMatch}
}

// KindOf returns the unit kind for numeric attributes, reporting false for
// string-match and special attributes.
func (r *Registry) KindOf(name string) (units.Kind, bool) {
	h := r.Lookup(name)
	if h.Kind != Numeric {
		return "", false
	}
	return h.Unit, true
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
