// Package compat holds the per-subcategory compatibility rules used to
// decide whether one part may safely replace another. A subcategory absent
// from the table is an unsupported category: the alternatives pipeline
// degrades to similar-parts and never claims verified compatibility.
package compat

import (
	"strings"

	"github.com/Averyy/jlcpcb-mcp/internal/domain/spec"
)

// Rule describes the compatibility checks for one subcategory.
type Rule struct {
	// Primary is the attribute used to locate same-value candidates.
	Primary string
	// MustMatch attributes require near-exact equality between original
	// and candidate. The primary attribute is implied and not repeated.
	MustMatch []string
	// SameOrBetter attributes pass when the candidate is at least as good
	// in the given direction.
	SameOrBetter map[string]spec.Direction
}

// Table maps subcategory names to rules. Built once at startup, read-only
// afterwards; safe for unsynchronized concurrent reads.
type Table struct {
	rules map[string]Rule
}

// NewTable builds the static rule table.
func NewTable() *Table {
	rules := map[string]Rule{
		"chip resistor - surface mount": {
			Primary: "Resistance",
			SameOrBetter: map[string]spec.Direction{
				"Tolerance":    spec.Lower,
				"Power(Watts)": spec.Higher,
			},
		},
		"through hole resistors": {
			Primary: "Resistance",
			SameOrBetter: map[string]spec.Direction{
				"Tolerance":    spec.Lower,
				"Power(Watts)": spec.Higher,
			},
		},
		"current sense resistors / shunt resistors": {
			Primary: "Resistance",
			SameOrBetter: map[string]spec.Direction{
				"Tolerance":    spec.Lower,
				"Power(Watts)": spec.Higher,
			},
		},
		"multilayer ceramic capacitors mlcc - smd/smt": {
			Primary:   "Capacitance",
			MustMatch: []string{"Temperature Coefficient"},
			SameOrBetter: map[string]spec.Direction{
				"Voltage Rating": spec.Higher,
				"Tolerance":      spec.Lower,
			},
		},
		"aluminum electrolytic capacitors - smd": {
			Primary: "Capacitance",
			SameOrBetter: map[string]spec.Direction{
				"Voltage Rating": spec.Higher,
				"Tolerance":      spec.Lower,
			},
		},
		"tantalum capacitors": {
			Primary: "Capacitance",
			SameOrBetter: map[string]spec.Direction{
				"Voltage Rating": spec.Higher,
				"Tolerance":      spec.Lower,
			},
		},
		"film capacitors": {
			Primary: "Capacitance",
			SameOrBetter: map[string]spec.Direction{
				"Voltage Rating": spec.Higher,
				"Tolerance":      spec.Lower,
			},
		},
		"inductors (smd)": {
			Primary: "Inductance",
			SameOrBetter: map[string]spec.Direction{
				"Rated Current":       spec.Higher,
				"Tolerance":           spec.Lower,
				"DC Resistance (DCR)": spec.Lower,
			},
		},
		"ferrite beads": {
			Primary: "Impedance @ Frequency",
			SameOrBetter: map[string]spec.Direction{
				"Rated Current":       spec.Higher,
				"DC Resistance (DCR)": spec.Lower,
			},
		},
		"led indication - discrete": {
			Primary: "Emitted Color",
			SameOrBetter: map[string]spec.Direction{
				"Forward Current": spec.Higher,
			},
		},
		"voltage regulators - linear, low drop out (ldo) regulators": {
			Primary: "Output Voltage",
			SameOrBetter: map[string]spec.Direction{
				"Output Current":    spec.Higher,
				"Dropout Voltage":   spec.Lower,
				"Quiescent Current": spec.Lower,
			},
		},
		"zener diodes": {
			Primary: "Zener Voltage",
			SameOrBetter: map[string]spec.Direction{
				"Power Dissipation": spec.Higher,
				"Tolerance":         spec.Lower,
			},
		},
		"schottky diodes": {
			Primary: "Reverse Voltage",
			SameOrBetter: map[string]spec.Direction{
				"Forward Current": spec.Higher,
				"Forward Voltage": spec.Lower,
			},
		},
		"switching diodes": {
			Primary: "Reverse Voltage",
			SameOrBetter: map[string]spec.Direction{
				"Forward Current": spec.Higher,
			},
		},
		"crystals": {
			Primary:   "Frequency",
			MustMatch: []string{"Load Capacitance"},
			SameOrBetter: map[string]spec.Direction{
				"Frequency Tolerance": spec.Lower,
			},
		},
		"mosfets": {
			Primary:   "Drain Source Voltage",
			MustMatch: []string{"Type"},
			SameOrBetter: map[string]spec.Direction{
				"Drain Current": spec.Higher,
			},
		},
	}
	return &Table{rules: rules}
}

// Lookup resolves the rule for a subcategory name, case-insensitively.
func (t *Table) Lookup(subcategory string) (Rule, bool) {
	r, ok := t.rules[strings.ToLower(strings.TrimSpace(subcategory))]
	return r, ok
}

// Supported reports whether the subcategory has a compatibility rule.
func (t *Table) Supported(subcategory string) bool {
	_, ok := t.Lookup(subcategory)
	return ok
}
