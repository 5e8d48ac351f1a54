// Package units converts manufacturer-formatted spec strings ("82kΩ",
// "100nF", "±1%", "1/4W") into comparable quantities in base SI-like units.
//
// Every parser is total: it reports ok=false on unrecognized input instead
// of returning an error. Callers must treat a failed parse as "cannot
// verify", never as a rejection.
package units

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies the physical dimension of a parsed quantity.
type Kind string

// Physical kinds.
const (
	Resistance           Kind = "resistance"
	Capacitance          Kind = "capacitance"
	Inductance           Kind = "inductance"
	Voltage              Kind = "voltage"
	Current              Kind = "current"
	Power                Kind = "power"
	Frequency            Kind = "frequency"
	Percent              Kind = "percent"
	ImpedanceAtFrequency Kind = "impedance_at_frequency"
)

// BaseUnit returns the base unit symbol for the kind.
func (k Kind) BaseUnit() string {
	switch k {
	case Resistance:
		return "Ω"
	case Capacitance:
		return "F"
	case Inductance:
		return "H"
	case Voltage:
		return "V"
	case Current:
		return "A"
	case Power:
		return "W"
	case Frequency:
		return "Hz"
	case Percent:
		return "%"
	default:
		return ""
	}
}

// Quantity is a normalized numeric value tagged with its physical kind.
// Construct only through a parser or New.
type Quantity struct {
	value float64
	kind  Kind
}

// New creates a quantity in base units.
func New(kind Kind, value float64) Quantity {
	return Quantity{value: value, kind: kind}
}

// Value returns the magnitude in base units.
func (q Quantity) Value() float64 { return q.value }

// Kind returns the physical kind.
func (q Quantity) Kind() Kind { return q.kind }

// Impedance is an impedance-at-frequency pair (ohms at hertz).
type Impedance struct {
	Ohms  float64
	Hertz float64
}

var (
	// European dot-less resistance notation: the letter stands in for both
	// the decimal point and the unit. 4R7 = 4.7Ω, 4K7 = 4700Ω, 0R = 0Ω.
	euroResistanceRe = regexp.MustCompile(`^(\d+)([RrKkM])(\d+)?$`)

	resistanceRe  = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([kKmMuµ]?)\s*(?:[ΩΩ]|[Oo][Hh][Mm][Ss]?|R)?$`)
	capacitanceRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([pPnNuUµmM]?)\s*[fF]?$`)
	inductanceRe  = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([nNuUµmM]?)\s*[hH]?$`)
	voltageRe     = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([mk]?)[vV]$`)
	currentRe     = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([uUµmM]?)[aA]$`)
	powerRe       = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([uUµm]?)[wW]$`)
	powerFracRe   = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)\s*[wW]$`)
	toleranceRe   = regexp.MustCompile(`^±?\s*(\d+(?:\.\d+)?)\s*%$`)
	frequencyRe   = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([kKMGg]?)[hH][zZ]$`)
)

func euroMultiplier(letter string) float64 {
	switch letter {
	case "R", "r":
		return 1
	case "K", "k":
		return 1e3
	default: // M
		return 1e6
	}
}

// ParseResistance parses a resistance string to ohms.
// Accepts 82kΩ, 82K, 4R7, 470R, 0R, 50mΩ and a bare number (ohms).
func ParseResistance(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if m := euroResistanceRe.FindStringSubmatch(s); m != nil {
		whole, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		v := whole
		if m[3] != "" {
			frac, err := strconv.ParseFloat("0."+m[3], 64)
			if err != nil {
				return 0, false
			}
			v += frac
		}
		return v * euroMultiplier(m[2]), true
	}

	m := resistanceRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "k", "K":
		v *= 1e3
	case "M":
		v *= 1e6
	case "m":
		v *= 1e-3
	case "u", "µ":
		v *= 1e-6
	}
	return v, true
}

// ParseCapacitance parses a capacitance string to farads.
// Accepts 10pF, 100nF, 4.7uF, 1µF, 10m and a bare number (farads).
func ParseCapacitance(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	m := capacitanceRe.FindStringSubmatch(s)
	if m == nil || s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "p", "P":
		v *= 1e-12
	case "n", "N":
		v *= 1e-9
	case "u", "U", "µ":
		v *= 1e-6
	case "m", "M":
		v *= 1e-3
	}
	return v, true
}

// ParseInductance parses an inductance string to henries.
// Accepts 10nH, 4.7uH, 100µH, 1mH and a bare number (henries).
func ParseInductance(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	m := inductanceRe.FindStringSubmatch(s)
	if m == nil || s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "n", "N":
		v *= 1e-9
	case "u", "U", "µ":
		v *= 1e-6
	case "m", "M":
		v *= 1e-3
	}
	return v, true
}

// ParseVoltage parses a voltage string to volts. Accepts 25V, 3.3v, 500mV, 1kV.
func ParseVoltage(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	m := voltageRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "m":
		v *= 1e-3
	case "k":
		v *= 1e3
	}
	return v, true
}

// ParseCurrent parses a current string to amps. Accepts 10µA, 20uA, 500mA, 2A.
func ParseCurrent(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	m := currentRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "u", "U", "µ":
		v *= 1e-6
	case "m", "M":
		v *= 1e-3
	}
	return v, true
}

// ParsePower parses a power rating to watts. Accepts 100mW, 0.25W and the
// fraction form 1/4W common on resistor datasheets.
func ParsePower(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if m := powerFracRe.FindStringSubmatch(s); m != nil {
		num, err1 := strconv.ParseFloat(m[1], 64)
		den, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil || den == 0 {
			return 0, false
		}
		return num / den, true
	}
	m := powerRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "u", "U", "µ":
		v *= 1e-6
	case "m":
		v *= 1e-3
	}
	return v, true
}

// ParseTolerance parses a tolerance string (±1%, 5%) to a percent value.
func ParseTolerance(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	m := toleranceRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseFrequency parses a frequency string to hertz. Accepts 32.768kHz,
// 16MHz, 2.4GHz, 50Hz.
func ParseFrequency(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	m := frequencyRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "k", "K":
		v *= 1e3
	case "M":
		v *= 1e6
	case "G", "g":
		v *= 1e9
	}
	return v, true
}

// ParseImpedanceAtFrequency parses the paired form "600Ω @ 100MHz".
// Both sides must parse for the pair to be valid.
func ParseImpedanceAtFrequency(s string) (Impedance, bool) {
	left, right, found := strings.Cut(s, "@")
	if !found {
		return Impedance{}, false
	}
	ohms, ok := ParseResistance(strings.TrimSpace(left))
	if !ok {
		return Impedance{}, false
	}
	hertz, ok := ParseFrequency(strings.TrimSpace(right))
	if !ok {
		return Impedance{}, false
	}
	return Impedance{Ohms: ohms, Hertz: hertz}, true
}

// Parse dispatches to the parser for the given kind. ImpedanceAtFrequency
// is not dispatchable here; use ParseImpedanceAtFrequency for the pair.
func Parse(kind Kind, s string) (float64, bool) {
	switch kind {
	case Resistance:
		return ParseResistance(s)
	case Capacitance:
		return ParseCapacitance(s)
	case Inductance:
		return ParseInductance(s)
	case Voltage:
		return ParseVoltage(s)
	case Current:
		return ParseCurrent(s)
	case Power:
		return ParsePower(s)
	case Frequency:
		return ParseFrequency(s)
	case Percent:
		return ParseTolerance(s)
	default:
		return 0, false
	}
}
