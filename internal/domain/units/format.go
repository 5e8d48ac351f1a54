package units

import (
	"strconv"
	"strings"
)

type scale struct {
	factor float64
	prefix string
}

// Format renders a base-unit value back into catalog display notation,
// choosing the prefix that keeps the mantissa in [1, 1000) where possible.
func Format(kind Kind, value float64) string {
	switch kind {
	case Resistance:
		return formatScaled(value, "Ω", []scale{{1e6, "M"}, {1e3, "k"}, {1, ""}, {1e-3, "m"}})
	case Capacitance:
		return formatScaled(value, "F", []scale{{1, ""}, {1e-3, "m"}, {1e-6, "µ"}, {1e-9, "n"}, {1e-12, "p"}})
	case Inductance:
		return formatScaled(value, "H", []scale{{1, ""}, {1e-3, "m"}, {1e-6, "µ"}, {1e-9, "n"}})
	case Voltage:
		return formatScaled(value, "V", []scale{{1e3, "k"}, {1, ""}, {1e-3, "m"}})
	case Current:
		return formatScaled(value, "A", []scale{{1, ""}, {1e-3, "m"}, {1e-6, "µ"}})
	case Power:
		return formatScaled(value, "W", []scale{{1, ""}, {1e-3, "m"}, {1e-6, "µ"}})
	case Frequency:
		return formatScaled(value, "Hz", []scale{{1e9, "G"}, {1e6, "M"}, {1e3, "k"}, {1, ""}})
	case Percent:
		return "±" + trimFloat(value) + "%"
	default:
		return trimFloat(value)
	}
}

// FormatQuantity renders a Quantity in display notation.
func FormatQuantity(q Quantity) string {
	return Format(q.Kind(), q.Value())
}

// FormatImpedance renders an impedance-at-frequency pair.
func FormatImpedance(imp Impedance) string {
	return Format(Resistance, imp.Ohms) + " @ " + Format(Frequency, imp.Hertz)
}

func formatScaled(value float64, unit string, scales []scale) string {
	if value == 0 {
		return "0" + unit
	}
	abs := value
	if abs < 0 {
		abs = -abs
	}
	for _, sc := range scales {
		if abs >= sc.factor {
			return trimFloat(value/sc.factor) + sc.prefix + unit
		}
	}
	last := scales[len(scales)-1]
	return trimFloat(value/last.factor) + last.prefix + unit
}

func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
