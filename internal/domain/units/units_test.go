package units

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	largest := math.Max(math.Abs(a), math.Abs(b))
	return diff <= largest*1e-9
}

func TestParseResistance(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"82kΩ", 82000, true},
		{"82K", 82000, true},
		{"82k", 82000, true},
		{"4R7", 4.7, true},
		{"4K7", 4700, true},
		{"4M7", 4.7e6, true},
		{"470R", 470, true},
		{"0R", 0, true},
		{"0Ω", 0, true},
		{"4.7", 4.7, true},
		{"1MΩ", 1e6, true},
		{"50mΩ", 0.05, true},
		{"10 ohm", 10, true},
		{"2.2 kΩ", 2200, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1.5V~2.5V", 0, false},
		{"10kF", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseResistance(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseResistance(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && !almostEqual(got, tc.want) {
			t.Errorf("ParseResistance(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseCapacitance(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"10pF", 10e-12, true},
		{"100nF", 100e-9, true},
		{"4.7uF", 4.7e-6, true},
		{"1µF", 1e-6, true},
		{"10mF", 10e-3, true},
		{"0.1", 0.1, true},
		{"100NF", 100e-9, true},
		{"10UF", 10e-6, true},
		{"", 0, false},
		{"x", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseCapacitance(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseCapacitance(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && !almostEqual(got, tc.want) {
			t.Errorf("ParseCapacitance(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseInductance(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"10nH", 10e-9, true},
		{"4.7uH", 4.7e-6, true},
		{"100µH", 100e-6, true},
		{"1mH", 1e-3, true},
		{"2.2", 2.2, true},
		{"bad", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseInductance(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseInductance(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && !almostEqual(got, tc.want) {
			t.Errorf("ParseInductance(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseVoltage(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"25V", 25, true},
		{"3.3v", 3.3, true},
		{"500mV", 0.5, true},
		{"1kV", 1000, true},
		{"6.3 V", 6.3, true},
		{"25", 0, false},
		{"1.5V~2.5V", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseVoltage(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseVoltage(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && !almostEqual(got, tc.want) {
			t.Errorf("ParseVoltage(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseCurrent(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"10µA", 10e-6, true},
		{"20uA", 20e-6, true},
		{"500mA", 0.5, true},
		{"2A", 2, true},
		{"1.5a", 1.5, true},
		{"A", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseCurrent(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseCurrent(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && !almostEqual(got, tc.want) {
			t.Errorf("ParseCurrent(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParsePower(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1/4W", 0.25, true},
		{"1/8W", 0.125, true},
		{"100mW", 0.1, true},
		{"0.25W", 0.25, true},
		{"2W", 2, true},
		{"1/0W", 0, false},
		{"W", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParsePower(tc.in)
		if ok != tc.ok {
			t.Errorf("ParsePower(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && !almostEqual(got, tc.want) {
			t.Errorf("ParsePower(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseTolerance(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"±1%", 1, true},
		{"5%", 5, true},
		{"± 0.5%", 0.5, true},
		{"1", 0, false},
		{"%", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseTolerance(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseTolerance(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && !almostEqual(got, tc.want) {
			t.Errorf("ParseTolerance(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"32.768kHz", 32768, true},
		{"16MHz", 16e6, true},
		{"2.4GHz", 2.4e9, true},
		{"50Hz", 50, true},
		{"16M", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseFrequency(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseFrequency(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && !almostEqual(got, tc.want) {
			t.Errorf("ParseFrequency(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseImpedanceAtFrequency(t *testing.T) {
	imp, ok := ParseImpedanceAtFrequency("600Ω @ 100MHz")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if !almostEqual(imp.Ohms, 600) || !almostEqual(imp.Hertz, 100e6) {
		t.Errorf("got %+v, want 600Ω @ 100MHz", imp)
	}

	if _, ok := ParseImpedanceAtFrequency("600Ω"); ok {
		t.Error("missing frequency side should fail")
	}
	if _, ok := ParseImpedanceAtFrequency("junk @ 100MHz"); ok {
		t.Error("bad impedance side should fail")
	}
}

// Round-tripping Format output through Parse must reproduce the value for
// every supported kind.
func TestFormatParseRoundTrip(t *testing.T) {
	tests := []struct {
		kind  Kind
		value float64
	}{
		{Resistance, 82000},
		{Resistance, 4.7},
		{Resistance, 0.05},
		{Resistance, 1e6},
		{Capacitance, 100e-9},
		{Capacitance, 4.7e-6},
		{Capacitance, 10e-12},
		{Inductance, 10e-6},
		{Voltage, 25},
		{Voltage, 0.5},
		{Current, 0.5},
		{Current, 10e-6},
		{Power, 0.25},
		{Frequency, 16e6},
		{Frequency, 32768},
		{Percent, 1},
	}
	for _, tc := range tests {
		display := Format(tc.kind, tc.value)
		got, ok := Parse(tc.kind, display)
		if !ok {
			t.Errorf("Parse(%v, %q) failed", tc.kind, display)
			continue
		}
		if !almostEqual(got, tc.value) {
			t.Errorf("round trip %v: %v -> %q -> %v", tc.kind, tc.value, display, got)
		}
	}
}

func TestFormatZero(t *testing.T) {
	if got := Format(Resistance, 0); got != "0Ω" {
		t.Errorf("Format(Resistance, 0) = %q, want 0Ω", got)
	}
}
