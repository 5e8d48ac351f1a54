package spec

import (
	"math"
	"strings"

	"github.com/Averyy/jlcpcb-mcp/internal/domain/units"
)

// Outcome of comparing two attribute values.
type Outcome int

// Outcomes. Unverifiable is fail-open: the candidate passes but must be
// flagged for manual review. A false "incompatible" is worse than
// surfacing an unverified candidate.
const (
	Matched Outcome = iota
	Mismatched
	Unverifiable
)

// Direction for directional (same-or-better) comparisons.
type Direction int

// Directions.
const (
	// Higher means the candidate value must be >= the original
	// (voltage ratings, power ratings, stock temperature ceilings).
	Higher Direction = iota
	// Lower means the candidate value must be <= the original
	// (tolerance, dropout voltage, quiescent current).
	Lower
)

// Default comparison tolerances. Empirical; override through Matcher
// options when a physical kind warrants tighter or looser bounds.
const (
	// DefaultValueMatchPct is the relative tolerance within which two
	// numeric values count as the same value.
	DefaultValueMatchPct = 2.0
	// DefaultDirectionalSlackPct widens same-or-better comparisons so a
	// candidate formatted slightly below the original's nominal value
	// (rounding, unit conversion) is not rejected.
	DefaultDirectionalSlackPct = 2.0
)

// Matcher compares raw attribute strings under registry semantics.
// Immutable after construction; safe for concurrent use.
type Matcher struct {
	registry       *Registry
	valueMatchPct  float64
	directionalPct float64
}

// MatcherOption adjusts matcher tolerances.
type MatcherOption func(*Matcher)

// WithValueMatchPct overrides the relative value-match tolerance.
func WithValueMatchPct(pct float64) MatcherOption {
	return func(m *Matcher) { m.valueMatchPct = pct }
}

// WithDirectionalSlackPct overrides the same-or-better slack.
func WithDirectionalSlackPct(pct float64) MatcherOption {
	return func(m *Matcher) { m.directionalPct = pct }
}

// NewMatcher creates a matcher over the given registry.
func NewMatcher(registry *Registry, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		registry:       registry,
		valueMatchPct:  DefaultValueMatchPct,
		directionalPct: DefaultDirectionalSlackPct,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ValueMatch reports whether two raw attribute strings denote the same
// value under the attribute's comparison semantics:
//   - numeric attributes match within the relative value tolerance;
//   - string attributes match case-insensitively after trimming;
//   - if either side of a numeric attribute fails to parse the outcome is
//     Unverifiable, never Mismatched.
func (m *Matcher) ValueMatch(name, a, b string) Outcome {
	h := m.registry.Lookup(name)
	switch h.Kind {
	case StringMatch:
		if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
			return Matched
		}
		return Mismatched
	case Special:
		return m.matchImpedance(a, b)
	default:
		va, okA := units.Parse(h.Unit, a)
		vb, okB := units.Parse(h.Unit, b)
		if !okA || !okB {
			return Unverifiable
		}
		if withinRelative(va, vb, m.valueMatchPct) {
			return Matched
		}
		return Mismatched
	}
}

// SameOrBetter reports whether candidate is at least as good as original in
// the given direction, with slack. Unparseable values are Unverifiable.
func (m *Matcher) SameOrBetter(name, original, candidate string, dir Direction) Outcome {
	h := m.registry.Lookup(name)
	if h.Kind != Numeric {
		// Directional comparison is only defined for numeric attributes;
		// anything else passes through for manual review.
		return Unverifiable
	}
	vo, okO := units.Parse(h.Unit, original)
	vc, okC := units.Parse(h.Unit, candidate)
	if !okO || !okC {
		return Unverifiable
	}
	slack := m.directionalPct / 100
	switch dir {
	case Higher:
		if vc >= vo*(1-slack) {
			return Matched
		}
	case Lower:
		if vc <= vo*(1+slack) {
			return Matched
		}
	}
	return Mismatched
}

// matchImpedance compares impedance-at-frequency pairs jointly: both the
// ohms and the hertz component must match within the value tolerance.
func (m *Matcher) matchImpedance(a, b string) Outcome {
	ia, okA := units.ParseImpedanceAtFrequency(a)
	ib, okB := units.ParseImpedanceAtFrequency(b)
	if !okA || !okB {
		return Unverifiable
	}
	if withinRelative(ia.Ohms, ib.Ohms, m.valueMatchPct) &&
		withinRelative(ia.Hertz, ib.Hertz, m.valueMatchPct) {
		return Matched
	}
	return Mismatched
}

func withinRelative(a, b, pct float64) bool {
	if a == b {
		return true
	}
	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return true
	}
	return math.Abs(a-b) <= largest*pct/100
}
