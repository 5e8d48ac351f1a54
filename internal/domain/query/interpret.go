package query

import (
	"regexp"
	"strings"

	"github.com/Averyy/jlcpcb-mcp/internal/domain"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/units"
)

var (
	toleranceTokenRe = regexp.MustCompile(`±?\s*(\d+(?:\.\d+)?)\s*%`)
	libraryTierRe    = regexp.MustCompile(`(?i)\b(basic|preferred|extended)\s+(?:parts?|library)\b`)

	qtyFrequencyRe  = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?\s*[kmg]?hz)\b`)
	qtyCapacitURe   = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?\s*[pnuµm]f)\b`)
	qtyInductURe    = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?\s*[nuµm]h)\b`)
	qtyVoltageRe    = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?\s*m?v)\b`)
	qtyResistExplRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?\s*[km]?\s*(?:Ω|ohms?)|\d+[rk]\d+|\d+r)\b`)
	qtyResistBareRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?[km])\b`)
	qtyCapBareRe    = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?[pnuµ])\b`)

	resistanceCueRe = regexp.MustCompile(`(?i)\b(resistors?|resistance|ohms?|pull-?ups?|pull-?downs?)\b|Ω`)
	capacitorCueRe  = regexp.MustCompile(`(?i)\b(capacitors?|capacitance|caps?|mlcc)\b`)
)

// Interpret runs the single-pass query interpretation. Later steps see the
// residue of earlier ones; no step ever fails the query.
func Interpret(text string) ParsedQuery {
	p := ParsedQuery{TolerancePct: -1}
	rest := strings.TrimSpace(text)

	// 1. Explicit tolerance token.
	if m := toleranceTokenRe.FindStringSubmatchIndex(rest); m != nil {
		if pct, ok := units.ParseTolerance(strings.TrimSpace(rest[m[0]:m[1]])); ok {
			p.TolerancePct = pct
			rest = collapseSpaces(rest[:m[0]] + " " + rest[m[1]:])
		}
	}

	// Connector series and maker-brand aliases carry their own package
	// semantics, so they come out before package extraction.
	p.Connector, rest = extractConnector(rest)

	p.ModelNumber, rest = extractModelNumber(rest)

	// 2. Package token (connector-family tokens excluded).
	p.Package, rest = extractPackage(rest)

	// 3. Mounting type.
	p.MountingType, rest = extractMounting(rest)

	// 4. Pin/position count before a connector-class keyword.
	p.PinCount, rest = extractPinCount(rest)
	if p.PinCount == 0 && p.Connector != nil && p.Connector.Pins > 0 {
		p.PinCount = p.Connector.Pins
	}

	// Library tier phrase.
	if m := libraryTierRe.FindStringSubmatchIndex(rest); m != nil {
		p.LibraryType = domain.LibraryTier(strings.ToLower(rest[m[2]:m[3]]))
		rest = collapseSpaces(rest[:m[0]] + " " + rest[m[1]:])
	}

	// 5. Single physical quantity; first unambiguous match wins.
	p.Quantity, rest = extractQuantity(rest)

	// 6. Remove orphaned punctuation left by the extractions.
	p.RemainingText = cleanupResidue(rest)

	return p
}

// quantityAttempt pairs an extraction pattern with its physical kind.
type quantityAttempt struct {
	re   *regexp.Regexp
	kind units.Kind
}

// Explicit-unit patterns, tried in order. Frequency precedes inductance so
// "16MHz" is never clipped to "16mH"; each pattern requires its unit
// letter so there is no ambiguity between them.
var explicitQuantityAttempts = []quantityAttempt{
	{qtyFrequencyRe, units.Frequency},
	{qtyCapacitURe, units.Capacitance},
	{qtyInductURe, units.Inductance},
	{qtyVoltageRe, units.Voltage},
	{qtyResistExplRe, units.Resistance},
}

func extractQuantity(text string) (*units.Quantity, string) {
	for _, a := range explicitQuantityAttempts {
		if m := a.re.FindStringSubmatchIndex(text); m != nil {
			token := text[m[2]:m[3]]
			if v, ok := units.Parse(a.kind, token); ok {
				q := units.New(a.kind, v)
				return &q, collapseSpaces(text[:m[0]] + " " + text[m[1]:])
			}
		}
	}

	// A bare metric suffix ("10k", "0.1u") is ambiguous on its own; it
	// counts only when the rest of the text names the component family.
	if resistanceCueRe.MatchString(text) {
		if m := qtyResistBareRe.FindStringSubmatchIndex(text); m != nil {
			if v, ok := units.ParseResistance(text[m[2]:m[3]]); ok {
				q := units.New(units.Resistance, v)
				return &q, collapseSpaces(text[:m[0]] + " " + text[m[1]:])
			}
		}
	}
	if capacitorCueRe.MatchString(text) {
		if m := qtyCapBareRe.FindStringSubmatchIndex(text); m != nil {
			if v, ok := units.ParseCapacitance(text[m[2]:m[3]]); ok {
				q := units.New(units.Capacitance, v)
				return &q, collapseSpaces(text[:m[0]] + " " + text[m[1]:])
			}
		}
	}

	return nil, text
}

// cleanupResidue drops tokens that the extractions reduced to punctuation
// or a single stray letter, so the residue is usable for full-text search.
func cleanupResidue(s string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "-,/;:")
		if f == "" {
			continue
		}
		if len(f) == 1 && !isDigit(rune(f[0])) {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
