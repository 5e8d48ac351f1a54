package catalog

import (
	"regexp"
	"strings"
)

// Packaging and ordering suffixes distributors append to part numbers but
// BOMs usually omit. Stripped once, longest form first.
var mpnTrailingSuffixes = []string{
	"#PBFREE",
	"-PBFREE",
	"#PBF",
	"-PBF",
	"-TR",
	"/TR",
	"+TR",
	"-CT",
	"-ND",
	"-DK",
	"+T",
	"-T",
}

// Microchip tape-and-reel convention inserts a T before the variant
// suffix: MCP73831-2ACI/MC orders as MCP73831T-2ACI/MC.
var mpnInsertTRe = regexp.MustCompile(`^([A-Z]{2,5}\d{2,5})(-[A-Z0-9/]+)$`)

var lcscIDRe = regexp.MustCompile(`^[Cc]\d+$`)

// looksLikeLCSC reports whether the identifier is a catalog part id
// rather than a manufacturer part number.
func looksLikeLCSC(id string) bool {
	return lcscIDRe.MatchString(id)
}

// mpnVariants generates lookup variants for a manufacturer part number,
// in order of preference: the original, the suffix-stripped form, and
// tape-and-reel T-insertion forms.
func mpnVariants(q string) []string {
	variants := []string{q}
	seen := map[string]struct{}{strings.ToUpper(q): {}}
	add := func(v string) {
		if _, dup := seen[strings.ToUpper(v)]; dup {
			return
		}
		seen[strings.ToUpper(v)] = struct{}{}
		variants = append(variants, v)
	}

	working := strings.ToUpper(q)
	stripped := working
	for _, suffix := range mpnTrailingSuffixes {
		if strings.HasSuffix(stripped, suffix) {
			stripped = strings.TrimSuffix(stripped, suffix)
			break
		}
	}
	add(stripped)

	for _, base := range []string{working, stripped} {
		m := mpnInsertTRe.FindStringSubmatch(base)
		if m == nil || strings.HasSuffix(m[1], "T") {
			continue
		}
		add(m[1] + "T" + m[2])
	}

	return variants
}
