package query

import (
	"regexp"
	"strings"
)

var (
	// Chip packages: imperial footprint codes.
	chipPackageRe = regexp.MustCompile(`\b(01005|0201|0402|0603|0805|1206|1210|1812|2010|2512)\b`)

	// Leaded / IC packages: family prefix plus pin or variant suffix.
	icPackageRe = regexp.MustCompile(
		`(?i)\b(sot|sod|soic|sop|ssop|tssop|msop|qsop|qfn|dfn|qfp|lqfp|tqfp|bga|dip|sip|to)[- ]?(\d+[a-z0-9-]*)\b`)

	// Connector family names that look like packages but are not: the
	// catalog's package field holds a generic mounting designation for
	// these, so the token must stay in the text for full-text search.
	connectorTokenRe = regexp.MustCompile(`(?i)\b(usb(-[abc])?|type-c|micro-?usb|mini-?usb|rj45|rj11|hdmi|sma|u\.fl|ipex)\b`)

	throughHoleRe = regexp.MustCompile(`(?i)\b(through[- ]?hole|thru[- ]?hole|tht|pth|radial|axial)\b`)
	smdRe         = regexp.MustCompile(`(?i)\b(smd|smt|surface[- ]?mount(ed)?)\b`)

	pinCountRe = regexp.MustCompile(
		`(?i)\b(\d{1,3})\s*(?:-?\s*(?:p|pin|pins|pos|position|positions|way|ways|contacts?))?\s+(header|connector|terminal|socket|receptacle|plug|jack)\b`)

	usbFamilyRe = regexp.MustCompile(`(?i)\b(usb|type-c)\b`)
)

// packageFamilies maps a package family token to its electrically
// equivalent variants. Used by the planner for expansion; a fully
// specific package string is never expanded.
var packageFamilies = map[string][]string{
	"SOT-23":  {"SOT-23", "SOT-23-3", "SOT-23-3L"},
	"SOD-123": {"SOD-123", "SOD-123F", "SOD-123FL"},
	"TO-252":  {"TO-252", "TO-252-2", "TO-252-3"},
	"TO-263":  {"TO-263", "TO-263-2", "TO-263-3"},
}

// PackageVariants returns the known electrical-equivalent variants for a
// package family token, or nil when the token is already fully specific.
func PackageVariants(pkg string) []string {
	variants, ok := packageFamilies[strings.ToUpper(pkg)]
	if !ok {
		return nil
	}
	return variants
}

// extractPackage finds a package token in the text. Connector-family
// tokens are masked first so "USB-C connector" is never misread as a
// package. Returns the token and the text with it removed.
func extractPackage(text string) (string, string) {
	masked := connectorTokenRe.ReplaceAllStringFunc(text, func(s string) string {
		return strings.Repeat("\x00", len(s))
	})

	if loc := chipPackageRe.FindStringIndex(masked); loc != nil {
		pkg := text[loc[0]:loc[1]]
		return pkg, collapseSpaces(text[:loc[0]] + " " + text[loc[1]:])
	}

	if m := icPackageRe.FindStringSubmatchIndex(masked); m != nil {
		family := strings.ToUpper(text[m[2]:m[3]])
		suffix := strings.ToUpper(text[m[4]:m[5]])
		pkg := family + "-" + suffix
		return pkg, collapseSpaces(text[:m[0]] + " " + text[m[1]:])
	}

	return "", text
}

// extractMounting finds a mounting-type token and maps its alias family to
// the catalog's canonical value.
func extractMounting(text string) (string, string) {
	if loc := throughHoleRe.FindStringIndex(text); loc != nil {
		return MountingThroughHole, collapseSpaces(text[:loc[0]] + " " + text[loc[1]:])
	}
	if loc := smdRe.FindStringIndex(text); loc != nil {
		return MountingSMD, collapseSpaces(text[:loc[0]] + " " + text[loc[1]:])
	}
	return "", text
}

// extractPinCount finds a standalone integer immediately preceding a
// connector-class keyword. The keyword stays in the text (it still names
// the category); only the count phrase is removed.
func extractPinCount(text string) (int, string) {
	m := pinCountRe.FindStringSubmatchIndex(text)
	if m == nil {
		return 0, text
	}
	n := atoiSafe(text[m[2]:m[3]])
	if n <= 0 {
		return 0, text
	}
	// Keep the connector keyword (group 2), drop the count phrase.
	remaining := text[:m[0]] + text[m[4]:m[5]] + text[m[1]:]
	return n, collapseSpaces(remaining)
}

// CountSpecName returns the catalog attribute that holds the contact
// count for the interpreted query: USB-family connectors name it
// differently than generic headers.
func (p *ParsedQuery) CountSpecName() string {
	if usbFamilyRe.MatchString(p.RemainingText) {
		return "Number of Contacts"
	}
	return "Number of Pins"
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
