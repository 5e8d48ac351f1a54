package query

import (
	"regexp"
	"strings"
)

// ConnectorSpec carries connector hints extracted from a query: a JST
// series code, its pitch, an expected contact count, and the term that
// actually retrieves such parts from the catalog's full-text index.
type ConnectorSpec struct {
	Series  string
	PitchMM float64
	Pins    int
	FTSTerm string
}

// jstSeriesPitch maps JST wire-to-board series codes to pitch in mm,
// per the JST datasheets.
var jstSeriesPitch = map[string]float64{
	"sh": 1.0,
	"sr": 1.0,
	"gh": 1.25,
	"zh": 1.5,
	"pa": 2.0,
	"ph": 2.0,
	"eh": 2.5,
	"xh": 2.5,
	"vh": 3.96,
	"vl": 6.2,
	"bm": 1.0,
}

// brandConnectors maps maker-ecosystem brand names to the connector they
// standardize on. Qwiic, STEMMA QT and easyC are all the same physical
// JST SH 1.0mm 4-pin standard, so all three must retrieve the same parts.
var brandConnectors = map[string]ConnectorSpec{
	"qwiic":     {Series: "SH", PitchMM: 1.0, Pins: 4, FTSTerm: "SH"},
	"stemma qt": {Series: "SH", PitchMM: 1.0, Pins: 4, FTSTerm: "SH"},
	"stemmaqt":  {Series: "SH", PitchMM: 1.0, Pins: 4, FTSTerm: "SH"},
	"easyc":     {Series: "SH", PitchMM: 1.0, Pins: 4, FTSTerm: "SH"},
	"easy c":    {Series: "SH", PitchMM: 1.0, Pins: 4, FTSTerm: "SH"},
	// STEMMA (original, larger) is JST PH; pin count varies, so none set.
	"stemma": {Series: "PH", PitchMM: 2.0, FTSTerm: "PH"},
	// Grove is not JST; it uses HY2.0 2.0mm 4-pin housings.
	"grove": {PitchMM: 2.0, Pins: 4, FTSTerm: "HY2.0"},
}

// brandOrder fixes lookup order so longer brand names win over their
// prefixes ("stemma qt" before "stemma").
var brandOrder = []string{"qwiic", "stemma qt", "stemmaqt", "easy c", "easyc", "grove", "stemma"}

var (
	jstSeriesRe = regexp.MustCompile(
		`(?i)\bjst[\s-]*(sh|sr|gh|zh|pa|ph|eh|xh|vh|vl|bm)\b` +
			`|\b(sh|sr|gh|zh|pa|ph|eh|xh|vh|vl|bm)\s*(?:series|connector|plug|socket|receptacle)\b`)
	standaloneSeriesRe = regexp.MustCompile(`(?i)\b(sh|gh|zh|ph|xh|vh|eh|pa)\b`)
	jstWordRe          = regexp.MustCompile(`(?i)\bjst\b`)
	spacesRe           = regexp.MustCompile(`\s+`)
)

// extractConnector pulls a connector series or brand alias out of the
// query text. Returns nil and the unchanged text when nothing matches.
func extractConnector(text string) (*ConnectorSpec, string) {
	lower := strings.ToLower(text)

	for _, brand := range brandOrder {
		if strings.Contains(lower, brand) {
			s := brandConnectors[brand]
			re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(brand))
			remaining := collapseSpaces(re.ReplaceAllString(text, " "))
			return &s, remaining
		}
	}

	if m := jstSeriesRe.FindStringSubmatchIndex(text); m != nil {
		series := strings.ToUpper(firstGroup(text, m))
		s := ConnectorSpec{
			Series:  series,
			PitchMM: jstSeriesPitch[strings.ToLower(series)],
			FTSTerm: series,
		}
		remaining := collapseSpaces(text[:m[0]] + " " + text[m[1]:])
		return &s, remaining
	}

	// A bare series code counts only when "jst" appears elsewhere in the
	// query; "ph sensor" must not become a connector search.
	if jstWordRe.MatchString(text) {
		if m := standaloneSeriesRe.FindStringSubmatchIndex(text); m != nil {
			series := strings.ToUpper(text[m[2]:m[3]])
			s := ConnectorSpec{
				Series:  series,
				PitchMM: jstSeriesPitch[strings.ToLower(series)],
				FTSTerm: series,
			}
			remaining := text[:m[0]] + " " + text[m[1]:]
			remaining = jstWordRe.ReplaceAllString(remaining, " ")
			return &s, collapseSpaces(remaining)
		}
	}

	return nil, text
}

// firstGroup returns the text of the first non-empty capture group.
func firstGroup(text string, idx []int) string {
	for g := 1; g*2 < len(idx); g++ {
		if idx[g*2] >= 0 {
			return text[idx[g*2]:idx[g*2+1]]
		}
	}
	return ""
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}
