package query

import (
	"regexp"
	"strings"
)

// Model number patterns for component-specific part numbers.
var modelPatterns = []*regexp.Regexp{
	// Well-known families first: they are unambiguous.
	regexp.MustCompile(`(?i)\b(ESP32-[A-Z0-9]+|STM32[A-Z]\d+[A-Z0-9]*|RP2040|ATMEGA\d+[A-Z]*|PIC\d+[A-Z0-9]*)\b`),
	regexp.MustCompile(`(?i)\b(TP[45]\d{3}|AMS\d{4}|LM\d{3,4}|NE555|TL\d{3}|TPS\d{4,5})\b`),
	regexp.MustCompile(`(?i)\b(AO\d{4}|SI\d{4}|IRF\d{3,4}|IRLZ?\d{2,4}|2N\d{4}|BC\d{3})\b`),
	regexp.MustCompile(`(?i)\b(WS2812[A-Z]*|SK6812|APA102|TLC5940)\b`),
	regexp.MustCompile(`(?i)\b(1N\d{4}[A-Z]*|1SS\d{3}[A-Z]*|BAT\d{2}[A-Z]*|BAS\d{2}[A-Z]*|BAV\d{2}[A-Z]*)\b`),
	// Generic IC shape: 2-5 letters then 2-5 digits, optional suffix.
	regexp.MustCompile(`(?i)\b([A-Z]{2,5}\d{2,5}[A-Z]?\d*(?:-[A-Z0-9]+)?)\b`),
}

// commonAcronyms are tokens the generic pattern must never treat as model
// numbers.
var commonAcronyms = map[string]struct{}{
	"LED": {}, "LCD": {}, "USB": {}, "SPI": {}, "I2C": {}, "ADC": {},
	"DAC": {}, "MCU": {}, "CPU": {}, "GPU": {}, "RJ45": {}, "RJ11": {},
}

// packagePrefixes are package families whose hyphen-less spellings
// (SOT23, QFN32) would otherwise match the generic model pattern.
var packagePrefixes = []string{
	"SOT", "SOD", "SOP", "SOIC", "SSOP", "TSSOP", "MSOP", "QSOP",
	"QFN", "DFN", "QFP", "LQFP", "TQFP", "BGA", "DIP", "SIP", "TO",
}

// extractModelNumber finds a likely manufacturer model number in the
// query. Returns the model and the text with it removed, or "" and the
// unchanged text.
func extractModelNumber(text string) (string, string) {
	for _, pattern := range modelPatterns {
		locs := pattern.FindAllStringSubmatchIndex(text, -1)
		for _, m := range locs {
			model := text[m[2]:m[3]]
			upper := strings.ToUpper(model)
			if _, common := commonAcronyms[upper]; common {
				continue
			}
			if looksLikePackage(upper) {
				continue
			}
			remaining := collapseSpaces(text[:m[0]] + " " + text[m[1]:])
			return model, remaining
		}
	}
	return "", text
}

// looksLikePackage reports whether a token is a hyphen-less package name
// rather than a model number (SOT23, SOD323, QFN32).
func looksLikePackage(upper string) bool {
	for _, prefix := range packagePrefixes {
		if !strings.HasPrefix(upper, prefix) || len(upper) <= len(prefix) {
			continue
		}
		rest := upper[len(prefix):]
		digitsOnly := true
		for i, r := range rest {
			if r >= '0' && r <= '9' {
				continue
			}
			// Allow an L suffix after digits (SOT23L style).
			if r == 'L' && i > 0 {
				continue
			}
			digitsOnly = false
			break
		}
		if digitsOnly {
			return true
		}
	}
	return false
}
