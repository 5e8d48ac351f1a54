package alternatives

import (
	"sort"
	"strings"

	"github.com/Averyy/jlcpcb-mcp/internal/domain"
)

// Scoring weights. Tier dominates everything else so a fee-free part always
// outranks an extended one; the remaining weights order parts within a tier.
const (
	scoreNoFeeTier        = 1000
	scoreStockHigh        = 70 // >= 10k units
	scoreStockMid         = 50 // >= 1k units
	scoreStockLow         = 30 // >= 100 units
	scoreStockScarce      = -10
	scoreHasFootprint     = 20
	scoreSameManufacturer = 10
	scorePriceScale       = 10
	stockHighThreshold    = 10000
	stockMidThreshold     = 1000
	stockLowThreshold     = 100
)

// scoreAndRank scores every candidate against the original and sorts the
// slice in place: score descending, then stock descending, then part id
// ascending so equal candidates rank deterministically.
func scoreAndRank(original *domain.ComponentRecord, candidates []Candidate) {
	minPrice := 0.0
	for _, c := range candidates {
		if c.Part.Price > 0 && (minPrice == 0 || c.Part.Price < minPrice) {
			minPrice = c.Part.Price
		}
	}
	for i := range candidates {
		candidates[i].Score, candidates[i].ScoreDetail = score(original, candidates[i].Part, minPrice)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Part.Stock != b.Part.Stock {
			return a.Part.Stock > b.Part.Stock
		}
		return a.Part.LCSC < b.Part.LCSC
	})
}

func score(original, cand *domain.ComponentRecord, minPrice float64) (int, map[string]int) {
	detail := make(map[string]int, 5)

	if cand.LibraryTier.NoFee() {
		detail["library"] = scoreNoFeeTier
	}

	switch {
	case cand.Stock >= stockHighThreshold:
		detail["stock"] = scoreStockHigh
	case cand.Stock >= stockMidThreshold:
		detail["stock"] = scoreStockMid
	case cand.Stock >= stockLowThreshold:
		detail["stock"] = scoreStockLow
	default:
		detail["stock"] = scoreStockScarce
	}

	if cand.HasFootprint {
		detail["footprint"] = scoreHasFootprint
	}
	if original.Manufacturer != "" && strings.EqualFold(cand.Manufacturer, original.Manufacturer) {
		detail["manufacturer"] = scoreSameManufacturer
	}
	if minPrice > 0 && cand.Price > 0 {
		detail["price"] = int(scorePriceScale * minPrice / cand.Price)
	}

	total := 0
	for _, v := range detail {
		total += v
	}
	return total, detail
}
