package mcptools

import (
	"github.com/Averyy/jlcpcb-mcp/internal/domain"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/query"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/units"
	alternativesuc "github.com/Averyy/jlcpcb-mcp/internal/usecase/alternatives"
	searchuc "github.com/Averyy/jlcpcb-mcp/internal/usecase/search"
)

type partDTO struct {
	LCSC         string             `json:"lcsc"`
	MPN          string             `json:"mpn"`
	Manufacturer string             `json:"manufacturer"`
	Package      string             `json:"package,omitempty"`
	Category     string             `json:"category,omitempty"`
	Subcategory  string             `json:"subcategory,omitempty"`
	LibraryType  domain.LibraryTier `json:"library_type"`
	Stock        int                `json:"stock"`
	Price        float64            `json:"price,omitempty"`
	MinOrderQty  int                `json:"min_order_qty,omitempty"`
	Description  string             `json:"description,omitempty"`
	DatasheetURL string             `json:"datasheet_url,omitempty"`
	HasFootprint bool               `json:"has_footprint"`
	Attributes   map[string]string  `json:"attributes,omitempty"`
}

func partToDTO(rec *domain.ComponentRecord) partDTO {
	return partDTO{
		LCSC:         rec.LCSC,
		MPN:          rec.MPN,
		Manufacturer: rec.Manufacturer,
		Package:      rec.Package,
		Category:     rec.CategoryName,
		Subcategory:  rec.SubcategoryName,
		LibraryType:  rec.LibraryTier,
		Stock:        rec.Stock,
		Price:        rec.Price,
		MinOrderQty:  rec.MinOrderQty,
		Description:  rec.Description,
		DatasheetURL: rec.DatasheetURL,
		HasFootprint: rec.HasFootprint,
		Attributes:   rec.Attributes,
	}
}

func partsToDTO(recs []*domain.ComponentRecord) []partDTO {
	out := make([]partDTO, len(recs))
	for i, rec := range recs {
		out[i] = partToDTO(rec)
	}
	return out
}

// interpretedDTO shows the caller how the free-text query was read, so a
// wrong interpretation is visible instead of silently shaping results.
type interpretedDTO struct {
	Quantity     string `json:"quantity,omitempty"`
	Package      string `json:"package,omitempty"`
	PinCount     int    `json:"pin_count,omitempty"`
	Mounting     string `json:"mounting,omitempty"`
	TolerancePct string `json:"tolerance,omitempty"`
	LibraryType  string `json:"library_type,omitempty"`
	Connector    string `json:"connector,omitempty"`
	ModelNumber  string `json:"model_number,omitempty"`
	FullText     string `json:"full_text,omitempty"`
}

func interpretedToDTO(p *query.ParsedQuery) *interpretedDTO {
	if p == nil {
		return nil
	}
	dto := &interpretedDTO{
		Package:     p.Package,
		PinCount:    p.PinCount,
		Mounting:    p.MountingType,
		LibraryType: string(p.LibraryType),
		ModelNumber: p.ModelNumber,
		FullText:    p.RemainingText,
	}
	if p.Quantity != nil {
		dto.Quantity = units.FormatQuantity(*p.Quantity)
	}
	if p.HasTolerance() {
		dto.TolerancePct = units.Format(units.Percent, p.TolerancePct)
	}
	if p.Connector != nil {
		dto.Connector = p.Connector.Series
	}
	return dto
}

type searchResultDTO struct {
	Results     []partDTO       `json:"results"`
	Total       int             `json:"total"`
	Interpreted *interpretedDTO `json:"interpreted,omitempty"`
	Hint        string          `json:"hint,omitempty"`
	Suggestions []string        `json:"suggestions,omitempty"`
}

func searchToDTO(resp *searchuc.Response) searchResultDTO {
	return searchResultDTO{
		Results:     partsToDTO(resp.Results),
		Total:       resp.Total,
		Interpreted: interpretedToDTO(resp.Interpreted),
		Hint:        resp.Hint,
		Suggestions: resp.Suggestions,
	}
}

type candidateDTO struct {
	Part            partDTO        `json:"part"`
	Score           int            `json:"score"`
	ScoreDetail     map[string]int `json:"score_detail,omitempty"`
	SpecsVerified   []string       `json:"specs_verified,omitempty"`
	SpecsUnverified []string       `json:"specs_unverified,omitempty"`
}

// alternativesDTO is the verified-compatibility shape.
type alternativesDTO struct {
	Original      partDTO        `json:"original"`
	Alternatives  []candidateDTO `json:"alternatives"`
	Confidence    string         `json:"confidence,omitempty"`
	EmptyReason   string         `json:"empty_reason,omitempty"`
	FeeEliminated bool           `json:"assembly_fee_eliminated,omitempty"`
	PriceDelta    float64        `json:"price_delta_per_unit,omitempty"`
}

// similarPartsDTO is the degraded shape for categories without rules. The
// note makes the lack of verification explicit in the payload itself.
type similarPartsDTO struct {
	Original      partDTO   `json:"original"`
	SimilarParts  []partDTO `json:"similar_parts"`
	SpecsToVerify []string  `json:"specs_to_verify,omitempty"`
	Note          string    `json:"note"`
}

const similarPartsNote = "no compatibility rule exists for this category; " +
	"these parts share the subcategory only and are NOT verified alternatives"

func alternativesToDTO(resp *alternativesuc.Response) any {
	if resp.SimilarParts != nil {
		return similarPartsDTO{
			Original:      partToDTO(resp.SimilarParts.Original),
			SimilarParts:  partsToDTO(resp.SimilarParts.SimilarParts),
			SpecsToVerify: resp.SimilarParts.SpecsToVerify,
			Note:          similarPartsNote,
		}
	}
	alt := resp.Alternatives
	dto := alternativesDTO{
		Original:      partToDTO(alt.Original),
		Alternatives:  make([]candidateDTO, len(alt.Alternatives)),
		Confidence:    alt.Confidence,
		EmptyReason:   alt.EmptyReason,
		FeeEliminated: alt.FeeEliminated,
		PriceDelta:    alt.PriceDelta,
	}
	for i, c := range alt.Alternatives {
		dto.Alternatives[i] = candidateDTO{
			Part:            partToDTO(c.Part),
			Score:           c.Score,
			ScoreDetail:     c.ScoreDetail,
			SpecsVerified:   c.SpecsVerified,
			SpecsUnverified: c.SpecsUnverified,
		}
	}
	return dto
}

type subcategoryDTO struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Count    int    `json:"count,omitempty"`
}

type categoryDTO struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Count         int              `json:"count,omitempty"`
	Subcategories []subcategoryDTO `json:"subcategories"`
}

func categoriesToDTO(cats []domain.Category) []categoryDTO {
	out := make([]categoryDTO, len(cats))
	for i, c := range cats {
		subs := make([]subcategoryDTO, len(c.Subcategories))
		for j, s := range c.Subcategories {
			subs[j] = subcategoryDTO{ID: s.ID, Name: s.Name, Count: s.Count}
		}
		out[i] = categoryDTO{ID: c.ID, Name: c.Name, Count: c.Count, Subcategories: subs}
	}
	return out
}

func subcategoriesToDTO(subs []domain.Subcategory) []subcategoryDTO {
	out := make([]subcategoryDTO, len(subs))
	for i, s := range subs {
		out[i] = subcategoryDTO{ID: s.ID, Name: s.Name, Category: s.CategoryName, Count: s.Count}
	}
	return out
}
