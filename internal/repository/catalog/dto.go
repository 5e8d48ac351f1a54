package catalog

import (
	"encoding/json"
	"strconv"

	"github.com/Averyy/jlcpcb-mcp/internal/domain"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/compat"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/spec"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/units"
)

// Hash field names for one part record.
const (
	fieldLCSC            = "lcsc"
	fieldMPN             = "mpn"
	fieldManufacturer    = "mfr"
	fieldPackage         = "package"
	fieldCategoryID      = "cat_id"
	fieldCategoryName    = "cat"
	fieldSubcategoryID   = "subcat_id"
	fieldSubcategoryName = "subcat"
	fieldTier            = "tier"
	fieldStock           = "stock"
	fieldPrice           = "price"
	fieldMinOrderQty     = "moq"
	fieldDescription     = "desc"
	fieldDatasheet       = "datasheet"
	fieldFootprint       = "footprint"
	fieldMounting        = "mounting"
	fieldPins            = "pins"
	fieldAttrs           = "attrs"
)

// Typed numeric fields materialized at load time so value filters run as
// indexed range predicates instead of substring matches on the attribute
// blob. One field per physical kind. The subcategory's primary spec fills
// its kind field first; the remaining kinds fill from an allowlist of
// headline rating attributes, so a capacitor carries volt_v alongside
// cap_f while ambiguous names like "Input Voltage" stay out of the index.
const (
	fieldResOhms = "res_ohms"
	fieldCapF    = "cap_f"
	fieldIndH    = "ind_h"
	fieldVoltV   = "volt_v"
	fieldAmpA    = "amp_a"
	fieldWattW   = "watt_w"
	fieldFreqHz  = "freq_hz"
	fieldTolPct  = "tol_pct"
)

// Attribute names consulted when materializing filterable fields.
const (
	attrMounting  = "Mounting Type"
	attrPins      = "Number of Pins"
	attrContacts  = "Number of Contacts"
	attrTolerance = "Tolerance"
)

// kindAttrPriority lists, per physical kind, the attribute names that
// denote a part's headline rating for that kind, in lookup order. Only
// unambiguous names appear here: an LDO's "Input Voltage" or a diode's
// "Forward Voltage" would collide with the rating a query like
// "25V regulator" means, so those never materialize.
var kindAttrPriority = map[units.Kind][]string{
	units.Resistance:  {"Resistance"},
	units.Capacitance: {"Capacitance"},
	units.Inductance:  {"Inductance"},
	units.Voltage: {
		"Voltage Rating", "Rated Voltage", "Voltage Rated",
		"Voltage - Rated", "Output Voltage", "Zener Voltage",
	},
	units.Current: {
		"Rated Current", "Current Rating", "Output Current",
		"Forward Current",
	},
	units.Power: {
		"Power(Watts)", "Power", "Power Dissipation", "Rated Power",
	},
	units.Frequency: {"Frequency", "Operating Frequency"},
}

// kindField maps a physical kind to its numeric index field.
func kindField(k units.Kind) (string, bool) {
	switch k {
	case units.Resistance:
		return fieldResOhms, true
	case units.Capacitance:
		return fieldCapF, true
	case units.Inductance:
		return fieldIndH, true
	case units.Voltage:
		return fieldVoltV, true
	case units.Current:
		return fieldAmpA, true
	case units.Power:
		return fieldWattW, true
	case units.Frequency:
		return fieldFreqHz, true
	case units.Percent:
		return fieldTolPct, true
	default:
		return "", false
	}
}

// buildHashFields flattens a component record into the HSET field map,
// computing the materialized filter fields as it goes.
func buildHashFields(rec *domain.ComponentRecord, reg *spec.Registry, rules *compat.Table) (map[string]string, error) {
	m := map[string]string{
		fieldLCSC:            rec.LCSC,
		fieldMPN:             rec.MPN,
		fieldManufacturer:    rec.Manufacturer,
		fieldPackage:         rec.Package,
		fieldCategoryID:      strconv.Itoa(rec.CategoryID),
		fieldCategoryName:    rec.CategoryName,
		fieldSubcategoryID:   strconv.Itoa(rec.SubcategoryID),
		fieldSubcategoryName: rec.SubcategoryName,
		fieldTier:            rec.LibraryTier.Code(),
		fieldStock:           strconv.Itoa(rec.Stock),
		fieldPrice:           strconv.FormatFloat(rec.Price, 'f', -1, 64),
		fieldMinOrderQty:     strconv.Itoa(rec.MinOrderQty),
		fieldDescription:     rec.Description,
	}
	if rec.DatasheetURL != "" {
		m[fieldDatasheet] = rec.DatasheetURL
	}
	if rec.HasFootprint {
		m[fieldFootprint] = "1"
	}

	if len(rec.Attributes) > 0 {
		data, err := json.Marshal(rec.Attributes)
		if err != nil {
			return nil, err
		}
		m[fieldAttrs] = string(data)
	}

	if v, ok := rec.Attribute(attrMounting); ok {
		m[fieldMounting] = v
	}
	if v, ok := rec.Attribute(attrPins); ok {
		m[fieldPins] = v
	} else if v, ok := rec.Attribute(attrContacts); ok {
		m[fieldPins] = v
	}
	if raw, ok := rec.Attribute(attrTolerance); ok {
		if pct, ok := units.ParseTolerance(raw); ok {
			m[fieldTolPct] = formatNumeric(pct)
		}
	}

	if rule, ok := rules.Lookup(rec.SubcategoryName); ok {
		if kind, ok := reg.KindOf(rule.Primary); ok {
			if field, ok := kindField(kind); ok {
				if raw, ok := rec.Attribute(rule.Primary); ok {
					if v, ok := units.Parse(kind, raw); ok {
						m[field] = formatNumeric(v)
					}
				}
			}
		}
	}

	// Fill the remaining kind fields from headline rating attributes so a
	// filter like "25V capacitor" can range over volt_v on parts whose
	// primary spec is a different kind. The primary always wins its field.
	for kind, names := range kindAttrPriority {
		field, ok := kindField(kind)
		if !ok {
			continue
		}
		if _, done := m[field]; done {
			continue
		}
		for _, name := range names {
			raw, ok := rec.Attribute(name)
			if !ok {
				continue
			}
			if v, ok := units.Parse(kind, raw); ok {
				m[field] = formatNumeric(v)
				break
			}
		}
	}

	return m, nil
}

// parseHashFields rebuilds a component record from its stored hash.
// Malformed numeric fields degrade to zero values; catalog data never
// aborts a read.
func parseHashFields(m map[string]string) *domain.ComponentRecord {
	rec := &domain.ComponentRecord{
		LCSC:            m[fieldLCSC],
		MPN:             m[fieldMPN],
		Manufacturer:    m[fieldManufacturer],
		Package:         m[fieldPackage],
		CategoryName:    m[fieldCategoryName],
		SubcategoryName: m[fieldSubcategoryName],
		LibraryTier:     domain.ParseLibraryTier(m[fieldTier]),
		Description:     m[fieldDescription],
		DatasheetURL:    m[fieldDatasheet],
		HasFootprint:    m[fieldFootprint] == "1",
	}
	rec.CategoryID, _ = strconv.Atoi(m[fieldCategoryID])
	rec.SubcategoryID, _ = strconv.Atoi(m[fieldSubcategoryID])
	rec.Stock, _ = strconv.Atoi(m[fieldStock])
	rec.MinOrderQty, _ = strconv.Atoi(m[fieldMinOrderQty])
	rec.Price, _ = strconv.ParseFloat(m[fieldPrice], 64)

	if raw := m[fieldAttrs]; raw != "" {
		attrs := make(map[string]string)
		if err := json.Unmarshal([]byte(raw), &attrs); err == nil {
			rec.Attributes = attrs
		}
	}
	return rec
}

func formatNumeric(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// categoryDTO is the KV cache shape for the category tree.
type categoryDTO struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Count         int              `json:"count"`
	Subcategories []subcategoryDTO `json:"subcategories"`
}

type subcategoryDTO struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	CategoryID   int    `json:"category_id"`
	CategoryName string `json:"category_name"`
	Count        int    `json:"count"`
}

func categoriesToDTO(cats []domain.Category) []categoryDTO {
	out := make([]categoryDTO, 0, len(cats))
	for _, c := range cats {
		dto := categoryDTO{ID: c.ID, Name: c.Name, Count: c.Count}
		for _, s := range c.Subcategories {
			dto.Subcategories = append(dto.Subcategories, subcategoryDTO{
				ID:           s.ID,
				Name:         s.Name,
				CategoryID:   s.CategoryID,
				CategoryName: s.CategoryName,
				Count:        s.Count,
			})
		}
		out = append(out, dto)
	}
	return out
}

func categoriesFromDTO(dtos []categoryDTO) []domain.Category {
	out := make([]domain.Category, 0, len(dtos))
	for _, dto := range dtos {
		c := domain.Category{ID: dto.ID, Name: dto.Name, Count: dto.Count}
		for _, s := range dto.Subcategories {
			c.Subcategories = append(c.Subcategories, domain.Subcategory{
				ID:           s.ID,
				Name:         s.Name,
				CategoryID:   s.CategoryID,
				CategoryName: s.CategoryName,
				Count:        s.Count,
			})
		}
		out = append(out, c)
	}
	return out
}
