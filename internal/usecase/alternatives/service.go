// Package alternatives implements the drop-in replacement pipeline: fetch
// the original part, resolve its subcategory's compatibility rule, search
// same-value candidates, verify every ruled attribute, then score and rank
// the survivors. Subcategories without a rule degrade to a similar-parts
// listing that never claims verified compatibility.
package alternatives

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Averyy/jlcpcb-mcp/internal/domain"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/compat"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/spec"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/units"
	"github.com/Averyy/jlcpcb-mcp/internal/metrics"
)

// Pipeline defaults.
const (
	// DefaultLimit is the number of alternatives returned when the request
	// does not say otherwise.
	DefaultLimit = 5
	// overfetchFactor widens the candidate search so that compatibility
	// rejections do not starve the result page. It is a rejection
	// allowance only; correctness never depends on it.
	overfetchFactor = 5
)

// Option adjusts service behavior.
type Option func(*Service)

// WithOverfetchFactor overrides the candidate search multiplier.
func WithOverfetchFactor(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.overfetch = n
		}
	}
}

// Empty-result reasons.
const (
	ReasonAlreadyOptimal  = "already_optimal"
	ReasonNoSearchResults = "no_search_results"
	ReasonNoneCompatible  = "none_compatible"
)

// Confidence levels for a non-empty alternatives response.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)

// Request selects the original part and constrains the candidate search.
type Request struct {
	// PartID is an LCSC id or a manufacturer part number.
	PartID string
	// MinStock drops candidates below the threshold. Zero means no floor.
	MinStock int
	// SamePackage restricts candidates to the original's package.
	SamePackage bool
	// LibraryType restricts candidate tiers ("basic", "preferred",
	// "extended", "no_fee"). Empty means any tier.
	LibraryType string
	// Limit caps returned alternatives. Zero means DefaultLimit.
	Limit int
}

// Candidate is one verified, scored alternative.
type Candidate struct {
	Part *domain.ComponentRecord
	// SpecsVerified lists the attributes the engine confirmed compatible.
	SpecsVerified []string
	// SpecsUnverified lists attributes the engine could not parse on one
	// side. The candidate passed, but these need a human check.
	SpecsUnverified []string
	Score           int
	ScoreDetail     map[string]int
}

// AlternativesResponse is the verified-compatibility result shape, returned
// only for subcategories with a compatibility rule.
type AlternativesResponse struct {
	Original     *domain.ComponentRecord
	Alternatives []Candidate
	// Confidence is high when every returned candidate verified cleanly,
	// medium when any carries unverified specs.
	Confidence string
	// EmptyReason explains an empty Alternatives list.
	EmptyReason string
	// FeeEliminated is set when the original carries an assembly fee and
	// the top alternative does not.
	FeeEliminated bool
	// PriceDelta is original unit price minus the top alternative's.
	// Positive means the alternative is cheaper.
	PriceDelta float64
}

// SimilarPartsResponse is the degraded shape for unsupported subcategories.
// Parts listed here share the subcategory and search hints only; the engine
// has verified nothing.
type SimilarPartsResponse struct {
	Original     *domain.ComponentRecord
	SimilarParts []*domain.ComponentRecord
	// SpecsToVerify names the original's attributes a human must compare
	// before substituting.
	SpecsToVerify []string
}

// Response carries exactly one of the two result shapes.
type Response struct {
	Alternatives *AlternativesResponse
	SimilarParts *SimilarPartsResponse
}

// Service runs the alternatives pipeline.
type Service struct {
	catalog   Catalog
	rules     *compat.Table
	registry  *spec.Registry
	matcher   *spec.Matcher
	overfetch int
}

// New builds an alternatives service.
func New(catalog Catalog, rules *compat.Table, registry *spec.Registry, matcher *spec.Matcher, opts ...Option) *Service {
	s := &Service{
		catalog:   catalog,
		rules:     rules,
		registry:  registry,
		matcher:   matcher,
		overfetch: overfetchFactor,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Find locates drop-in alternatives for the part named by req.PartID.
func (s *Service) Find(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, outcome, err := s.find(ctx, req)
	metrics.AlternativesTotal.WithLabelValues(outcome).Inc()
	metrics.AlternativesDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	return resp, err
}

func (s *Service) find(ctx context.Context, req Request) (*Response, string, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	original, err := s.catalog.GetByID(ctx, strings.TrimSpace(req.PartID))
	if err != nil {
		return nil, "error", fmt.Errorf("fetch original part: %w", err)
	}

	rule, supported := s.rules.Lookup(original.SubcategoryName)
	if !supported {
		resp, err := s.similarParts(ctx, original, req, limit)
		if err != nil {
			return nil, "error", err
		}
		return &Response{SimilarParts: resp}, "similar_parts", nil
	}

	page, err := s.catalog.Search(ctx, s.candidateQuery(original, rule, req, limit))
	if err != nil {
		return nil, "error", fmt.Errorf("search candidates: %w", err)
	}

	candidates := s.filter(original, rule, page.Records)
	if len(candidates) == 0 {
		reason, outcome := emptyReason(original, len(page.Records))
		return &Response{Alternatives: &AlternativesResponse{
			Original:    original,
			Confidence:  ConfidenceHigh,
			EmptyReason: reason,
		}}, outcome, nil
	}

	scoreAndRank(original, candidates)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	resp := &AlternativesResponse{
		Original:     original,
		Alternatives: candidates,
		Confidence:   confidence(candidates),
	}
	top := candidates[0].Part
	resp.FeeEliminated = !original.LibraryTier.NoFee() && top.LibraryTier.NoFee()
	if original.Price > 0 && top.Price > 0 {
		resp.PriceDelta = original.Price - top.Price
	}
	return &Response{Alternatives: resp}, "found", nil
}

// candidateQuery plans the same-subcategory search. A numeric primary spec
// becomes a typed value range so pagination stays correct; categorical and
// special primaries fall back to a free-text hint.
func (s *Service) candidateQuery(original *domain.ComponentRecord, rule compat.Rule, req Request, limit int) *domain.CatalogQuery {
	q := &domain.CatalogQuery{
		SubcategoryID: original.SubcategoryID,
		MinStock:      req.MinStock,
		LibraryType:   req.LibraryType,
		SortBy:        domain.SortByStock,
		Limit:         limit * s.overfetch,
	}
	if req.SamePackage {
		q.Package = original.Package
	}
	raw, ok := original.Attribute(rule.Primary)
	if !ok {
		return q
	}
	if kind, numeric := s.registry.KindOf(rule.Primary); numeric {
		if v, parsed := units.Parse(kind, raw); parsed {
			qty := units.New(kind, v)
			q.Quantity = &qty
			return q
		}
		metrics.UnparseableSpecsTotal.WithLabelValues(rule.Primary).Inc()
	}
	q.Text = raw
	return q
}

// filter verifies the primary spec and the rule's attribute checks against
// every candidate. Mismatches drop; unparseable comparisons pass flagged,
// never silently excluding parts the engine cannot judge.
func (s *Service) filter(original *domain.ComponentRecord, rule compat.Rule, records []*domain.ComponentRecord) []Candidate {
	out := make([]Candidate, 0, len(records))
	for _, rec := range records {
		if strings.EqualFold(rec.LCSC, original.LCSC) {
			continue
		}
		cand, ok := s.verify(original, rule, rec)
		if ok {
			out = append(out, cand)
		}
	}
	return out
}

func (s *Service) verify(original *domain.ComponentRecord, rule compat.Rule, rec *domain.ComponentRecord) (Candidate, bool) {
	cand := Candidate{Part: rec}

	if !s.check(&cand, rule.Primary, "primary", func(a, b string) spec.Outcome {
		return s.matcher.ValueMatch(rule.Primary, a, b)
	}, original, rec) {
		return Candidate{}, false
	}
	for _, name := range rule.MustMatch {
		if !s.check(&cand, name, "must_match", func(a, b string) spec.Outcome {
			return s.matcher.ValueMatch(name, a, b)
		}, original, rec) {
			return Candidate{}, false
		}
	}
	names := make([]string, 0, len(rule.SameOrBetter))
	for name := range rule.SameOrBetter {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		dir := rule.SameOrBetter[name]
		if !s.check(&cand, name, "same_or_better", func(a, b string) spec.Outcome {
			return s.matcher.SameOrBetter(name, a, b, dir)
		}, original, rec) {
			return Candidate{}, false
		}
	}
	return cand, true
}

// check runs one attribute comparison and records the outcome on the
// candidate. A missing attribute on either side is unverifiable, not a
// rejection.
func (s *Service) check(cand *Candidate, name, stage string, cmp func(a, b string) spec.Outcome, original, rec *domain.ComponentRecord) bool {
	origVal, origOK := original.Attribute(name)
	candVal, candOK := rec.Attribute(name)
	if !origOK || !candOK {
		cand.SpecsUnverified = append(cand.SpecsUnverified, name)
		return true
	}
	switch cmp(origVal, candVal) {
	case spec.Matched:
		cand.SpecsVerified = append(cand.SpecsVerified, name)
		return true
	case spec.Mismatched:
		metrics.CandidatesFiltered.WithLabelValues(stage).Inc()
		return false
	default:
		metrics.UnparseableSpecsTotal.WithLabelValues(name).Inc()
		cand.SpecsUnverified = append(cand.SpecsUnverified, name)
		return true
	}
}

// similarParts serves subcategories without a compatibility rule: a plain
// same-subcategory search plus the attribute names a human must compare.
func (s *Service) similarParts(ctx context.Context, original *domain.ComponentRecord, req Request, limit int) (*SimilarPartsResponse, error) {
	// One extra row covers the original showing up in its own results.
	q := &domain.CatalogQuery{
		SubcategoryID: original.SubcategoryID,
		MinStock:      req.MinStock,
		LibraryType:   req.LibraryType,
		SortBy:        domain.SortByStock,
		Limit:         limit + 1,
	}
	if req.SamePackage {
		q.Package = original.Package
	}
	page, err := s.catalog.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search similar parts: %w", err)
	}
	parts := make([]*domain.ComponentRecord, 0, len(page.Records))
	for _, rec := range page.Records {
		if strings.EqualFold(rec.LCSC, original.LCSC) {
			continue
		}
		parts = append(parts, rec)
		if len(parts) == limit {
			break
		}
	}
	verify := make([]string, 0, len(original.Attributes))
	for name := range original.Attributes {
		verify = append(verify, name)
	}
	sort.Strings(verify)
	return &SimilarPartsResponse{
		Original:      original,
		SimilarParts:  parts,
		SpecsToVerify: verify,
	}, nil
}

func emptyReason(original *domain.ComponentRecord, searched int) (reason, outcome string) {
	switch {
	case original.LibraryTier.NoFee():
		return ReasonAlreadyOptimal, ReasonAlreadyOptimal
	case searched == 0:
		return ReasonNoSearchResults, ReasonNoSearchResults
	default:
		return ReasonNoneCompatible, ReasonNoneCompatible
	}
}

func confidence(candidates []Candidate) string {
	for _, c := range candidates {
		if len(c.SpecsUnverified) > 0 {
			return ConfidenceMedium
		}
	}
	return ConfidenceHigh
}
