// Package search is the part search service: it interprets free-text
// queries, merges them with explicit filters and runs them through the
// catalog planner. Totals are exact; name-resolution failures surface as
// hints with suggestions, never as a silently substituted guess.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Averyy/jlcpcb-mcp/internal/domain"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/query"
	"github.com/Averyy/jlcpcb-mcp/internal/metrics"
)

// Request is one incoming search call. Explicit fields win over anything
// interpreted from Query.
type Request struct {
	Query        string
	Subcategory  string
	Package      string
	Manufacturer string
	MinStock     int
	LibraryType  string
	SortBy       string
	SortAsc      bool
	Offset       int
	Limit        int
}

// Response is one page of results with the exact total. Hint is set when
// the query needed disambiguation; Suggestions then carries candidate
// subcategory names.
type Response struct {
	Results     []*domain.ComponentRecord
	Total       int
	Interpreted *query.ParsedQuery
	Hint        string
	Suggestions []string
}

// Service handles part search.
type Service struct {
	catalog         Catalog
	defaultPageSize int
	maxPageSize     int
}

// New creates a search service.
func New(catalog Catalog, defaultPageSize, maxPageSize int) *Service {
	return &Service{
		catalog:         catalog,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// Search interprets the request and executes one catalog query.
func (s *Service) Search(ctx context.Context, req *Request) (*Response, error) {
	parsed := query.Interpret(req.Query)

	cq, err := s.plan(req, &parsed)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	page, err := s.catalog.Search(ctx, cq)
	if err != nil {
		var ambiguous *domain.AmbiguousNameError
		if errors.As(err, &ambiguous) {
			metrics.SearchesTotal.WithLabelValues("ambiguous").Inc()
			return &Response{
				Interpreted: &parsed,
				Hint: fmt.Sprintf("no subcategory matches %q; did you mean one of these?",
					ambiguous.Name),
				Suggestions: ambiguous.Candidates,
			}, nil
		}
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("search: %w", err)
	}

	metrics.SearchesTotal.WithLabelValues("ok").Inc()
	return &Response{
		Results:     page.Records,
		Total:       page.Total,
		Interpreted: &parsed,
	}, nil
}

// plan merges explicit request fields with the interpreted query into one
// catalog query. Explicit fields win.
func (s *Service) plan(req *Request, parsed *query.ParsedQuery) (*domain.CatalogQuery, error) {
	limit := req.Limit
	switch {
	case limit <= 0:
		limit = s.defaultPageSize
	case limit > s.maxPageSize:
		limit = s.maxPageSize
	}
	if req.Offset < 0 {
		return nil, fmt.Errorf("negative offset: %w", domain.ErrInvalidRequest)
	}

	cq := &domain.CatalogQuery{
		Subcategory:  req.Subcategory,
		Package:      req.Package,
		Manufacturer: req.Manufacturer,
		MinStock:     req.MinStock,
		LibraryType:  req.LibraryType,
		SortBy:       req.SortBy,
		SortAsc:      req.SortAsc,
		Offset:       req.Offset,
		Limit:        limit,
	}

	if cq.Package == "" {
		cq.Package = parsed.Package
	}
	if cq.LibraryType == "" && parsed.LibraryType != "" {
		cq.LibraryType = string(parsed.LibraryType)
	}
	cq.Mounting = parsed.MountingType
	cq.Pins = parsed.PinCountDisplay()
	cq.Quantity = parsed.Quantity
	if parsed.HasTolerance() {
		cq.MaxTolerancePct = parsed.TolerancePct
	}

	terms := make([]string, 0, 2)
	if parsed.ModelNumber != "" {
		terms = append(terms, parsed.ModelNumber)
	}
	if parsed.RemainingText != "" {
		terms = append(terms, parsed.RemainingText)
	}
	cq.Text = strings.Join(terms, " ")
	if parsed.Connector != nil {
		cq.ConnectorTerm = parsed.Connector.FTSTerm
	}

	return cq, nil
}

// GetPart fetches one part with full detail by catalog id or MPN.
func (s *Service) GetPart(ctx context.Context, id string) (*domain.ComponentRecord, error) {
	rec, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get part: %w", err)
	}
	return rec, nil
}

// Categories returns the catalog's category tree.
func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// Subcategories returns the subcategories of one category.
func (s *Service) Subcategories(ctx context.Context, category string) ([]domain.Subcategory, error) {
	subs, err := s.catalog.Subcategories(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	return subs, nil
}
