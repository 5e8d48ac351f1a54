package db

import "math"

// Unbounded marks an open range boundary in a RangePredicate.
var Unbounded = math.Inf(1)

// TagPredicate matches a TAG field against one of several values (OR).
type TagPredicate struct {
	Field  string
	Values []string
}

// RangePredicate constrains a NUMERIC field to [Min, Max], both inclusive.
// Use -Unbounded / Unbounded for open boundaries.
type RangePredicate struct {
	Field string
	Min   float64
	Max   float64
}

// TextPredicate matches a TEXT field against one of several terms (OR).
// Terms are escaped before being sent to FT.SEARCH.
type TextPredicate struct {
	Field string
	Terms []string
}

// Query is a structured FT.SEARCH request. All predicate groups are ANDed;
// values within one predicate are ORed.
type Query struct {
	Index        string
	Tags         []TagPredicate
	Ranges       []RangePredicate
	Texts        []TextPredicate
	Offset       int
	Limit        int
	SortBy       string // NUMERIC field name; empty means no SORTBY
	SortDesc     bool
	ReturnFields []string
}

// SearchResult is the output of a search operation. Total is the full
// match count reported by the index, independent of Offset/Limit.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
