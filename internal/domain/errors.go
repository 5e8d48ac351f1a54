package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals that a part identifier did not resolve.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousName signals a category or subcategory name with multiple candidates.
	ErrAmbiguousName = errors.New("ambiguous name")
	// ErrStoreUnavailable signals a catalog store failure, surfaced verbatim.
	ErrStoreUnavailable = errors.New("catalog store unavailable")
	// ErrInvalidRequest signals malformed request parameters.
	ErrInvalidRequest = errors.New("invalid request")
)

// AmbiguousNameError wraps ErrAmbiguousName with the candidate names so the
// caller can disambiguate instead of the engine guessing.
type AmbiguousNameError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("%s: %q matches %s",
		ErrAmbiguousName.Error(), e.Name, strings.Join(e.Candidates, ", "))
}

func (e *AmbiguousNameError) Unwrap() error { return ErrAmbiguousName }

// NewAmbiguousName creates an ambiguous name error with suggestions.
func NewAmbiguousName(name string, candidates []string) error {
	return &AmbiguousNameError{Name: name, Candidates: candidates}
}
