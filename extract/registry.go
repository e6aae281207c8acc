package extract

import (
	"regexp"

	"github.com/poiesic/pinpoint/core"
)

// Entry describes how to extract and verify one value type: the patterns
// that locate candidates, the validator that gates them, the canonicalizer
// that produces a comparable form, and a fixed confidence prior.
type Entry struct {
	Type          core.ValueType
	Patterns      []*regexp.Regexp
	Validate      func(string) bool
	Canonical     func(string) string
	Confidence    float64
	ContextWindow int
}

// Registry holds the extraction entries, iterated uniformly by Extract.
type Registry struct {
	entries []Entry
	byType  map[core.ValueType]*Entry
}

// NewRegistry builds a registry from the given entries. Later entries for a
// duplicate type shadow earlier ones in type lookups.
func NewRegistry(entries []Entry) *Registry {
	r := &Registry{
		entries: entries,
		byType:  make(map[core.ValueType]*Entry, len(entries)),
	}
	for i := range r.entries {
		r.byType[r.entries[i].Type] = &r.entries[i]
	}
	return r
}

// DefaultRegistry returns the registry of built-in entity types.
func DefaultRegistry() *Registry {
	return NewRegistry(defaultEntries())
}

// Entries returns the registered entries in extraction order.
func (r *Registry) Entries() []Entry {
	return r.entries
}

// ValidateValue reports whether value is a valid instance of the type.
// Types without a registered validator accept any non-empty value.
func (r *Registry) ValidateValue(t core.ValueType, value string) bool {
	e, ok := r.byType[t]
	if !ok || e.Validate == nil {
		return value != ""
	}
	return e.Validate(value)
}

// CanonicalValue returns the canonical comparable form of value for the type.
// Types without a registered canonicalizer fall back to the input unchanged.
func (r *Registry) CanonicalValue(t core.ValueType, value string) string {
	e, ok := r.byType[t]
	if !ok || e.Canonical == nil {
		return value
	}
	return e.Canonical(value)
}

// ConfidenceFor returns the confidence prior for the type, or 0.5 when the
// type is not registered.
func (r *Registry) ConfidenceFor(t core.ValueType) float64 {
	if e, ok := r.byType[t]; ok {
		return e.Confidence
	}
	return 0.5
}
