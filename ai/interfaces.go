package ai

import "context"

// ValueExtractor asks an external model which values in a document answer a
// query. Implementations must be thread-safe for concurrent use.
type ValueExtractor interface {
	// ExtractValues analyzes the document against the query and returns
	// candidate (label, value) pairs. Candidates are proposals only; the
	// caller is responsible for verifying each one against the document.
	// Returns an empty slice if the model finds nothing.
	// Returns an error if the extraction call fails.
	ExtractValues(ctx context.Context, query, document string) ([]Candidate, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management.
type Provider interface {
	// ValueExtractor returns the value extraction service.
	// The returned ValueExtractor is safe for concurrent use.
	ValueExtractor() ValueExtractor

	// Close releases resources held by the provider and its services.
	Close() error
}
