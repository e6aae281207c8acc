package mock

import (
	"context"
	"strings"

	"github.com/poiesic/pinpoint/ai"
)

// MockValueExtractor is a test double for ai.ValueExtractor.
// It allows custom behavior injection via function fields.
type MockValueExtractor struct {
	// ExtractValuesFunc is called by ExtractValues if set.
	// If nil, uses a simple default extraction.
	ExtractValuesFunc func(ctx context.Context, query, document string) ([]ai.Candidate, error)

	callCount int
}

// NewMockValueExtractor creates a mock value extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockValueExtractor() *MockValueExtractor {
	return &MockValueExtractor{}
}

// ExtractValues returns simple mock candidates.
// Default behavior: proposes the first digit-bearing token of the document
// as a single candidate labeled with the query.
func (m *MockValueExtractor) ExtractValues(ctx context.Context, query, document string) ([]ai.Candidate, error) {
	m.callCount++

	if m.ExtractValuesFunc != nil {
		return m.ExtractValuesFunc(ctx, query, document)
	}

	for _, word := range strings.Fields(document) {
		cleaned := strings.Trim(word, ".,!?;:\"'()[]{}")
		if cleaned == "" || !strings.ContainsAny(cleaned, "0123456789") {
			continue
		}
		return []ai.Candidate{{
			Label: query,
			Value: cleaned,
			Start: -1,
			End:   -1,
		}}, nil
	}

	return []ai.Candidate{}, nil
}

// CallCount returns the number of times ExtractValues was called.
func (m *MockValueExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockValueExtractor) Reset() {
	m.callCount = 0
	m.ExtractValuesFunc = nil
}
