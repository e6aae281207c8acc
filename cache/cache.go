package cache

import (
	"context"
	"time"

	"github.com/poiesic/pinpoint/core"
)

// Cache stores ranked result lists under content-derived keys. The engine is
// agnostic to the implementation; entries may be evicted at any time.
type Cache interface {
	// GetResults returns the results stored under key.
	// Returns ErrNotFound when the key is absent or expired.
	GetResults(ctx context.Context, key core.ID) ([]*core.SearchResult, error)

	// SetResults stores results under key for at most ttl. A ttl of zero
	// stores the entry without expiry.
	SetResults(ctx context.Context, key core.ID, results []*core.SearchResult, ttl time.Duration) error

	// Close releases resources held by the cache.
	Close() error
}

// Key derives the cache key for a search: any change to the document, the
// query, or the type hint produces a different key.
func Key(document, query string, hint core.ValueType) core.ID {
	return core.IDFromContent(document + "\x00" + query + "\x00" + hint.String())
}
