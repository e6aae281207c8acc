package cache

import "errors"

var (
	// ErrNotFound is returned when no entry exists for the key.
	ErrNotFound = errors.New("cache entry not found")

	// ErrCorruptEntry is returned when a stored entry cannot be decoded.
	ErrCorruptEntry = errors.New("corrupt cache entry")
)
