package rank

import "errors"

var (
	// ErrInvalidWeights is returned when the scoring weights do not sum to 1.
	ErrInvalidWeights = errors.New("scoring weights must sum to 1")
)
