package vector

import "errors"

var (
	// ErrDegenerateVector is returned when a vector with zero or non-finite
	// norm is presented for normalization.
	ErrDegenerateVector = errors.New("degenerate vector")

	// ErrDimensionMismatch is returned when a vector's length disagrees with
	// the fixed dimension of the store or index.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEmptyIndex is returned when an index is built from, or a search is
	// attempted against, zero entries.
	ErrEmptyIndex = errors.New("vector index is empty")
)
