// Package vector implements the exact similarity search core: fixed-dimension
// float32 vectors, a normalized embedding store, and a brute-force flat index.
package vector

import (
	"fmt"
	"math"

	"github.com/viant/vec/search"
)

// Vector is a fixed-length sequence of float32 components. All vectors in a
// store share one dimension, fixed by the first vector at build time.
type Vector []float32

// New returns a Vector backed by a copy of components.
func New(components []float32) Vector {
	v := make(Vector, len(components))
	copy(v, components)
	return v
}

// Dim returns the number of components.
func (v Vector) Dim() int {
	return len(v)
}

// Norm returns the L2 norm of v.
func (v Vector) Norm() float64 {
	return float64(search.Float32s(v).Magnitude())
}

// Normalized returns a unit-length copy of v. It fails with
// ErrDegenerateVector when the norm is zero or not finite, which covers the
// all-zero vector as well as NaN/Inf components; silently scaling those would
// corrupt every similarity computed against the result.
func (v Vector) Normalized() (Vector, error) {
	norm := v.Norm()
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil, fmt.Errorf("%w: norm %v", ErrDegenerateVector, norm)
	}
	inv := float32(1 / norm)
	out := make(Vector, len(v))
	for i, c := range v {
		out[i] = c * inv
	}
	return out, nil
}

// Dot returns the inner product of v and other. For unit vectors this equals
// their cosine similarity.
func (v Vector) Dot(other Vector) (float64, error) {
	if other.Dim() != v.Dim() {
		return 0, fmt.Errorf("%w: got %d, expected %d", ErrDimensionMismatch, other.Dim(), v.Dim())
	}
	var dot float64
	for i := range v {
		dot += float64(v[i]) * float64(other[i])
	}
	return dot, nil
}
