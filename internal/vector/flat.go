package vector

import (
	"fmt"
	"sort"

	"github.com/viant/vec/search"
)

// FlatIndex answers exact top-k similarity queries over a Store by scoring
// every entry. Exhaustive scanning is the contract, not a fallback: the
// returned set is always exact. The index holds a reference to the store and
// copies nothing; the store must outlive it.
type FlatIndex struct {
	store *Store
}

// BuildFlatIndex creates an index over a fully built store.
func BuildFlatIndex(store *Store) (*FlatIndex, error) {
	if store == nil || store.Len() == 0 {
		return nil, ErrEmptyIndex
	}
	return &FlatIndex{store: store}, nil
}

// Len returns the number of indexed entries.
func (f *FlatIndex) Len() int {
	return f.store.Len()
}

// Dim returns the fixed vector dimension.
func (f *FlatIndex) Dim() int {
	return f.store.Dim()
}

// ScoredEntry pairs a stored entry with its similarity to a query.
type ScoredEntry struct {
	Entry Entry
	Score float64
}

// Search returns the k entries most similar to query under the inner product
// (cosine similarity, since both sides are unit vectors). query must already
// be normalized and of the store's dimension. Results are ordered by
// descending score; exact ties keep the lower insertion index first, so
// repeated searches return identical orderings. Result length is
// min(k, Len()). Search never mutates the index and is safe to call
// concurrently.
func (f *FlatIndex) Search(query Vector, k int) ([]ScoredEntry, error) {
	if query.Dim() != f.store.Dim() {
		return nil, fmt.Errorf("query: %w: got %d, expected %d",
			ErrDimensionMismatch, query.Dim(), f.store.Dim())
	}
	if k < 1 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}

	q := search.Float32s(query)
	scored := make([]ScoredEntry, f.store.Len())
	for i, e := range f.store.entries {
		// Both sides are unit vectors, so cosine distance is 1 - <q, e>.
		dist := q.CosineDistance(e.Vector)
		scored[i] = ScoredEntry{Entry: e, Score: float64(1 - dist)}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Entry.Index < scored[j].Entry.Index
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k:k], nil
}
