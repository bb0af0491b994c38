package vector

import (
	"fmt"
	"iter"
)

// Pair couples a label with its raw, not yet normalized embedding.
type Pair struct {
	Label  string
	Vector Vector
}

// Entry is one stored embedding: its 0-based insertion index, the label it was
// inserted under, and its unit-norm vector. Entries are immutable.
type Entry struct {
	Index  int
	Label  string
	Vector Vector
}

// Store holds the corpus embeddings in insertion order, normalized to unit
// length. It is populated once by BuildStore and read-only afterwards, which
// is what makes lock-free concurrent searches over it safe.
type Store struct {
	dim     int
	entries []Entry
}

// BuildStore normalizes every pair and stores the entries in input order.
// The first pair's length fixes the dimension for the whole store.
// Construction is all-or-nothing: on any degenerate or mismatched vector no
// store is returned.
func BuildStore(pairs []Pair) (*Store, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("store requires at least one pair")
	}
	dim := pairs[0].Vector.Dim()
	entries := make([]Entry, 0, len(pairs))
	for i, p := range pairs {
		if p.Vector.Dim() != dim {
			return nil, fmt.Errorf("pair %d (%q): %w: got %d, expected %d",
				i, p.Label, ErrDimensionMismatch, p.Vector.Dim(), dim)
		}
		unit, err := p.Vector.Normalized()
		if err != nil {
			return nil, fmt.Errorf("pair %d (%q): %w", i, p.Label, err)
		}
		entries = append(entries, Entry{Index: i, Label: p.Label, Vector: unit})
	}
	return &Store{dim: dim, entries: entries}, nil
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Dim returns the fixed vector dimension.
func (s *Store) Dim() int {
	return s.dim
}

// Entry returns the entry at insertion index i.
func (s *Store) Entry(i int) Entry {
	return s.entries[i]
}

// Entries returns a restartable iterator over all entries in insertion order.
func (s *Store) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range s.entries {
			if !yield(e) {
				return
			}
		}
	}
}
