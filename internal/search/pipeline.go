// Package search provides the semantic search engine: the query pipeline over
// the flat index and the text-level orchestration around the embedder.
package search

import (
	"fmt"

	"github.com/hyperjump/kotae/internal/vector"
)

// Pipeline runs a single vector query end-to-end: normalize the raw query,
// retrieve the top candidates, apply the relevance cutoff.
type Pipeline struct {
	index *vector.FlatIndex
}

// NewPipeline creates a pipeline over a built index.
func NewPipeline(index *vector.FlatIndex) *Pipeline {
	return &Pipeline{index: index}
}

// Query normalizes raw, retrieves the topN most similar entries, and drops
// those scoring strictly below minScore. Filtering happens after truncation
// to topN and never reorders, so a passing result ranked below topN is still
// dropped. An empty result means
// nothing cleared the relevance bar; it is not an error. A degenerate raw
// query (zero or non-finite) is a caller error and fails with
// vector.ErrDegenerateVector.
func (p *Pipeline) Query(raw vector.Vector, topN int, minScore float64) ([]vector.ScoredEntry, error) {
	if topN < 1 {
		return nil, fmt.Errorf("topN must be >= 1, got %d", topN)
	}
	query, err := raw.Normalized()
	if err != nil {
		return nil, fmt.Errorf("query vector: %w", err)
	}
	candidates, err := p.index.Search(query, topN)
	if err != nil {
		return nil, err
	}
	// Candidates are sorted descending, so the cutoff only trims the tail.
	kept := candidates[:0]
	for _, c := range candidates {
		if c.Score < minScore {
			break
		}
		kept = append(kept, c)
	}
	return kept, nil
}
