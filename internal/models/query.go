// Package models defines core data structures for queries and search results.
package models

import "fmt"

// Default and maximum candidate counts applied by Validate when the caller
// leaves TopN unset.
const (
	DefaultTopN = 3
	MaxTopN     = 100
)

// SearchQuery represents a single search request.
type SearchQuery struct {
	Query string `json:"query"`
	// TopN is how many candidates to retrieve before threshold filtering.
	// Results ranked below TopN are dropped even if they would pass MinScore.
	TopN int `json:"top_n,omitempty"`
	// MinScore is the relevance cutoff; candidates scoring strictly below it
	// are discarded. Nil means "use the configured default". Zero and negative
	// values are explicit cutoffs; negative keeps everything.
	MinScore *float64 `json:"min_score,omitempty"`
}

// Validate ensures the query has valid fields and normalizes TopN.
// Returns an error if the query text is empty.
func (q *SearchQuery) Validate() error {
	if q.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	if q.TopN <= 0 {
		q.TopN = DefaultTopN
	}
	if q.TopN > MaxTopN {
		q.TopN = MaxTopN
	}
	return nil
}
