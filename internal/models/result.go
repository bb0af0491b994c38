package models

// SearchResult is a single hit: the matched corpus question, its answer, and
// the cosine similarity of the query to the question.
type SearchResult struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
	Rank     int     `json:"rank"`
}

// SearchResponse is the response for a search request. Results is ordered by
// descending score and may be empty when nothing cleared the relevance bar —
// that is a normal outcome, not an error.
type SearchResponse struct {
	Results   []*SearchResult `json:"results"`
	Total     int             `json:"total"`
	QueryTime int64           `json:"query_time_ms"`
	Query     string          `json:"query"`
}
