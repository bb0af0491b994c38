package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/corpus"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/vector"
	"go.uber.org/zap"
)

// Engine answers natural-language queries against an embedded Q&A corpus.
// The corpus is embedded and indexed fully before the first query; after
// that, searches only read immutable state. The one exception is Reload,
// which builds a complete replacement index and swaps it in under the lock.
type Engine struct {
	embedder embedding.Embedder
	config   *config.SearchConfig
	logger   *zap.Logger

	mu       sync.RWMutex
	answers  []corpus.QA // insertion order matches store entry indices
	store    *vector.Store
	index    *vector.FlatIndex
	pipeline *Pipeline
}

// NewEngine embeds every corpus question and builds the flat index. It
// returns only after the index is fully built.
func NewEngine(ctx context.Context, embedder embedding.Embedder, qas []corpus.QA, cfg *config.SearchConfig, logger *zap.Logger) (*Engine, error) {
	e := &Engine{
		embedder: embedder,
		config:   cfg,
		logger:   logger,
	}
	if err := e.Reload(ctx, qas); err != nil {
		return nil, err
	}
	return e, nil
}

// Reload re-embeds the given corpus and swaps in a freshly built store and
// index. Queries in flight finish against the previous index; there is no
// partial state, a failed reload leaves the engine unchanged.
func (e *Engine) Reload(ctx context.Context, qas []corpus.QA) error {
	if len(qas) == 0 {
		return fmt.Errorf("corpus is empty")
	}
	start := time.Now()

	questions := make([]string, len(qas))
	for i, qa := range qas {
		questions[i] = qa.Question
	}
	embeddings, err := e.embedder.EmbedBatch(ctx, questions)
	if err != nil {
		return fmt.Errorf("embedding corpus failed: %w", err)
	}
	if len(embeddings) != len(qas) {
		return fmt.Errorf("embedder returned %d vectors for %d questions", len(embeddings), len(qas))
	}

	pairs := make([]vector.Pair, len(qas))
	for i, emb := range embeddings {
		pairs[i] = vector.Pair{Label: qas[i].Question, Vector: emb}
	}
	store, err := vector.BuildStore(pairs)
	if err != nil {
		return fmt.Errorf("building store failed: %w", err)
	}
	index, err := vector.BuildFlatIndex(store)
	if err != nil {
		return fmt.Errorf("building index failed: %w", err)
	}

	e.mu.Lock()
	e.answers = append([]corpus.QA(nil), qas...)
	e.store = store
	e.index = index
	e.pipeline = NewPipeline(index)
	e.mu.Unlock()

	e.logger.Info("corpus indexed",
		zap.Int("entries", store.Len()),
		zap.Int("dimensions", store.Dim()),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// Search embeds the query text and returns ranked answers above the score
// cutoff. Query defaults (top_n, min_score) come from config when unset.
func (e *Engine) Search(ctx context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	startTime := time.Now()

	if query.TopN <= 0 {
		query.TopN = e.config.DefaultTopN
	}
	if query.TopN > e.config.MaxTopN {
		query.TopN = e.config.MaxTopN
	}
	if query.MinScore == nil {
		minScore := e.config.DefaultMinScore
		query.MinScore = &minScore
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	queryEmbedding, err := e.embedder.Embed(ctx, query.Query)
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}

	e.mu.RLock()
	pipeline := e.pipeline
	answers := e.answers
	e.mu.RUnlock()

	hits, err := pipeline.Query(queryEmbedding, query.TopN, *query.MinScore)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	response := &models.SearchResponse{
		Results: make([]*models.SearchResult, 0, len(hits)),
		Total:   len(hits),
		Query:   query.Query,
	}
	for i, hit := range hits {
		response.Results = append(response.Results, &models.SearchResult{
			Question: hit.Entry.Label,
			Answer:   answers[hit.Entry.Index].Answer,
			Score:    hit.Score,
			Rank:     i + 1,
		})
	}
	response.QueryTime = time.Since(startTime).Milliseconds()

	e.logger.Debug("search completed",
		zap.String("query", query.Query),
		zap.Int("top_n", query.TopN),
		zap.Float64("min_score", *query.MinScore),
		zap.Int("results", len(hits)),
	)
	return response, nil
}

// CorpusSize returns the number of indexed entries.
func (e *Engine) CorpusSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Len()
}

// Dimensions returns the index's vector dimension.
func (e *Engine) Dimensions() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Dim()
}

// Corpus returns the indexed Q&A pairs in insertion order.
func (e *Engine) Corpus() []corpus.QA {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]corpus.QA(nil), e.answers...)
}
