// Package embedding provides text embedding via the OpenAI API, a
// deterministic mock for offline use, and an LRU embedding cache.
package embedding

import "context"

// Embedder produces vector embeddings for text. Implementations return raw
// vectors; the vector store re-normalizes on insertion, so unit output is not
// required.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
