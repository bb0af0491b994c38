package embedding

import (
	"context"
	"testing"
)

func TestEmbeddingCache_GetSet(t *testing.T) {
	c := NewEmbeddingCache(2)
	if v, ok := c.Get("a"); ok || v != nil {
		t.Fatal("expected miss")
	}
	c.Set("a", []float32{1, 2, 3})
	v, ok := c.Get("a")
	if !ok || len(v) != 3 || v[0] != 1 {
		t.Errorf("Get: got %v, %v", v, ok)
	}
	c.Set("b", []float32{4, 5})
	c.Set("c", []float32{6}) // evicts a
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be evicted")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("expected b to remain")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("expected c to be present")
	}
}

// countingEmbedder counts inner calls so tests can assert cache hits.
type countingEmbedder struct {
	*MockEmbedder
	embedCalls int
	batchCalls int
	batchTexts int
}

func (e *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.embedCalls++
	return e.MockEmbedder.Embed(ctx, text)
}

func (e *countingEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	e.batchCalls++
	e.batchTexts += len(texts)
	return e.MockEmbedder.EmbedBatch(ctx, texts)
}

func TestCachedEmbedder_Embed(t *testing.T) {
	inner := &countingEmbedder{MockEmbedder: NewMockEmbedder(8)}
	e := NewCachedEmbedder(inner, 10)
	ctx := context.Background()

	first, err := e.Embed(ctx, "hello")
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Embed(ctx, "hello")
	if err != nil {
		t.Fatal(err)
	}
	if inner.embedCalls != 1 {
		t.Errorf("inner Embed called %d times, want 1", inner.embedCalls)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatal("cached embedding differs from original")
		}
	}
}

func TestCachedEmbedder_EmbedBatch_partialHit(t *testing.T) {
	inner := &countingEmbedder{MockEmbedder: NewMockEmbedder(8)}
	e := NewCachedEmbedder(inner, 10)
	ctx := context.Background()

	if _, err := e.Embed(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	out, err := e.EmbedBatch(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d embeddings, want 3", len(out))
	}
	for i, emb := range out {
		if len(emb) != 8 {
			t.Errorf("embedding %d has %d dimensions", i, len(emb))
		}
	}
	if inner.batchTexts != 2 {
		t.Errorf("inner batch embedded %d texts, want 2 (a was cached)", inner.batchTexts)
	}
}

func TestCachedEmbedder_Dimensions(t *testing.T) {
	e := NewCachedEmbedder(NewMockEmbedder(16), 4)
	if e.Dimensions() != 16 {
		t.Errorf("Dimensions() = %d, want 16", e.Dimensions())
	}
	if err := e.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
