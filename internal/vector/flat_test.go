package vector

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func buildTestIndex(t *testing.T, pairs []Pair) *FlatIndex {
	t.Helper()
	store, err := BuildStore(pairs)
	if err != nil {
		t.Fatal(err)
	}
	idx, err := BuildFlatIndex(store)
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func mustNormalize(t *testing.T, v Vector) Vector {
	t.Helper()
	unit, err := v.Normalized()
	if err != nil {
		t.Fatal(err)
	}
	return unit
}

func TestBuildFlatIndex_empty(t *testing.T) {
	if _, err := BuildFlatIndex(nil); !errors.Is(err, ErrEmptyIndex) {
		t.Errorf("BuildFlatIndex(nil) error = %v, want ErrEmptyIndex", err)
	}
}

func TestFlatIndex_Search_ranking(t *testing.T) {
	idx := buildTestIndex(t, []Pair{
		{Label: "x", Vector: Vector{1, 0, 0}},
		{Label: "close", Vector: Vector{0.9, 0.1, 0}},
		{Label: "far", Vector: Vector{0, 1, 0}},
	})
	results, err := idx.Search(mustNormalize(t, Vector{1, 0, 0}), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Entry.Label != "x" || results[1].Entry.Label != "close" || results[2].Entry.Label != "far" {
		t.Errorf("order = %s, %s, %s", results[0].Entry.Label, results[1].Entry.Label, results[2].Entry.Label)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("scores not non-increasing at %d: %v > %v", i, results[i].Score, results[i-1].Score)
		}
	}
}

func TestFlatIndex_Search_selfSimilarity(t *testing.T) {
	raw := []Pair{
		{Label: "a", Vector: Vector{2, 1, 0}},
		{Label: "b", Vector: Vector{0, 3, 1}},
		{Label: "c", Vector: Vector{1, 1, 4}},
	}
	idx := buildTestIndex(t, raw)
	for i, p := range raw {
		results, err := idx.Search(mustNormalize(t, p.Vector), 1)
		if err != nil {
			t.Fatal(err)
		}
		if results[0].Entry.Index != i {
			t.Errorf("query %d: top entry = %d", i, results[0].Entry.Index)
		}
		if math.Abs(results[0].Score-1) > tolerance {
			t.Errorf("query %d: self score = %v, want 1", i, results[0].Score)
		}
	}
}

func TestFlatIndex_Search_tieBreak(t *testing.T) {
	// Three identical vectors: ties must resolve by insertion order.
	idx := buildTestIndex(t, []Pair{
		{Label: "first", Vector: Vector{1, 1}},
		{Label: "second", Vector: Vector{2, 2}},
		{Label: "third", Vector: Vector{0.5, 0.5}},
	})
	results, err := idx.Search(mustNormalize(t, Vector{1, 1}), 3)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if results[i].Entry.Label != want {
			t.Errorf("result %d = %s, want %s", i, results[i].Entry.Label, want)
		}
	}
}

func TestFlatIndex_Search_deterministic(t *testing.T) {
	idx := buildTestIndex(t, []Pair{
		{Label: "a", Vector: Vector{1, 2, 3}},
		{Label: "b", Vector: Vector{3, 2, 1}},
		{Label: "c", Vector: Vector{1, 2, 3}},
		{Label: "d", Vector: Vector{2, 2, 2}},
	})
	query := mustNormalize(t, Vector{1, 1, 1})
	first, err := idx.Search(query, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := idx.Search(query, 4)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, again, first)
		}
	}
}

func TestFlatIndex_Search_kLargerThanStore(t *testing.T) {
	idx := buildTestIndex(t, []Pair{
		{Label: "a", Vector: Vector{1, 0}},
		{Label: "b", Vector: Vector{0, 1}},
	})
	results, err := idx.Search(Vector{1, 0}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}

func TestFlatIndex_Search_dimensionMismatch(t *testing.T) {
	idx := buildTestIndex(t, []Pair{{Label: "a", Vector: Vector{1, 0}}})
	if _, err := idx.Search(Vector{1, 0, 0}, 1); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Search() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestFlatIndex_Search_invalidK(t *testing.T) {
	idx := buildTestIndex(t, []Pair{{Label: "a", Vector: Vector{1, 0}}})
	if _, err := idx.Search(Vector{1, 0}, 0); err == nil {
		t.Error("Search(k=0) should fail")
	}
}
