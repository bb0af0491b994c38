package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/kotae/internal/models"
)

func sampleResponse() *models.SearchResponse {
	return &models.SearchResponse{
		Results: []*models.SearchResult{
			{Question: "What are antibiotics?", Answer: "Medicines against bacteria.\n", Score: 0.91, Rank: 1},
			{Question: "What are antiviral drugs?", Answer: "Medicines against viruses.", Score: 0.52, Rank: 2},
		},
		Total:     2,
		QueryTime: 4,
		Query:     "antibiotics",
	}
}

func TestWriteSearchResults_text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Most relevant answers:",
		"What are antibiotics?",
		"Medicines against bacteria.",
		"Rank: 1 | Score: 0.9100",
		"2 results in 4ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSearchResults_textEmpty(t *testing.T) {
	var buf bytes.Buffer
	resp := &models.SearchResponse{Query: "nothing matches"}
	if err := WriteSearchResults(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No relevant answers found") {
		t.Errorf("empty output = %q", buf.String())
	}
}

func TestWriteSearchResults_json(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.SearchResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Total != 2 || len(decoded.Results) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestWriteSearchResults_compact(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputCompact); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("compact output has %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "1\t0.9100\t") {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestParseOutputFormat(t *testing.T) {
	for _, s := range []string{"text", "json", "compact"} {
		if _, err := ParseOutputFormat(s); err != nil {
			t.Errorf("ParseOutputFormat(%q) error: %v", s, err)
		}
	}
	if _, err := ParseOutputFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
