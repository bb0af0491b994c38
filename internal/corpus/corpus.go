// Package corpus loads the question/answer knowledge base searched by kotae.
package corpus

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/default.yaml
var defaultData []byte

// QA is one knowledge-base entry: a reference question and its answer text.
type QA struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

type corpusFile struct {
	Entries []QA `yaml:"entries"`
}

// Load reads Q&A pairs from the YAML file at path, preserving file order.
// An empty path loads the embedded default corpus.
func Load(path string) ([]QA, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	qas, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}
	return qas, nil
}

// Parse decodes and validates YAML corpus data.
func Parse(data []byte) ([]QA, error) {
	var f corpusFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse corpus: %w", err)
	}
	if len(f.Entries) == 0 {
		return nil, fmt.Errorf("corpus has no entries")
	}
	seen := make(map[string]int, len(f.Entries))
	for i, qa := range f.Entries {
		if qa.Question == "" {
			return nil, fmt.Errorf("entry %d: question is empty", i)
		}
		if prev, ok := seen[qa.Question]; ok {
			return nil, fmt.Errorf("entry %d: duplicate question (already at %d): %q", i, prev, qa.Question)
		}
		seen[qa.Question] = i
	}
	return f.Entries, nil
}

// Default returns the embedded antibiotics/antivirals FAQ corpus.
func Default() []QA {
	qas, err := Parse(defaultData)
	if err != nil {
		// The embedded corpus is validated by tests; reaching this is a build defect.
		panic(fmt.Sprintf("embedded corpus invalid: %v", err))
	}
	return qas
}
