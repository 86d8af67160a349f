// Package bank loads suites of declarative assertions from YAML
// or JSON files and runs them through an assertion engine.
package bank

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"digital.vasic.matchers/pkg/assertion"
)

// SuiteFile represents one suite file: named subjects plus the
// assertions to check against them. JSON files are read as the
// YAML subset they are.
type SuiteFile struct {
	Version     string                 `json:"version" yaml:"version"`
	Name        string                 `json:"name" yaml:"name"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Subjects    map[string]any         `json:"subjects" yaml:"subjects"`
	Assertions  []assertion.Definition `json:"assertions" yaml:"assertions"`
	Metadata    map[string]any         `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Decode parses a suite from YAML or JSON bytes.
func Decode(data []byte) (*SuiteFile, error) {
	var file SuiteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode suite: %w", err)
	}
	return &file, nil
}

// Encode renders a suite as YAML.
func Encode(file *SuiteFile) ([]byte, error) {
	data, err := yaml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("encode suite: %w", err)
	}
	return data, nil
}

// SuiteResult summarises one suite run.
type SuiteResult struct {
	Suite   string             `json:"suite"`
	Results []assertion.Result `json:"results"`
	Passed  int                `json:"passed"`
	Failed  int                `json:"failed"`
	Errored int                `json:"errored"`
}

// OK reports whether every assertion passed.
func (r SuiteResult) OK() bool {
	return r.Failed == 0 && r.Errored == 0
}

// Run evaluates every assertion of the suite against its
// subjects.
func (s *SuiteFile) Run(engine assertion.Engine) SuiteResult {
	results := engine.EvaluateAll(s.Assertions, s.Subjects)

	summary := SuiteResult{Suite: s.Name, Results: results}
	for _, r := range results {
		switch {
		case r.Errored():
			summary.Errored++
		case r.Passed:
			summary.Passed++
		default:
			summary.Failed++
		}
	}
	return summary
}
