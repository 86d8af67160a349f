package bank

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"digital.vasic.matchers/pkg/assertion"
)

// Bank manages suites loaded from files, keyed by suite name.
type Bank struct {
	mu      sync.RWMutex
	suites  map[string]*SuiteFile
	sources []string
}

// New creates a new empty Bank.
func New() *Bank {
	return &Bank{
		suites: make(map[string]*SuiteFile),
	}
}

// LoadFile loads a suite from a YAML or JSON file.
func (b *Bank) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read suite file %s: %w", path, err)
	}

	file, err := Decode(data)
	if err != nil {
		return fmt.Errorf("parse suite file %s: %w", path, err)
	}
	if file.Name == "" {
		return fmt.Errorf("suite in %s has no name", path)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.suites[file.Name]; exists {
		return fmt.Errorf(
			"suite %s in %s already loaded", file.Name, path,
		)
	}
	b.suites[file.Name] = file
	b.sources = append(b.sources, path)
	return nil
}

// LoadDir loads all .yaml, .yml and .json files from a
// directory.
func (b *Bank) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read suite directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}
		if err := b.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a suite by name.
func (b *Bank) Get(name string) (*SuiteFile, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	file, ok := b.suites[name]
	return file, ok
}

// All returns all loaded suites sorted by name.
func (b *Bank) All() []*SuiteFile {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make([]*SuiteFile, 0, len(b.suites))
	for _, file := range b.suites {
		result = append(result, file)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Count returns the number of loaded suites.
func (b *Bank) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.suites)
}

// Sources returns the list of loaded file paths.
func (b *Bank) Sources() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make([]string, len(b.sources))
	copy(result, b.sources)
	return result
}

// Run runs every suite through engine in name order.
func (b *Bank) Run(engine assertion.Engine) []SuiteResult {
	suites := b.All()
	results := make([]SuiteResult, 0, len(suites))
	for _, s := range suites {
		results = append(results, s.Run(engine))
	}
	return results
}
