package metrics

import "sync"

// MemoryMetrics implements EvaluationMetrics with in-memory
// counters. Host applications export them to their own metrics
// backend.
type MemoryMetrics struct {
	mu       sync.RWMutex
	outcomes map[string]int
	errors   map[string]int
	total    int
}

// NewMemoryMetrics creates a new MemoryMetrics instance.
func NewMemoryMetrics() *MemoryMetrics {
	return &MemoryMetrics{
		outcomes: make(map[string]int),
		errors:   make(map[string]int),
	}
}

func (m *MemoryMetrics) RecordOutcome(matcher, polarity string, passed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.outcomes[outcomeKey(matcher, polarity, passed)]++
	m.total++
}

func (m *MemoryMetrics) RecordError(matcher, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errors[matcher+":"+kind]++
	m.total++
}

// OutcomeCount returns the count for a matcher, polarity and
// result combination.
func (m *MemoryMetrics) OutcomeCount(matcher, polarity string, passed bool) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.outcomes[outcomeKey(matcher, polarity, passed)]
}

// ErrorCount returns the count for a matcher and error kind.
func (m *MemoryMetrics) ErrorCount(matcher, kind string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errors[matcher+":"+kind]
}

// Total returns the number of evaluations recorded, errors
// included.
func (m *MemoryMetrics) Total() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total
}

// Snapshot returns a copy of all counters keyed by
// "matcher:polarity:status" for outcomes and "matcher:kind" for
// errors.
func (m *MemoryMetrics) Snapshot() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]int, len(m.outcomes)+len(m.errors))
	for k, v := range m.outcomes {
		out[k] = v
	}
	for k, v := range m.errors {
		out[k] = v
	}
	return out
}

func outcomeKey(matcher, polarity string, passed bool) string {
	status := "failed"
	if passed {
		status = "passed"
	}
	return matcher + ":" + polarity + ":" + status
}
