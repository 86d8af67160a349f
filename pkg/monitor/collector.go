package monitor

import (
	"sync"
	"time"

	"digital.vasic.matchers/pkg/assertion"
)

// EventCollector captures outcome events and timing data.
type EventCollector struct {
	// emitMu serialises recording and dispatch so handlers see
	// events in the order they were recorded.
	emitMu   sync.Mutex
	mu       sync.RWMutex
	events   []OutcomeEvent
	handlers []func(OutcomeEvent)
	stats    CollectorStats
}

// CollectorStats holds aggregate statistics.
type CollectorStats struct {
	Total     int           `json:"total"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Errored   int           `json:"errored"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// NewEventCollector creates a new event collector.
func NewEventCollector() *EventCollector {
	return &EventCollector{
		events: make([]OutcomeEvent, 0, 64),
		stats:  CollectorStats{StartTime: time.Now()},
	}
}

// OnEvent registers a handler to be called for each event.
func (c *EventCollector) OnEvent(handler func(OutcomeEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Observe records an engine evaluation. Its method value is an
// assertion.Observer.
func (c *EventCollector) Observe(r assertion.Record) {
	c.Emit(EventFromRecord(r))
}

// Emit records an event and notifies all handlers. Handlers run
// one event at a time and must not call Emit themselves.
func (c *EventCollector) Emit(event OutcomeEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	c.events = append(c.events, event)
	c.stats.Total++
	switch event.Type {
	case EventPassed:
		c.stats.Passed++
	case EventFailed:
		c.stats.Failed++
	case EventErrored:
		c.stats.Errored++
	}
	handlers := make([]func(OutcomeEvent), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// Events returns a copy of all collected events.
func (c *EventCollector) Events() []OutcomeEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]OutcomeEvent, len(c.events))
	copy(result, c.events)
	return result
}

// Stats returns the current aggregate statistics.
func (c *EventCollector) Stats() CollectorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Duration = time.Since(s.StartTime)
	return s
}

// Snapshot calls fn with the current stats while no event is
// being emitted. Events emitted after fn returns are not counted
// in the stats it received.
func (c *EventCollector) Snapshot(fn func(CollectorStats)) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	fn(c.Stats())
}

// Reset clears all collected events and statistics.
func (c *EventCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
	c.stats = CollectorStats{StartTime: time.Now()}
}
