// Package metrics records counters for matcher evaluations.
package metrics

// EvaluationMetrics defines the interface for recording
// evaluation metrics.
type EvaluationMetrics interface {
	// RecordOutcome records a completed evaluation.
	RecordOutcome(matcher, polarity string, passed bool)
	// RecordError records an evaluation that produced an error
	// instead of an outcome.
	RecordError(matcher, kind string)
}

// NoopMetrics is a no-op implementation of EvaluationMetrics
// useful for testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordOutcome(_, _ string, _ bool) {}
func (NoopMetrics) RecordError(_, _ string)           {}
