package assertion

import (
	"digital.vasic.matchers/pkg/logging"
	"digital.vasic.matchers/pkg/matcher"
	"digital.vasic.matchers/pkg/metrics"
)

// Option configures a DefaultEngine.
type Option func(*DefaultEngine)

// WithLogger sets the logger used by the engine.
func WithLogger(logger logging.Logger) Option {
	return func(e *DefaultEngine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder used by the engine.
func WithMetrics(m metrics.EvaluationMetrics) Option {
	return func(e *DefaultEngine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithObserver adds an observer notified after every
// evaluation.
func WithObserver(o Observer) Option {
	return func(e *DefaultEngine) {
		e.observers = append(e.observers, o)
	}
}

// WithVerbose makes passing outcomes carry a message too.
func WithVerbose(verbose bool) Option {
	return func(e *DefaultEngine) {
		e.verbose = verbose
	}
}

// WithPredicates sets the registry that "be_<name>" definitions
// resolve predicates through.
func WithPredicates(r *matcher.PredicateRegistry) Option {
	return func(e *DefaultEngine) {
		e.predicates = r
	}
}
