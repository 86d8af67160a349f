package assertion

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"digital.vasic.matchers/pkg/capture"
	"digital.vasic.matchers/pkg/logging"
	"digital.vasic.matchers/pkg/matcher"
	"digital.vasic.matchers/pkg/metrics"
)

// Engine defines the interface for assertion evaluation engines.
type Engine interface {
	// Evaluate applies m to subject with the given polarity.
	// A matcher error is returned unmodified and never turned
	// into a failed Outcome.
	Evaluate(
		subject any,
		polarity Polarity,
		m matcher.Matcher,
	) (Outcome, error)

	// EvaluateDefinition builds the matcher a Definition names
	// and evaluates it against subject.
	EvaluateDefinition(def Definition, subject any) (Outcome, error)

	// EvaluateAll checks multiple definitions against a map of
	// named subjects. Each definition's Target field is used as
	// the key into the subjects map.
	EvaluateAll(
		defs []Definition,
		subjects map[string]any,
	) []Result

	// Register adds a builder for the given matcher type.
	// Returns an error if the type is already registered.
	Register(matcherType string, builder Builder) error
}

// DefaultEngine is the standard Engine implementation. It is
// safe for concurrent use; the matchers and subjects it is
// handed are not synchronized by it.
type DefaultEngine struct {
	mu         sync.RWMutex
	builders   map[string]Builder
	observers  []Observer
	logger     logging.Logger
	metrics    metrics.EvaluationMetrics
	predicates *matcher.PredicateRegistry
	verbose    bool
}

// NewEngine creates a DefaultEngine with the built-in matcher
// builders pre-registered.
func NewEngine(opts ...Option) *DefaultEngine {
	e := &DefaultEngine{
		builders: make(map[string]Builder),
		logger:   logging.NullLogger{},
		metrics:  metrics.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.registerDefaults()
	return e
}

// Register adds a builder for the given matcher type. Names are
// case-insensitive.
func (e *DefaultEngine) Register(
	matcherType string,
	builder Builder,
) error {
	name := normalizeType(matcherType)

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.builders[name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}

	e.builders[name] = builder
	return nil
}

// HasBuilder returns true if the given matcher type has a
// registered builder.
func (e *DefaultEngine) HasBuilder(matcherType string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, exists := e.builders[normalizeType(matcherType)]
	return exists
}

// Types returns the registered matcher types in sorted order.
func (e *DefaultEngine) Types() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.builders))
	for name := range e.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Predicates returns the registry be_<name> fallbacks resolve
// through.
func (e *DefaultEngine) Predicates() *matcher.PredicateRegistry {
	if e.predicates == nil {
		return matcher.DefaultPredicates
	}
	return e.predicates
}

// AddObserver registers an observer after construction.
func (e *DefaultEngine) AddObserver(o Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, o)
}

// Build constructs the matcher a Definition names. Types with no
// builder that start with "be_" resolve to predicate matchers.
func (e *DefaultEngine) Build(def Definition) (matcher.Matcher, error) {
	name := normalizeType(def.Type)

	e.mu.RLock()
	builder, exists := e.builders[name]
	e.mu.RUnlock()

	if exists {
		return builder(def)
	}
	if strings.HasPrefix(name, "be_") {
		return matcher.BePredicateIn(e.predicates, name)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMatcher, def.Type)
}

// Evaluate applies m to subject with the given polarity.
func (e *DefaultEngine) Evaluate(
	subject any,
	polarity Polarity,
	m matcher.Matcher,
) (Outcome, error) {
	return e.evaluate(subject, polarity, m, "")
}

// EvaluateDefinition builds and evaluates a Definition. A
// non-empty Definition.Message replaces the failure description.
func (e *DefaultEngine) EvaluateDefinition(
	def Definition,
	subject any,
) (Outcome, error) {
	m, err := e.Build(def)
	if err != nil {
		e.logger.Warn("invalid assertion",
			logging.StringField("type", def.Type),
			logging.StringField("target", def.Target),
			logging.ErrorField(err),
		)
		return Outcome{}, err
	}

	if d, ok := capture.Defer(subject); ok {
		subject = d
	}

	out, err := e.evaluate(subject, def.Polarity(), m, def.Target)
	if err != nil {
		return Outcome{}, err
	}
	if !out.Passed && def.Message != "" {
		out.Message = def.Message
	}
	return out, nil
}

// EvaluateAll runs multiple definitions against a map of named
// subjects. A missing target or an invalid assertion yields a
// Result with Err set rather than a failure. Callable subjects
// are wrapped once per target, so several definitions observe
// the same single run.
func (e *DefaultEngine) EvaluateAll(
	defs []Definition,
	subjects map[string]any,
) []Result {
	results := make([]Result, 0, len(defs))
	deferred := make(map[string]*capture.Deferred)

	for _, def := range defs {
		result := Result{
			Type:     def.Type,
			Target:   def.Target,
			Polarity: def.Polarity(),
			Expected: expectedOf(def),
		}

		subject, exists := subjects[def.Target]
		if !exists {
			result.setErr(
				fmt.Errorf("%w: %s", ErrTargetNotFound, def.Target),
			)
			results = append(results, result)
			continue
		}

		if d, ok := deferred[def.Target]; ok {
			subject = d
		} else if d, ok := capture.Defer(subject); ok {
			deferred[def.Target] = d
			subject = d
		}

		out, err := e.EvaluateDefinition(def, subject)
		if err != nil {
			result.setErr(err)
		} else {
			result.Passed = out.Passed
			result.Message = out.Message
		}
		results = append(results, result)
	}

	return results
}

// Close releases the engine's logger.
func (e *DefaultEngine) Close() error {
	return e.logger.Close()
}

func (e *DefaultEngine) evaluate(
	subject any,
	polarity Polarity,
	m matcher.Matcher,
	target string,
) (Outcome, error) {
	if m == nil {
		return Outcome{}, ErrNilMatcher
	}

	name := matcher.NameOf(m)
	start := time.Now()
	raw, err := m.Match(subject)
	elapsed := time.Since(start)

	if err != nil {
		kind := string(matcher.KindOf(err))
		if kind == "" {
			kind = "unknown"
		}
		e.logger.Warn("evaluation error",
			logging.StringField("matcher", name),
			logging.StringField("polarity", polarity.String()),
			logging.StringField("target", target),
			logging.StringField("kind", kind),
			logging.ErrorField(err),
		)
		e.metrics.RecordError(name, kind)
		e.notify(Record{
			Matcher:  name,
			Polarity: polarity,
			Target:   target,
			Err:      err,
			Duration: elapsed,
		})
		return Outcome{}, err
	}

	out := Outcome{
		Matcher:     name,
		Expectation: m.String(),
		Polarity:    polarity,
		Passed:      polarity.Apply(raw),
	}
	switch {
	case !out.Passed:
		out.Message = m.Describe(subject, polarity.Negated())
	case e.verbose:
		out.Message = passedMessage(subject, polarity, m)
	}

	e.logger.Debug("evaluated",
		logging.StringField("matcher", name),
		logging.StringField("polarity", polarity.String()),
		logging.StringField("target", target),
		logging.BoolField("passed", out.Passed),
		logging.DurationField("took", elapsed),
	)
	e.metrics.RecordOutcome(name, polarity.String(), out.Passed)
	e.notify(Record{
		Matcher:  name,
		Polarity: polarity,
		Target:   target,
		Passed:   out.Passed,
		Message:  out.Message,
		Duration: elapsed,
	})

	return out, nil
}

func (e *DefaultEngine) notify(r Record) {
	e.mu.RLock()
	observers := e.observers
	e.mu.RUnlock()

	for _, o := range observers {
		o(r)
	}
}

func passedMessage(
	subject any, polarity Polarity, m matcher.Matcher,
) string {
	not := ""
	if polarity.Negated() {
		not = "not "
	}
	return fmt.Sprintf(
		"passed: expected %s %sto %s",
		matcher.Format(subject), not, m.String(),
	)
}

func (r *Result) setErr(err error) {
	r.Err = err
	r.Error = err.Error()
}

func expectedOf(def Definition) any {
	if len(def.Values) > 0 {
		return def.Values
	}
	return def.Value
}

func normalizeType(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
