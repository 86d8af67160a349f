package matcher

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"
)

// Querier is implemented by subjects that answer predicate
// queries themselves. ok is false when the subject does not
// support the named query.
type Querier interface {
	Query(name string) (result bool, ok bool)
}

// PredicateFunc answers a named query for a subject.
type PredicateFunc func(subject any) bool

// PredicateRegistry maps types and kinds to the predicates they
// support. It is safe for concurrent use.
type PredicateRegistry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]map[string]PredicateFunc
	byKind map[reflect.Kind]map[string]PredicateFunc
}

// NewPredicateRegistry creates an empty registry.
func NewPredicateRegistry() *PredicateRegistry {
	return &PredicateRegistry{
		byType: make(map[reflect.Type]map[string]PredicateFunc),
		byKind: make(map[reflect.Kind]map[string]PredicateFunc),
	}
}

// RegisterPredicate adds a typed predicate for T. Returns an error
// if T already has a predicate with that name.
func RegisterPredicate[T any](
	r *PredicateRegistry,
	name string,
	fn func(T) bool,
) error {
	t := reflect.TypeFor[T]()
	key := normalizePredicate(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	preds := r.byType[t]
	if preds == nil {
		preds = make(map[string]PredicateFunc)
		r.byType[t] = preds
	}
	if _, exists := preds[key]; exists {
		return fmt.Errorf(
			"predicate already registered: %s for %s", key, t,
		)
	}
	preds[key] = func(subject any) bool {
		return fn(subject.(T))
	}
	return nil
}

// RegisterKind adds a predicate for every type of the given kind.
// Type-specific predicates take precedence.
func (r *PredicateRegistry) RegisterKind(
	kind reflect.Kind,
	name string,
	fn PredicateFunc,
) error {
	key := normalizePredicate(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	preds := r.byKind[kind]
	if preds == nil {
		preds = make(map[string]PredicateFunc)
		r.byKind[kind] = preds
	}
	if _, exists := preds[key]; exists {
		return fmt.Errorf(
			"predicate already registered: %s for kind %s", key, kind,
		)
	}
	preds[key] = fn
	return nil
}

// Lookup finds the predicate name for type t.
func (r *PredicateRegistry) Lookup(
	t reflect.Type,
	name string,
) (PredicateFunc, bool) {
	if t == nil {
		return nil, false
	}
	key := normalizePredicate(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if fn, ok := r.byType[t][key]; ok {
		return fn, true
	}
	fn, ok := r.byKind[t.Kind()][key]
	return fn, ok
}

// DefaultPredicates is consulted by BePredicate. It ships empty,
// zero, nil, positive and negative.
var DefaultPredicates = newDefaultPredicates()

func newDefaultPredicates() *PredicateRegistry {
	r := NewPredicateRegistry()

	empty := func(subject any) bool {
		return reflect.ValueOf(subject).Len() == 0
	}
	for _, k := range []reflect.Kind{
		reflect.String, reflect.Slice, reflect.Array,
		reflect.Map, reflect.Chan,
	} {
		_ = r.RegisterKind(k, "empty", empty)
	}

	isNil := func(subject any) bool {
		return reflect.ValueOf(subject).IsNil()
	}
	for _, k := range []reflect.Kind{
		reflect.Pointer, reflect.Slice, reflect.Map,
		reflect.Chan, reflect.Func,
	} {
		_ = r.RegisterKind(k, "nil", isNil)
	}

	signs := map[string]func(int) bool{
		"zero":     func(s int) bool { return s == 0 },
		"positive": func(s int) bool { return s > 0 },
		"negative": func(s int) bool { return s < 0 },
	}
	for k := reflect.Int; k <= reflect.Float64; k++ {
		for name, test := range signs {
			_ = r.RegisterKind(k, name, func(subject any) bool {
				return test(sign(reflect.ValueOf(subject)))
			})
		}
	}

	return r
}

type predicateMatcher struct {
	registry *PredicateRegistry
	name     string
}

// BePredicate matches subjects whose boolean query name returns
// true. "good", "good?" and "be_good" all name the same query.
func BePredicate(name string) (Matcher, error) {
	return BePredicateIn(DefaultPredicates, name)
}

// BePredicateIn is BePredicate with an explicit registry.
//
// A query is resolved, in order, through the subject's Querier
// implementation, the registry, and finally a zero-argument
// method IsName, HasName or Name. A method returning something
// other than a bool is judged by truthiness.
func BePredicateIn(
	registry *PredicateRegistry,
	name string,
) (Matcher, error) {
	key := normalizePredicate(strings.TrimPrefix(name, "be_"))
	if key == "" {
		return nil, newError(
			KindInvalidArgument, "be_predicate",
			"predicate name is empty",
		)
	}
	if registry == nil {
		registry = DefaultPredicates
	}
	return &predicateMatcher{registry: registry, name: key}, nil
}

func (m *predicateMatcher) Name() string { return "be_" + m.name }

func (m *predicateMatcher) Match(subject any) (bool, error) {
	return m.query(subject)
}

func (m *predicateMatcher) query(subject any) (bool, error) {
	if isAbsent(subject) {
		if fn, ok := m.registry.Lookup(reflect.TypeOf(subject), m.name); ok {
			return fn(subject), nil
		}
		return false, m.missing(subject)
	}

	if q, ok := subject.(Querier); ok {
		if result, ok := q.Query(m.name); ok {
			return result, nil
		}
	}

	if fn, ok := m.registry.Lookup(reflect.TypeOf(subject), m.name); ok {
		return fn(subject), nil
	}

	rv := reflect.ValueOf(subject)
	camel := camelCase(m.name)
	for _, candidate := range []string{"Is" + camel, "Has" + camel, camel} {
		method := rv.MethodByName(candidate)
		if !method.IsValid() {
			continue
		}
		mt := method.Type()
		if mt.NumIn() != 0 || mt.NumOut() != 1 {
			continue
		}
		out := method.Call(nil)[0]
		if out.Kind() == reflect.Bool {
			return out.Bool(), nil
		}
		return truthy(out.Interface()), nil
	}

	return false, m.missing(subject)
}

func (m *predicateMatcher) missing(subject any) *Error {
	return newError(
		KindNoSuchPredicate, m.Name(),
		"%s (%T) does not respond to %s?",
		Format(subject), subject, m.name,
	)
}

func (m *predicateMatcher) Describe(subject any, negated bool) string {
	got, err := m.query(subject)
	if err != nil {
		return expectation(subject, negated, m.String())
	}
	return fmt.Sprintf(
		"expected %s.%s? to return %t, got %t",
		Format(subject), m.name, !negated, got,
	)
}

func (m *predicateMatcher) String() string {
	return "be " + strings.ReplaceAll(m.name, "_", " ")
}

func normalizePredicate(name string) string {
	return strings.TrimSuffix(strings.TrimSpace(name), "?")
}

// camelCase turns "has_key" into "HasKey".
func camelCase(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' || r == '-' || r == ' ' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
