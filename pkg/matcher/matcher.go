// Package matcher provides the comparison strategies used by the
// assertion engine. Each matcher reports whether a subject
// satisfies it and renders a human-readable failure description.
// New matchers are added by implementing Matcher.
package matcher

import (
	"fmt"
	"reflect"
)

// Matcher is a single comparison strategy.
type Matcher interface {
	// Match reports whether subject satisfies the matcher. A
	// non-nil error means the assertion itself is invalid for
	// this subject and must not be read as a failed match.
	Match(subject any) (bool, error)

	// Describe explains why the match produced an unwanted
	// result. negated is true when the expectation was that the
	// matcher should not match.
	Describe(subject any, negated bool) string

	// String returns the expectation phrase, e.g. "equal 3".
	String() string
}

// Named is implemented by matchers that expose a stable
// identifier for logs and metrics.
type Named interface {
	Name() string
}

// NameOf returns the stable name of m, falling back to its Go
// type.
func NameOf(m Matcher) string {
	if n, ok := m.(Named); ok {
		return n.Name()
	}
	t := reflect.TypeOf(m)
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// Must returns m or panics with err. It simplifies building
// matchers whose constructors validate their arguments.
func Must(m Matcher, err error) Matcher {
	if err != nil {
		panic(err)
	}
	return m
}

// expectation renders the standard failure sentence.
func expectation(subject any, negated bool, phrase string) string {
	if negated {
		return fmt.Sprintf(
			"expected %s not to %s", Format(subject), phrase,
		)
	}
	return fmt.Sprintf("expected %s to %s", Format(subject), phrase)
}
