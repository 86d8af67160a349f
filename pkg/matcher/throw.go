package matcher

import (
	"fmt"

	"digital.vasic.matchers/pkg/capture"
)

type throwMatcher struct {
	tag      capture.Tag
	value    any
	hasValue bool
}

// ThrowSignal matches deferred computations that throw a signal
// with exactly the given tag. An optional second argument is
// compared with the signal's value. At least one argument is
// required.
func ThrowSignal(args ...any) (Matcher, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, newError(
			KindInvalidArity, "throw_symbol",
			"wrong number of arguments (given %d, expected 1..2)",
			len(args),
		)
	}

	var tag capture.Tag
	switch t := args[0].(type) {
	case capture.Tag:
		tag = t
	case string:
		tag = capture.Tag(t)
	default:
		return nil, newError(
			KindInvalidArgument, "throw_symbol",
			"tag must be a string, got %T", args[0],
		)
	}
	if tag == "" {
		return nil, newError(
			KindInvalidArgument, "throw_symbol", "tag is empty",
		)
	}

	m := &throwMatcher{tag: tag}
	if len(args) == 2 {
		m.value, m.hasValue = args[1], true
	}
	return m, nil
}

func (m *throwMatcher) Name() string { return "throw_symbol" }

func (m *throwMatcher) Match(subject any) (bool, error) {
	d, ok := subject.(*capture.Deferred)
	if !ok {
		return false, unsupportedSubject(m.Name(), subject)
	}

	r := d.Run()
	switch r.Kind {
	case capture.Raised:
		return false, &Error{
			Kind:    KindUncaughtError,
			Matcher: m.Name(),
			Message: "computation raised instead of throwing",
			Err:     r.Err,
		}
	case capture.Signaled:
		return m.matches(r.Signal), nil
	}
	return false, nil
}

func (m *throwMatcher) matches(s *capture.Signal) bool {
	if s.Tag != m.tag {
		return false
	}
	return !m.hasValue || valuesEqual(m.value, s.Value)
}

func (m *throwMatcher) Describe(subject any, negated bool) string {
	msg := expectation(subject, negated, m.String())
	d, ok := subject.(*capture.Deferred)
	if !ok {
		return msg
	}

	r := d.Run()
	if r.Kind != capture.Signaled {
		return msg + ", but nothing was thrown"
	}
	return fmt.Sprintf("%s, got %s", msg, r.Signal)
}

func (m *throwMatcher) String() string {
	if m.hasValue {
		return fmt.Sprintf("throw %s with %s", m.tag, Format(m.value))
	}
	return "throw " + m.tag.String()
}
