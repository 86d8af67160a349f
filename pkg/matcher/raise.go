package matcher

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"digital.vasic.matchers/pkg/capture"
)

type raiseMatcher struct {
	target  error
	errType Type
	message string
	pattern *regexp.Regexp
}

// RaiseError matches deferred computations that raise: return a
// non-nil error, panic, or let a signal escape uncaught.
//
// Optional arguments narrow the match. The first may be an error
// value (compared with errors.Is), an error Type (searched along
// the wrap chain), a message string or a *regexp.Regexp. A second
// argument, after an error value or Type, constrains the message.
func RaiseError(args ...any) (Matcher, error) {
	if len(args) > 2 {
		return nil, newError(
			KindInvalidArity, "raise_error",
			"wrong number of arguments (given %d, expected 0..2)",
			len(args),
		)
	}

	m := &raiseMatcher{}
	if len(args) == 0 {
		return m, nil
	}

	messageFirst := false
	switch a := args[0].(type) {
	case Type:
		m.errType = a
	case error:
		m.target = a
	case string:
		m.message = a
		messageFirst = true
	case *regexp.Regexp:
		m.pattern = a
		messageFirst = true
	default:
		return nil, newError(
			KindInvalidArgument, "raise_error",
			"expected an error, error type or message, got %T", a,
		)
	}

	if len(args) == 2 {
		if messageFirst {
			return nil, newError(
				KindInvalidArgument, "raise_error",
				"a message must be the last argument",
			)
		}
		switch a := args[1].(type) {
		case string:
			m.message = a
		case *regexp.Regexp:
			m.pattern = a
		default:
			return nil, newError(
				KindInvalidArgument, "raise_error",
				"expected a message string or pattern, got %T", a,
			)
		}
	}

	return m, nil
}

func (m *raiseMatcher) Name() string { return "raise_error" }

func (m *raiseMatcher) Match(subject any) (bool, error) {
	d, ok := subject.(*capture.Deferred)
	if !ok {
		return false, unsupportedSubject(m.Name(), subject)
	}
	return m.matches(d.Run().Error()), nil
}

func (m *raiseMatcher) matches(err error) bool {
	if err == nil {
		return false
	}
	if m.target != nil && !errors.Is(err, m.target) {
		return false
	}
	if m.errType != nil && !walkErrors(err, func(e error) bool {
		return m.errType.Accepts(reflect.TypeOf(e))
	}) {
		return false
	}
	if m.message != "" && err.Error() != m.message {
		return false
	}
	if m.pattern != nil && !m.pattern.MatchString(err.Error()) {
		return false
	}
	return true
}

func (m *raiseMatcher) Describe(subject any, negated bool) string {
	msg := expectation(subject, negated, m.String())
	d, ok := subject.(*capture.Deferred)
	if !ok {
		return msg
	}

	r := d.Run()
	if r.Kind == capture.Returned {
		return msg + ", but nothing was raised"
	}
	return msg + ", but it " + r.String()
}

func (m *raiseMatcher) String() string {
	var b strings.Builder
	switch {
	case m.target != nil:
		fmt.Fprintf(&b, "raise %s", Format(m.target))
	case m.errType != nil:
		fmt.Fprintf(&b, "raise %s", m.errType.Name())
	default:
		b.WriteString("raise an error")
	}
	if m.message != "" {
		fmt.Fprintf(&b, " with message %q", m.message)
	}
	if m.pattern != nil {
		fmt.Fprintf(&b, " with message matching /%s/", m.pattern)
	}
	return b.String()
}

// walkErrors visits err and everything it wraps, depth first,
// until visit returns true.
func walkErrors(err error, visit func(error) bool) bool {
	if err == nil {
		return false
	}
	if visit(err) {
		return true
	}
	switch w := err.(type) {
	case interface{ Unwrap() error }:
		return walkErrors(w.Unwrap(), visit)
	case interface{ Unwrap() []error }:
		for _, e := range w.Unwrap() {
			if walkErrors(e, visit) {
				return true
			}
		}
	}
	return false
}
