package matcher

import (
	"fmt"
	"reflect"
)

type equalMatcher struct {
	expected any
}

// Equal matches subjects equal to expected. Values are compared
// deeply; numbers compare by value across types, so 5 equals 5.0.
// Values of incomparable types simply do not match.
func Equal(expected any) Matcher {
	return &equalMatcher{expected: expected}
}

func (m *equalMatcher) Name() string { return "eq" }

func (m *equalMatcher) Match(subject any) (bool, error) {
	return valuesEqual(m.expected, subject), nil
}

func (m *equalMatcher) Describe(subject any, negated bool) string {
	msg := expectation(subject, negated, m.String())
	if !negated && reflect.TypeOf(subject) != reflect.TypeOf(m.expected) {
		msg += fmt.Sprintf(
			" (compared %T with %T)", subject, m.expected,
		)
	}
	return msg
}

func (m *equalMatcher) String() string {
	return "equal " + Format(m.expected)
}

type beMatcher struct {
	expected any
}

// Be matches only the identical value: the same pointer for
// reference kinds, or an equal comparable value of the same type.
func Be(expected any) Matcher {
	return &beMatcher{expected: expected}
}

func (m *beMatcher) Name() string { return "be" }

func (m *beMatcher) Match(subject any) (bool, error) {
	return identical(m.expected, subject), nil
}

func (m *beMatcher) Describe(subject any, negated bool) string {
	return expectation(subject, negated, m.String())
}

func (m *beMatcher) String() string {
	return "be " + Format(m.expected)
}

func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Type() != bv.Type() {
		return false
	}

	switch av.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func,
		reflect.UnsafePointer:
		return av.Pointer() == bv.Pointer()
	case reflect.Slice:
		return av.Pointer() == bv.Pointer() && av.Len() == bv.Len()
	}

	return av.Comparable() && bv.Comparable() && av.Equal(bv)
}
