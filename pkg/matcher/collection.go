package matcher

import (
	"reflect"
	"strings"
)

type includeMatcher struct {
	elems []any
}

// Include matches collections containing every given element:
// substrings of a string, elements of a slice or array, or keys
// of a map.
func Include(elem any, more ...any) Matcher {
	return &includeMatcher{elems: append([]any{elem}, more...)}
}

func (m *includeMatcher) Name() string { return "include" }

func (m *includeMatcher) Match(subject any) (bool, error) {
	for _, e := range m.elems {
		ok, err := m.includes(subject, e)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (m *includeMatcher) includes(subject, elem any) (bool, error) {
	if s, ok := subject.(string); ok {
		switch e := elem.(type) {
		case string:
			return strings.Contains(s, e), nil
		case rune:
			return strings.ContainsRune(s, e), nil
		}
		return false, nil
	}

	if isAbsent(subject) {
		return false, unsupportedSubject(m.Name(), subject)
	}

	rv := reflect.ValueOf(subject)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if valuesEqual(elem, rv.Index(i).Interface()) {
				return true, nil
			}
		}
		return false, nil
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			if valuesEqual(elem, iter.Key().Interface()) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, unsupportedSubject(m.Name(), subject)
}

func (m *includeMatcher) Describe(subject any, negated bool) string {
	return expectation(subject, negated, m.String())
}

func (m *includeMatcher) String() string {
	parts := make([]string, len(m.elems))
	for i, e := range m.elems {
		parts[i] = Format(e)
	}
	return "include " + strings.Join(parts, ", ")
}

type edgeMatcher struct {
	expected any
	atEnd    bool
}

// StartWith matches strings with the given prefix, and sequences
// whose leading elements equal the given sequence positionally or
// whose first element equals the given scalar.
func StartWith(expected any) Matcher {
	return &edgeMatcher{expected: expected}
}

// EndWith is StartWith for the trailing end.
func EndWith(expected any) Matcher {
	return &edgeMatcher{expected: expected, atEnd: true}
}

func (m *edgeMatcher) Name() string {
	if m.atEnd {
		return "end_with"
	}
	return "start_with"
}

func (m *edgeMatcher) Match(subject any) (bool, error) {
	if s, ok := subject.(string); ok {
		e, ok := m.expected.(string)
		if !ok {
			return false, nil
		}
		if m.atEnd {
			return strings.HasSuffix(s, e), nil
		}
		return strings.HasPrefix(s, e), nil
	}

	if isAbsent(subject) {
		return false, unsupportedSubject(m.Name(), subject)
	}

	rv := reflect.ValueOf(subject)
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return false, unsupportedSubject(m.Name(), subject)
	}

	n := rv.Len()
	ev := reflect.ValueOf(m.expected)
	if k := ev.Kind(); k != reflect.Slice && k != reflect.Array {
		if n == 0 {
			return false, nil
		}
		at := 0
		if m.atEnd {
			at = n - 1
		}
		return valuesEqual(m.expected, rv.Index(at).Interface()), nil
	}

	size := ev.Len()
	if size > n {
		return false, nil
	}
	offset := 0
	if m.atEnd {
		offset = n - size
	}
	for i := 0; i < size; i++ {
		if !valuesEqual(
			ev.Index(i).Interface(),
			rv.Index(offset+i).Interface(),
		) {
			return false, nil
		}
	}
	return true, nil
}

func (m *edgeMatcher) Describe(subject any, negated bool) string {
	return expectation(subject, negated, m.String())
}

func (m *edgeMatcher) String() string {
	if m.atEnd {
		return "end with " + Format(m.expected)
	}
	return "start with " + Format(m.expected)
}
