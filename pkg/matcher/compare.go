package matcher

import (
	"fmt"
	"reflect"
	"strings"
)

// Operator is a binary ordering operator.
type Operator string

const (
	GreaterThan          Operator = ">"
	GreaterThanOrEqualTo Operator = ">="
	LessThan             Operator = "<"
	LessThanOrEqualTo    Operator = "<="
	EqualTo              Operator = "=="
)

var operatorNames = map[Operator]string{
	GreaterThan:          "be_gt",
	GreaterThanOrEqualTo: "be_gte",
	LessThan:             "be_lt",
	LessThanOrEqualTo:    "be_lte",
	EqualTo:              "be_eq",
}

type compareMatcher struct {
	op        Operator
	threshold any
}

// BeComparedTo matches subjects for which "subject op threshold"
// holds. Numbers of any kind, strings and types with a
// Compare(T) int method (such as time.Time) are ordered.
func BeComparedTo(op string, threshold any) (Matcher, error) {
	o := Operator(strings.TrimSpace(op))
	if _, ok := operatorNames[o]; !ok {
		return nil, newError(
			KindInvalidArgument, "be",
			"unknown comparison operator %q", op,
		)
	}
	if !isOrdered(reflect.ValueOf(threshold)) {
		return nil, newError(
			KindInvalidArgument, operatorNames[o],
			"threshold %s (%T) is not ordered",
			Format(threshold), threshold,
		)
	}
	return &compareMatcher{op: o, threshold: threshold}, nil
}

// BeGreaterThan is BeComparedTo(">", threshold). It panics if the
// threshold is not ordered.
func BeGreaterThan(threshold any) Matcher {
	return Must(BeComparedTo(string(GreaterThan), threshold))
}

// BeGreaterThanOrEqualTo is BeComparedTo(">=", threshold).
func BeGreaterThanOrEqualTo(threshold any) Matcher {
	return Must(BeComparedTo(string(GreaterThanOrEqualTo), threshold))
}

// BeLessThan is BeComparedTo("<", threshold).
func BeLessThan(threshold any) Matcher {
	return Must(BeComparedTo(string(LessThan), threshold))
}

// BeLessThanOrEqualTo is BeComparedTo("<=", threshold).
func BeLessThanOrEqualTo(threshold any) Matcher {
	return Must(BeComparedTo(string(LessThanOrEqualTo), threshold))
}

func (m *compareMatcher) Name() string { return operatorNames[m.op] }

func (m *compareMatcher) Match(subject any) (bool, error) {
	c, ordered, err := compareValues(subject, m.threshold)
	if err != nil {
		return false, &Error{
			Kind:    KindUnsupportedComparison,
			Matcher: m.Name(),
			Message: err.Error(),
		}
	}
	if !ordered {
		return false, nil
	}

	switch m.op {
	case GreaterThan:
		return c > 0, nil
	case GreaterThanOrEqualTo:
		return c >= 0, nil
	case LessThan:
		return c < 0, nil
	case LessThanOrEqualTo:
		return c <= 0, nil
	default:
		return c == 0, nil
	}
}

func (m *compareMatcher) Describe(subject any, negated bool) string {
	return expectation(subject, negated, m.String())
}

func (m *compareMatcher) String() string {
	return fmt.Sprintf("be %s %s", m.op, Format(m.threshold))
}

func isOrdered(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	if isNumeric(v.Kind()) || v.Kind() == reflect.String {
		return true
	}
	return compareMethod(v, v.Type()).IsValid()
}

// compareMethod returns v's Compare method when it has the shape
// func(T) int with T the argument type.
func compareMethod(v reflect.Value, arg reflect.Type) reflect.Value {
	method := v.MethodByName("Compare")
	if !method.IsValid() {
		return reflect.Value{}
	}
	mt := method.Type()
	if mt.NumIn() != 1 || mt.NumOut() != 1 ||
		mt.In(0) != arg || !isInt(mt.Out(0).Kind()) {
		return reflect.Value{}
	}
	return method
}

// compareValues orders a against b. ordered is false when the
// values are comparable in kind but have no order (NaN).
func compareValues(a, b any) (c int, ordered bool, err error) {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if !av.IsValid() || !bv.IsValid() {
		return 0, false, fmt.Errorf(
			"cannot compare %s with %s", Format(a), Format(b),
		)
	}

	if isNumeric(av.Kind()) && isNumeric(bv.Kind()) {
		c, ordered = compareNumbers(av, bv)
		return c, ordered, nil
	}

	if av.Kind() == reflect.String && bv.Kind() == reflect.String {
		return strings.Compare(av.String(), bv.String()), true, nil
	}

	if isAbsent(a) || isAbsent(b) {
		return 0, false, fmt.Errorf(
			"cannot compare %s (%T) with %s (%T)",
			Format(a), a, Format(b), b,
		)
	}

	if method := compareMethod(av, bv.Type()); method.IsValid() {
		out := method.Call([]reflect.Value{bv})[0]
		return int(out.Int()), true, nil
	}

	return 0, false, fmt.Errorf(
		"cannot compare %s (%T) with %s (%T)",
		Format(a), a, Format(b), b,
	)
}
