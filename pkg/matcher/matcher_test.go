package matcher

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int
}

func TestNameOf(t *testing.T) {
	assert.Equal(t, "eq", NameOf(Equal(1)))
	assert.Equal(t, "be_true", NameOf(BeTrue()))
	assert.Equal(t, "<nil>", NameOf(nil))
}

func TestMust(t *testing.T) {
	m := Must(MatchRegexp(`\d+`))
	assert.NotNil(t, m)

	assert.Panics(t, func() {
		Must(MatchRegexp(`(`))
	})
}

func TestError_IsByKind(t *testing.T) {
	err := newError(KindNoSuchPredicate, "be_good", "missing")

	assert.ErrorIs(t, err, ErrNoSuchPredicate)
	assert.NotErrorIs(t, err, ErrInvalidArity)
	assert.Equal(t, KindNoSuchPredicate, KindOf(err))

	wrapped := fmt.Errorf("evaluating: %w", err)
	assert.ErrorIs(t, wrapped, ErrNoSuchPredicate)
	assert.Equal(t, KindNoSuchPredicate, KindOf(wrapped))

	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
}

func TestError_Message(t *testing.T) {
	inner := errors.New("bad parse")
	err := &Error{
		Kind:    KindInvalidArgument,
		Matcher: "match",
		Message: "invalid pattern",
		Err:     inner,
	}

	assert.Equal(t,
		"match: invalid_argument: invalid pattern: bad parse",
		err.Error(),
	)
	assert.ErrorIs(t, err, inner)
}

func TestNewError(t *testing.T) {
	err := NewError(KindInvalidArgument, "be_a", "unknown type %q", "widget")

	assert.Equal(t, `be_a: invalid_argument: unknown type "widget"`, err.Error())
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.True(t, KindOf(err).IsConstruction())
}

func TestErrorKind_IsConstruction(t *testing.T) {
	assert.True(t, KindInvalidArity.IsConstruction())
	assert.True(t, KindInvalidArgument.IsConstruction())
	assert.False(t, KindNoSuchPredicate.IsConstruction())
	assert.False(t, KindUnsupportedComparison.IsConstruction())
	assert.False(t, KindUnsupportedSubject.IsConstruction())
	assert.False(t, KindUncaughtError.IsConstruction())
}

func TestFormat(t *testing.T) {
	var nilPtr *point

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "nil"},
		{"typed nil", nilPtr, "nil"},
		{"string", "hi", `"hi"`},
		{"int", 3, "3"},
		{"float", 2.3, "2.3"},
		{"slice", []any{"one", 2}, `["one", 2]`},
		{"struct", point{1, 2}, "matcher.point{X:1, Y:2}"},
		{"struct pointer", &point{1, 2}, "&matcher.point{X:1, Y:2}"},
		{"error", errors.New("x"), `*errors.errorString("x")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.value))
		})
	}
}

func TestTruthy(t *testing.T) {
	var nilMap map[string]int
	var nilPtr *point

	assert.True(t, truthy(true))
	assert.True(t, truthy(0))
	assert.True(t, truthy(""))
	assert.True(t, truthy([]int{}))
	assert.True(t, truthy(point{}))
	assert.False(t, truthy(false))
	assert.False(t, truthy(nil))
	assert.False(t, truthy(nilMap))
	assert.False(t, truthy(nilPtr))
}

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		equal    bool
	}{
		{"same ints", 3, 3, true},
		{"int and float", 5.0, 5, true},
		{"int and fractional float", 5, 5.5, false},
		{"int8 and uint64", int8(7), uint64(7), true},
		{"negative and unsigned", -1, uint(1), false},
		{"strings", "a", "a", true},
		{"string and int", "3", 3, false},
		{"slices", []int{1, 2}, []int{1, 2}, true},
		{"slices of different types", []int{1}, []any{1}, false},
		{"bytes", []byte("ab"), []byte("ab"), true},
		{"nil and nil", nil, nil, true},
		{"nil and zero", nil, 0, false},
		{"maps", map[string]int{"a": 1}, map[string]int{"a": 1}, true},
		{"funcs", func() {}, func() {}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, valuesEqual(tt.expected, tt.actual))
		})
	}
}

func TestExpectationSentence(t *testing.T) {
	assert.Equal(t, "expected 3 to equal 5",
		expectation(3, false, "equal 5"))
	assert.Equal(t, "expected 3 not to be 3",
		expectation(3, true, "be 3"))
}

// Matching the same subject twice gives the same answer.
func TestMatch_IsRepeatable(t *testing.T) {
	subjects := []any{3, 2.3, "jose@tutsplus.com", true, false, nil,
		[]string{"one", "two", "three"}, point{1, 2}}
	matchers := []Matcher{
		Equal(3), Be(3), BeTrue(), BeFalse(), BeTruthy(), BeFalsy(),
		BeInstanceOf(TypeFor[float64]()), BeA(Numeric),
		Must(MatchRegexp(`\w+@\w+`)),
	}

	for _, m := range matchers {
		for _, s := range subjects {
			raw, err := m.Match(s)
			if err != nil {
				continue
			}
			again, err := m.Match(s)
			require.NoError(t, err)
			assert.Equal(t, raw, again, "%s on %s", m, Format(s))
		}
	}
}
