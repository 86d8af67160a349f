package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.matchers/pkg/matcher"
)

func TestAllPassComposite(t *testing.T) {
	e := NewEngine()
	subjects := map[string]any{"number": 3, "name": "jose"}

	tests := []struct {
		name     string
		defs     []Definition
		passed   bool
		errored  bool
		contains string
	}{
		{
			name: "all pass",
			defs: []Definition{
				{Type: "eq", Target: "number", Value: 3},
				{Type: "start_with", Target: "name", Value: "jo"},
			},
			passed:   true,
			contains: "all 2 assertions passed",
		},
		{
			name: "one fails",
			defs: []Definition{
				{Type: "eq", Target: "number", Value: 3},
				{Type: "eq", Target: "name", Value: "josé"},
			},
			contains: "assertion 'eq' on target 'name' failed",
		},
		{
			name: "one errors",
			defs: []Definition{
				{Type: "be_gt", Target: "name", Value: 1},
			},
			errored:  true,
			contains: "errored",
		},
		{
			name:     "empty",
			defs:     nil,
			passed:   true,
			contains: "all 0 assertions passed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := AllPassComposite(e, tt.defs, subjects)
			assert.Equal(t, "all_pass", r.Type)
			assert.Equal(t, tt.passed, r.Passed)
			assert.Equal(t, tt.errored, r.Errored())
			assert.Contains(t, r.Message, tt.contains)
		})
	}
}

func TestAnyPassComposite(t *testing.T) {
	e := NewEngine()
	subjects := map[string]any{"number": 3}

	r := AnyPassComposite(e, []Definition{
		{Type: "eq", Target: "number", Value: 4},
		{Type: "be_gt", Target: "number", Value: 2},
	}, subjects)
	assert.True(t, r.Passed)
	assert.Equal(t, "assertion 'be_gt' on target 'number' passed", r.Message)

	r = AnyPassComposite(e, []Definition{
		{Type: "eq", Target: "number", Value: 4},
		{Type: "eq", Target: "missing", Value: 3},
	}, subjects)
	assert.False(t, r.Passed)
	assert.Equal(t, "none of 2 assertions passed", r.Message)
}

func TestCompositeBuilders(t *testing.T) {
	e := NewEngine()
	subDefs := []Definition{
		{Type: "be_a", Value: "integer"},
		{Type: "be_lt", Value: 10},
		{Type: "eq", Value: 7, Negate: true},
	}

	require.NoError(t, e.Register("small_int", CompositeAllPass(e, subDefs)))
	require.NoError(t, e.Register("small_or_seven", CompositeAnyPass(e, []Definition{
		{Type: "be_lt", Value: 5},
		{Type: "eq", Value: 7},
	})))

	tests := []struct {
		def     Definition
		subject any
		passed  bool
	}{
		{Definition{Type: "small_int"}, 3, true},
		{Definition{Type: "small_int"}, 7, false},
		{Definition{Type: "small_int"}, 3.5, false},
		{Definition{Type: "small_int", Negate: true}, 12, true},
		{Definition{Type: "small_or_seven"}, 7, true},
		{Definition{Type: "small_or_seven"}, 6, false},
	}

	for _, tt := range tests {
		out, err := e.EvaluateDefinition(tt.def, tt.subject)
		require.NoError(t, err)
		assert.Equal(t, tt.passed, out.Passed,
			"%s on %v", tt.def.Type, tt.subject)
	}
}

func TestCompositeBuilders_InvalidSubDefinition(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Register("broken", CompositeAllPass(e, []Definition{
		{Type: "be_gt"},
	})))

	_, err := e.EvaluateDefinition(Definition{Type: "broken"}, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, matcher.ErrInvalidArity)
	assert.Contains(t, err.Error(), "composite be_gt")
}
