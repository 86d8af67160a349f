package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnd(t *testing.T) {
	m := And(BeGreaterThan(2), BeLessThan(10))

	ok, err := m.Match(5)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Match(12)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, "be > 2 and be < 10", m.String())
	assert.Equal(t, "expected 12 to be < 10", m.Describe(12, false))
	assert.Equal(t, "and", NameOf(m))
}

func TestOr(t *testing.T) {
	m := Or(Equal("a"), Equal("b"))

	ok, err := m.Match("b")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Match("c")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t,
		"expected \"c\" to equal \"a\"\n...and:\nexpected \"c\" to equal \"b\"",
		m.Describe("c", false),
	)
	assert.Equal(t, "or", NameOf(m))
}

func TestCompound_ErrorPropagates(t *testing.T) {
	m := And(BeTruthy(), BeGreaterThan(2))

	ok, err := m.Match("five")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnsupportedComparison)
}

func TestCompound_Empty(t *testing.T) {
	ok, err := And().Match(1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Or().Match(1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNot(t *testing.T) {
	m := Not(Equal(3))

	ok, err := m.Match(4)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Match(3)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, "expected 3 not to equal 3", m.Describe(3, false))
	assert.Equal(t, "not_eq", NameOf(m))
	assert.Equal(t, "not equal 3", m.String())

	_, err = Not(BeGreaterThan(1)).Match("x")
	assert.ErrorIs(t, err, ErrUnsupportedComparison)
}
