package capture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
		kind Kind
	}{
		{"returns normally", func() error { return nil }, Returned},
		{"returns error", func() error { return errBoom }, Raised},
		{"panics with error", func() error { panic(errBoom) }, Raised},
		{"panics with string", func() error { panic("bad") }, Raised},
		{
			"throws signal",
			func() error { Throw("oops"); return nil },
			Signaled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Run(tt.fn)
			assert.Equal(t, tt.kind, r.Kind)
		})
	}
}

func TestRun_PanicValueWrapped(t *testing.T) {
	r := Run(func() error { panic(42) })

	require.Equal(t, Raised, r.Kind)
	var pe *PanicError
	require.ErrorAs(t, r.Err, &pe)
	assert.Equal(t, 42, pe.Value)
	assert.Contains(t, r.String(), "panic: 42")
}

func TestRun_SignalCarriesTagAndValue(t *testing.T) {
	r := Run(func() error {
		Throw("done", 7)
		return nil
	})

	require.Equal(t, Signaled, r.Kind)
	assert.Equal(t, Tag("done"), r.Signal.Tag)
	assert.Equal(t, 7, r.Signal.Value)
	assert.Equal(t, "threw :done with 7", r.String())
}

func TestRun_NoStateLeaksBetweenRegions(t *testing.T) {
	first := Run(func() error { panic(errBoom) })
	second := Run(func() error { return nil })

	assert.Equal(t, Raised, first.Kind)
	assert.Equal(t, Returned, second.Kind)
	assert.NoError(t, second.Error())
}

func TestResult_Error(t *testing.T) {
	assert.Nil(t, Result{Kind: Returned}.Error())
	assert.ErrorIs(t, Result{Kind: Raised, Err: errBoom}.Error(), errBoom)

	err := Result{
		Kind:   Signaled,
		Signal: &Signal{Tag: "oops"},
	}.Error()
	var use *UncaughtSignalError
	require.ErrorAs(t, err, &use)
	assert.Equal(t, "uncaught throw :oops", err.Error())
}

func TestCatch(t *testing.T) {
	value, caught := Catch("found", func() {
		Throw("found", "needle")
	})
	assert.True(t, caught)
	assert.Equal(t, "needle", value)

	value, caught = Catch("found", func() {})
	assert.False(t, caught)
	assert.Nil(t, value)
}

func TestCatch_OtherTagPropagates(t *testing.T) {
	r := Run(func() error {
		Catch("inner", func() {
			Throw("outer")
		})
		return nil
	})

	require.Equal(t, Signaled, r.Kind)
	assert.Equal(t, Tag("outer"), r.Signal.Tag)
}

func TestCatch_ErrorPropagates(t *testing.T) {
	r := Run(func() error {
		Catch("inner", func() {
			panic(errBoom)
		})
		return nil
	})

	assert.Equal(t, Raised, r.Kind)
	assert.ErrorIs(t, r.Err, errBoom)
}

func TestDefer(t *testing.T) {
	_, ok := Defer(func() {})
	assert.True(t, ok)
	_, ok = Defer(func() error { return nil })
	assert.True(t, ok)
	_, ok = Defer(func() any { return 1 })
	assert.True(t, ok)

	_, ok = Defer(func(int) {})
	assert.False(t, ok)
	_, ok = Defer(3)
	assert.False(t, ok)

	var nilFn func()
	_, ok = Defer(nilFn)
	assert.False(t, ok)
}

func TestDeferred_RunsOnce(t *testing.T) {
	calls := 0
	d, ok := Defer(func() error {
		calls++
		return errBoom
	})
	require.True(t, ok)
	assert.False(t, d.Ran())

	first := d.Run()
	second := d.Run()

	assert.Equal(t, 1, calls)
	assert.True(t, d.Ran())
	assert.Equal(t, first, second)
	assert.Equal(t, "<deferred computation>", d.String())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "returned", Returned.String())
	assert.Equal(t, "raised", Raised.String())
	assert.Equal(t, "signaled", Signaled.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
