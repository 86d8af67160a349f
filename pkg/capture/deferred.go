package capture

import (
	"sync"
	"sync/atomic"
)

// Deferred is a zero-argument computation whose execution, not
// its return value, is under test. It runs at most once; later
// calls to Run return the memoized Result.
type Deferred struct {
	once   sync.Once
	fn     func() error
	result Result
	ran    atomic.Bool
}

// NewDeferred wraps fn as a Deferred.
func NewDeferred(fn func() error) *Deferred {
	return &Deferred{fn: fn}
}

// Defer converts v into a Deferred when it is a zero-argument
// callable (func(), func() error or func() any) or already a
// *Deferred. The boolean reports whether the conversion applied.
func Defer(v any) (*Deferred, bool) {
	switch fn := v.(type) {
	case *Deferred:
		return fn, fn != nil
	case func() error:
		if fn == nil {
			return nil, false
		}
		return NewDeferred(fn), true
	case func():
		if fn == nil {
			return nil, false
		}
		return NewDeferred(func() error {
			fn()
			return nil
		}), true
	case func() any:
		if fn == nil {
			return nil, false
		}
		return NewDeferred(func() error {
			fn()
			return nil
		}), true
	}
	return nil, false
}

// Run executes the computation inside a capture region the first
// time it is called.
func (d *Deferred) Run() Result {
	d.once.Do(func() {
		d.result = Run(d.fn)
		d.ran.Store(true)
	})
	return d.result
}

// Ran reports whether the computation has executed.
func (d *Deferred) Ran() bool {
	return d.ran.Load()
}

// String is used when a Deferred appears as a subject in
// messages.
func (d *Deferred) String() string {
	return "<deferred computation>"
}
