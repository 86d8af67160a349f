// Package capture runs deferred computations inside a scoped
// capture region and reports how they finished: by returning
// normally, by raising an error, or by throwing a control
// signal.
package capture

import (
	"errors"
	"fmt"
)

// Kind classifies how a captured computation finished.
type Kind int

const (
	// Returned means the computation completed without raising.
	Returned Kind = iota
	// Raised means the computation returned a non-nil error or
	// panicked.
	Raised
	// Signaled means a control signal escaped the computation.
	Signaled
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case Returned:
		return "returned"
	case Raised:
		return "raised"
	case Signaled:
		return "signaled"
	default:
		return "unknown"
	}
}

// Result is the tagged record produced by a capture region.
type Result struct {
	Kind Kind

	// Err is set when Kind is Raised.
	Err error

	// Signal is set when Kind is Signaled.
	Signal *Signal
}

// Error returns the error the computation raised. A signal that
// escaped without a matching Catch is reported as an
// *UncaughtSignalError. Returns nil when the computation
// returned normally.
func (r Result) Error() error {
	switch r.Kind {
	case Raised:
		return r.Err
	case Signaled:
		return &UncaughtSignalError{Signal: r.Signal}
	}
	return nil
}

// String describes the result for failure messages.
func (r Result) String() string {
	switch r.Kind {
	case Raised:
		return fmt.Sprintf("raised %s", describeError(r.Err))
	case Signaled:
		return fmt.Sprintf("threw %s", r.Signal)
	default:
		return "returned normally"
	}
}

// PanicError wraps a panic value that was not itself an error.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// UncaughtSignalError reports a signal that escaped every Catch.
type UncaughtSignalError struct {
	Signal *Signal
}

func (e *UncaughtSignalError) Error() string {
	return fmt.Sprintf("uncaught throw %s", e.Signal)
}

// Run invokes fn inside a capture region. Panics are recovered
// before Run returns, whatever path fn takes, so no capture state
// survives the call.
func Run(fn func() error) (result Result) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		result = fromPanic(r)
	}()

	if err := fn(); err != nil {
		return Result{Kind: Raised, Err: err}
	}
	return Result{Kind: Returned}
}

func fromPanic(r any) Result {
	switch v := r.(type) {
	case *Signal:
		return Result{Kind: Signaled, Signal: v}
	case error:
		return Result{Kind: Raised, Err: v}
	default:
		return Result{Kind: Raised, Err: &PanicError{Value: v}}
	}
}

func describeError(err error) string {
	if err == nil {
		return "<nil>"
	}
	var pe *PanicError
	if errors.As(err, &pe) {
		return err.Error()
	}
	return fmt.Sprintf("%T: %s", err, err.Error())
}
