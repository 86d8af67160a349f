package matcher

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an invalid assertion.
type ErrorKind string

const (
	// KindInvalidArity means a matcher was built with the wrong
	// number of arguments.
	KindInvalidArity ErrorKind = "invalid_arity"
	// KindInvalidArgument means a matcher argument is unusable.
	KindInvalidArgument ErrorKind = "invalid_argument"
	// KindNoSuchPredicate means the subject lacks the queried
	// capability.
	KindNoSuchPredicate ErrorKind = "no_such_predicate"
	// KindUnsupportedComparison means the subject cannot be
	// ordered against the threshold.
	KindUnsupportedComparison ErrorKind = "unsupported_comparison"
	// KindUnsupportedSubject means the matcher cannot inspect
	// this kind of subject.
	KindUnsupportedSubject ErrorKind = "unsupported_subject"
	// KindUncaughtError means a deferred computation raised an
	// error the matcher does not capture.
	KindUncaughtError ErrorKind = "uncaught_error"
)

// IsConstruction reports whether errors of this kind are raised
// while building a matcher rather than while matching.
func (k ErrorKind) IsConstruction() bool {
	return k == KindInvalidArity || k == KindInvalidArgument
}

// Error is returned by matcher constructors and by Match when an
// assertion is malformed.
type Error struct {
	Kind    ErrorKind
	Matcher string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Matcher != "" {
		msg = e.Matcher + ": " + msg
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the sentinels below
// work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidArity          = &Error{Kind: KindInvalidArity}
	ErrInvalidArgument       = &Error{Kind: KindInvalidArgument}
	ErrNoSuchPredicate       = &Error{Kind: KindNoSuchPredicate}
	ErrUnsupportedComparison = &Error{Kind: KindUnsupportedComparison}
	ErrUnsupportedSubject    = &Error{Kind: KindUnsupportedSubject}
	ErrUncaughtError         = &Error{Kind: KindUncaughtError}
)

// KindOf extracts the ErrorKind from err, or "" when err is not a
// matcher error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(
	kind ErrorKind, matcher, format string, args ...any,
) *Error {
	return &Error{
		Kind:    kind,
		Matcher: matcher,
		Message: fmt.Sprintf(format, args...),
	}
}

func unsupportedSubject(matcher string, subject any) *Error {
	return newError(
		KindUnsupportedSubject, matcher,
		"cannot apply to %s (%T)", Format(subject), subject,
	)
}

// NewError builds a matcher error. Custom matchers and
// declarative builders use it to report invalid assertions.
func NewError(
	kind ErrorKind, matcher, format string, args ...any,
) *Error {
	return newError(kind, matcher, format, args...)
}
