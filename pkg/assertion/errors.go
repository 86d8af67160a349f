package assertion

import "errors"

var (
	// ErrUnknownMatcher is returned when a Definition names a
	// matcher type with no registered builder.
	ErrUnknownMatcher = errors.New("unknown matcher type")

	// ErrTargetNotFound is returned when a Definition's target
	// is missing from the subjects map.
	ErrTargetNotFound = errors.New("target not found")

	// ErrAlreadyRegistered is returned when registering a
	// builder under a taken name.
	ErrAlreadyRegistered = errors.New("matcher type already registered")

	// ErrNilMatcher is returned when Evaluate is given no
	// matcher.
	ErrNilMatcher = errors.New("nil matcher")
)
