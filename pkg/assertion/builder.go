package assertion

import "digital.vasic.matchers/pkg/matcher"

// Builder constructs a matcher from a declarative Definition.
// Invalid definitions return a construction error.
type Builder func(def Definition) (matcher.Matcher, error)
