// Package assertion evaluates matchers against subjects. It
// applies polarity, produces Outcomes, and builds matchers from
// declarative Definitions so assertions can live in data files.
package assertion

// Definition describes a single declarative assertion against a
// named subject.
type Definition struct {
	// Type is the matcher name (e.g., "eq", "be_gt", "match",
	// or any "be_<predicate>").
	Type string `json:"type" yaml:"type"`

	// Target is the name of the subject to check.
	Target string `json:"target" yaml:"target"`

	// Value is the matcher argument for single-argument
	// matchers.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Values holds arguments for multi-argument matchers
	// (e.g., "include", "raise_error").
	Values []any `json:"values,omitempty" yaml:"values,omitempty"`

	// Negate applies the matcher with Negate polarity.
	Negate bool `json:"negate,omitempty" yaml:"negate,omitempty"`

	// Message replaces the matcher's failure description when
	// set.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Polarity returns the polarity the definition is applied with.
func (d Definition) Polarity() Polarity {
	if d.Negate {
		return Negate
	}
	return Affirm
}

// Args returns Values, or Value as a single argument, or nil.
func (d Definition) Args() []any {
	if len(d.Values) > 0 {
		return d.Values
	}
	if d.Value != nil {
		return []any{d.Value}
	}
	return nil
}

// Result captures the outcome of evaluating a Definition in a
// batch.
type Result struct {
	// Type is the matcher type that was evaluated.
	Type string `json:"type"`

	// Target is the name of the subject checked.
	Target string `json:"target"`

	// Polarity is the polarity applied.
	Polarity Polarity `json:"polarity"`

	// Expected is the matcher argument.
	Expected any `json:"expected,omitempty"`

	// Passed indicates whether the assertion succeeded.
	Passed bool `json:"passed"`

	// Message is the failure description, or a summary for
	// composites.
	Message string `json:"message,omitempty"`

	// Err is set when the assertion could not be evaluated. A
	// result with Err is neither a pass nor a failure.
	Err error `json:"-"`

	// Error is Err rendered for serialization.
	Error string `json:"error,omitempty"`
}

// Errored reports whether the result carries an evaluation or
// construction error.
func (r Result) Errored() bool { return r.Err != nil }
