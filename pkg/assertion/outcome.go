package assertion

import (
	"fmt"
	"strings"
	"time"
)

// Polarity governs whether an expectation affirms or negates its
// matcher's raw result.
type Polarity int

const (
	// Affirm passes when the matcher matches.
	Affirm Polarity = iota
	// Negate passes when the matcher does not match.
	Negate
)

// String returns "affirm" or "negate".
func (p Polarity) String() string {
	switch p {
	case Affirm:
		return "affirm"
	case Negate:
		return "negate"
	default:
		return fmt.Sprintf("polarity(%d)", int(p))
	}
}

// Negated reports whether p is Negate.
func (p Polarity) Negated() bool { return p == Negate }

// Apply maps a raw match result to a pass or fail.
func (p Polarity) Apply(raw bool) bool {
	if p == Negate {
		return !raw
	}
	return raw
}

// MarshalText implements encoding.TextMarshaler.
func (p Polarity) MarshalText() ([]byte, error) {
	switch p {
	case Affirm, Negate:
		return []byte(p.String()), nil
	}
	return nil, fmt.Errorf("invalid polarity: %d", int(p))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Polarity) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "affirm", "to":
		*p = Affirm
	case "negate", "not_to", "to_not":
		*p = Negate
	default:
		return fmt.Errorf("invalid polarity: %q", text)
	}
	return nil
}

// Outcome is the result of evaluating one expectation. The
// engine returns it by value and never touches it again.
type Outcome struct {
	// Matcher is the stable name of the matcher applied.
	Matcher string `json:"matcher"`

	// Expectation is the matcher's phrase, e.g. "equal 3".
	Expectation string `json:"expectation"`

	// Polarity is the polarity the matcher was applied with.
	Polarity Polarity `json:"polarity"`

	// Passed is the final verdict after polarity.
	Passed bool `json:"passed"`

	// Message explains a failure. It is empty for passes
	// unless the engine runs verbose.
	Message string `json:"message,omitempty"`
}

// Record is handed to observers after every evaluation,
// including those that ended in an error.
type Record struct {
	Matcher  string
	Polarity Polarity
	Target   string
	Passed   bool
	Message  string
	Err      error
	Duration time.Duration
}

// Observer receives a Record for each evaluation.
type Observer func(Record)
