// Package expect is the fluent entry point to the assertion
// engine:
//
//	out, err := expect.Expect(3).To(matcher.Equal(3))
//	out, err = expect.Expect(func() { capture.Throw("oops") }).
//		To(matcher.Must(matcher.ThrowSignal("oops")))
//
// A zero-argument callable passed to Expect is wrapped as a
// deferred computation, so raise and throw matchers can observe
// its execution.
package expect

import (
	"digital.vasic.matchers/pkg/assertion"
	"digital.vasic.matchers/pkg/capture"
	"digital.vasic.matchers/pkg/matcher"
)

var defaultEngine assertion.Engine = assertion.NewEngine()

// Expectation binds a subject to the engine that evaluates it.
type Expectation struct {
	subject any
	engine  assertion.Engine
}

// Expect wraps subject for evaluation by the default engine.
// func(), func() error and func() any subjects become deferred
// computations.
func Expect(subject any) *Expectation {
	return ExpectWith(defaultEngine, subject)
}

// ExpectWith is Expect with an explicit engine. A nil engine
// selects the default one.
func ExpectWith(
	engine assertion.Engine,
	subject any,
) *Expectation {
	if engine == nil {
		engine = defaultEngine
	}
	if d, ok := capture.Defer(subject); ok {
		subject = d
	}
	return &Expectation{subject: subject, engine: engine}
}

// Subject returns the value under test, a *capture.Deferred for
// callables.
func (x *Expectation) Subject() any {
	return x.subject
}

// To passes when m matches the subject.
func (x *Expectation) To(m matcher.Matcher) (assertion.Outcome, error) {
	return x.Apply(assertion.Affirm, m)
}

// NotTo passes when m does not match the subject.
func (x *Expectation) NotTo(m matcher.Matcher) (assertion.Outcome, error) {
	return x.Apply(assertion.Negate, m)
}

// ToNot is NotTo.
func (x *Expectation) ToNot(m matcher.Matcher) (assertion.Outcome, error) {
	return x.Apply(assertion.Negate, m)
}

// Apply evaluates m with an explicit polarity. Matcher errors
// are returned as-is and never show up as a failed Outcome.
func (x *Expectation) Apply(
	polarity assertion.Polarity,
	m matcher.Matcher,
) (assertion.Outcome, error) {
	return x.engine.Evaluate(x.subject, polarity, m)
}
