// Package monitor collects assertion outcome events and streams
// them to external reporters over WebSocket.
package monitor

import (
	"time"

	"digital.vasic.matchers/pkg/assertion"
)

// EventType represents the result class of an evaluation.
type EventType string

const (
	EventPassed  EventType = "passed"
	EventFailed  EventType = "failed"
	EventErrored EventType = "errored"
)

// OutcomeEvent is one evaluated assertion.
type OutcomeEvent struct {
	Type      EventType     `json:"type"`
	Matcher   string        `json:"matcher"`
	Polarity  string        `json:"polarity"`
	Target    string        `json:"target,omitempty"`
	Message   string        `json:"message,omitempty"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// EventFromRecord converts an engine record into an event.
func EventFromRecord(r assertion.Record) OutcomeEvent {
	event := OutcomeEvent{
		Matcher:  r.Matcher,
		Polarity: r.Polarity.String(),
		Target:   r.Target,
		Message:  r.Message,
		Duration: r.Duration,
	}
	switch {
	case r.Err != nil:
		event.Type = EventErrored
		event.Error = r.Err.Error()
	case r.Passed:
		event.Type = EventPassed
	default:
		event.Type = EventFailed
	}
	return event
}
