// Package trace - Derivation trace recording
// Every pricing run produces an ordered, human-readable log of how each
// number was derived, plus structured diagnostic events so callers can
// assert on counts instead of scraping log text. Recorders are per-task:
// the orchestrator gives each product its own recorder and merges them
// after a group completes, so no synchronization is needed.
package trace

import "fmt"

// EventKind classifies a diagnostic event
type EventKind string

const (
	// EventParseFailure records an attribute value that failed numeric
	// parsing and was normalized to zero
	EventParseFailure EventKind = "parse_failure"

	// EventSkippedVariant records a variant excluded by classification
	EventSkippedVariant EventKind = "skipped_variant"

	// EventMissingWeight records a variant priced with zero weight
	EventMissingWeight EventKind = "missing_weight"

	// EventUnknownGemType records an active gem slot whose type has no
	// configured unit price
	EventUnknownGemType EventKind = "unknown_gem_type"
)

// Event is a structured diagnostic emitted during derivation
type Event struct {
	// Kind classifies the event
	Kind EventKind `json:"kind"`

	// Subject names what the event is about (product title, variant
	// title, attribute key)
	Subject string `json:"subject"`

	// Detail is the human-readable explanation
	Detail string `json:"detail"`
}

// Recorder accumulates trace lines and events for one task
type Recorder struct {
	lines  []string
	events []Event
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Linef appends a formatted trace line
func (r *Recorder) Linef(format string, args ...interface{}) {
	if r == nil {
		return
	}
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

// Eventf appends a structured event and its rendered trace line
func (r *Recorder) Eventf(kind EventKind, subject, format string, args ...interface{}) {
	if r == nil {
		return
	}
	detail := fmt.Sprintf(format, args...)
	r.events = append(r.events, Event{Kind: kind, Subject: subject, Detail: detail})
	r.lines = append(r.lines, fmt.Sprintf("[%s] %s: %s", kind, subject, detail))
}

// Lines returns the ordered trace lines
func (r *Recorder) Lines() []string {
	if r == nil {
		return nil
	}
	return r.lines
}

// Events returns the ordered diagnostic events
func (r *Recorder) Events() []Event {
	if r == nil {
		return nil
	}
	return r.events
}

// Count returns the number of events of a kind
func (r *Recorder) Count(kind EventKind) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Merge appends another recorder's lines and events, preserving order
func (r *Recorder) Merge(other *Recorder) {
	if other == nil {
		return
	}
	r.lines = append(r.lines, other.lines...)
	r.events = append(r.events, other.events...)
}
