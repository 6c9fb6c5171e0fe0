// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EventKind labels the entries a pipeline run emits on its event channel.
type EventKind string

const (
	// EventProgress carries a batch completion fraction in [0, 1].
	EventProgress EventKind = "progress"

	// EventStatus carries a one-line description of the current step.
	EventStatus EventKind = "status"

	// EventLog carries a line for the run transcript.
	EventLog EventKind = "log"

	// EventDone is the terminal event of a batch without failures.
	EventDone EventKind = "done"

	// EventError is the terminal event of a batch with failures.
	EventError EventKind = "error"
)

// Event is one entry on the pipeline's ordered event channel. A front end
// that runs the pipeline in the background drives its progress bar, status
// line, and log pane from these without polling.
type Event struct {
	// Kind selects which of the remaining fields carry meaning.
	Kind EventKind `json:"kind" yaml:"kind"`

	// JobID names the job the event concerns; empty for batch-level events.
	JobID string `json:"job_id,omitempty" yaml:"job_id,omitempty"`

	// Fraction is the completion fraction for progress events.
	Fraction float64 `json:"fraction,omitempty" yaml:"fraction,omitempty"`

	// Message is the text for status, log, and terminal events.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}
