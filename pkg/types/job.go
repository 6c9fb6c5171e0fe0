// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// JobState tracks one pair through the flatten, merge, flatten-again
// sequence. done, failed, and skipped are absorbing.
type JobState string

const (
	JobPending      JobState = "pending"
	JobFlattenCover JobState = "flatten_cover"
	JobMerge        JobState = "merge"
	JobFlattenFinal JobState = "flatten_final"
	JobDone         JobState = "done"
	JobFailed       JobState = "failed"
	JobSkipped      JobState = "skipped"
)

// Terminal reports whether the state is absorbing.
func (s JobState) Terminal() bool {
	return s == JobDone || s == JobFailed || s == JobSkipped
}

// Job is the execution record of one pair. The pipeline owns a job for the
// duration of the run; temporary files it creates are gone by the time the
// job reaches a terminal state.
type Job struct {
	// ID uniquely identifies the job within and across runs.
	ID string `json:"id" yaml:"id"`

	// Index is the job's position in the batch, in pairing order.
	Index int `json:"index" yaml:"index"`

	// Pair is the cover/invoice pair the job processes.
	Pair Pair `json:"pair" yaml:"pair"`

	// State is the job's current, eventually terminal, state.
	State JobState `json:"state" yaml:"state"`

	// Output is the final document path; set only when State is done.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Error describes the failure when State is failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Steps is the ordered log of step messages recorded during the run.
	Steps []string `json:"steps,omitempty" yaml:"steps,omitempty"`
}
