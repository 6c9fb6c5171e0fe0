// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// BatchResult holds the outcome of one pipeline run. It is produced once
// every job has reached a terminal state; a batch never aborts early.
type BatchResult struct {
	// RunID uniquely identifies the batch run.
	RunID string `json:"run_id" yaml:"run_id"`

	// Merged counts jobs that produced a finished document.
	Merged int `json:"merged" yaml:"merged"`

	// Failed counts jobs that ended in an error.
	Failed int `json:"failed" yaml:"failed"`

	// Skipped counts jobs abandoned at the overwrite prompt.
	Skipped int `json:"skipped" yaml:"skipped"`

	// Outputs lists the finished document paths, in job order.
	Outputs []string `json:"outputs,omitempty" yaml:"outputs,omitempty"`

	// Jobs holds the per-pair execution records, in pairing order.
	Jobs []Job `json:"jobs,omitempty" yaml:"jobs,omitempty"`
}

// Total returns the total number of pairs processed.
func (r BatchResult) Total() int {
	return r.Merged + r.Failed + r.Skipped
}

// HasFailures reports whether any job failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}
