// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Candidate is one input file offered to the pairing engine. Candidates are
// built once during intake and never mutated afterwards; the pipeline reads
// the original files but never writes to them.
type Candidate struct {
	// Path is the filesystem path as supplied by the caller.
	Path string `json:"path" yaml:"path"`

	// Valid reports whether the file begins with the PDF magic header.
	Valid bool `json:"valid" yaml:"valid"`
}

// Pair is one unit of work: a cover sheet and the invoice it belongs to.
// Invariant: both candidates share the same grouping key and are distinct
// paths; a pair exists only once both roles are filled.
type Pair struct {
	// Key is the grouping key that joined the two candidates.
	Key string `json:"key" yaml:"key"`

	// Cover is the cover sheet; its form fields get flattened first.
	Cover Candidate `json:"cover" yaml:"cover"`

	// Invoice is the companion document appended after the cover.
	Invoice Candidate `json:"invoice" yaml:"invoice"`
}
