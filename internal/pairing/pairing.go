// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pairing groups candidate files into cover/invoice pairs by
// filename keyword and shared stem. Matching is case-insensitive and
// ignores space, hyphen, and underscore, but is otherwise exact; there is
// no fuzzy matching.
package pairing

import (
	"path/filepath"
	"strings"

	"github.com/pdiddy/coverbind/pkg/types"
)

const (
	coverKeyword   = "coversheet"
	invoiceKeyword = "invoice"
)

// Role classifies a candidate by the keyword its filename stem carries.
type Role string

const (
	RoleNone    Role = "none"
	RoleCover   Role = "cover"
	RoleInvoice Role = "invoice"
)

// Diagnostic kinds reported by Match.
const (
	// DiagInvalid marks a candidate that failed the PDF header sniff.
	DiagInvalid = "invalid"
	// DiagUnmatched marks a filename carrying neither keyword.
	DiagUnmatched = "unmatched"
	// DiagAmbiguous marks a filename carrying both keywords; it is
	// deterministically treated as a cover sheet.
	DiagAmbiguous = "ambiguous"
	// DiagConflict marks a candidate whose role was already claimed by
	// another file with the same grouping key. The bucket emits no pair.
	DiagConflict = "conflict"
	// DiagUnpaired marks a classified candidate whose bucket never saw
	// the counterpart role.
	DiagUnpaired = "unpaired"
)

// Diagnostic explains why a candidate did not land cleanly in a pair.
type Diagnostic struct {
	// Path is the candidate the diagnostic concerns.
	Path string `json:"path" yaml:"path"`

	// Key is the candidate's grouping key; empty when no keyword matched.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	// Kind is one of the Diag constants.
	Kind string `json:"kind" yaml:"kind"`
}

// bucket tracks role occupancy for one grouping key. Occupancy is explicit:
// a nil slot is unfilled, a set slot is filled, and a second claim on a
// filled slot marks the whole bucket conflicted, so it emits nothing.
type bucket struct {
	cover    *types.Candidate
	invoice  *types.Candidate
	conflict bool
}

// Classify returns the role for a filename, and whether both keywords were
// present. "Cover Sheet", "cover-sheet", and "CoverSheet" all classify the
// same way.
func Classify(path string) (role Role, ambiguous bool) {
	stem := normalizeStem(path)
	hasCover := strings.Contains(stem, coverKeyword)
	hasInvoice := strings.Contains(stem, invoiceKeyword)
	switch {
	case hasCover && hasInvoice:
		return RoleCover, true
	case hasCover:
		return RoleCover, false
	case hasInvoice:
		return RoleInvoice, false
	}
	return RoleNone, false
}

// Key derives the grouping key: the normalized stem with every keyword
// occurrence removed. Candidates with equal keys and complementary roles
// belong together.
func Key(path string) string {
	stem := normalizeStem(path)
	stem = strings.ReplaceAll(stem, coverKeyword, "")
	return strings.ReplaceAll(stem, invoiceKeyword, "")
}

// normalizeStem lowercases the filename stem and strips separator runes.
func normalizeStem(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.ToLower(stem)

	var b strings.Builder
	b.Grow(len(stem))
	for _, r := range stem {
		switch r {
		case ' ', '-', '_':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Match buckets candidates by grouping key and emits a pair for every
// bucket holding exactly one cover and one invoice. Pairs come out in
// first-seen key order, independent of input order within a bucket.
// Everything that did not pair cleanly is explained by a diagnostic.
func Match(candidates []types.Candidate) ([]types.Pair, []Diagnostic) {
	buckets := make(map[string]*bucket)
	var order []string
	var diags []Diagnostic

	for i := range candidates {
		c := candidates[i]
		if !c.Valid {
			diags = append(diags, Diagnostic{Path: c.Path, Kind: DiagInvalid})
			continue
		}

		role, ambiguous := Classify(c.Path)
		if role == RoleNone {
			diags = append(diags, Diagnostic{Path: c.Path, Kind: DiagUnmatched})
			continue
		}
		key := Key(c.Path)
		if ambiguous {
			diags = append(diags, Diagnostic{Path: c.Path, Key: key, Kind: DiagAmbiguous})
		}

		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
			order = append(order, key)
		}

		slot := &b.cover
		if role == RoleInvoice {
			slot = &b.invoice
		}
		if *slot != nil {
			b.conflict = true
			diags = append(diags, Diagnostic{Path: c.Path, Key: key, Kind: DiagConflict})
			continue
		}
		*slot = &candidates[i]
	}

	var pairs []types.Pair
	for _, key := range order {
		b := buckets[key]
		if b.conflict {
			continue
		}
		if b.cover == nil || b.invoice == nil {
			for _, c := range []*types.Candidate{b.cover, b.invoice} {
				if c != nil {
					diags = append(diags, Diagnostic{Path: c.Path, Key: key, Kind: DiagUnpaired})
				}
			}
			continue
		}
		pairs = append(pairs, types.Pair{Key: key, Cover: *b.cover, Invoice: *b.invoice})
	}
	return pairs, diags
}
