// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pairing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/coverbind/pkg/types"
)

func valid(path string) types.Candidate {
	return types.Candidate{Path: path, Valid: true}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		wantRole      Role
		wantAmbiguous bool
	}{
		{
			name:     "cover with spaces",
			path:     "Cover Sheet ACME.pdf",
			wantRole: RoleCover,
		},
		{
			name:     "cover without separator",
			path:     "CoverSheet_ACME.pdf",
			wantRole: RoleCover,
		},
		{
			name:     "cover with hyphen",
			path:     "cover-sheet-acme.pdf",
			wantRole: RoleCover,
		},
		{
			name:     "invoice",
			path:     "Invoice_ACME.pdf",
			wantRole: RoleInvoice,
		},
		{
			name:     "neither keyword",
			path:     "receipt_acme.pdf",
			wantRole: RoleNone,
		},
		{
			name:          "both keywords resolve to cover",
			path:          "invoice_coversheet_123.pdf",
			wantRole:      RoleCover,
			wantAmbiguous: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, ambiguous := Classify(tt.path)
			assert.Equal(t, tt.wantRole, role)
			assert.Equal(t, tt.wantAmbiguous, ambiguous)
		})
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"CoverSheet_ABC.pdf", "abc"},
		{"Invoice_ABC.pdf", "abc"},
		{"Cover Sheet - Acme 001.pdf", "acme001"},
		{"ACME_001_invoice.pdf", "acme001"},
		{"invoice_coversheet_123.pdf", "123"},
		{"/some/dir/Invoice_XY.pdf", "xy"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.path))
		})
	}
}

func TestMatchPairsRegardlessOfOrder(t *testing.T) {
	cover := valid("CoverSheet_ABC.pdf")
	invoice := valid("Invoice_ABC.pdf")

	for _, input := range [][]types.Candidate{
		{cover, invoice},
		{invoice, cover},
	} {
		pairs, diags := Match(input)
		require.Len(t, pairs, 1)
		assert.Empty(t, diags)
		assert.Equal(t, "abc", pairs[0].Key)
		assert.Equal(t, cover.Path, pairs[0].Cover.Path)
		assert.Equal(t, invoice.Path, pairs[0].Invoice.Path)
	}
}

func TestMatchSeparatorAndCaseInsensitive(t *testing.T) {
	pairs, diags := Match([]types.Candidate{
		valid("cover sheet ACME-001.pdf"),
		valid("INVOICE_acme_001.pdf"),
	})

	require.Len(t, pairs, 1)
	assert.Empty(t, diags)
	assert.Equal(t, "acme001", pairs[0].Key)
}

func TestMatchTwoCoversYieldNoPair(t *testing.T) {
	pairs, diags := Match([]types.Candidate{
		valid("CoverSheet_ABC.pdf"),
		valid("cover sheet abc.pdf"),
	})

	assert.Empty(t, pairs)
	require.Len(t, diags, 1)
	assert.Equal(t, DiagConflict, diags[0].Kind)
	assert.Equal(t, "abc", diags[0].Key)
}

func TestMatchConflictedBucketEmitsNothing(t *testing.T) {
	// Even with a full pair present, a duplicate role drops the bucket.
	pairs, diags := Match([]types.Candidate{
		valid("CoverSheet_ABC.pdf"),
		valid("Invoice_ABC.pdf"),
		valid("cover-sheet ABC.pdf"),
	})

	assert.Empty(t, pairs)
	require.Len(t, diags, 1)
	assert.Equal(t, DiagConflict, diags[0].Kind)
}

func TestMatchUnmatchedFileDoesNotBlockOthers(t *testing.T) {
	pairs, diags := Match([]types.Candidate{
		valid("CoverSheet_ABC.pdf"),
		valid("notes_abc.pdf"),
		valid("Invoice_ABC.pdf"),
	})

	require.Len(t, pairs, 1)
	assert.Equal(t, "abc", pairs[0].Key)

	require.Len(t, diags, 1)
	assert.Equal(t, DiagUnmatched, diags[0].Kind)
	assert.Equal(t, "notes_abc.pdf", diags[0].Path)
}

func TestMatchKeepsFirstSeenKeyOrder(t *testing.T) {
	pairs, _ := Match([]types.Candidate{
		valid("Invoice_B.pdf"),
		valid("Invoice_A.pdf"),
		valid("CoverSheet_A.pdf"),
		valid("CoverSheet_B.pdf"),
	})

	require.Len(t, pairs, 2)
	assert.Equal(t, "b", pairs[0].Key)
	assert.Equal(t, "a", pairs[1].Key)
}

func TestMatchUnpairedAndInvalidDiagnostics(t *testing.T) {
	pairs, diags := Match([]types.Candidate{
		valid("Invoice_Lonely.pdf"),
		{Path: "broken.pdf", Valid: false},
	})

	assert.Empty(t, pairs)
	require.Len(t, diags, 2)

	kinds := map[string]string{}
	for _, d := range diags {
		kinds[d.Path] = d.Kind
	}
	assert.Equal(t, DiagInvalid, kinds["broken.pdf"])
	assert.Equal(t, DiagUnpaired, kinds["Invoice_Lonely.pdf"])
}

func TestMatchAmbiguousStemPairsAsCover(t *testing.T) {
	pairs, diags := Match([]types.Candidate{
		valid("invoice_coversheet_123.pdf"),
		valid("Invoice_123.pdf"),
	})

	require.Len(t, pairs, 1)
	assert.Equal(t, "invoice_coversheet_123.pdf", pairs[0].Cover.Path)
	assert.Equal(t, "Invoice_123.pdf", pairs[0].Invoice.Path)

	require.Len(t, diags, 1)
	assert.Equal(t, DiagAmbiguous, diags[0].Kind)
}

func TestMatchEmptyInput(t *testing.T) {
	pairs, diags := Match(nil)
	assert.Empty(t, pairs)
	assert.Empty(t, diags)
}
