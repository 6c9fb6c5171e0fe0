package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/coverbind/internal/pairing"
	"github.com/pdiddy/coverbind/internal/pipeline"
)

func writePDFStub(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 stub"), 0o644))
	return path
}

func TestRunMergeRequiresTwoValidPDFs(t *testing.T) {
	dir := t.TempDir()
	one := writePDFStub(t, dir, "Invoice_only.pdf")

	err := runMerge(mergeCmd, []string{one})

	require.ErrorIs(t, err, pipeline.ErrTooFewPDFs)
}

func TestRunMergeRequiresPairs(t *testing.T) {
	dir := t.TempDir()
	a := writePDFStub(t, dir, "alpha.pdf")
	b := writePDFStub(t, dir, "beta.pdf")

	err := runMerge(mergeCmd, []string{a, b})

	require.ErrorIs(t, err, pipeline.ErrNoPairs)
}

func TestRunMergeRejectsUnknownSummaryFormat(t *testing.T) {
	require.NoError(t, mergeCmd.Flags().Set("summary", "xml"))
	defer func() {
		require.NoError(t, mergeCmd.Flags().Set("summary", "text"))
	}()

	err := runMerge(mergeCmd, []string{"anything.pdf"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestDiagLine(t *testing.T) {
	tests := []struct {
		name string
		diag pairing.Diagnostic
		want string
	}{
		{
			name: "invalid",
			diag: pairing.Diagnostic{Path: "x.pdf", Kind: pairing.DiagInvalid},
			want: "ignoring x.pdf: not a PDF file",
		},
		{
			name: "unmatched",
			diag: pairing.Diagnostic{Path: "x.pdf", Kind: pairing.DiagUnmatched},
			want: "ignoring x.pdf: neither cover sheet nor invoice",
		},
		{
			name: "conflict",
			diag: pairing.Diagnostic{Path: "x.pdf", Key: "acme", Kind: pairing.DiagConflict},
			want: `conflict: x.pdf duplicates a role for "acme", dropping the group`,
		},
		{
			name: "unpaired",
			diag: pairing.Diagnostic{Path: "x.pdf", Key: "acme", Kind: pairing.DiagUnpaired},
			want: "no counterpart found for x.pdf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, diagLine(tt.diag))
		})
	}
}
