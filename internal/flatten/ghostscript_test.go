// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package flatten

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// mockRunner records invocations and returns configured responses.
type mockRunner struct {
	calls    [][]string
	stdout   []byte
	stderr   []byte
	err      error
	binaries map[string]bool // name -> whether LookPath succeeds
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	call := append([]string{name}, args...)
	m.calls = append(m.calls, call)
	return m.stdout, m.stderr, m.err
}

func (m *mockRunner) LookPath(file string) (string, error) {
	if m.binaries[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func writeSource(t *testing.T) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "cover.pdf")
	if err := os.WriteFile(src, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		t.Fatal(err)
	}
	return src
}

func TestFlattenInvocation(t *testing.T) {
	src := writeSource(t)
	dst := filepath.Join(filepath.Dir(src), "cover_flat.pdf")

	run := &mockRunner{}
	gs := newGhostscript("/usr/bin/gs", run, nil)

	if err := gs.Flatten(context.Background(), src, dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(run.calls) != 1 {
		t.Fatalf("got %d invocations, want 1", len(run.calls))
	}
	call := run.calls[0]
	if call[0] != "/usr/bin/gs" {
		t.Errorf("binary = %q, want /usr/bin/gs", call[0])
	}

	for _, flag := range []string{
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=1.6",
		"-dPDFSETTINGS=/printer",
		"-dPrinted",
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		"-sOutputFile=" + dst,
	} {
		if !contains(call, flag) {
			t.Errorf("invocation missing %q: %v", flag, call)
		}
	}
	if call[len(call)-1] != src {
		t.Errorf("source must be the last argument, got %q", call[len(call)-1])
	}
}

func TestFlattenMissingSource(t *testing.T) {
	run := &mockRunner{}
	gs := newGhostscript("gs", run, nil)

	err := gs.Flatten(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"), "out.pdf")
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("error = %v, want ErrSourceNotFound", err)
	}
	if len(run.calls) != 0 {
		t.Error("tool must not run when the source is missing")
	}
}

func TestFlattenExecFailure(t *testing.T) {
	src := writeSource(t)
	run := &mockRunner{
		stderr: []byte("Error: /undefined in obj"),
		err:    errors.New("exit status 1"),
	}
	gs := newGhostscript("gs", run, nil)

	err := gs.Flatten(context.Background(), src, "out.pdf")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("error type = %T, want *ExecError", err)
	}
	if !strings.Contains(execErr.Output, "/undefined in obj") {
		t.Errorf("diagnostic output missing tool stderr: %q", execErr.Output)
	}
	if !strings.Contains(err.Error(), "/undefined in obj") {
		t.Errorf("error text should carry the diagnostic: %v", err)
	}
}

func TestFlattenDiagnosticsFallBackToStdout(t *testing.T) {
	src := writeSource(t)
	run := &mockRunner{
		stdout: []byte("GPL Ghostscript: cannot open output"),
		err:    errors.New("exit status 1"),
	}
	gs := newGhostscript("gs", run, nil)

	err := gs.Flatten(context.Background(), src, "out.pdf")
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("error type = %T, want *ExecError", err)
	}
	if !strings.Contains(execErr.Output, "cannot open output") {
		t.Errorf("diagnostics should fall back to stdout, got %q", execErr.Output)
	}
}

func TestVersion(t *testing.T) {
	run := &mockRunner{stdout: []byte("10.03.1\n")}
	gs := newGhostscript("gs", run, nil)

	got, err := gs.Version(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "10.03.1" {
		t.Errorf("version = %q, want %q", got, "10.03.1")
	}
	if len(run.calls) != 1 || run.calls[0][1] != "--version" {
		t.Errorf("expected a single --version invocation, got %v", run.calls)
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
