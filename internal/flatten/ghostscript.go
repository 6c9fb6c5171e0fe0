// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package flatten drives Ghostscript to rewrite a PDF with its interactive
// form fields burned into static page content.
package flatten

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Sentinel errors for flatten operations.
var (
	// ErrToolNotFound means no Ghostscript executable could be located.
	ErrToolNotFound = errors.New("ghostscript not found")

	// ErrSourceNotFound means the document to flatten does not exist.
	ErrSourceNotFound = errors.New("source file not found")
)

// ExecError reports a Ghostscript run that exited non-zero, keeping the
// tool's own diagnostic output.
type ExecError struct {
	// Args is the full argument list of the failed invocation.
	Args []string

	// Output is the tool's diagnostic text: stderr, or stdout when the
	// error stream was empty.
	Output string

	// Err is the underlying process error.
	Err error
}

func (e *ExecError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("ghostscript: %v", e.Err)
	}
	return fmt.Sprintf("ghostscript: %v: %s", e.Err, e.Output)
}

func (e *ExecError) Unwrap() error { return e.Err }

// gsFlags is the fixed flag set for flattening: the pdfwrite output device,
// reader compatibility level 1.6, the print-quality preset, and -dPrinted,
// which renders current field values into the page and drops the widget
// definitions so nothing stays editable.
var gsFlags = []string{
	"-sDEVICE=pdfwrite",
	"-dCompatibilityLevel=1.6",
	"-dPDFSETTINGS=/printer",
	"-dPrinted",
	"-dNOPAUSE",
	"-dQUIET",
	"-dBATCH",
}

// Ghostscript invokes the gs binary to flatten PDFs one at a time.
type Ghostscript struct {
	bin string
	run Runner
	log *slog.Logger
}

// New returns a Ghostscript bound to the executable at bin. Use Locate to
// find one when no explicit path is configured.
func New(bin string, log *slog.Logger) *Ghostscript {
	return newGhostscript(bin, execRunner{}, log)
}

func newGhostscript(bin string, run Runner, log *slog.Logger) *Ghostscript {
	if log == nil {
		log = slog.Default()
	}
	return &Ghostscript{bin: bin, run: run, log: log}
}

// Bin returns the executable path in use.
func (g *Ghostscript) Bin() string { return g.bin }

// Flatten rewrites the document at src into dst with form fields converted
// to static ink. src is never modified. The ctx bounds the subprocess; the
// tool itself imposes no timeout.
func (g *Ghostscript) Flatten(ctx context.Context, src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrSourceNotFound, src)
		}
		return fmt.Errorf("reading %s: %w", src, err)
	}

	args := make([]string, 0, len(gsFlags)+2)
	args = append(args, gsFlags...)
	args = append(args, "-sOutputFile="+dst, src)

	start := time.Now()
	stdout, stderr, err := g.run.Run(ctx, g.bin, args...)
	if err != nil {
		g.log.Error("ghostscript failed",
			"src", src,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
			"stderr", truncate(string(stderr), 8<<10),
		)
		return &ExecError{Args: args, Output: diagnostics(stdout, stderr), Err: err}
	}

	g.log.Debug("ghostscript ok",
		"src", src,
		"dst", dst,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Version reports the Ghostscript version string, e.g. "10.03.1".
func (g *Ghostscript) Version(ctx context.Context) (string, error) {
	stdout, stderr, err := g.run.Run(ctx, g.bin, "--version")
	if err != nil {
		return "", &ExecError{Args: []string{"--version"}, Output: diagnostics(stdout, stderr), Err: err}
	}
	return strings.TrimSpace(string(stdout)), nil
}

// diagnostics prefers stderr and falls back to stdout; gs reports some
// errors on stdout even in quiet mode.
func diagnostics(stdout, stderr []byte) string {
	s := strings.TrimSpace(string(stderr))
	if s == "" {
		s = strings.TrimSpace(string(stdout))
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
