// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package flatten

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner abstracts subprocess execution so tests can stand in for a real
// Ghostscript install.
type Runner interface {
	// Run executes name with args and returns the captured output streams.
	// A non-zero exit surfaces as err; stdout and stderr are returned
	// either way.
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

	// LookPath resolves an executable name against the process search path.
	LookPath(file string) (string, error)
}

// execRunner is the production Runner backed by os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}

func (execRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}
