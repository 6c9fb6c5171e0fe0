// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/coverbind/pkg/types"
)

// runJob drives one pair through the state machine. Whatever state the job
// terminates in, every temporary file it created is removed before runJob
// returns; only the final output (or, after a late failure, the unflattened
// merged document) survives.
func (p *Pipeline) runJob(ctx context.Context, index int, pair types.Pair, single bool, w io.Writer) types.Job {
	job := types.Job{
		ID:    uuid.NewString(),
		Index: index,
		Pair:  pair,
		State: types.JobPending,
	}

	var temps []string
	defer func() { p.removeTemps(temps) }()

	// Flatten the cover sheet into a per-job temp file.
	p.step(&job, types.JobFlattenCover, w, "flattening cover sheet: %s", filepath.Base(pair.Cover.Path))
	outDir := p.outputDir(pair)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return p.fail(&job, w, fmt.Errorf("creating output directory %s: %w", outDir, err))
	}
	flatCover, err := tempPath(outDir, index, "cover")
	if err == nil {
		temps = append(temps, flatCover)
		err = p.flatten.Flatten(ctx, pair.Cover.Path, flatCover)
	}
	if err != nil {
		return p.fail(&job, w, fmt.Errorf("flattening %s: %w", pair.Cover.Path, err))
	}

	// Merge, gated on the overwrite policy for the final path.
	output := p.outputPath(pair, single)
	if _, statErr := os.Stat(output); statErr == nil && !p.opts.Output.Overwrite {
		if p.opts.Confirm == nil || !p.opts.Confirm(output) {
			return p.skip(&job, w, output)
		}
	}
	p.step(&job, types.JobMerge, w, "merging with invoice: %s", filepath.Base(pair.Invoice.Path))
	if err := p.merge.Merge(flatCover, pair.Invoice.Path, output); err != nil {
		// A partial document at the final path is worse than none.
		if rmErr := os.Remove(output); rmErr != nil && !os.IsNotExist(rmErr) {
			p.log.Warn("removing partial output", "path", output, "error", rmErr)
		}
		return p.fail(&job, w, fmt.Errorf("merging into %s: %w", output, err))
	}

	// Flatten the merged document and swap it into place. On failure the
	// unflattened merged document stays behind as a recoverable artifact.
	p.step(&job, types.JobFlattenFinal, w, "flattening merged document: %s", filepath.Base(output))
	flatFinal, err := tempPath(outDir, index, "final")
	if err == nil {
		temps = append(temps, flatFinal)
		err = p.flatten.Flatten(ctx, output, flatFinal)
	}
	if err == nil {
		err = replaceFile(output, flatFinal)
	}
	if err != nil {
		msg := "unflattened merged document left at " + output
		job.Steps = append(job.Steps, msg)
		fmt.Fprintf(w, "%s\n", msg)
		p.emit(types.Event{Kind: types.EventLog, JobID: job.ID, Message: msg})
		return p.fail(&job, w, fmt.Errorf("flattening %s: %w", output, err))
	}

	job.State = types.JobDone
	job.Output = output
	job.Steps = append(job.Steps, "done: "+output)
	fmt.Fprintf(w, "done: %s\n", output)
	p.emit(types.Event{Kind: types.EventLog, JobID: job.ID, Message: "done: " + output})
	return job
}

// outputDir returns the directory the pair's output lands in.
func (p *Pipeline) outputDir(pair types.Pair) string {
	if p.opts.Output.Dir != "" {
		return p.opts.Output.Dir
	}
	return filepath.Dir(pair.Invoice.Path)
}

// outputPath computes the final document path. A single-pair batch uses the
// caller-supplied name; larger batches derive one per pair from the invoice
// stem so outputs cannot collide.
func (p *Pipeline) outputPath(pair types.Pair, single bool) string {
	dir := p.outputDir(pair)
	if single {
		name := p.opts.Output.Name
		if name == "" {
			name = DefaultOutputName
		}
		if filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(dir, name)
	}

	ext := filepath.Ext(pair.Invoice.Path)
	if ext == "" {
		ext = ".pdf"
	}
	return filepath.Join(dir, "MERGED_"+invoiceStem(pair)+ext)
}

// invoiceStem returns the invoice filename without its extension.
func invoiceStem(pair types.Pair) string {
	base := filepath.Base(pair.Invoice.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// jobName is the label used in progress lines.
func jobName(job types.Job) string {
	return filepath.Base(job.Pair.Invoice.Path)
}

// tempPath reserves a temporary file next to the outputs. The pattern
// carries the job's batch index, so no two jobs of one run can collide, and
// os.CreateTemp keeps concurrent runs apart.
func tempPath(dir string, index int, stage string) (string, error) {
	f, err := os.CreateTemp(dir, fmt.Sprintf(".coverbind-%d-%s-*.pdf", index, stage))
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	return f.Name(), nil
}

// replaceFile moves src over dst. A plain rename replaces atomically where
// the platform allows it; otherwise the old file is removed first.
func replaceFile(dst, src string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", dst, err)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", src, dst, err)
	}
	return nil
}

// removeTemps deletes whatever temporary files still exist. Failures are
// logged and swallowed; a stray temp file cannot corrupt finished outputs.
func (p *Pipeline) removeTemps(paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			p.log.Warn("removing temp file", "path", path, "error", err)
		}
	}
}
