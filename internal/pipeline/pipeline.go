// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives matched cover/invoice pairs through flatten,
// merge, and a final flatten, one pair at a time, and accounts for every
// outcome. One pair's failure never stops its siblings.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pdiddy/coverbind/pkg/types"
)

// DefaultOutputName is the merged document name for a single-pair batch
// when the caller supplies none.
const DefaultOutputName = "FINAL_MERGED_INVOICE.pdf"

// Sentinel errors for conditions that stop a batch before any job starts.
var (
	// ErrTooFewPDFs means the input set holds fewer than two valid PDFs.
	ErrTooFewPDFs = errors.New("need at least two valid PDF files")

	// ErrNoPairs means pairing produced no cover/invoice pairs.
	ErrNoPairs = errors.New("no cover sheet/invoice pairs found")
)

// Flattener rewrites src into dst with interactive form fields burned into
// static page content.
type Flattener interface {
	Flatten(ctx context.Context, src, dst string) error
}

// Merger concatenates two documents into dst: every page of first, then
// every page of second.
type Merger interface {
	Merge(first, second, dst string) error
}

// ConfirmFunc decides whether an existing file at path may be replaced.
// Only a true return permits the overwrite.
type ConfirmFunc func(path string) bool

// Options configures a batch run.
type Options struct {
	// Output controls placement and naming. Output.Dir empty means the
	// directory of each pair's invoice. Output.Name names the merged
	// document when the batch holds exactly one pair; empty means
	// DefaultOutputName. Batches with more pairs derive
	// MERGED_<invoice-stem> names instead, which are unique within a
	// batch because pairing keyed them apart.
	Output types.OutputConfig

	// Confirm is consulted before an existing output is replaced, unless
	// Output.Overwrite already permits it. A nil callback refuses every
	// overwrite, skipping the job.
	Confirm ConfirmFunc

	// Events, when non-nil, receives the run's typed events in order.
	// Sends are synchronous: keep a consumer draining the channel, or
	// buffer it generously.
	Events chan<- types.Event

	// Progress, when non-nil, receives one line per step plus the batch
	// summary, suitable for a terminal.
	Progress io.Writer

	// Logger receives diagnostics; nil means slog.Default().
	Logger *slog.Logger
}

// Pipeline executes batches of pairs against the two adapters.
type Pipeline struct {
	flatten Flattener
	merge   Merger
	opts    Options
	log     *slog.Logger
}

// New builds a Pipeline around the given adapters.
func New(f Flattener, m Merger, opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{flatten: f, merge: m, opts: opts, log: log}
}

// Run processes every pair in order and returns once all jobs have reached
// a terminal state. Jobs run strictly sequentially; the external tool is
// heavyweight and gains nothing from overlap. The ctx reaches the
// subprocess invocations, but Run itself never aborts between steps; a
// front end that wants a responsive surface runs Run in its own goroutine
// and consumes Options.Events.
func (p *Pipeline) Run(ctx context.Context, pairs []types.Pair) types.BatchResult {
	result := types.BatchResult{RunID: uuid.NewString()}
	w := p.opts.Progress
	if w == nil {
		w = io.Discard
	}

	for i, pair := range pairs {
		p.emit(types.Event{
			Kind:     types.EventProgress,
			Fraction: float64(i) / float64(len(pairs)),
		})

		job := p.runJob(ctx, i, pair, len(pairs) == 1, w)
		result.Jobs = append(result.Jobs, job)

		switch job.State {
		case types.JobDone:
			result.Merged++
			result.Outputs = append(result.Outputs, job.Output)
		case types.JobSkipped:
			result.Skipped++
		default:
			result.Failed++
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d merged, %d skipped, %d failed (total: %d)\n",
		result.Merged, result.Skipped, result.Failed, result.Total())

	p.emit(types.Event{Kind: types.EventProgress, Fraction: 1})
	if result.HasFailures() {
		p.emit(types.Event{
			Kind:    types.EventError,
			Message: fmt.Sprintf("%d of %d pairs failed", result.Failed, result.Total()),
		})
	} else {
		p.emit(types.Event{
			Kind:    types.EventDone,
			Message: fmt.Sprintf("%d merged, %d skipped", result.Merged, result.Skipped),
		})
	}
	return result
}

// emit delivers an event to the run's channel, if one is configured.
func (p *Pipeline) emit(ev types.Event) {
	if p.opts.Events == nil {
		return
	}
	p.opts.Events <- ev
}

// step advances the job's state and records a progress message.
func (p *Pipeline) step(job *types.Job, state types.JobState, w io.Writer, format string, a ...any) {
	job.State = state
	msg := fmt.Sprintf(format, a...)
	job.Steps = append(job.Steps, msg)
	fmt.Fprintf(w, "%s\n", msg)
	p.emit(types.Event{Kind: types.EventStatus, JobID: job.ID, Message: msg})
}

// fail moves the job to its failed terminal state.
func (p *Pipeline) fail(job *types.Job, w io.Writer, err error) types.Job {
	job.State = types.JobFailed
	job.Error = err.Error()
	job.Steps = append(job.Steps, "failed: "+err.Error())
	fmt.Fprintf(w, "failed:  %s (%v)\n", jobName(*job), err)
	p.emit(types.Event{Kind: types.EventLog, JobID: job.ID, Message: "failed: " + err.Error()})
	p.log.Error("job failed", "job", job.ID, "pair", job.Pair.Key, "error", err)
	return *job
}

// skip moves the job to its skipped terminal state after an overwrite
// refusal. The existing file at output stays untouched.
func (p *Pipeline) skip(job *types.Job, w io.Writer, output string) types.Job {
	job.State = types.JobSkipped
	job.Steps = append(job.Steps, "skipped: existing output kept at "+output)
	fmt.Fprintf(w, "skipped: %s (existing output kept)\n", jobName(*job))
	p.emit(types.Event{Kind: types.EventLog, JobID: job.ID, Message: "skipped: existing output kept at " + output})
	return *job
}
