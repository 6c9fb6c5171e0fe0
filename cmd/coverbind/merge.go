// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/coverbind/internal/flatten"
	"github.com/pdiddy/coverbind/internal/intake"
	"github.com/pdiddy/coverbind/internal/mergepdf"
	"github.com/pdiddy/coverbind/internal/pairing"
	"github.com/pdiddy/coverbind/internal/pdfinfo"
	"github.com/pdiddy/coverbind/internal/pipeline"
	"github.com/pdiddy/coverbind/pkg/types"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [files or folders...]",
	Short: "Flatten cover sheets and bind them to their invoices",
	Long: `Merge pairs cover sheet PDFs with invoice PDFs by filename, flattens each
cover sheet with Ghostscript, prepends it to its invoice, and flattens the
combined document.

A single pair produces one file named by --output (default
FINAL_MERGED_INVOICE.pdf). With several pairs each output is named
MERGED_<invoice>.pdf and lands next to its invoice unless --output-dir says
otherwise. Existing files are only replaced after a prompt; --overwrite
answers yes everywhere.`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().String("output", "", "output file name for a single pair (default FINAL_MERGED_INVOICE.pdf)")
	mergeCmd.Flags().String("output-dir", "", "directory for merged files (default: next to each invoice)")
	mergeCmd.Flags().Bool("overwrite", false, "replace existing output files without asking")
	mergeCmd.Flags().String("gs", "", "path to the Ghostscript binary (default: auto-detect)")
	mergeCmd.Flags().String("summary", "text", "batch summary format: text, yaml, or json")

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide PDF files or folders containing them")
	}
	summary, _ := cmd.Flags().GetString("summary")
	if summary != "text" && summary != "yaml" && summary != "json" {
		return fmt.Errorf("unsupported summary format %q: use text, yaml, or json", summary)
	}

	candidates, rejected, err := intake.Collect(args...)
	if err != nil {
		return err
	}
	valid := len(candidates) - len(rejected)
	if valid < 2 {
		return fmt.Errorf("%w: found %d (skipped %d non-PDF)", pipeline.ErrTooFewPDFs, valid, len(rejected))
	}

	pairs, diags := pairing.Match(candidates)
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, diagLine(d))
	}
	if len(pairs) == 0 {
		return pipeline.ErrNoPairs
	}

	gsPath, err := resolveGhostscript(cmd)
	if err != nil {
		return err
	}

	overwrite, _ := cmd.Flags().GetBool("overwrite")
	cfg := types.PipelineConfig{
		Tool: types.ToolConfig{Ghostscript: gsPath},
		Output: types.OutputConfig{
			Dir:       flagOrConfig(cmd, "output-dir", "output_dir"),
			Name:      flagOrConfig(cmd, "output", "output_name"),
			Overwrite: overwrite,
		},
		LogLevel: flagOrConfig(cmd, "log-level", "log_level"),
	}
	slog.Debug("effective configuration",
		"ghostscript", cfg.Tool.Ghostscript,
		"output_dir", cfg.Output.Dir,
		"output_name", cfg.Output.Name,
		"overwrite", cfg.Output.Overwrite,
		"log_level", cfg.LogLevel,
	)

	// Text summaries share stdout with the progress lines; machine formats
	// keep stdout clean and push progress to stderr.
	progress := os.Stdout
	if summary != "text" {
		progress = os.Stderr
	}

	p := pipeline.New(flatten.New(cfg.Tool.Ghostscript, nil), mergepdf.Merger{}, pipeline.Options{
		Output:   cfg.Output,
		Confirm:  confirmPrompt,
		Progress: progress,
	})
	result := p.Run(context.Background(), pairs)

	switch summary {
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
		os.Stdout.Write(data)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
	}

	for _, out := range result.Outputs {
		if form, err := pdfinfo.HasAcroForm(out); err == nil && form {
			fmt.Fprintf(os.Stderr, "warning: %s still carries form fields\n", out)
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d pair(s) failed", result.Failed)
	}
	return nil
}

// resolveGhostscript picks the Ghostscript binary: the --gs flag, then the
// ghostscript config key, then platform auto-detection.
func resolveGhostscript(cmd *cobra.Command) (string, error) {
	if path := flagOrConfig(cmd, "gs", "ghostscript"); path != "" {
		if _, err := exec.LookPath(path); err != nil {
			return "", fmt.Errorf("ghostscript not usable at %s: %w", path, err)
		}
		return path, nil
	}
	return flatten.Locate()
}

// stdin is shared across prompts so buffered input is not dropped between
// consecutive questions.
var stdin = bufio.NewReader(os.Stdin)

// confirmPrompt asks on stderr whether the file at path may be replaced.
// Anything but an explicit yes keeps the existing file, including a closed
// stdin when running unattended.
func confirmPrompt(path string) bool {
	fmt.Fprintf(os.Stderr, "%s exists. Overwrite? [y/N]: ", path)
	line, err := stdin.ReadString('\n')
	if err != nil {
		fmt.Fprintln(os.Stderr)
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// diagLine renders one pairing diagnostic for the terminal.
func diagLine(d pairing.Diagnostic) string {
	switch d.Kind {
	case pairing.DiagInvalid:
		return fmt.Sprintf("ignoring %s: not a PDF file", d.Path)
	case pairing.DiagUnmatched:
		return fmt.Sprintf("ignoring %s: neither cover sheet nor invoice", d.Path)
	case pairing.DiagAmbiguous:
		return fmt.Sprintf("%s: filename names both roles, treating it as the cover sheet", d.Path)
	case pairing.DiagConflict:
		return fmt.Sprintf("conflict: %s duplicates a role for %q, dropping the group", d.Path, d.Key)
	case pairing.DiagUnpaired:
		return fmt.Sprintf("no counterpart found for %s", d.Path)
	default:
		return fmt.Sprintf("%s: %s", d.Path, d.Kind)
	}
}
