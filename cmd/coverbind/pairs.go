package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/coverbind/internal/intake"
	"github.com/pdiddy/coverbind/internal/pairing"
	"github.com/pdiddy/coverbind/internal/pdfinfo"
	"github.com/pdiddy/coverbind/pkg/types"
)

var pairsCmd = &cobra.Command{
	Use:   "pairs [files or folders...]",
	Short: "Preview cover sheet/invoice pairing without merging",
	Long: `Pairs shows how the given files would be grouped: which cover sheet goes
with which invoice, and why the remaining files were set aside. Nothing is
written.`,
	RunE: runPairs,
}

// pairsReport is the machine-readable shape of a pairing preview.
type pairsReport struct {
	Pairs       []types.Pair         `json:"pairs" yaml:"pairs"`
	Diagnostics []pairing.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

func init() {
	pairsCmd.Flags().String("format", "text", "output format: text, yaml, or json")

	rootCmd.AddCommand(pairsCmd)
}

func runPairs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide PDF files or folders containing them")
	}

	candidates, _, err := intake.Collect(args...)
	if err != nil {
		return err
	}
	pairs, diags := pairing.Match(candidates)

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "text", "":
		for _, p := range pairs {
			fmt.Printf("%s\n  cover:   %s%s\n  invoice: %s%s\n",
				p.Key, p.Cover.Path, pageSuffix(p.Cover.Path), p.Invoice.Path, pageSuffix(p.Invoice.Path))
		}
		for _, d := range diags {
			fmt.Println(diagLine(d))
		}
		fmt.Printf("\n%d pair(s)\n", len(pairs))
	case "yaml":
		data, err := yaml.Marshal(pairsReport{Pairs: pairs, Diagnostics: diags})
		if err != nil {
			return fmt.Errorf("encoding preview: %w", err)
		}
		os.Stdout.Write(data)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(pairsReport{Pairs: pairs, Diagnostics: diags}); err != nil {
			return fmt.Errorf("encoding preview: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q: use text, yaml, or json", format)
	}
	return nil
}

// pageSuffix renders a page-count annotation for a preview line. Unreadable
// documents get none.
func pageSuffix(path string) string {
	n, err := pdfinfo.PageCount(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf(" (%d pages)", n)
}
