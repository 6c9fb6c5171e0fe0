package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/coverbind/internal/flatten"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Report the external tools coverbind depends on",
	Long: `Tools resolves the Ghostscript binary the way merge would (flag, config,
bundled copy, well-known install directories, then PATH) and reports its
location and version, or installation guidance when it cannot be found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gsPath, err := resolveGhostscript(cmd)
		if err != nil {
			return err
		}

		gs := flatten.New(gsPath, nil)
		ver, err := gs.Version(context.Background())
		if err != nil {
			return fmt.Errorf("running %s: %w", gsPath, err)
		}
		fmt.Printf("ghostscript %s (%s)\n", ver, gsPath)
		return nil
	},
}

func init() {
	toolsCmd.Flags().String("gs", "", "path to the Ghostscript binary (default: auto-detect)")

	rootCmd.AddCommand(toolsCmd)
}
