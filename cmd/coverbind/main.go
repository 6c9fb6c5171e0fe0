// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the coverbind CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/coverbind/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the coverbind CLI.
var rootCmd = &cobra.Command{
	Use:   "coverbind",
	Short: "Bind flattened cover sheets to their invoices",
	Long: `coverbind pairs cover sheet PDFs with invoice PDFs by filename, flattens
each cover sheet through Ghostscript so form fields become fixed page
content, prepends it to its invoice, and flattens the combined document.

Inputs can be files, folders, or a mix; a folder contributes the PDF files
directly inside it. Pairing is case-insensitive and ignores spaces, dashes,
and underscores, so CoverSheet_ACME-001.pdf matches invoice acme 001.pdf.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := flagOrConfig(cmd, "log-level", "log_level")
		slog.SetDefault(logging.New(os.Stderr, level))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./coverbind.yaml or ~/.config/coverbind/coverbind.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, or error")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("coverbind")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "coverbind"))
		}
	}

	viper.SetEnvPrefix("COVERBIND")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// flagOrConfig returns the flag's value when it was set on the command line,
// then the config file or environment value under key, then the flag's
// default.
func flagOrConfig(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
