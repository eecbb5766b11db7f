package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/calweir/timegrid/version"
)

var (
	cfgFile      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "timegrid",
	Short: "Timetable text ingestion and normalization",
	Long: `Timegrid turns free-form timetable text into a canonical weekly schedule.

Accepted inputs:
  - Tab-delimited grid exports (days across, periods down)
  - Multi-line block layouts (subject/code/room on separate lines)
  - Unstructured prose with day and period markers
  - JSON from an AI model, including fenced, truncated, or relaxed syntax

Ingestion never fails: unrecognizable input degrades to an empty,
well-formed schedule.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.timegrid/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setOutputFormat(outputFormat)

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
