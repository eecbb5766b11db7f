package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/calweir/timegrid/internal/config"
	"github.com/calweir/timegrid/internal/ingest"
	"github.com/calweir/timegrid/internal/providers"
	"github.com/calweir/timegrid/internal/timetable"
)

var (
	ingestNoAI   bool
	ingestClient string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest timetable text and print the canonical schedule",
	Long: `Ingest reads timetable text from a file (or stdin when no file is given),
runs it through the strategy chain, and prints the canonical timetable.

The exit code is zero even when nothing was recognized; check the reported
class count to detect empty results.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestNoAI, "no-ai", false, "skip the AI extraction strategy")
	ingestCmd.Flags().StringVar(&ingestClient, "client", "", "LLM client name (default from config)")
}

// ingestOutput is the printed shape: the summary first so humans scanning
// terminal output see what happened before the timetable body.
type ingestOutput struct {
	Source     string               `json:"source" yaml:"source"`
	ClassCount int                  `json:"classCount" yaml:"class_count"`
	Timetable  *timetable.Timetable `json:"timetable" yaml:"timetable"`
}

func runIngest(cmd *cobra.Command, args []string) error {
	raw, err := readInput(args)
	if err != nil {
		return err
	}

	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return err
	}
	cfg := cm.Get()

	opts := ingest.Options{
		Model:           cfg.Defaults.Model,
		Timeout:         time.Duration(cfg.Defaults.TimeoutSeconds) * time.Second,
		PromptThreshold: cfg.Defaults.PromptThreshold,
		Logger:          slog.Default(),
	}

	if !ingestNoAI {
		registry := providers.NewRegistry()
		registry.SetLogger(slog.Default())
		registry.Configure(cfg.ToRegistryConfig())

		// Config edits during a long AI call swap clients in place.
		cm.OnChange(func(updated *config.Config) {
			registry.Configure(updated.ToRegistryConfig())
		})
		cm.WatchConfig()

		name := ingestClient
		if name == "" {
			name = cfg.Defaults.LLMClient
		}
		if client, ok := registry.Get(name); ok {
			opts.Client = client
		} else {
			slog.Warn("LLM client not configured, using local parsers only", "name", name)
		}
	}

	result := ingest.Ingest(cmd.Context(), raw, opts)

	if result.ClassCount == 0 {
		slog.Warn("no classes recognized in input")
	}

	return output(ingestOutput{
		Source:     result.Source,
		ClassCount: result.ClassCount,
		Timetable:  result.Timetable,
	})
}

func readInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
