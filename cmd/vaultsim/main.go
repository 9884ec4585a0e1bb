package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "vaultsim",
		Short:        "Vault lifecycle replay engine",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Replay lifecycle commands and journal the outcomes",
		RunE:  runReplay,
	}

	runCmd.Flags().String("in", "", "input commands JSONL path")
	runCmd.Flags().String("journal", "./data/lifecycle_events.jsonl", "lifecycle events journal path")
	runCmd.Flags().String("cursor", "./data/cursor.json", "cursor file path")
	runCmd.Flags().Bool("cursor-enabled", true, "enable cursor tracking")
	runCmd.Flags().String("pg-dsn", "", "Postgres DSN (optional)")
	runCmd.Flags().Int("batch-size", 500, "events per flush batch")
	runCmd.Flags().Int("max-retries", 5, "maximum retry attempts for DB writes")
	runCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Dry-run a commands file without journaling or persistence",
		RunE:  runCheck,
	}

	checkCmd.Flags().String("in", "", "input commands JSONL path")
	checkCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(checkCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
