package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vaultCore/internal/config"
	"vaultCore/internal/factory"
	"vaultCore/internal/model"
	"vaultCore/internal/replay"
	"vaultCore/internal/storage"
	"vaultCore/internal/storage/postgres"
)

func runReplay(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if cfg.Journal == "" {
		return fmt.Errorf("journal path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *postgres.Store
	if cfg.PGDSN != "" {
		store, err = postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
	}

	var cursor replay.CursorStore
	if cfg.CursorEnabled {
		if store != nil {
			cursor = &replay.DBCursorStore{Store: store, Name: "vaultsim"}
		} else {
			cursor = &replay.FileCursorStore{Path: cfg.Cursor}
		}
	}

	runner := replay.NewRunner(replay.RunConfig{
		BatchSize:    cfg.BatchSize,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		Cursor:       cursor,
	}, factory.New(logger), storage.NewJsonlJournal(cfg.Journal), store, logger)

	return runner.Run(ctx, cfg.Input)
}

// discardJournal drops events; used by the check command.
type discardJournal struct{}

func (discardJournal) PutEventBatch([]model.LifecycleEvent) error { return nil }

func runCheck(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("in")
	level, _ := cmd.Flags().GetString("log-level")

	logger, err := newLogger(level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if input == "" {
		return fmt.Errorf("input path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := replay.NewRunner(replay.RunConfig{}, factory.New(logger), discardJournal{}, nil, logger)
	return runner.Run(ctx, input)
}
