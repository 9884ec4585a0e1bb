package replay

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"vaultCore/internal/factory"
	"vaultCore/internal/model"
	"vaultCore/internal/storage"
	"vaultCore/internal/storage/postgres"
	"vaultCore/internal/vault"
)

// RunConfig holds runtime settings for the replay loop.
type RunConfig struct {
	BatchSize    int
	MaxRetries   int
	RetryBackoff time.Duration
	Cursor       CursorStore
}

// Runner applies lifecycle commands in total order and journals the outcomes.
// Commands are read from a JSONL stream; each one either commits fully or is
// journaled as rejected with no state change.
type Runner struct {
	cfg     RunConfig
	factory *factory.Factory
	journal storage.Journal
	store   *postgres.Store
	logger  *zap.Logger
}

// NewRunner builds a Runner. The postgres store is optional; when nil, vault
// state is kept in memory only and just the journal is written.
func NewRunner(cfg RunConfig, f *factory.Factory, journal storage.Journal, store *postgres.Store, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:     cfg,
		factory: f,
		journal: journal,
		store:   store,
		logger:  logger,
	}
}

// Run replays all commands from the input file.
func (r *Runner) Run(ctx context.Context, inputPath string) error {
	if r.factory == nil {
		return fmt.Errorf("factory is nil")
	}
	if r.journal == nil {
		return fmt.Errorf("journal is nil")
	}
	if r.cfg.BatchSize <= 0 {
		r.cfg.BatchSize = 500
	}

	var startSeq uint64
	if r.cfg.Cursor != nil {
		seq, ok, err := r.cfg.Cursor.Load(ctx)
		if err != nil {
			return err
		}
		if ok {
			startSeq = seq
			r.logger.Info("resume from cursor", zap.Uint64("last_applied_seq", seq))
		}
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	events := make([]model.LifecycleEvent, 0, r.cfg.BatchSize)
	touched := make(map[string]*vault.Vault)
	lastSeq := startSeq
	var total, applied, rejected, skipped int

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		total++

		var cmd model.Command
		if err := json.Unmarshal(line, &cmd); err != nil {
			return fmt.Errorf("decode command line %d: %w", total, err)
		}
		if cmd.Seq <= lastSeq {
			skipped++
			continue
		}
		if cmd.Seq != lastSeq+1 && lastSeq != 0 {
			r.logger.Warn("seq gap", zap.Uint64("expected", lastSeq+1), zap.Uint64("got", cmd.Seq))
		}

		appliedAt := time.Now().UTC().Format(time.RFC3339Nano)
		event, v := r.apply(cmd, appliedAt)
		if event.Status == model.StatusApplied {
			applied++
		} else {
			rejected++
			r.logger.Info("command rejected",
				zap.Uint64("seq", cmd.Seq),
				zap.String("op", cmd.Op),
				zap.String("reason", event.Error),
			)
		}
		if v != nil {
			touched[v.Address().Hex()] = v
		}

		events = append(events, event)
		lastSeq = cmd.Seq

		if len(events) >= r.cfg.BatchSize {
			if err := r.flush(ctx, events, touched, lastSeq); err != nil {
				return err
			}
			events = events[:0]
			touched = make(map[string]*vault.Vault)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}

	if len(events) > 0 {
		if err := r.flush(ctx, events, touched, lastSeq); err != nil {
			return err
		}
	}

	r.logger.Info("replay complete",
		zap.Int("total", total),
		zap.Int("applied", applied),
		zap.Int("rejected", rejected),
		zap.Int("skipped", skipped),
	)
	return nil
}

func (r *Runner) flush(ctx context.Context, events []model.LifecycleEvent, touched map[string]*vault.Vault, lastSeq uint64) error {
	if err := r.journal.PutEventBatch(events); err != nil {
		return fmt.Errorf("journal events: %w", err)
	}

	if r.store != nil {
		records := make([]model.VaultRecord, 0, len(touched))
		for _, v := range touched {
			records = append(records, v.Snapshot())
		}

		err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
			if err := r.store.InsertEvents(ctx, events); err != nil {
				r.logger.Warn("insert events failed", zap.Error(err))
				return err
			}
			if err := r.store.UpsertVaults(ctx, records); err != nil {
				r.logger.Warn("upsert vaults failed", zap.Error(err))
				return err
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("persist batch: %w", err)
		}
	}

	if r.cfg.Cursor != nil {
		if err := r.cfg.Cursor.Save(ctx, lastSeq); err != nil {
			return err
		}
	}

	r.logger.Info("batch flushed", zap.Int("events", len(events)), zap.Uint64("last_seq", lastSeq))
	return nil
}
