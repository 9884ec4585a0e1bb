package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vaultCore/internal/model"
)

// Store provides Postgres persistence for vault state and lifecycle events.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertVaults inserts or updates vault state records.
func (s *Store) UpsertVaults(ctx context.Context, vaults []model.VaultRecord) error {
	if len(vaults) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, v := range vaults {
		batch.Queue(`
			INSERT INTO vaults (
				address, setup_master, fee_administrator, assets, weights, balances,
				amplification, name, symbol, only_local, ready, vault_fee,
				governance_fee_share, chain_interface, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,now(),now())
			ON CONFLICT (address)
			DO UPDATE SET
				setup_master = EXCLUDED.setup_master,
				fee_administrator = EXCLUDED.fee_administrator,
				ready = EXCLUDED.ready,
				vault_fee = EXCLUDED.vault_fee,
				governance_fee_share = EXCLUDED.governance_fee_share,
				updated_at = now()
		`,
			v.Address,
			v.SetupMaster,
			v.FeeAdministrator,
			v.Assets,
			v.Weights,
			v.Balances,
			int64(v.Amplification),
			v.Name,
			v.Symbol,
			v.OnlyLocal,
			v.Ready,
			int64(v.VaultFee),
			int64(v.GovernanceFeeShare),
			v.ChainInterface,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range vaults {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// InsertEvents appends lifecycle events, skipping already persisted seqs.
func (s *Store) InsertEvents(ctx context.Context, events []model.LifecycleEvent) error {
	if len(events) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(`
			INSERT INTO lifecycle_events (
				seq, op, vault_address, sender, status, error, ts, applied_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			ON CONFLICT (seq) DO NOTHING
		`,
			int64(e.Seq),
			e.Op,
			e.VaultAddress,
			e.Sender,
			e.Status,
			e.Error,
			int64(e.Timestamp),
			e.AppliedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range events {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadCursor returns the last applied seq for a named replay.
func (s *Store) LoadCursor(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("cursor name required")
	}
	var seq uint64
	row := s.pool.QueryRow(ctx, `SELECT last_applied_seq FROM replay_state WHERE name=$1`, name)
	if err := row.Scan(&seq); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return seq, true, nil
}

// SaveCursor upserts the last applied seq for a named replay.
func (s *Store) SaveCursor(ctx context.Context, name string, seq uint64) error {
	if name == "" {
		return fmt.Errorf("cursor name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO replay_state (name, last_applied_seq, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_applied_seq = EXCLUDED.last_applied_seq, updated_at = now()
	`, name, seq)
	return err
}
