package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gemsfun/gemsfun-sdk/internal/model"
)

// Store provides Postgres persistence for trade receipts.
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

// EnsureSchema creates the receipts table when it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS trade_receipts (
			id BIGSERIAL PRIMARY KEY,
			signature TEXT,
			mint TEXT NOT NULL,
			side TEXT NOT NULL,
			token_amount NUMERIC NOT NULL,
			quote_lamports NUMERIC NOT NULL,
			fee_lamports NUMERIC NOT NULL,
			bound_lamports NUMERIC NOT NULL,
			fee_bps BIGINT NOT NULL,
			slippage_bps BIGINT NOT NULL,
			simulated BOOLEAN NOT NULL,
			ts BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

// PutReceipts inserts a batch of receipts.
func (s *Store) PutReceipts(ctx context.Context, receipts []model.TradeReceipt) error {
	if len(receipts) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range receipts {
		batch.Queue(`
			INSERT INTO trade_receipts (
				signature, mint, side, token_amount, quote_lamports,
				fee_lamports, bound_lamports, fee_bps, slippage_bps, simulated, ts
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`,
			r.Signature,
			r.Mint,
			r.Side,
			r.TokenAmount,
			r.QuoteLamports,
			r.FeeLamports,
			r.BoundLamports,
			int64(r.FeeBps),
			int64(r.SlippageBps),
			r.Simulated,
			r.Timestamp,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range receipts {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
