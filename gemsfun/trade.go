package gemsfun

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/gemsfun/gemsfun-sdk/curve"
)

// TradeConfig holds the caller-facing knobs for an executed trade.
// Use DefaultTradeConfig for the documented defaults.
type TradeConfig struct {
	// SlippageBps is the worst-case price tolerance in basis points.
	SlippageBps uint64
	// SimulateOnly builds and simulates the transaction without
	// submitting it.
	SimulateOnly bool
	// SkipSimulation submits without the client-side preflight. The quote
	// clamp is advisory only; skipping simulation trades safety for one
	// round trip of latency.
	SkipSimulation bool
}

// DefaultTradeConfig returns the defaults: 500 bps slippage, simulate
// before submit.
func DefaultTradeConfig() TradeConfig {
	return TradeConfig{SlippageBps: curve.DefaultSlippageBps}
}

// TradeResult describes a built (and possibly submitted) trade.
type TradeResult struct {
	Signature   solana.Signature
	Mint        solana.PublicKey
	Direction   curve.Direction
	TokenAmount uint64
	Lamports    uint64 // spend for a buy, expected proceeds for a sell
	Bound       uint64
	Fee         uint64
	FeeBps      uint64
	SlippageBps uint64
	Simulated   bool
}

// Buy quotes, builds, signs, and submits a buy of lamportsIn worth of the
// mint's token. The quote is advisory: the transaction is simulated first
// (unless disabled) so the program's own arithmetic is the final check.
func (c *Client) Buy(ctx context.Context, user solana.PrivateKey, mint solana.PublicKey, lamportsIn uint64, cfg TradeConfig) (*TradeResult, error) {
	if len(user) == 0 {
		return nil, ErrMissingSigner
	}

	quote, err := NewQuoter(c, WithQuoterLogger(c.logger)).
		BuildBuyQuote(ctx, mint, lamportsIn, WithSlippageBps(cfg.SlippageBps))
	if err != nil {
		return nil, err
	}

	accounts, err := TradeAccountsForMint(user.PublicKey(), mint)
	if err != nil {
		return nil, err
	}
	instruction, err := NewBuyInstruction(accounts, quote.TokenAmount, quote.MaxSpend, quote.FeeBps)
	if err != nil {
		return nil, err
	}

	result := &TradeResult{
		Mint:        mint,
		Direction:   curve.Buy,
		TokenAmount: quote.TokenAmount,
		Lamports:    lamportsIn,
		Bound:       quote.MaxSpend,
		Fee:         quote.Fee,
		FeeBps:      quote.FeeBps,
		SlippageBps: cfg.SlippageBps,
	}
	return c.executeTrade(ctx, user, instruction, cfg, result)
}

// Sell quotes, builds, signs, and submits a sell of tokenAmount base units.
func (c *Client) Sell(ctx context.Context, user solana.PrivateKey, mint solana.PublicKey, tokenAmount uint64, cfg TradeConfig) (*TradeResult, error) {
	if len(user) == 0 {
		return nil, ErrMissingSigner
	}

	quote, err := NewQuoter(c, WithQuoterLogger(c.logger)).
		BuildSellQuote(ctx, mint, tokenAmount, WithSlippageBps(cfg.SlippageBps))
	if err != nil {
		return nil, err
	}

	accounts, err := TradeAccountsForMint(user.PublicKey(), mint)
	if err != nil {
		return nil, err
	}
	instruction, err := NewSellInstruction(accounts, tokenAmount, quote.MinProceeds, quote.FeeBps)
	if err != nil {
		return nil, err
	}

	result := &TradeResult{
		Mint:        mint,
		Direction:   curve.Sell,
		TokenAmount: tokenAmount,
		Lamports:    quote.Proceeds,
		Bound:       quote.MinProceeds,
		Fee:         quote.Fee,
		FeeBps:      quote.FeeBps,
		SlippageBps: cfg.SlippageBps,
	}
	return c.executeTrade(ctx, user, instruction, cfg, result)
}

// signTransaction signs with the user's key. A transaction that requires a
// signer the key cannot satisfy surfaces as ErrMissingSigner with the
// signing error attached.
func signTransaction(tx *solana.Transaction, user solana.PrivateKey) error {
	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(user.PublicKey()) {
			return &user
		}
		return nil
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingSigner, err)
	}
	return nil
}

func (c *Client) executeTrade(ctx context.Context, user solana.PrivateKey, instruction solana.Instruction, cfg TradeConfig, result *TradeResult) (*TradeResult, error) {
	blockhash, err := c.RecentBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		blockhash,
		solana.TransactionPayer(user.PublicKey()),
	)
	if err != nil {
		return nil, err
	}

	if err := signTransaction(tx, user); err != nil {
		return nil, err
	}

	if !cfg.SkipSimulation {
		if err := c.SimulateTrade(ctx, tx); err != nil {
			return nil, err
		}
		result.Simulated = true
	}

	if cfg.SimulateOnly {
		c.logger.Info("trade simulated only",
			zap.Stringer("mint", result.Mint),
			zap.Stringer("direction", result.Direction),
			zap.Uint64("token_amount", result.TokenAmount),
		)
		return result, nil
	}

	sig, err := c.SubmitTrade(ctx, tx)
	if err != nil {
		return nil, err
	}
	result.Signature = sig
	return result, nil
}
