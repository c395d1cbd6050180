package gemsfun

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/gemsfun/gemsfun-sdk/curve"
)

// Client wraps the Solana RPC node and provides typed account fetches plus
// transaction submission for the gems.fun program.
type Client struct {
	rpc          *rpc.Client
	logger       *zap.Logger
	commitment   rpc.CommitmentType
	maxRetries   int
	retryBackoff time.Duration

	// fetch loads raw account data; tests substitute it to exercise the
	// decode and fallback paths without a node.
	fetch func(ctx context.Context, addr solana.PublicKey) ([]byte, error)
}

// Option configures a Client.
type Option func(*Client)

// WithLogger attaches a structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCommitment sets the commitment level for reads and preflight.
func WithCommitment(commitment rpc.CommitmentType) Option {
	return func(c *Client) { c.commitment = commitment }
}

// WithRetry sets the retry budget for transient RPC failures.
func WithRetry(maxRetries int, backoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryBackoff = backoff
	}
}

// NewClient creates a Client for the given RPC endpoint.
func NewClient(rpcURL string, opts ...Option) *Client {
	c := &Client{
		rpc:          rpc.New(rpcURL),
		logger:       zap.NewNop(),
		commitment:   rpc.CommitmentConfirmed,
		maxRetries:   3,
		retryBackoff: 250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.fetch = c.fetchAccount
	return c
}

// FetchGlobal returns the program's global configuration account.
func (c *Client) FetchGlobal(ctx context.Context) (*GlobalAccount, error) {
	addr, err := GlobalAddress()
	if err != nil {
		return nil, err
	}
	data, err := c.fetch(ctx, addr)
	if err != nil {
		return nil, err
	}
	return DecodeGlobalAccount(data)
}

// FetchBondingCurve returns the curve state for a token mint.
func (c *Client) FetchBondingCurve(ctx context.Context, mint solana.PublicKey) (*BondingCurveAccount, error) {
	addr, err := BondingCurveAddress(mint)
	if err != nil {
		return nil, err
	}
	data, err := c.fetch(ctx, addr)
	if err != nil {
		return nil, err
	}
	return DecodeBondingCurveAccount(data)
}

// FetchCurveConfig returns the supply limits for a tier. When the config
// PDA is absent the built-in tier table serves as fallback, so quoting
// works against programs deployed before per-tier configs existed.
func (c *Client) FetchCurveConfig(ctx context.Context, tier curve.Tier) (curve.SupplyLimits, error) {
	addr, err := CurveConfigAddress(tier)
	if err != nil {
		return curve.SupplyLimits{}, err
	}
	data, err := c.fetch(ctx, addr)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return curve.LimitsForTier(tier)
		}
		return curve.SupplyLimits{}, err
	}
	account, err := DecodeCurveConfigAccount(data)
	if err != nil {
		return curve.SupplyLimits{}, err
	}
	return account.Limits(), nil
}

// RecentBlockhash returns the latest blockhash at the client's commitment.
func (c *Client) RecentBlockhash(ctx context.Context) (solana.Hash, error) {
	var hash solana.Hash
	err := withRetry(ctx, c.maxRetries, c.retryBackoff, func(ctx context.Context) error {
		result, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
		if err != nil {
			return fmt.Errorf("%w: get latest blockhash: %v", ErrUpstreamUnavailable, err)
		}
		hash = result.Value.Blockhash
		return nil
	})
	return hash, err
}

// SimulateTrade runs the transaction through the node without submitting.
// A program-level rejection surfaces as ErrSimulationFailed with the
// program logs attached.
func (c *Client) SimulateTrade(ctx context.Context, tx *solana.Transaction) error {
	result, err := c.rpc.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
		Commitment: c.commitment,
	})
	if err != nil {
		return fmt.Errorf("%w: simulate: %v", ErrUpstreamUnavailable, err)
	}
	if result.Value != nil && result.Value.Err != nil {
		c.logger.Warn("trade simulation rejected",
			zap.Any("err", result.Value.Err),
			zap.Strings("logs", result.Value.Logs),
		)
		return fmt.Errorf("%w: %v", ErrSimulationFailed, result.Value.Err)
	}
	return nil
}

// SubmitTrade sends the signed transaction and returns its signature.
func (c *Client) SubmitTrade(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("%w: send transaction: %v", ErrUpstreamUnavailable, err)
	}
	c.logger.Info("trade submitted", zap.Stringer("signature", sig))
	return sig, nil
}

func (c *Client) fetchAccount(ctx context.Context, addr solana.PublicKey) ([]byte, error) {
	var data []byte
	err := withRetry(ctx, c.maxRetries, c.retryBackoff, func(ctx context.Context) error {
		result, err := c.rpc.GetAccountInfoWithOpts(ctx, addr, &rpc.GetAccountInfoOpts{
			Commitment: c.commitment,
		})
		if err != nil {
			if errors.Is(err, rpc.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrAccountNotFound, addr)
			}
			return fmt.Errorf("%w: get account %s: %v", ErrUpstreamUnavailable, addr, err)
		}
		if result.Value == nil {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, addr)
		}
		data = result.Value.Data.GetBinary()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
