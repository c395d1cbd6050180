package gemsfun

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/gemsfun/gemsfun-sdk/curve"
)

// CurveReader is the read surface a quote depends on. *Client implements
// it; tests substitute a stub.
type CurveReader interface {
	FetchGlobal(ctx context.Context) (*GlobalAccount, error)
	FetchBondingCurve(ctx context.Context, mint solana.PublicKey) (*BondingCurveAccount, error)
	FetchCurveConfig(ctx context.Context, tier curve.Tier) (curve.SupplyLimits, error)
}

var _ CurveReader = (*Client)(nil)

// Quoter bridges live curve state into the pricing engine and turns the
// result into the amount/bound pair a trade instruction needs. Stateless:
// every call re-reads the chain, and two calls differ only if the reserves
// moved between reads.
type Quoter struct {
	reader             CurveReader
	logger             *zap.Logger
	defaultSlippageBps uint64
}

// QuoterOption configures a Quoter.
type QuoterOption func(*Quoter)

// WithQuoterLogger attaches a structured logger.
func WithQuoterLogger(logger *zap.Logger) QuoterOption {
	return func(q *Quoter) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// WithDefaultSlippage overrides the default slippage tolerance applied when
// a quote call does not choose one.
func WithDefaultSlippage(bps uint64) QuoterOption {
	return func(q *Quoter) { q.defaultSlippageBps = bps }
}

// NewQuoter builds a Quoter over a CurveReader.
func NewQuoter(reader CurveReader, opts ...QuoterOption) *Quoter {
	q := &Quoter{
		reader:             reader,
		logger:             zap.NewNop(),
		defaultSlippageBps: curve.DefaultSlippageBps,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// QuoteOption adjusts a single quote call.
type QuoteOption func(*quoteParams)

type quoteParams struct {
	slippageBps uint64
}

// WithSlippageBps sets the slippage tolerance for one quote.
func WithSlippageBps(bps uint64) QuoteOption {
	return func(p *quoteParams) { p.slippageBps = bps }
}

// BuyQuote prices a buy-by-spend. TokenAmount is the exact base amount the
// instruction requests; MaxSpend is the lamport ceiling the program may
// charge; Fee is the protocol fee inside the spend.
type BuyQuote struct {
	TokenAmount uint64
	MaxSpend    uint64
	Fee         uint64
	FeeBps      uint64
	SlippageBps uint64
	Tier        curve.Tier
}

// SellQuote prices a sell. Proceeds is the expected lamport output after
// fees; MinProceeds is the floor the program must deliver.
type SellQuote struct {
	Proceeds    uint64
	MinProceeds uint64
	Fee         uint64
	FeeBps      uint64
	SlippageBps uint64
	Tier        curve.Tier
}

// BuildBuyQuote fetches the curve, its tier limits, and the protocol fee
// rate, then prices spending lamportsIn quote units. Pricing-engine errors
// propagate unchanged; transport failures arrive wrapped as
// ErrUpstreamUnavailable from the reader.
func (q *Quoter) BuildBuyQuote(ctx context.Context, mint solana.PublicKey, lamportsIn uint64, opts ...QuoteOption) (*BuyQuote, error) {
	params := q.resolve(opts)

	account, err := q.reader.FetchBondingCurve(ctx, mint)
	if err != nil {
		return nil, err
	}
	limits, err := q.reader.FetchCurveConfig(ctx, account.ConfigTier())
	if err != nil {
		return nil, err
	}
	global, err := q.reader.FetchGlobal(ctx)
	if err != nil {
		return nil, err
	}

	quote, err := curve.QuoteBaseForQuote(lamportsIn, account.State(), limits, global.FeeBasisPoints)
	if err != nil {
		return nil, err
	}

	// The bound is in quote-currency terms: the most the trade may cost,
	// not the token amount itself.
	maxSpend, err := curve.ApplySlippageBound(lamportsIn, params.slippageBps, curve.Buy)
	if err != nil {
		return nil, err
	}

	q.logger.Debug("buy quote",
		zap.Stringer("mint", mint),
		zap.Uint64("lamports_in", lamportsIn),
		zap.Uint64("token_amount", quote.Amount),
		zap.Uint64("max_spend", maxSpend),
		zap.Uint64("fee", quote.Fee),
	)

	return &BuyQuote{
		TokenAmount: quote.Amount,
		MaxSpend:    maxSpend,
		Fee:         quote.Fee,
		FeeBps:      global.FeeBasisPoints,
		SlippageBps: params.slippageBps,
		Tier:        account.ConfigTier(),
	}, nil
}

// BuildSellQuote fetches the curve and the protocol fee rate, then prices
// selling tokenAmount base units.
func (q *Quoter) BuildSellQuote(ctx context.Context, mint solana.PublicKey, tokenAmount uint64, opts ...QuoteOption) (*SellQuote, error) {
	params := q.resolve(opts)

	account, err := q.reader.FetchBondingCurve(ctx, mint)
	if err != nil {
		return nil, err
	}
	global, err := q.reader.FetchGlobal(ctx)
	if err != nil {
		return nil, err
	}

	quote, err := curve.QuoteQuoteForBase(tokenAmount, account.State(), global.FeeBasisPoints)
	if err != nil {
		return nil, err
	}

	minProceeds, err := curve.ApplySlippageBound(quote.Amount, params.slippageBps, curve.Sell)
	if err != nil {
		return nil, err
	}

	q.logger.Debug("sell quote",
		zap.Stringer("mint", mint),
		zap.Uint64("token_amount", tokenAmount),
		zap.Uint64("proceeds", quote.Amount),
		zap.Uint64("min_proceeds", minProceeds),
		zap.Uint64("fee", quote.Fee),
	)

	return &SellQuote{
		Proceeds:    quote.Amount,
		MinProceeds: minProceeds,
		Fee:         quote.Fee,
		FeeBps:      global.FeeBasisPoints,
		SlippageBps: params.slippageBps,
		Tier:        account.ConfigTier(),
	}, nil
}

func (q *Quoter) resolve(opts []QuoteOption) quoteParams {
	params := quoteParams{slippageBps: q.defaultSlippageBps}
	for _, opt := range opts {
		opt(&params)
	}
	return params
}
