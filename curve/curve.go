// Package curve implements the bonding-curve pricing engine: the pair of
// inverse constant-product quote functions used to price buys and sells
// against an on-chain curve, plus the slippage-bound derivation embedded in
// trade instructions.
//
// The on-chain program performs the same arithmetic with the same integer
// widths and rounding; every intermediate that can exceed 64 bits is computed
// in 256-bit space and truncated only at the final assignment. All functions
// are pure: no I/O, no shared state, safe for concurrent use.
package curve

// BpsDenominator is the basis-point scale shared by fees and slippage.
const BpsDenominator = 10_000

// DefaultSlippageBps is the slippage tolerance applied when the caller does
// not choose one.
const DefaultSlippageBps = 500

// Direction identifies which side of the curve a trade takes.
type Direction int

const (
	// Buy spends quote currency for base tokens.
	Buy Direction = iota
	// Sell returns base tokens for quote currency.
	Sell
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// State is a read-only snapshot of one curve's reserves. ReserveQuote and
// ReserveBase are the virtual balances whose product the program holds
// constant across a single trade.
type State struct {
	ReserveQuote uint64
	ReserveBase  uint64
	Finalized    bool
}

// SupplyLimits describes how many base-token units a configuration tier
// permanently excludes from trading. ReserveFloor is the initial virtual
// base reserve; the excess over TotalSupplyCap is the virtual premium, and
// LiquidityReserve is held back for post-graduation liquidity.
type SupplyLimits struct {
	TotalSupplyCap   uint64
	ReserveFloor     uint64
	LiquidityReserve uint64
}

// Quote is the result of one pricing call. Amount is the counter amount:
// base tokens for a buy-by-spend, quote units for a sell. Fee is always in
// quote-currency units.
type Quote struct {
	Amount uint64
	Fee    uint64
}

// Tier selects one of the fixed curve configurations a token can be
// created under.
type Tier uint8

const (
	Tier1 Tier = 1
	Tier2 Tier = 2
	Tier3 Tier = 3
)

// tierLimits is the built-in configuration table. The on-chain config PDA is
// authoritative; this table mirrors it for offline quoting and as a fallback
// when the PDA has not been fetched.
var tierLimits = map[Tier]SupplyLimits{
	Tier1: {
		TotalSupplyCap:   1_000_000_000_000_000,
		ReserveFloor:     1_073_000_000_000_000,
		LiquidityReserve: 206_900_000_000_000,
	},
	Tier2: {
		TotalSupplyCap:   1_000_000_000_000_000,
		ReserveFloor:     1_200_000_000_000_000,
		LiquidityReserve: 250_000_000_000_000,
	},
	Tier3: {
		TotalSupplyCap:   1_000_000_000_000_000,
		ReserveFloor:     1_500_000_000_000_000,
		LiquidityReserve: 300_000_000_000_000,
	},
}

// LimitsForTier returns the built-in SupplyLimits for a tier.
func LimitsForTier(t Tier) (SupplyLimits, error) {
	limits, ok := tierLimits[t]
	if !ok {
		return SupplyLimits{}, ErrUnknownTier
	}
	return limits, nil
}
