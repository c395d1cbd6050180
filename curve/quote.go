package curve

import "github.com/holiman/uint256"

// QuoteBaseForQuote prices a buy-by-spend: it converts quoteAmountIn quote
// units into the base-token amount the curve releases, after deducting the
// protocol fee and clamping to the tradable portion of the base reserve.
//
// The clamp is advisory. The program recomputes the reserved-supply
// carve-out itself and rejects any instruction that draws past it, so the
// client only has to stay at or below the program's own figure.
func QuoteBaseForQuote(quoteAmountIn uint64, state State, limits SupplyLimits, feeBps uint64) (Quote, error) {
	if state.Finalized {
		return Quote{}, ErrCurveFinalized
	}
	if quoteAmountIn == 0 {
		return Quote{}, ErrInvalidAmount
	}
	// The global account constrains the fee rate to [0, 10000]; anything
	// else is corrupted state.
	if feeBps > BpsDenominator {
		return Quote{}, ErrArithmeticOverflow
	}

	fee := mulDivBps(quoteAmountIn, feeBps)
	netIn := quoteAmountIn - fee

	k := new(uint256.Int).Mul(
		uint256.NewInt(state.ReserveQuote),
		uint256.NewInt(state.ReserveBase),
	)

	newReserveQuote := new(uint256.Int).Add(
		uint256.NewInt(state.ReserveQuote),
		uint256.NewInt(netIn),
	)
	if newReserveQuote.IsZero() {
		return Quote{}, ErrDivisionByZero
	}

	newReserveBase := new(uint256.Int).Div(k, newReserveQuote)
	if newReserveBase.Gt(uint256.NewInt(state.ReserveBase)) {
		return Quote{}, ErrArithmeticOverflow
	}
	rawBaseOut := state.ReserveBase - newReserveBase.Uint64()

	baseOut := rawBaseOut
	if available := availableBase(state, limits); available < baseOut {
		baseOut = available
	}
	if baseOut == 0 {
		return Quote{}, ErrNoLiquidity
	}

	return Quote{Amount: baseOut, Fee: fee}, nil
}

// QuoteQuoteForBase prices a sell: it converts baseAmountIn base tokens into
// the quote-currency proceeds after the protocol fee.
func QuoteQuoteForBase(baseAmountIn uint64, state State, feeBps uint64) (Quote, error) {
	if state.Finalized {
		return Quote{}, ErrCurveFinalized
	}
	if baseAmountIn == 0 {
		return Quote{}, ErrInvalidAmount
	}
	if baseAmountIn > state.ReserveBase {
		return Quote{}, ErrInsufficientReserve
	}
	if feeBps > BpsDenominator {
		return Quote{}, ErrArithmeticOverflow
	}

	k := new(uint256.Int).Mul(
		uint256.NewInt(state.ReserveQuote),
		uint256.NewInt(state.ReserveBase),
	)

	newReserveBase := new(uint256.Int).Add(
		uint256.NewInt(state.ReserveBase),
		uint256.NewInt(baseAmountIn),
	)
	if newReserveBase.IsZero() {
		return Quote{}, ErrDivisionByZero
	}

	newReserveQuote := new(uint256.Int).Div(k, newReserveBase)
	if newReserveQuote.Gt(uint256.NewInt(state.ReserveQuote)) {
		return Quote{}, ErrArithmeticOverflow
	}
	rawQuoteOut := state.ReserveQuote - newReserveQuote.Uint64()

	fee := mulDivBps(rawQuoteOut, feeBps)
	quoteOut := rawQuoteOut - fee
	if quoteOut == 0 {
		return Quote{}, ErrInvalidAmountOut
	}

	return Quote{Amount: quoteOut, Fee: fee}, nil
}

// ApplySlippageBound derives the worst-case value to embed in a trade
// instruction: a spend ceiling (rounded up) when buying, a proceeds floor
// (rounded down) when selling. A zero tolerance returns amount unchanged.
func ApplySlippageBound(amount uint64, slippageBps uint64, direction Direction) (uint64, error) {
	if slippageBps > BpsDenominator {
		return 0, ErrInvalidSlippage
	}

	var numerator uint64
	roundUp := false
	switch direction {
	case Buy:
		numerator = BpsDenominator + slippageBps
		roundUp = true
	case Sell:
		numerator = BpsDenominator - slippageBps
	default:
		return 0, ErrInvalidSlippage
	}

	product := new(uint256.Int).Mul(uint256.NewInt(amount), uint256.NewInt(numerator))
	if roundUp {
		product.Add(product, uint256.NewInt(BpsDenominator-1))
	}
	bound := product.Div(product, uint256.NewInt(BpsDenominator))
	if !bound.IsUint64() {
		return 0, ErrArithmeticOverflow
	}
	return bound.Uint64(), nil
}

// availableBase is the tradable portion of the curve's base reserve: the
// reserve minus the virtual premium (ReserveFloor - TotalSupplyCap) minus
// the post-graduation liquidity allocation. The subtraction order matches
// the program's own accounting; every step saturates at zero so degenerate
// limits clamp the trade instead of corrupting it.
func availableBase(state State, limits SupplyLimits) uint64 {
	premium := saturatingSub(limits.ReserveFloor, limits.TotalSupplyCap)
	available := saturatingSub(state.ReserveBase, premium)
	return saturatingSub(available, limits.LiquidityReserve)
}

// mulDivBps computes floor(amount * bps / 10000) without overflowing.
func mulDivBps(amount uint64, bps uint64) uint64 {
	product := new(uint256.Int).Mul(uint256.NewInt(amount), uint256.NewInt(bps))
	return product.Div(product, uint256.NewInt(BpsDenominator)).Uint64()
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
