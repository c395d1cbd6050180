package curve

import "errors"

// Quote failures. Callers are expected to match these with errors.Is and
// present targeted messages; none of them are retryable with the same input.
var (
	// ErrInvalidAmount reports a non-positive input amount.
	ErrInvalidAmount = errors.New("curve: amount must be greater than zero")

	// ErrCurveFinalized reports a trade against a graduated curve.
	ErrCurveFinalized = errors.New("curve: curve is finalized")

	// ErrInsufficientReserve reports a sell larger than the base reserve.
	ErrInsufficientReserve = errors.New("curve: sell amount exceeds base reserve")

	// ErrNoLiquidity reports a buy that yields zero tokens after the
	// reserved-supply clamp.
	ErrNoLiquidity = errors.New("curve: no liquidity available")

	// ErrInvalidAmountOut reports a sell whose proceeds round to zero
	// after the fee.
	ErrInvalidAmountOut = errors.New("curve: amount out rounds to zero")

	// ErrDivisionByZero guards against degenerate reserve state.
	ErrDivisionByZero = errors.New("curve: division by zero")

	// ErrArithmeticOverflow guards against corrupted reserve state.
	ErrArithmeticOverflow = errors.New("curve: arithmetic overflow")

	// ErrInvalidSlippage reports an out-of-range slippage tolerance.
	ErrInvalidSlippage = errors.New("curve: slippage must be within [0, 10000] bps")

	// ErrUnknownTier reports a tier outside the fixed configuration table.
	ErrUnknownTier = errors.New("curve: unknown configuration tier")
)
