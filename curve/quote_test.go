package curve

import (
	"errors"
	"math/big"
	"testing"
)

// Reference curve: 30 SOL of virtual quote reserve against the tier-1
// virtual base reserve, 1% protocol fee.
func testState() State {
	return State{
		ReserveQuote: 30_000_000_000,
		ReserveBase:  1_073_000_000_000_000,
	}
}

func testLimits() SupplyLimits {
	limits, err := LimitsForTier(Tier1)
	if err != nil {
		panic(err)
	}
	return limits
}

const testFeeBps = 100

func TestQuoteBaseForQuoteReference(t *testing.T) {
	quote, err := QuoteBaseForQuote(10_000_000, testState(), testLimits(), testFeeBps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Fee != 100_000 {
		t.Fatalf("fee mismatch: got %d, want 100000", quote.Fee)
	}
	if quote.Amount != 353_973_188_848 {
		t.Fatalf("amount mismatch: got %d, want 353973188848", quote.Amount)
	}

	// Cross-check against an independent big.Int computation of
	// reserveBase - floor(k / (reserveQuote + netIn)).
	state := testState()
	k := new(big.Int).Mul(
		new(big.Int).SetUint64(state.ReserveQuote),
		new(big.Int).SetUint64(state.ReserveBase),
	)
	netIn := new(big.Int).SetUint64(10_000_000 - quote.Fee)
	newQuote := new(big.Int).Add(new(big.Int).SetUint64(state.ReserveQuote), netIn)
	newBase := new(big.Int).Div(k, newQuote)
	want := new(big.Int).Sub(new(big.Int).SetUint64(state.ReserveBase), newBase)
	if want.Uint64() != quote.Amount {
		t.Fatalf("amount diverges from reference: got %d, want %s", quote.Amount, want)
	}
}

func TestQuoteBaseForQuoteFinalized(t *testing.T) {
	state := testState()
	state.Finalized = true

	for _, spend := range []uint64{1, 10_000_000, 1 << 62} {
		if _, err := QuoteBaseForQuote(spend, state, testLimits(), testFeeBps); !errors.Is(err, ErrCurveFinalized) {
			t.Fatalf("spend %d: got %v, want ErrCurveFinalized", spend, err)
		}
	}
}

func TestQuoteBaseForQuoteZeroAmount(t *testing.T) {
	if _, err := QuoteBaseForQuote(0, testState(), testLimits(), testFeeBps); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}
}

func TestQuoteBaseForQuoteClamped(t *testing.T) {
	// Limits that leave only 100_000_000 tradable base units: the raw
	// curve output (~3.5e11) must be clamped to exactly that.
	limits := SupplyLimits{
		TotalSupplyCap:   1_000_000_000_000_000,
		ReserveFloor:     1_073_000_000_000_000,
		LiquidityReserve: 999_999_900_000_000,
	}

	quote, err := QuoteBaseForQuote(10_000_000, testState(), limits, testFeeBps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Amount != 100_000_000 {
		t.Fatalf("clamped amount mismatch: got %d, want 100000000", quote.Amount)
	}
}

func TestQuoteBaseForQuoteNoLiquidity(t *testing.T) {
	// Reserved supply swallows the entire base reserve.
	limits := SupplyLimits{
		TotalSupplyCap:   0,
		ReserveFloor:     0,
		LiquidityReserve: 1_073_000_000_000_000,
	}

	if _, err := QuoteBaseForQuote(10_000_000, testState(), limits, testFeeBps); !errors.Is(err, ErrNoLiquidity) {
		t.Fatalf("got %v, want ErrNoLiquidity", err)
	}
}

func TestQuoteBaseForQuoteMonotonic(t *testing.T) {
	state := testState()
	limits := testLimits()

	var prev uint64
	for _, spend := range []uint64{1_000, 10_000, 1_000_000, 10_000_000, 1_000_000_000, 30_000_000_000} {
		quote, err := QuoteBaseForQuote(spend, state, limits, testFeeBps)
		if err != nil {
			t.Fatalf("spend %d: unexpected error: %v", spend, err)
		}
		if quote.Amount < prev {
			t.Fatalf("spend %d: amount %d decreased below %d", spend, quote.Amount, prev)
		}
		prev = quote.Amount
	}
}

func TestQuoteBaseForQuoteDeterministic(t *testing.T) {
	first, err := QuoteBaseForQuote(10_000_000, testState(), testLimits(), testFeeBps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := QuoteBaseForQuote(10_000_000, testState(), testLimits(), testFeeBps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("quotes differ for identical inputs: %+v != %+v", first, second)
	}
}

func TestInvariantPreserved(t *testing.T) {
	state := testState()
	limits := testLimits()

	for _, spend := range []uint64{10_000, 10_000_000, 5_000_000_000} {
		quote, err := QuoteBaseForQuote(spend, state, limits, testFeeBps)
		if err != nil {
			t.Fatalf("spend %d: unexpected error: %v", spend, err)
		}

		fee := mulDivBps(spend, testFeeBps)
		newQuote := new(big.Int).SetUint64(state.ReserveQuote + (spend - fee))
		newBase := new(big.Int).SetUint64(state.ReserveBase - quote.Amount)

		k := new(big.Int).Mul(
			new(big.Int).SetUint64(state.ReserveQuote),
			new(big.Int).SetUint64(state.ReserveBase),
		)
		kAfter := new(big.Int).Mul(newQuote, newBase)

		if kAfter.Cmp(k) > 0 {
			t.Fatalf("spend %d: invariant grew: %s > %s", spend, kAfter, k)
		}
		diff := new(big.Int).Sub(k, kAfter)
		if diff.Cmp(newQuote) >= 0 {
			t.Fatalf("spend %d: rounding error %s exceeds one floor division (%s)", spend, diff, newQuote)
		}
	}
}

func TestQuoteQuoteForBaseReference(t *testing.T) {
	// Selling the exact output of the reference buy against the same
	// pre-trade state must return strictly less than the original spend:
	// the fee is charged in both directions.
	quote, err := QuoteQuoteForBase(353_973_188_848, testState(), testFeeBps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Amount != 9_794_537 {
		t.Fatalf("proceeds mismatch: got %d, want 9794537", quote.Amount)
	}
	if quote.Amount >= 10_000_000 {
		t.Fatalf("round trip did not lose fees: %d", quote.Amount)
	}
}

func TestQuoteQuoteForBaseFinalized(t *testing.T) {
	state := testState()
	state.Finalized = true
	if _, err := QuoteQuoteForBase(1_000, state, testFeeBps); !errors.Is(err, ErrCurveFinalized) {
		t.Fatalf("got %v, want ErrCurveFinalized", err)
	}
}

func TestQuoteQuoteForBaseExceedsReserve(t *testing.T) {
	state := testState()
	if _, err := QuoteQuoteForBase(state.ReserveBase+1, state, testFeeBps); !errors.Is(err, ErrInsufficientReserve) {
		t.Fatalf("got %v, want ErrInsufficientReserve", err)
	}
}

func TestQuoteQuoteForBaseZeroAmount(t *testing.T) {
	if _, err := QuoteQuoteForBase(0, testState(), testFeeBps); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}
}

func TestQuoteQuoteForBaseRoundsToZero(t *testing.T) {
	// A 100% fee eats the single quote unit a dust sell extracts.
	if _, err := QuoteQuoteForBase(1, testState(), BpsDenominator); !errors.Is(err, ErrInvalidAmountOut) {
		t.Fatalf("got %v, want ErrInvalidAmountOut", err)
	}
}

func TestLimitsForTier(t *testing.T) {
	for _, tier := range []Tier{Tier1, Tier2, Tier3} {
		limits, err := LimitsForTier(tier)
		if err != nil {
			t.Fatalf("tier %d: unexpected error: %v", tier, err)
		}
		if limits.ReserveFloor < limits.TotalSupplyCap {
			t.Fatalf("tier %d: reserve floor below supply cap: %+v", tier, limits)
		}
	}

	if _, err := LimitsForTier(Tier(9)); !errors.Is(err, ErrUnknownTier) {
		t.Fatalf("got %v, want ErrUnknownTier", err)
	}
}
