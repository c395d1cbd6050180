package gemsfun

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/gemsfun/gemsfun-sdk/curve"
)

// Anchor account discriminators: sha256("account:<Name>")[:8].
var (
	globalAccountDiscriminator       = [8]byte{0xa7, 0xe8, 0xe8, 0xb1, 0xc8, 0x6c, 0x72, 0x7f}
	bondingCurveAccountDiscriminator = [8]byte{0x17, 0xb7, 0xf8, 0x37, 0x60, 0xd8, 0xac, 0x60}
	curveConfigAccountDiscriminator  = [8]byte{0x60, 0x4b, 0xd3, 0x90, 0xc1, 0x24, 0xf3, 0x29}
)

// GlobalAccount is the program's singleton configuration.
type GlobalAccount struct {
	Initialized    bool             `borsh:"initialized"`
	Authority      solana.PublicKey `borsh:"authority"`
	FeeRecipient   solana.PublicKey `borsh:"fee_recipient"`
	FeeBasisPoints uint64           `borsh:"fee_basis_points"`
}

// BondingCurveAccount is the per-mint curve state. The virtual reserves are
// the pair the constant-product invariant is computed over; the real
// reserves track actual vault balances.
type BondingCurveAccount struct {
	VirtualSolReserves   uint64           `borsh:"virtual_sol_reserves"`
	VirtualTokenReserves uint64           `borsh:"virtual_token_reserves"`
	RealSolReserves      uint64           `borsh:"real_sol_reserves"`
	RealTokenReserves    uint64           `borsh:"real_token_reserves"`
	Tier                 uint8            `borsh:"tier"`
	Complete             bool             `borsh:"complete"`
	Creator              solana.PublicKey `borsh:"creator"`
}

// State converts the account into the pricing engine's snapshot. Pricing
// runs over the virtual reserves; Complete marks a graduated curve.
func (a *BondingCurveAccount) State() curve.State {
	return curve.State{
		ReserveQuote: a.VirtualSolReserves,
		ReserveBase:  a.VirtualTokenReserves,
		Finalized:    a.Complete,
	}
}

// ConfigTier returns the curve's configuration tier.
func (a *BondingCurveAccount) ConfigTier() curve.Tier {
	return curve.Tier(a.Tier)
}

// CurveConfigAccount is the per-tier supply configuration.
type CurveConfigAccount struct {
	Tier             uint8  `borsh:"tier"`
	TotalSupplyCap   uint64 `borsh:"total_supply_cap"`
	ReserveFloor     uint64 `borsh:"reserve_floor"`
	LiquidityReserve uint64 `borsh:"liquidity_reserve"`
}

// Limits converts the account into the pricing engine's form.
func (a *CurveConfigAccount) Limits() curve.SupplyLimits {
	return curve.SupplyLimits{
		TotalSupplyCap:   a.TotalSupplyCap,
		ReserveFloor:     a.ReserveFloor,
		LiquidityReserve: a.LiquidityReserve,
	}
}

// DecodeGlobalAccount decodes the raw account blob.
func DecodeGlobalAccount(data []byte) (*GlobalAccount, error) {
	payload, err := stripDiscriminator(data, globalAccountDiscriminator)
	if err != nil {
		return nil, fmt.Errorf("global account: %w", err)
	}
	account := new(GlobalAccount)
	if err := bin.NewBorshDecoder(payload).Decode(account); err != nil {
		return nil, fmt.Errorf("decode global account: %w", err)
	}
	return account, nil
}

// DecodeBondingCurveAccount decodes the raw account blob.
func DecodeBondingCurveAccount(data []byte) (*BondingCurveAccount, error) {
	payload, err := stripDiscriminator(data, bondingCurveAccountDiscriminator)
	if err != nil {
		return nil, fmt.Errorf("bonding curve account: %w", err)
	}
	account := new(BondingCurveAccount)
	if err := bin.NewBorshDecoder(payload).Decode(account); err != nil {
		return nil, fmt.Errorf("decode bonding curve account: %w", err)
	}
	return account, nil
}

// DecodeCurveConfigAccount decodes the raw account blob.
func DecodeCurveConfigAccount(data []byte) (*CurveConfigAccount, error) {
	payload, err := stripDiscriminator(data, curveConfigAccountDiscriminator)
	if err != nil {
		return nil, fmt.Errorf("curve config account: %w", err)
	}
	account := new(CurveConfigAccount)
	if err := bin.NewBorshDecoder(payload).Decode(account); err != nil {
		return nil, fmt.Errorf("decode curve config account: %w", err)
	}
	return account, nil
}

func stripDiscriminator(data []byte, want [8]byte) ([]byte, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("account data too short: %d bytes", len(data))
	}
	if !bytes.Equal(data[:8], want[:]) {
		return nil, fmt.Errorf("discriminator mismatch: %x", data[:8])
	}
	return data[8:], nil
}
