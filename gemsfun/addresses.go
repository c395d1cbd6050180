// Package gemsfun is the client SDK for the gems.fun bonding-curve
// token-issuance program. It fetches curve state over RPC, prices trades
// with the curve package, and assembles the buy/sell instructions the
// program accepts.
package gemsfun

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/gemsfun/gemsfun-sdk/curve"
)

// ProgramID is the deployed gems.fun program.
var ProgramID = solana.MustPublicKeyFromBase58("7mPT9XDA1SMwo5b2uBvafSX6hWSsvPnW4mbivCPBsay9")

// FeeRecipient receives the protocol fee on every trade.
var FeeRecipient = solana.MustPublicKeyFromBase58("Hu5cjYMgnK81ZhrrL7ss8Z7LCRvpRjyLPfChsEJc7ASn")

// PDA seeds fixed by the program.
const (
	globalSeed       = "global"
	bondingCurveSeed = "bonding-curve"
	curveConfigSeed  = "curve-config"
)

// GlobalAddress derives the singleton global-config PDA.
func GlobalAddress() (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(globalSeed)},
		ProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive global address: %w", err)
	}
	return addr, nil
}

// BondingCurveAddress derives the curve PDA for a token mint.
func BondingCurveAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(bondingCurveSeed), mint.Bytes()},
		ProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive bonding curve address: %w", err)
	}
	return addr, nil
}

// CurveConfigAddress derives the per-tier configuration PDA.
func CurveConfigAddress(tier curve.Tier) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(curveConfigSeed), {byte(tier)}},
		ProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive curve config address: %w", err)
	}
	return addr, nil
}

// CurveVaultAddress derives the curve's associated token account, which
// holds the base-token reserve.
func CurveVaultAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	curveAddr, err := BondingCurveAddress(mint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	vault, _, err := solana.FindAssociatedTokenAddress(curveAddr, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive curve vault: %w", err)
	}
	return vault, nil
}

// UserVaultAddress derives the trader's associated token account for a mint.
func UserVaultAddress(user, mint solana.PublicKey) (solana.PublicKey, error) {
	vault, _, err := solana.FindAssociatedTokenAddress(user, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive user vault: %w", err)
	}
	return vault, nil
}
