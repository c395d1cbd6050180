package gemsfun

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/gemsfun/gemsfun-sdk/curve"
)

// Anchor instruction discriminators: sha256("global:<name>")[:8].
var (
	buyInstructionDiscriminator  = [8]byte{0x66, 0x06, 0x3d, 0x12, 0x01, 0xda, 0xeb, 0xea}
	sellInstructionDiscriminator = [8]byte{0x33, 0xe6, 0x85, 0xa4, 0x01, 0x7f, 0x83, 0xad}
)

// TradeArgs is the borsh-encoded argument block shared by buy and sell.
// Amount and Bound carry the quoted integers verbatim; the program rejects
// the instruction if its own recomputation crosses Bound. FeeBasisPoints is
// a u16 passthrough of the fetched fee rate so a stale client value fails
// the program's equality check instead of silently repricing.
type TradeArgs struct {
	Amount         uint64 `borsh:"amount"`
	Bound          uint64 `borsh:"bound"`
	FeeBasisPoints uint16 `borsh:"fee_basis_points"`
}

// TradeAccounts is the fixed account set both trade instructions take, in
// program-defined order.
type TradeAccounts struct {
	Global       solana.PublicKey
	FeeRecipient solana.PublicKey
	Mint         solana.PublicKey
	BondingCurve solana.PublicKey
	CurveVault   solana.PublicKey
	UserVault    solana.PublicKey
	User         solana.PublicKey
}

// TradeAccountsForMint derives the full account set for a user trading a
// mint.
func TradeAccountsForMint(user, mint solana.PublicKey) (TradeAccounts, error) {
	global, err := GlobalAddress()
	if err != nil {
		return TradeAccounts{}, err
	}
	bondingCurve, err := BondingCurveAddress(mint)
	if err != nil {
		return TradeAccounts{}, err
	}
	curveVault, err := CurveVaultAddress(mint)
	if err != nil {
		return TradeAccounts{}, err
	}
	userVault, err := UserVaultAddress(user, mint)
	if err != nil {
		return TradeAccounts{}, err
	}
	return TradeAccounts{
		Global:       global,
		FeeRecipient: FeeRecipient,
		Mint:         mint,
		BondingCurve: bondingCurve,
		CurveVault:   curveVault,
		UserVault:    userVault,
		User:         user,
	}, nil
}

// NewBuyInstruction builds the buy instruction: tokenAmount is the exact
// base amount requested, maxSolCost the slippage ceiling in lamports.
func NewBuyInstruction(accounts TradeAccounts, tokenAmount, maxSolCost, feeBps uint64) (solana.Instruction, error) {
	args, err := tradeArgs(tokenAmount, maxSolCost, feeBps)
	if err != nil {
		return nil, err
	}
	data, err := encodeTradeData(buyInstructionDiscriminator, args)
	if err != nil {
		return nil, fmt.Errorf("encode buy instruction: %w", err)
	}
	return solana.NewInstruction(ProgramID, tradeMetas(accounts), data), nil
}

// NewSellInstruction builds the sell instruction: tokenAmount is the base
// amount sold, minSolOutput the slippage floor in lamports.
func NewSellInstruction(accounts TradeAccounts, tokenAmount, minSolOutput, feeBps uint64) (solana.Instruction, error) {
	args, err := tradeArgs(tokenAmount, minSolOutput, feeBps)
	if err != nil {
		return nil, err
	}
	data, err := encodeTradeData(sellInstructionDiscriminator, args)
	if err != nil {
		return nil, fmt.Errorf("encode sell instruction: %w", err)
	}
	return solana.NewInstruction(ProgramID, tradeMetas(accounts), data), nil
}

// tradeArgs narrows the fee rate into the wire u16. Rates above the basis
// point denominator never come out of the quote path, so anything wider is
// a caller bug, not a value to truncate.
func tradeArgs(amount, bound, feeBps uint64) (TradeArgs, error) {
	if feeBps > curve.BpsDenominator {
		return TradeArgs{}, fmt.Errorf("fee basis points %d exceeds denominator %d", feeBps, curve.BpsDenominator)
	}
	return TradeArgs{
		Amount:         amount,
		Bound:          bound,
		FeeBasisPoints: uint16(feeBps),
	}, nil
}

func tradeMetas(accounts TradeAccounts) solana.AccountMetaSlice {
	return solana.AccountMetaSlice{
		solana.Meta(accounts.Global),
		solana.Meta(accounts.FeeRecipient).WRITE(),
		solana.Meta(accounts.Mint),
		solana.Meta(accounts.BondingCurve).WRITE(),
		solana.Meta(accounts.CurveVault).WRITE(),
		solana.Meta(accounts.UserVault).WRITE(),
		solana.Meta(accounts.User).WRITE().SIGNER(),
		solana.Meta(system.ProgramID),
		solana.Meta(token.ProgramID),
	}
}

func encodeTradeData(discriminator [8]byte, args TradeArgs) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(discriminator[:])
	if err := bin.NewBorshEncoder(buf).Encode(args); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
