package gemsfun

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
)

var (
	testUser = solana.MustPublicKeyFromBase58("Vote111111111111111111111111111111111111111")
)

func testTradeAccounts(t *testing.T) TradeAccounts {
	t.Helper()
	accounts, err := TradeAccountsForMint(testUser, testMint)
	if err != nil {
		t.Fatalf("derive trade accounts: %v", err)
	}
	return accounts
}

func TestNewBuyInstructionDataLayout(t *testing.T) {
	instruction, err := NewBuyInstruction(testTradeAccounts(t), 353_973_188_848, 10_500_000, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := instruction.Data()
	if err != nil {
		t.Fatalf("instruction data: %v", err)
	}

	// 8-byte discriminator, two little-endian u64 arguments, then the fee
	// rate as a little-endian u16. The quoted integers must arrive
	// byte-exact: the program recomputes the trade and rejects any widened
	// or rounded copy.
	if len(data) != 26 {
		t.Fatalf("data length mismatch: got %d, want 26", len(data))
	}
	if !bytes.Equal(data[:8], buyInstructionDiscriminator[:]) {
		t.Fatalf("discriminator mismatch: %x", data[:8])
	}
	if got := binary.LittleEndian.Uint64(data[8:16]); got != 353_973_188_848 {
		t.Fatalf("amount mismatch: got %d", got)
	}
	if got := binary.LittleEndian.Uint64(data[16:24]); got != 10_500_000 {
		t.Fatalf("bound mismatch: got %d", got)
	}
	if got := binary.LittleEndian.Uint16(data[24:26]); got != 100 {
		t.Fatalf("fee bps mismatch: got %d", got)
	}
}

func TestNewBuyInstructionRejectsWideFeeRate(t *testing.T) {
	_, err := NewBuyInstruction(testTradeAccounts(t), 1, 1, 10_001)
	if err == nil {
		t.Fatal("expected error for fee rate above the denominator")
	}
}

func TestNewSellInstructionDataLayout(t *testing.T) {
	instruction, err := NewSellInstruction(testTradeAccounts(t), 353_973_188_848, 9_304_810, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := instruction.Data()
	if err != nil {
		t.Fatalf("instruction data: %v", err)
	}
	if !bytes.Equal(data[:8], sellInstructionDiscriminator[:]) {
		t.Fatalf("discriminator mismatch: %x", data[:8])
	}
	if got := binary.LittleEndian.Uint64(data[16:24]); got != 9_304_810 {
		t.Fatalf("bound mismatch: got %d", got)
	}
}

func TestTradeInstructionAccounts(t *testing.T) {
	accounts := testTradeAccounts(t)
	instruction, err := NewBuyInstruction(accounts, 1, 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !instruction.ProgramID().Equals(ProgramID) {
		t.Fatalf("program id mismatch: %s", instruction.ProgramID())
	}

	metas := instruction.Accounts()
	if len(metas) != 9 {
		t.Fatalf("account count mismatch: got %d, want 9", len(metas))
	}
	if !metas[6].PublicKey.Equals(testUser) {
		t.Fatalf("user position mismatch: %s", metas[6].PublicKey)
	}
	if !metas[6].IsSigner || !metas[6].IsWritable {
		t.Fatalf("user must sign and be writable: %+v", metas[6])
	}
	if !metas[3].PublicKey.Equals(accounts.BondingCurve) || !metas[3].IsWritable {
		t.Fatalf("bonding curve meta mismatch: %+v", metas[3])
	}
	if metas[0].IsSigner || metas[0].IsWritable {
		t.Fatalf("global must be read-only: %+v", metas[0])
	}
}
