package gemsfun

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
)

func TestBuyRejectsEmptyKey(t *testing.T) {
	client := testClient(nil)
	if _, err := client.Buy(context.Background(), nil, testMint, 1, DefaultTradeConfig()); !errors.Is(err, ErrMissingSigner) {
		t.Fatalf("got %v, want ErrMissingSigner", err)
	}
	if _, err := client.Sell(context.Background(), nil, testMint, 1, DefaultTradeConfig()); !errors.Is(err, ErrMissingSigner) {
		t.Fatalf("got %v, want ErrMissingSigner", err)
	}
}

func TestSignTransactionWrapsSignerMismatch(t *testing.T) {
	wallet := solana.NewWallet()

	accounts, err := TradeAccountsForMint(testUser, testMint)
	if err != nil {
		t.Fatalf("derive trade accounts: %v", err)
	}
	instruction, err := NewBuyInstruction(accounts, 1, 1, 0)
	if err != nil {
		t.Fatalf("build instruction: %v", err)
	}
	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		solana.Hash{},
		solana.TransactionPayer(testUser),
	)
	if err != nil {
		t.Fatalf("build transaction: %v", err)
	}

	// The wallet cannot satisfy testUser's required signature; the failure
	// must keep both the sentinel and the signing error's detail.
	err = signTransaction(tx, wallet.PrivateKey)
	if !errors.Is(err, ErrMissingSigner) {
		t.Fatalf("got %v, want ErrMissingSigner", err)
	}
	if err.Error() == ErrMissingSigner.Error() {
		t.Fatalf("signing cause discarded: %q", err)
	}
}

func TestSignTransactionSignsWithMatchingKey(t *testing.T) {
	wallet := solana.NewWallet()

	accounts, err := TradeAccountsForMint(wallet.PublicKey(), testMint)
	if err != nil {
		t.Fatalf("derive trade accounts: %v", err)
	}
	instruction, err := NewBuyInstruction(accounts, 1, 1, 0)
	if err != nil {
		t.Fatalf("build instruction: %v", err)
	}
	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		solana.Hash{},
		solana.TransactionPayer(wallet.PublicKey()),
	)
	if err != nil {
		t.Fatalf("build transaction: %v", err)
	}

	if err := signTransaction(tx, wallet.PrivateKey); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tx.Signatures) == 0 {
		t.Fatal("transaction left unsigned")
	}
}

func TestDefaultTradeConfig(t *testing.T) {
	cfg := DefaultTradeConfig()
	if cfg.SlippageBps != 500 {
		t.Fatalf("slippage default mismatch: %d", cfg.SlippageBps)
	}
	if cfg.SimulateOnly || cfg.SkipSimulation {
		t.Fatalf("simulation defaults mismatch: %+v", cfg)
	}
}
