package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gemsfun/gemsfun-sdk/internal/model"
)

func TestJsonlStorageAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipts.jsonl")
	sink := NewJsonlStorage(path)

	first := model.TradeReceipt{
		Mint:          "So11111111111111111111111111111111111111112",
		Side:          "buy",
		TokenAmount:   353_973_188_848,
		QuoteLamports: 10_000_000,
		FeeLamports:   100_000,
		BoundLamports: 10_500_000,
		FeeBps:        100,
		SlippageBps:   500,
		Timestamp:     1_700_000_000,
	}
	second := first
	second.Side = "sell"

	if err := sink.PutReceipts(context.Background(), []model.TradeReceipt{first}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sink.PutReceipts(context.Background(), []model.TradeReceipt{second}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	var got []model.TradeReceipt
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var receipt model.TradeReceipt
		if err := json.Unmarshal(scanner.Bytes(), &receipt); err != nil {
			t.Fatalf("unmarshal line: %v", err)
		}
		got = append(got, receipt)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("line count mismatch: got %d, want 2", len(got))
	}
	if got[0] != first || got[1] != second {
		t.Fatalf("receipts mismatch: %+v", got)
	}
}

func TestJsonlStorageEmptyBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipts.jsonl")
	sink := NewJsonlStorage(path)

	if err := sink.PutReceipts(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("empty batch must not create the file")
	}
}
