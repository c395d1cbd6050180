package storage

import (
	"context"

	"github.com/gemsfun/gemsfun-sdk/internal/model"
)

// Storage defines a sink for trade receipts.
type Storage interface {
	PutReceipts(ctx context.Context, receipts []model.TradeReceipt) error
}
