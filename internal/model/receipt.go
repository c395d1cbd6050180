package model

// TradeReceipt records one quoted or executed trade for a sink.
type TradeReceipt struct {
	Signature     string `json:"signature,omitempty"`
	Mint          string `json:"mint"`
	Side          string `json:"side"`
	TokenAmount   uint64 `json:"token_amount"`
	QuoteLamports uint64 `json:"quote_lamports"`
	FeeLamports   uint64 `json:"fee_lamports"`
	BoundLamports uint64 `json:"bound_lamports"`
	FeeBps        uint64 `json:"fee_bps"`
	SlippageBps   uint64 `json:"slippage_bps"`
	Simulated     bool   `json:"simulated"`
	Timestamp     int64  `json:"ts"`
}
