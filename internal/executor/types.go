package executor

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is one round trip. An open trade has Open set and is marked to the
// last close.
type Trade struct {
	Direction  int
	Quantity   decimal.Decimal
	EntryBar   int
	EntryTime  time.Time
	EntryPrice decimal.Decimal
	ExitBar    int
	ExitTime   time.Time
	ExitPrice  decimal.Decimal
	PnL        decimal.Decimal
	Open       bool
}

// Summary is the outcome of a backtest.
type Summary struct {
	Trades        int             `json:"trades"`
	StartCash     decimal.Decimal `json:"startCash"`
	FinalCash     decimal.Decimal `json:"finalCash"`
	FinalPosition decimal.Decimal `json:"finalPosition"`
	FinalEquity   decimal.Decimal `json:"finalEquity"`
	PnL           decimal.Decimal `json:"pnl"`
	LastPrice     decimal.Decimal `json:"lastPrice"`
}

// Report bundles the summary with the individual trades.
type Report struct {
	Summary Summary
	Trades  []Trade
	// Rejected counts entries skipped for lack of cash.
	Rejected int
}
