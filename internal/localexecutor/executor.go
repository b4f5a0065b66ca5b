// Package localexecutor provides a concrete, in-process implementation of the
// executor.Executor interface: a single-position simulator that fills at the
// bar close.
package localexecutor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/specialistvlad/signalgrid/internal/ctxlog"
	"github.com/specialistvlad/signalgrid/internal/executor"
	"github.com/specialistvlad/signalgrid/internal/signals"
)

var (
	ErrNegativeCash    = errors.New("start cash must not be negative")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrNonFinitePrice  = errors.New("non-finite close price")
)

// Config holds the simulation parameters.
type Config struct {
	StartCash decimal.Decimal
	// Quantity is the number of units traded per unit of entry size.
	Quantity decimal.Decimal
}

// Executor implements the executor.Executor interface for local execution.
type Executor struct {
	cfg Config
}

var _ executor.Executor = (*Executor)(nil)

// New creates a new local executor.
func New(cfg Config) (*Executor, error) {
	if cfg.StartCash.IsNegative() {
		return nil, ErrNegativeCash
	}
	if !cfg.Quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}
	return &Executor{cfg: cfg}, nil
}

// Execute walks the rows in order. On each bar an open position is closed
// first when the exit signal is set; a flat book then opens a position when
// the entry signal is set. Entries while a position is open are ignored.
func (e *Executor) Execute(ctx context.Context, res *signals.Result) (*executor.Report, error) {
	logger := ctxlog.FromContext(ctx)

	b := &book{cash: e.cfg.StartCash}
	report := &executor.Report{}

	for i, row := range res.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if math.IsNaN(row.Bar.Close) || math.IsInf(row.Bar.Close, 0) {
			return nil, fmt.Errorf("bar %d (%s): %w: %v", i, row.Time.Format(time.RFC3339), ErrNonFinitePrice, row.Bar.Close)
		}
		price := decimal.NewFromFloat(row.Bar.Close)
		b.lastPrice = price

		if b.open != nil && row.ExitSignal {
			t := b.close(i, row, price)
			report.Trades = append(report.Trades, t)
			logger.Debug("Position closed.", "bar", i, "direction", t.Direction, "price", price, "pnl", t.PnL)
		}

		if b.open == nil && row.EntrySignal {
			qty := e.cfg.Quantity.Mul(decimal.NewFromFloat(row.EntrySize))
			if !b.enter(i, row, price, qty) {
				report.Rejected++
				logger.Debug("Entry rejected, insufficient cash.", "bar", i, "price", price, "quantity", qty, "cash", b.cash)
				continue
			}
			logger.Debug("Position opened.", "bar", i, "direction", row.EntryDirection, "price", price, "quantity", qty)
		}
	}

	if b.open != nil {
		t := *b.open
		t.PnL = b.unrealized(t)
		report.Trades = append(report.Trades, t)
	}

	equity := b.cash.Add(b.position.Mul(b.lastPrice))
	report.Summary = executor.Summary{
		Trades:        len(report.Trades),
		StartCash:     e.cfg.StartCash,
		FinalCash:     b.cash,
		FinalPosition: b.position,
		FinalEquity:   equity,
		PnL:           equity.Sub(e.cfg.StartCash),
		LastPrice:     b.lastPrice,
	}
	return report, nil
}
