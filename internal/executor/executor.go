// Package executor defines the interface of the backtest executor that turns
// signal rows into trades and a profit and loss summary.
package executor

import (
	"context"

	"github.com/specialistvlad/signalgrid/internal/signals"
)

// Executor simulates trading on a compiled signal table.
type Executor interface {
	Execute(ctx context.Context, res *signals.Result) (*Report, error)
}
