package localexecutor

import (
	"github.com/shopspring/decimal"
	"github.com/specialistvlad/signalgrid/internal/executor"
	"github.com/specialistvlad/signalgrid/internal/signals"
)

// book tracks cash and the single open position. position is signed:
// positive for long, negative for short.
type book struct {
	cash      decimal.Decimal
	position  decimal.Decimal
	lastPrice decimal.Decimal
	open      *executor.Trade
}

// enter opens a position and reports whether it was affordable. Shorts
// credit the proceeds and are always accepted.
func (b *book) enter(bar int, row signals.Row, price, qty decimal.Decimal) bool {
	signed := qty
	if row.EntryDirection == signals.Short {
		signed = qty.Neg()
	}

	newCash := b.cash.Sub(price.Mul(signed))
	if newCash.IsNegative() {
		return false
	}

	b.cash = newCash
	b.position = signed
	b.open = &executor.Trade{
		Direction:  row.EntryDirection,
		Quantity:   qty,
		EntryBar:   bar,
		EntryTime:  row.Time,
		EntryPrice: price,
		Open:       true,
	}
	return true
}

// close flattens the position at price and returns the finished trade.
func (b *book) close(bar int, row signals.Row, price decimal.Decimal) executor.Trade {
	b.cash = b.cash.Add(price.Mul(b.position))
	b.position = decimal.Zero

	t := *b.open
	t.ExitBar = bar
	t.ExitTime = row.Time
	t.ExitPrice = price
	t.Open = false
	t.PnL = pnl(t.Direction, t.Quantity, t.EntryPrice, price)
	b.open = nil
	return t
}

func (b *book) unrealized(t executor.Trade) decimal.Decimal {
	return pnl(t.Direction, t.Quantity, t.EntryPrice, b.lastPrice)
}

func pnl(direction int, qty, entry, exit decimal.Decimal) decimal.Decimal {
	diff := exit.Sub(entry)
	if direction == signals.Short {
		diff = diff.Neg()
	}
	return diff.Mul(qty)
}
