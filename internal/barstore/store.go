package barstore

import (
	"context"
	"errors"
	"time"

	"github.com/specialistvlad/signalgrid/internal/bars"
)

var (
	ErrNoBars        = errors.New("no bars found in datasource")
	ErrSymbolMissing = errors.New("symbol not found in datasource")
)

// Store is an OHLCV repository keyed by symbol and date range.
type Store interface {
	Load(ctx context.Context, symbol string, start, end time.Time) ([]bars.Bar, error)
}

// inRange reports whether ts lies in [start, end). Zero bounds are open.
func inRange(ts int64, start, end time.Time) bool {
	if !start.IsZero() && ts < start.UnixMilli() {
		return false
	}
	if !end.IsZero() && ts >= end.UnixMilli() {
		return false
	}
	return true
}

func filterRange(in []bars.Bar, start, end time.Time) []bars.Bar {
	out := in[:0:0]
	for _, b := range in {
		if inRange(b.Timestamp, start, end) {
			out = append(out, b)
		}
	}
	return out
}
