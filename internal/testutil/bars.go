package testutil

import (
	"testing"

	"github.com/specialistvlad/signalgrid/internal/bars"
	"github.com/stretchr/testify/require"
)

// BaseTimestamp is the timestamp of the first generated bar
// (2024-01-01T00:00:00Z).
const BaseTimestamp int64 = 1_704_067_200_000

// BarsFromCloses builds one-minute bars whose OHLC all equal the given
// closes and whose volume is 1.
func BarsFromCloses(closes ...float64) []bars.Bar {
	out := make([]bars.Bar, len(closes))
	for i, c := range closes {
		out[i] = bars.Bar{
			Timestamp: BaseTimestamp + int64(i)*60_000,
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    1,
		}
	}
	return out
}

// TableFromCloses builds a bar table from closes.
func TableFromCloses(t *testing.T, closes ...float64) *bars.Table {
	t.Helper()
	table, err := bars.NewTable(BarsFromCloses(closes...))
	require.NoError(t, err)
	return table
}

// RiseThenFall returns closes rising by 1 for up bars from start, then
// falling by 1 for down bars.
func RiseThenFall(start float64, up, down int) []float64 {
	out := make([]float64, 0, up+down+1)
	v := start
	out = append(out, v)
	for i := 0; i < up; i++ {
		v++
		out = append(out, v)
	}
	for i := 0; i < down; i++ {
		v--
		out = append(out, v)
	}
	return out
}
