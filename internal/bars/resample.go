package bars

import (
	"fmt"
	"math"
)

// Resample groups the table into fixed-width buckets starting at
// floor(ts/interval)*interval. Each output bar keeps the bucket-first open,
// the bucket-last close, the lowest low, the highest high and the summed
// volume.
func Resample(t *Table, tf Timeframe) (*Table, error) {
	interval := tf.Milliseconds()
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTimeframe, string(tf))
	}

	var out []Bar
	var cur *Bar
	for i := 0; i < t.Len(); i++ {
		b := t.Bar(i)
		bucket := floorDiv(b.Timestamp, interval) * interval

		if cur == nil || cur.Timestamp != bucket {
			out = append(out, Bar{
				Timestamp: bucket,
				Open:      b.Open,
				High:      b.High,
				Low:       b.Low,
				Close:     b.Close,
				Volume:    b.Volume,
			})
			cur = &out[len(out)-1]
			continue
		}

		cur.High = math.Max(cur.High, b.High)
		cur.Low = math.Min(cur.Low, b.Low)
		cur.Close = b.Close
		cur.Volume += b.Volume
	}

	return NewTable(out)
}

// floorDiv rounds toward negative infinity so pre-epoch timestamps land in
// the correct bucket.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
