package report

import (
	"fmt"
	"io"
	"time"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/ipc"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/specialistvlad/signalgrid/internal/signals"
)

// SignalSchema is the Arrow schema of the signal table.
var SignalSchema = arrow.NewSchema([]arrow.Field{
	{Name: "timestamp", Type: arrow.PrimitiveTypes.Int64},
	{Name: "time", Type: arrow.BinaryTypes.String},
	{Name: "open", Type: arrow.PrimitiveTypes.Float64},
	{Name: "high", Type: arrow.PrimitiveTypes.Float64},
	{Name: "low", Type: arrow.PrimitiveTypes.Float64},
	{Name: "close", Type: arrow.PrimitiveTypes.Float64},
	{Name: "volume", Type: arrow.PrimitiveTypes.Float64},
	{Name: "entry_signal", Type: arrow.FixedWidthTypes.Boolean},
	{Name: "entry_direction", Type: arrow.PrimitiveTypes.Int64},
	{Name: "exit_signal", Type: arrow.FixedWidthTypes.Boolean},
	{Name: "entry_size", Type: arrow.PrimitiveTypes.Float64},
}, nil)

// WriteArrow writes the signal table as a single-record Arrow IPC stream.
func WriteArrow(w io.Writer, res *signals.Result) error {
	pool := memory.NewGoAllocator()
	n := res.Len()

	timestamps := make([]int64, n)
	times := make([]string, n)
	opens := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	entries := make([]bool, n)
	directions := make([]int64, n)
	exits := make([]bool, n)
	sizes := make([]float64, n)

	for i, r := range res.Rows {
		timestamps[i] = r.Bar.Timestamp
		times[i] = r.Time.Format(time.RFC3339)
		opens[i] = r.Bar.Open
		highs[i] = r.Bar.High
		lows[i] = r.Bar.Low
		closes[i] = r.Bar.Close
		volumes[i] = r.Bar.Volume
		entries[i] = r.EntrySignal
		directions[i] = int64(r.EntryDirection)
		exits[i] = r.ExitSignal
		sizes[i] = r.EntrySize
	}

	cols := []arrow.Array{
		int64Array(pool, timestamps),
		stringArray(pool, times),
		float64Array(pool, opens),
		float64Array(pool, highs),
		float64Array(pool, lows),
		float64Array(pool, closes),
		float64Array(pool, volumes),
		boolArray(pool, entries),
		int64Array(pool, directions),
		boolArray(pool, exits),
		float64Array(pool, sizes),
	}
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()

	record := array.NewRecord(SignalSchema, cols, int64(n))
	defer record.Release()

	writer := ipc.NewWriter(w, ipc.WithSchema(SignalSchema), ipc.WithAllocator(pool))
	if err := writer.Write(record); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write Arrow record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close Arrow writer: %w", err)
	}
	return nil
}

func float64Array(pool memory.Allocator, vals []float64) arrow.Array {
	b := array.NewFloat64Builder(pool)
	defer b.Release()
	b.AppendValues(vals, nil)
	return b.NewFloat64Array()
}

func int64Array(pool memory.Allocator, vals []int64) arrow.Array {
	b := array.NewInt64Builder(pool)
	defer b.Release()
	b.AppendValues(vals, nil)
	return b.NewInt64Array()
}

func boolArray(pool memory.Allocator, vals []bool) arrow.Array {
	b := array.NewBooleanBuilder(pool)
	defer b.Release()
	b.AppendValues(vals, nil)
	return b.NewBooleanArray()
}

func stringArray(pool memory.Allocator, vals []string) arrow.Array {
	b := array.NewStringBuilder(pool)
	defer b.Release()
	b.AppendValues(vals, nil)
	return b.NewStringArray()
}
