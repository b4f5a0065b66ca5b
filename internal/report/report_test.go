package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/ipc"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/specialistvlad/signalgrid/internal/executor"
	"github.com/specialistvlad/signalgrid/internal/report"
	"github.com/specialistvlad/signalgrid/internal/signals"
	"github.com/specialistvlad/signalgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *signals.Result {
	bs := testutil.BarsFromCloses(10, 10.5)
	return &signals.Result{Rows: []signals.Row{
		{Bar: bs[0], Time: bs[0].Time(), EntrySignal: true, EntryDirection: signals.Short, EntrySize: 2},
		{Bar: bs[1], Time: bs[1].Time(), EntryDirection: signals.Long, ExitSignal: true},
	}}
}

func sampleTrades() []executor.Trade {
	res := sampleResult()
	return []executor.Trade{
		{
			Direction:  signals.Short,
			Quantity:   decimal.NewFromInt(2),
			EntryTime:  res.Rows[0].Time,
			EntryPrice: decimal.NewFromInt(10),
			ExitBar:    1,
			ExitTime:   res.Rows[1].Time,
			ExitPrice:  decimal.RequireFromString("10.5"),
			PnL:        decimal.NewFromInt(-1),
		},
		{
			Direction:  signals.Long,
			Quantity:   decimal.NewFromInt(1),
			EntryTime:  res.Rows[1].Time,
			EntryPrice: decimal.RequireFromString("10.5"),
			PnL:        decimal.Zero,
			Open:       true,
		},
	}
}

func TestWriteSignalsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteSignalsCSV(&buf, sampleResult()))

	want := strings.Join([]string{
		"timestamp,time,open,high,low,close,volume,entry_signal,entry_direction,exit_signal,entry_size",
		"1704067200000,2024-01-01T00:00:00Z,10,10,10,10,1,true,-1,false,2",
		"1704067260000,2024-01-01T00:01:00Z,10.5,10.5,10.5,10.5,1,false,1,true,0",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteTradesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteTradesCSV(&buf, sampleTrades()))

	want := strings.Join([]string{
		"trade_id,direction,quantity,entry_time,entry_price,exit_time,exit_price,pnl,open",
		"0,-1,2,2024-01-01T00:00:00Z,10,2024-01-01T00:01:00Z,10.5,-1,false",
		"1,1,1,2024-01-01T00:01:00Z,10.5,,,0,true",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteArrow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteArrow(&buf, sampleResult()))

	reader, err := ipc.NewReader(&buf, ipc.WithAllocator(memory.NewGoAllocator()))
	require.NoError(t, err)
	defer reader.Release()

	assert.True(t, reader.Schema().Equal(report.SignalSchema))
	require.True(t, reader.Next())
	rec := reader.Record()
	require.EqualValues(t, 2, rec.NumRows())

	assert.Equal(t, int64(1704067260000), rec.Column(0).(*array.Int64).Value(1))
	assert.Equal(t, "2024-01-01T00:00:00Z", rec.Column(1).(*array.String).Value(0))
	assert.Equal(t, 10.5, rec.Column(5).(*array.Float64).Value(1))
	assert.True(t, rec.Column(7).(*array.Boolean).Value(0))
	assert.Equal(t, int64(-1), rec.Column(8).(*array.Int64).Value(0))
	assert.Equal(t, int64(1), rec.Column(8).(*array.Int64).Value(1))
	assert.True(t, rec.Column(9).(*array.Boolean).Value(1))
	assert.Equal(t, 2.0, rec.Column(10).(*array.Float64).Value(0))
	assert.False(t, reader.Next())
}

func TestWriteDir(t *testing.T) {
	testCases := []struct {
		format string
		files  []string
	}{
		{format: "csv", files: []string{"signals.csv", "trades.csv", "summary.json"}},
		{format: "ARROW", files: []string{"signals.arrow", "trades.csv", "summary.json"}},
	}

	for _, tc := range testCases {
		t.Run(tc.format, func(t *testing.T) {
			ctx, _ := testutil.Context(t)
			dir := filepath.Join(t.TempDir(), "out")
			rep := &executor.Report{Trades: sampleTrades(), Summary: executor.Summary{Trades: 2, PnL: decimal.NewFromInt(-1)}}
			sum := report.RunSummary{RunID: "run-1", Symbol: "BTC", Bars: 2, Summary: rep.Summary}

			paths, err := report.WriteDir(ctx, dir, tc.format, sampleResult(), rep, sum)
			require.NoError(t, err)

			require.Len(t, paths, len(tc.files))
			for i, name := range tc.files {
				assert.Equal(t, filepath.Join(dir, name), paths[i])
				assert.FileExists(t, paths[i])
			}

			data, err := os.ReadFile(filepath.Join(dir, "summary.json"))
			require.NoError(t, err)
			var decoded map[string]any
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, "run-1", decoded["runId"])
			assert.Equal(t, "BTC", decoded["symbol"])
			assert.Equal(t, "-1", decoded["summary"].(map[string]any)["pnl"])
		})
	}
}

func TestWriteDir_RejectsUnknownFormat(t *testing.T) {
	ctx, _ := testutil.Context(t)
	_, err := report.WriteDir(ctx, t.TempDir(), "xlsx", sampleResult(), &executor.Report{}, report.RunSummary{})
	assert.EqualError(t, err, "unsupported output format 'xlsx'")
}
