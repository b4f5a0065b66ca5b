package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/specialistvlad/signalgrid/internal/executor"
	"github.com/specialistvlad/signalgrid/internal/signals"
)

var signalHeader = []string{
	"timestamp",
	"time", // RFC3339
	"open",
	"high",
	"low",
	"close",
	"volume",
	"entry_signal",
	"entry_direction",
	"exit_signal",
	"entry_size",
}

var tradeHeader = []string{
	"trade_id",
	"direction", // 1 long, -1 short
	"quantity",
	"entry_time",
	"entry_price",
	"exit_time", // empty while open
	"exit_price",
	"pnl",
	"open",
}

// WriteSignalsCSV writes one row per signal bar.
func WriteSignalsCSV(w io.Writer, res *signals.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(signalHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range res.Rows {
		record := []string{
			strconv.FormatInt(r.Bar.Timestamp, 10),
			r.Time.Format(time.RFC3339),
			formatFloat(r.Bar.Open),
			formatFloat(r.Bar.High),
			formatFloat(r.Bar.Low),
			formatFloat(r.Bar.Close),
			formatFloat(r.Bar.Volume),
			strconv.FormatBool(r.EntrySignal),
			strconv.Itoa(r.EntryDirection),
			strconv.FormatBool(r.ExitSignal),
			formatFloat(r.EntrySize),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteTradesCSV writes one row per trade.
func WriteTradesCSV(w io.Writer, trades []executor.Trade) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(tradeHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, t := range trades {
		exitTime, exitPrice := "", ""
		if !t.Open {
			exitTime = t.ExitTime.Format(time.RFC3339)
			exitPrice = t.ExitPrice.String()
		}
		record := []string{
			strconv.Itoa(i),
			strconv.Itoa(t.Direction),
			t.Quantity.String(),
			t.EntryTime.Format(time.RFC3339),
			t.EntryPrice.String(),
			exitTime,
			exitPrice,
			t.PnL.String(),
			strconv.FormatBool(t.Open),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
