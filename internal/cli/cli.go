package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/specialistvlad/signalgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("signalgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
SignalGrid - Compiles a visual trading strategy graph into entry and exit
signals and backtests them against historical bars.

Usage:
  signalgrid [options] [STRATEGY_PATH]

Arguments:
  STRATEGY_PATH
    Path to a .hcl file, a directory of .hcl files, or a .json editor export.

Options:
`)
		flagSet.PrintDefaults()
	}

	strategyFlag := flagSet.String("strategy", "", "Path to the strategy file or directory.")
	sFlag := flagSet.String("s", "", "Path to the strategy file or directory (shorthand).")
	dataFlag := flagSet.String("data", "", "Directory holding <symbol>.csv, .parquet or .json bar files.")
	dsnFlag := flagSet.String("dsn", "", "Postgres connection string for the bar table. Replaces -data.")
	symbolFlag := flagSet.String("symbol", "", "Symbol to backtest.")
	startFlag := flagSet.String("start", "", "Inclusive range start, RFC3339 or YYYY-MM-DD.")
	endFlag := flagSet.String("end", "", "Exclusive range end, RFC3339 or YYYY-MM-DD.")
	timeframeFlag := flagSet.String("timeframe", "", "Resample bars to 1m, 5m, 15m, 30m, 1h, 4h or 1d.")
	cashFlag := flagSet.String("cash", "10000", "Starting cash of the reference executor.")
	quantityFlag := flagSet.String("quantity", "1", "Units traded per entry, scaled by the entry size.")
	outFlag := flagSet.String("out", "", "Directory for the signal, trade and summary reports.")
	outFormatFlag := flagSet.String("out-format", "csv", "Signal table format. Options: 'csv' or 'arrow'.")
	publishFlag := flagSet.String("publish-url", "", "socket.io endpoint that receives the run summary.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *strategyFlag != "" {
		path = *strategyFlag
	} else if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Strategy path determined.", "path", path)

	if path == "" {
		slog.Debug("No strategy path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	start, err := parseDate(*startFlag)
	if err != nil {
		return nil, false, usageError("invalid start: %v", err)
	}
	end, err := parseDate(*endFlag)
	if err != nil {
		return nil, false, usageError("invalid end: %v", err)
	}
	cash, err := decimal.NewFromString(*cashFlag)
	if err != nil {
		return nil, false, usageError("invalid cash %q: %v", *cashFlag, err)
	}
	quantity, err := decimal.NewFromString(*quantityFlag)
	if err != nil {
		return nil, false, usageError("invalid quantity %q: %v", *quantityFlag, err)
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		StrategyPath:    path,
		DataDir:         *dataFlag,
		DSN:             *dsnFlag,
		Symbol:          *symbolFlag,
		Start:           start,
		End:             end,
		Timeframe:       strings.ToLower(*timeframeFlag),
		StartCash:       cash,
		Quantity:        quantity,
		OutDir:          *outFlag,
		OutFormat:       strings.ToLower(*outFormatFlag),
		PublishURL:      *publishFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// parseDate accepts RFC3339 timestamps or plain UTC dates. An empty string
// yields the zero time, meaning unbounded.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither RFC3339 nor YYYY-MM-DD", s)
	}
	return t, nil
}
