package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("full flag set", func(t *testing.T) {
		t.Parallel()
		cfg, shouldExit, err := Parse([]string{
			"-s", "strategy.hcl",
			"-data", "bars",
			"-symbol", "BTCUSDT",
			"-start", "2024-01-01",
			"-end", "2024-02-01T12:00:00+02:00",
			"-timeframe", "1H",
			"-cash", "2500.50",
			"-quantity", "0.1",
			"-out", "out",
			"-out-format", "ARROW",
			"-log-format", "JSON",
			"-log-level", "debug",
		}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.False(t, shouldExit)
		assert.Equal(t, "strategy.hcl", cfg.StrategyPath)
		assert.Equal(t, "bars", cfg.DataDir)
		assert.Equal(t, "BTCUSDT", cfg.Symbol)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), cfg.Start)
		assert.Equal(t, time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), cfg.End)
		assert.Equal(t, "1h", cfg.Timeframe)
		assert.True(t, decimal.RequireFromString("2500.5").Equal(cfg.StartCash))
		assert.True(t, decimal.RequireFromString("0.1").Equal(cfg.Quantity))
		assert.Equal(t, "arrow", cfg.OutFormat)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("positional path and defaults", func(t *testing.T) {
		t.Parallel()
		cfg, _, err := Parse([]string{"-dsn", "postgres://localhost/bars", "-symbol", "ETH", "strategy.json"}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "strategy.json", cfg.StrategyPath)
		assert.Equal(t, "postgres://localhost/bars", cfg.DSN)
		assert.True(t, cfg.Start.IsZero())
		assert.True(t, decimal.NewFromInt(10_000).Equal(cfg.StartCash))
		assert.True(t, decimal.NewFromInt(1).Equal(cfg.Quantity))
		assert.Equal(t, "csv", cfg.OutFormat)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("no path prints usage", func(t *testing.T) {
		t.Parallel()
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse(nil, out)

		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
		assert.Contains(t, out.String(), "-publish-url")
	})
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	base := []string{"-data", "bars", "-symbol", "BTC"}
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "log format", args: []string{"-log-format", "xml"}, want: "invalid log-format: must be 'text' or 'json'"},
		{name: "log level", args: []string{"-log-level", "trace"}, want: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"},
		{name: "start date", args: []string{"-start", "01/02/2024"}, want: `invalid start: "01/02/2024" is neither RFC3339 nor YYYY-MM-DD`},
		{name: "cash", args: []string{"-cash", "lots"}, want: `invalid cash "lots"`},
		{name: "quantity", args: []string{"-quantity", "0"}, want: "Quantity must be positive"},
		{name: "range order", args: []string{"-start", "2024-02-01", "-end", "2024-01-01"}, want: "End must be after Start"},
		{name: "timeframe", args: []string{"-timeframe", "2h"}, want: `Timeframe must be one of [1m 5m 15m 30m 1h 4h 1d], got "2h"`},
		{name: "out format", args: []string{"-out-format", "xlsx"}, want: `OutFormat must be one of [csv arrow], got "xlsx"`},
		{name: "both sources", args: []string{"-dsn", "postgres://x"}, want: "DataDir and DSN cannot be used together"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			args := append(append(append([]string{}, base...), tc.args...), "strategy.hcl")

			_, _, err := Parse(args, &bytes.Buffer{})

			require.Error(t, err)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}

func TestParse_MissingSource(t *testing.T) {
	t.Parallel()
	_, _, err := Parse([]string{"-symbol", "BTC", "strategy.hcl"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one of DataDir or DSN is required")
}
