package app

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/specialistvlad/signalgrid/internal/bars"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		StrategyPath: "strategy.hcl",
		DataDir:      "bars",
		Symbol:       "BTCUSDT",
		StartCash:    decimal.NewFromInt(1000),
		Quantity:     decimal.NewFromInt(1),
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig(validConfig())
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.OutFormat)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNewConfig_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{
			name:   "missing strategy",
			mutate: func(c *Config) { c.StrategyPath = "" },
			want:   "StrategyPath is a required configuration field and cannot be empty",
		},
		{
			name:   "missing symbol",
			mutate: func(c *Config) { c.Symbol = "" },
			want:   "Symbol is a required configuration field and cannot be empty",
		},
		{
			name:   "no bar source",
			mutate: func(c *Config) { c.DataDir = "" },
			want:   "one of DataDir or DSN is required",
		},
		{
			name:   "two bar sources",
			mutate: func(c *Config) { c.DSN = "postgres://localhost/bars" },
			want:   "DataDir and DSN cannot be used together",
		},
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.LogLevel = "trace" },
			want:   `LogLevel must be one of [debug info warn error], got "trace"`,
		},
		{
			name:   "bad port",
			mutate: func(c *Config) { c.HealthcheckPort = 70000 },
			want:   "HealthcheckPort is invalid (lte)",
		},
		{
			name:   "bad publish url",
			mutate: func(c *Config) { c.PublishURL = "not a url" },
			want:   "PublishURL is invalid (url)",
		},
		{
			name: "inverted range",
			mutate: func(c *Config) {
				c.Start = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
				c.End = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			},
			want: "End must be after Start",
		},
		{
			name:   "negative cash",
			mutate: func(c *Config) { c.StartCash = decimal.NewFromInt(-1) },
			want:   "StartCash cannot be negative",
		},
		{
			name:   "zero quantity",
			mutate: func(c *Config) { c.Quantity = decimal.Zero },
			want:   "Quantity must be positive",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			_, err := NewConfig(cfg)
			require.Error(t, err)
			assert.EqualError(t, err, tc.want)
		})
	}
}

func TestConfig_ParsedTimeframe(t *testing.T) {
	cfg := validConfig()
	_, ok, err := cfg.ParsedTimeframe()
	require.NoError(t, err)
	assert.False(t, ok)

	cfg.Timeframe = "15m"
	tf, ok, err := cfg.ParsedTimeframe()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, bars.Timeframe("15m"), tf)
}
