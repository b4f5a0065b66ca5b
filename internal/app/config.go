package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/specialistvlad/signalgrid/internal/bars"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	StrategyPath string `validate:"required"` // .hcl file/dir or .json export
	DataDir      string `validate:"required_without=DSN,excluded_with=DSN"`
	DSN          string `validate:"required_without=DataDir"`
	Symbol       string `validate:"required"`
	Start        time.Time
	End          time.Time
	Timeframe    string `validate:"omitempty,oneof=1m 5m 15m 30m 1h 4h 1d"`

	StartCash decimal.Decimal
	Quantity  decimal.Decimal

	OutDir     string
	OutFormat  string `validate:"oneof=csv arrow"`
	PublishURL string `validate:"omitempty,url"`

	LogFormat       string `validate:"oneof=text json"`
	LogLevel        string `validate:"oneof=debug info warn error"`
	HealthcheckPort int    `validate:"gte=0,lte=65535"`
}

var configValidate = validator.New(validator.WithRequiredStructEnabled())

// NewConfig validates cfg and returns a copy with defaults applied.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.OutFormat == "" {
		cfg.OutFormat = "csv"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := configValidate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, configError(verrs[0])
		}
		return nil, err
	}

	if !cfg.Start.IsZero() && !cfg.End.IsZero() && !cfg.End.After(cfg.Start) {
		return nil, errors.New("End must be after Start")
	}
	if cfg.StartCash.IsNegative() {
		return nil, errors.New("StartCash cannot be negative")
	}
	if !cfg.Quantity.IsPositive() {
		return nil, errors.New("Quantity must be positive")
	}
	return &cfg, nil
}

// ParsedTimeframe returns the resampling timeframe; ok is false when bars
// are used as stored.
func (c *Config) ParsedTimeframe() (tf bars.Timeframe, ok bool, err error) {
	if c.Timeframe == "" {
		return "", false, nil
	}
	tf, err = bars.ParseTimeframe(c.Timeframe)
	return tf, err == nil, err
}

func configError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is a required configuration field and cannot be empty", fe.Field())
	case "required_without":
		return fmt.Errorf("one of %s or %s is required", fe.Field(), fe.Param())
	case "excluded_with":
		return fmt.Errorf("%s and %s cannot be used together", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Errorf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}
