package indicator

import "fmt"

const (
	portSource = "source"
	portValue  = "value"
)

var periodRule = "gte=1,lte=1000"

func periodParam(def float64) Param {
	return Param{Name: "period", Default: def, Rule: periodRule, Integer: true}
}

// builtinDefinitions is the definitive list of indicators compiled into
// the binary.
func builtinDefinitions() []*Definition {
	return []*Definition{
		{
			Name:        "sma",
			Description: "Simple moving average.",
			Inputs:      []string{portSource},
			Outputs:     []string{portValue},
			Params:      []Param{periodParam(20)},
			Compute:     single(func(src []float64, p Params) []float64 { return SMA(src, p.Int("period")) }),
		},
		{
			Name:        "ema",
			Description: "Exponential moving average seeded with the SMA of the first window.",
			Inputs:      []string{portSource},
			Outputs:     []string{portValue},
			Params:      []Param{periodParam(20)},
			Compute:     single(func(src []float64, p Params) []float64 { return EMA(src, p.Int("period")) }),
		},
		{
			Name:        "wma",
			Description: "Linearly weighted moving average.",
			Inputs:      []string{portSource},
			Outputs:     []string{portValue},
			Params:      []Param{periodParam(20)},
			Compute:     single(func(src []float64, p Params) []float64 { return WMA(src, p.Int("period")) }),
		},
		{
			Name:        "rsi",
			Description: "Relative strength index with Wilder smoothing.",
			Inputs:      []string{portSource},
			Outputs:     []string{portValue},
			Params:      []Param{periodParam(14)},
			Compute:     single(func(src []float64, p Params) []float64 { return RSI(src, p.Int("period")) }),
		},
		{
			Name:        "stddev",
			Description: "Rolling population standard deviation.",
			Inputs:      []string{portSource},
			Outputs:     []string{portValue},
			Params:      []Param{periodParam(20)},
			Compute:     single(func(src []float64, p Params) []float64 { return StdDev(src, p.Int("period")) }),
		},
		{
			Name:        "roc",
			Description: "Rate of change in percent.",
			Inputs:      []string{portSource},
			Outputs:     []string{portValue},
			Params:      []Param{periodParam(10)},
			Compute:     single(func(src []float64, p Params) []float64 { return ROC(src, p.Int("period")) }),
		},
		{
			Name:        "bbands",
			Description: "Bollinger bands around an SMA.",
			Inputs:      []string{portSource},
			Outputs:     []string{"upperBand", "middleBand", "lowerBand"},
			Params: []Param{
				periodParam(20),
				{Name: "stdDev", Default: 2, Rule: "gt=0,lte=10"},
			},
			Compute: func(in Inputs, p Params) Outputs {
				upper, middle, lower := BollingerBands(in[portSource], p.Int("period"), p.Float("stdDev"))
				return Outputs{"upperBand": upper, "middleBand": middle, "lowerBand": lower}
			},
		},
		{
			Name:        "macd",
			Description: "Moving average convergence divergence.",
			Inputs:      []string{portSource},
			Outputs:     []string{"macd", "signal", "histogram"},
			Params: []Param{
				{Name: "fastPeriod", Default: 12, Rule: periodRule, Integer: true},
				{Name: "slowPeriod", Default: 26, Rule: periodRule, Integer: true},
				{Name: "signalPeriod", Default: 9, Rule: periodRule, Integer: true},
			},
			Check: func(p Params) error {
				if p.Int("fastPeriod") >= p.Int("slowPeriod") {
					return fmt.Errorf("fastPeriod (%d) must be less than slowPeriod (%d)", p.Int("fastPeriod"), p.Int("slowPeriod"))
				}
				return nil
			},
			Compute: func(in Inputs, p Params) Outputs {
				line, signal, hist := MACD(in[portSource], p.Int("fastPeriod"), p.Int("slowPeriod"), p.Int("signalPeriod"))
				return Outputs{"macd": line, "signal": signal, "histogram": hist}
			},
		},
		{
			Name:        "atr",
			Description: "Average true range with Wilder smoothing.",
			Inputs:      []string{"high", "low", "close"},
			Outputs:     []string{portValue},
			Params:      []Param{periodParam(14)},
			Compute: func(in Inputs, p Params) Outputs {
				return Outputs{portValue: ATR(in["high"], in["low"], in["close"], p.Int("period"))}
			},
		},
	}
}

// single adapts a one-input one-output formula to a ComputeFunc.
func single(fn func(src []float64, p Params) []float64) ComputeFunc {
	return func(in Inputs, p Params) Outputs {
		return Outputs{portValue: fn(in[portSource], p)}
	}
}
