package indicator

import "math"

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// firstValid returns the index of the first non-NaN value, or len(src).
func firstValid(src []float64) int {
	for i, v := range src {
		if !math.IsNaN(v) {
			return i
		}
	}
	return len(src)
}

// SMA is the arithmetic mean of the last period values.
func SMA(src []float64, period int) []float64 {
	out := nanSeries(len(src))
	for i := period - 1; i < len(src); i++ {
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += src[j]
		}
		out[i] = sum / float64(period)
	}
	return out
}

// EMA uses alpha = 2/(period+1) and is seeded with the SMA of the first
// period valid values. Leading NaNs in src are skipped.
func EMA(src []float64, period int) []float64 {
	out := nanSeries(len(src))
	start := firstValid(src)
	seedAt := start + period - 1
	if seedAt >= len(src) {
		return out
	}

	sum := 0.0
	for j := start; j <= seedAt; j++ {
		sum += src[j]
	}
	prev := sum / float64(period)
	out[seedAt] = prev

	alpha := 2.0 / float64(period+1)
	for i := seedAt + 1; i < len(src); i++ {
		prev = alpha*src[i] + (1-alpha)*prev
		out[i] = prev
	}
	return out
}

// WMA weights the most recent value by period, the oldest by 1.
func WMA(src []float64, period int) []float64 {
	out := nanSeries(len(src))
	denom := float64(period*(period+1)) / 2
	for i := period - 1; i < len(src); i++ {
		sum := 0.0
		for k := 0; k < period; k++ {
			sum += src[i-period+1+k] * float64(k+1)
		}
		out[i] = sum / denom
	}
	return out
}
