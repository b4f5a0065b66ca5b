package indicator

import "math"

// StdDev is the rolling population standard deviation.
func StdDev(src []float64, period int) []float64 {
	out := nanSeries(len(src))
	for i := period - 1; i < len(src); i++ {
		out[i] = windowStd(src[i-period+1 : i+1])
	}
	return out
}

func windowStd(w []float64) float64 {
	mean := 0.0
	for _, v := range w {
		mean += v
	}
	mean /= float64(len(w))

	variance := 0.0
	for _, v := range w {
		d := v - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(w)))
}

// BollingerBands returns middle ± k population standard deviations.
func BollingerBands(src []float64, period int, k float64) (upper, middle, lower []float64) {
	middle = SMA(src, period)
	std := StdDev(src, period)

	upper = make([]float64, len(src))
	lower = make([]float64, len(src))
	for i := range src {
		upper[i] = middle[i] + k*std[i]
		lower[i] = middle[i] - k*std[i]
	}
	return upper, middle, lower
}

// ATR is the Wilder-smoothed true range. The first value is the plain mean
// of the first period true ranges.
func ATR(high, low, closes []float64, period int) []float64 {
	n := len(closes)
	out := nanSeries(n)
	if n < period {
		return out
	}

	tr := make([]float64, n)
	for i := 0; i < n; i++ {
		hl := high[i] - low[i]
		if i == 0 {
			tr[i] = hl
			continue
		}
		hc := math.Abs(high[i] - closes[i-1])
		lc := math.Abs(low[i] - closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += tr[i]
	}
	prev := sum / float64(period)
	out[period-1] = prev

	for i := period; i < n; i++ {
		prev = (prev*float64(period-1) + tr[i]) / float64(period)
		out[i] = prev
	}
	return out
}
