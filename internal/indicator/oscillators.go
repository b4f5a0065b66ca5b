package indicator

// RSI uses Wilder smoothing. The first value appears period rows after the
// first valid input. A window with no losses reads 100, a flat window 50.
func RSI(src []float64, period int) []float64 {
	out := nanSeries(len(src))
	start := firstValid(src)
	if start+period >= len(src) {
		return out
	}

	var gain, loss float64
	for i := start + 1; i <= start+period; i++ {
		change := src[i] - src[i-1]
		if change > 0 {
			gain += change
		} else {
			loss -= change
		}
	}
	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)
	out[start+period] = rsiValue(avgGain, avgLoss)

	for i := start + period + 1; i < len(src); i++ {
		change := src[i] - src[i-1]
		g, l := 0.0, 0.0
		if change > 0 {
			g = change
		} else {
			l = -change
		}
		avgGain = (avgGain*float64(period-1) + g) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + l) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// ROC is the percent change against the value period rows earlier. A zero
// base yields 0.
func ROC(src []float64, period int) []float64 {
	out := nanSeries(len(src))
	for i := period; i < len(src); i++ {
		base := src[i-period]
		if base == 0 {
			out[i] = 0
			continue
		}
		out[i] = (src[i] - base) / base * 100
	}
	return out
}

// MACD returns the fast-slow EMA spread, its signal EMA and the histogram.
func MACD(src []float64, fast, slow, signal int) (line, sig, hist []float64) {
	fastEMA := EMA(src, fast)
	slowEMA := EMA(src, slow)

	line = make([]float64, len(src))
	for i := range src {
		line[i] = fastEMA[i] - slowEMA[i]
	}

	sig = EMA(line, signal)
	hist = make([]float64, len(src))
	for i := range src {
		hist[i] = line[i] - sig[i]
	}
	return line, sig, hist
}

