package indicators

import (
	"github.com/marketlab/dma/internal/series"
)

// computeRSI fills RSI_14 using Wilder smoothing of average gains/losses
// (spec §4.3 "RSI (Wilder, period 14)").
func computeRSI(e *series.Enriched, period int) {
	close_ := e.Get(series.ColClose)
	n := e.Len()
	changes := diff(close_)

	gains := nanSlice(n)
	losses := nanSlice(n)
	for i := 1; i < n; i++ {
		if changes[i] > 0 {
			gains[i] = changes[i]
			losses[i] = 0
		} else {
			gains[i] = 0
			losses[i] = -changes[i]
		}
	}
	// gains/losses[0] has no prior close; wilderSmooth needs a contiguous
	// numeric slice, so index 0 is set to 0 and counts as one of the `period`
	// values averaged into the seed.
	gains[0] = 0
	losses[0] = 0

	avgGain := wilderSmooth(gains, period)
	avgLoss := wilderSmooth(losses, period)

	rsi := nanSlice(n)
	for i := 0; i < n; i++ {
		if isNaN(avgGain[i]) || isNaN(avgLoss[i]) {
			continue
		}
		if avgLoss[i] == 0 {
			rsi[i] = 100
			continue
		}
		rs := avgGain[i] / avgLoss[i]
		rsi[i] = 100 - 100/(1+rs)
	}
	e.Set(series.ColRSI14, rsi)
}

// computeMACD fills MACD/signal/histogram plus a crossover indicator in
// {-1,0,+1} marking histogram sign flips (spec §4.3 "MACD (12,26,9)").
func computeMACD(e *series.Enriched, fast, slow, signal int) {
	close_ := e.Get(series.ColClose)
	n := e.Len()

	emaFast := ema(close_, fast)
	emaSlow := ema(close_, slow)

	macd := nanSlice(n)
	for i := 0; i < n; i++ {
		if !isNaN(emaFast[i]) && !isNaN(emaSlow[i]) {
			macd[i] = emaFast[i] - emaSlow[i]
		}
	}

	sig := ema(macd, signal)
	hist := nanSlice(n)
	for i := 0; i < n; i++ {
		if !isNaN(macd[i]) && !isNaN(sig[i]) {
			hist[i] = macd[i] - sig[i]
		}
	}

	crossover := nanSlice(n)
	for i := 1; i < n; i++ {
		if isNaN(hist[i]) || isNaN(hist[i-1]) {
			continue
		}
		if hist[i-1] < 0 && hist[i] > 0 {
			crossover[i] = 1
		} else if hist[i-1] > 0 && hist[i] < 0 {
			crossover[i] = -1
		} else {
			crossover[i] = 0
		}
	}

	e.Set(series.ColMACD, macd)
	e.Set(series.ColMACDSignal, sig)
	e.Set(series.ColMACDHistogram, hist)
	e.Set(series.ColMACDCrossover, crossover)
}

// computeADX fills +DI/-DI/ADX using Wilder-smoothed TR and directional
// movement (spec §4.3 "ADX (14, Wilder)").
func computeADX(e *series.Enriched, period int) {
	high := e.Get(series.ColHigh)
	low := e.Get(series.ColLow)
	close_ := e.Get(series.ColClose)
	n := e.Len()

	tr := trueRange(high, low, close_)
	plusDM := nanSlice(n)
	minusDM := nanSlice(n)
	for i := 1; i < n; i++ {
		upMove := high[i] - high[i-1]
		downMove := low[i-1] - low[i]
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		} else {
			plusDM[i] = 0
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		} else {
			minusDM[i] = 0
		}
	}
	tr[0], plusDM[0], minusDM[0] = 0, 0, 0

	smoothTR := wilderSmooth(tr, period)
	smoothPlusDM := wilderSmooth(plusDM, period)
	smoothMinusDM := wilderSmooth(minusDM, period)

	plusDI := nanSlice(n)
	minusDI := nanSlice(n)
	dx := nanSlice(n)
	for i := 0; i < n; i++ {
		if isNaN(smoothTR[i]) || smoothTR[i] == 0 {
			continue
		}
		plusDI[i] = 100 * smoothPlusDM[i] / smoothTR[i]
		minusDI[i] = 100 * smoothMinusDM[i] / smoothTR[i]
		sum := plusDI[i] + minusDI[i]
		if sum > 0 {
			dx[i] = 100 * absf(plusDI[i]-minusDI[i]) / sum
		} else {
			dx[i] = 0
		}
	}

	adx := wilderSmoothFromFirstValid(dx, period)

	e.Set(series.ColPlusDI, plusDI)
	e.Set(series.ColMinusDI, minusDI)
	e.Set(series.ColADX, adx)
}

// wilderSmoothFromFirstValid applies Wilder smoothing starting at the first
// non-NaN index of s, rather than index 0 (used for ADX, whose DX input is
// itself only valid once the DI Wilder smoothing has warmed up).
func wilderSmoothFromFirstValid(s []float64, period int) []float64 {
	out := nanSlice(len(s))
	start := -1
	for i, v := range s {
		if !isNaN(v) {
			start = i
			break
		}
	}
	if start < 0 || len(s)-start < period {
		return out
	}
	alpha := 1.0 / float64(period)
	seed := 0.0
	for i := start; i < start+period; i++ {
		seed += s[i]
	}
	seed /= float64(period)
	idx := start + period - 1
	out[idx] = seed
	prev := seed
	for i := idx + 1; i < len(s); i++ {
		prev = prev*(1-alpha) + s[i]*alpha
		out[i] = prev
	}
	return out
}

// computeROC fills rate-of-change columns for each requested period (spec
// §4.3 "ROC over periods {10,20,60}").
func computeROC(e *series.Enriched, periods []int) {
	close_ := e.Get(series.ColClose)
	n := e.Len()
	for _, p := range periods {
		shifted := shift(close_, p)
		roc := nanSlice(n)
		for i := 0; i < n; i++ {
			if !isNaN(shifted[i]) && shifted[i] != 0 {
				roc[i] = 100 * (close_[i]/shifted[i] - 1)
			}
		}
		e.Set(rocColumn(p), roc)
	}
}

func rocColumn(period int) series.Column {
	switch period {
	case 10:
		return series.ColROC10
	case 20:
		return series.ColROC20
	case 60:
		return series.ColROC60
	default:
		return series.Column("roc_custom")
	}
}

func trueRange(high, low, close_ []float64) []float64 {
	n := len(high)
	tr := nanSlice(n)
	if n == 0 {
		return tr
	}
	tr[0] = high[0] - low[0]
	for i := 1; i < n; i++ {
		hl := high[i] - low[i]
		hc := absf(high[i] - close_[i-1])
		lc := absf(low[i] - close_[i-1])
		tr[i] = maxf(hl, maxf(hc, lc))
	}
	return tr
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
