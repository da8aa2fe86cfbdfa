package indicators

import (
	"math"

	"github.com/marketlab/dma/internal/series"
)

// computeATR fills ATR/ATR_pct using Wilder-smoothed true range (spec §4.3
// "ATR (14, Wilder)").
func computeATR(e *series.Enriched, period int) {
	high := e.Get(series.ColHigh)
	low := e.Get(series.ColLow)
	close_ := e.Get(series.ColClose)
	n := e.Len()

	tr := trueRange(high, low, close_)
	tr[0] = 0
	atr := wilderSmooth(tr, period)

	atrPct := nanSlice(n)
	for i := 0; i < n; i++ {
		if !isNaN(atr[i]) && close_[i] != 0 {
			atrPct[i] = 100 * atr[i] / close_[i]
		}
	}

	e.Set(series.ColATR, atr)
	e.Set(series.ColATRPct, atrPct)
}

// computeBollinger fills the Bollinger Band columns (spec §4.3 "Bollinger
// Bands (period 20, k=2)"). Middle/upper/lower derive from one rolling
// mean/std pass, reused by band_width and %b (see SPEC_FULL.md §11).
func computeBollinger(e *series.Enriched, period int, k float64) {
	close_ := e.Get(series.ColClose)
	n := e.Len()

	middle := rollingMean(close_, period)
	std := rollingStd(close_, period)

	upper := nanSlice(n)
	lower := nanSlice(n)
	bandWidth := nanSlice(n)
	pctB := nanSlice(n)
	for i := 0; i < n; i++ {
		if isNaN(middle[i]) || isNaN(std[i]) {
			continue
		}
		upper[i] = middle[i] + k*std[i]
		lower[i] = middle[i] - k*std[i]
		if middle[i] != 0 {
			bandWidth[i] = 100 * (upper[i] - lower[i]) / middle[i]
		}
		span := upper[i] - lower[i]
		if span != 0 {
			pctB[i] = 100 * (close_[i] - lower[i]) / span
		}
	}

	e.Set(series.ColBBMiddle, middle)
	e.Set(series.ColBBUpper, upper)
	e.Set(series.ColBBLower, lower)
	e.Set(series.ColBBBandWidth, bandWidth)
	e.Set(series.ColBBPctB, pctB)
}

// computeHistoricalVolatility fills annualized stdev-of-log-returns columns
// for each requested period (spec §4.3 "Historical Volatility").
func computeHistoricalVolatility(e *series.Enriched, periods []int) {
	close_ := e.Get(series.ColClose)
	n := e.Len()
	logReturns := nanSlice(n)
	for i := 1; i < n; i++ {
		if close_[i-1] > 0 && close_[i] > 0 {
			logReturns[i] = math.Log(close_[i] / close_[i-1])
		}
	}

	for _, p := range periods {
		std := rollingStdSkipNaN(logReturns, p)
		hvol := nanSlice(n)
		for i := 0; i < n; i++ {
			if !isNaN(std[i]) {
				hvol[i] = std[i] * math.Sqrt(252) * 100
			}
		}
		e.Set(hvolColumn(p), hvol)
	}
}

func hvolColumn(period int) series.Column {
	switch period {
	case 20:
		return series.ColHVol20
	case 60:
		return series.ColHVol60
	default:
		return series.Column("hvol_custom")
	}
}

// rollingStdSkipNaN behaves like rollingStd but tolerates a leading NaN
// (log-return row 0) by requiring `window` consecutive non-NaN values.
func rollingStdSkipNaN(s []float64, window int) []float64 {
	out := nanSlice(len(s))
	if window < 2 {
		return out
	}
	for i := window; i < len(s); i++ {
		ok := true
		mean := 0.0
		for j := i - window + 1; j <= i; j++ {
			if isNaN(s[j]) {
				ok = false
				break
			}
			mean += s[j]
		}
		if !ok {
			continue
		}
		mean /= float64(window)
		sumSq := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := s[j] - mean
			sumSq += d * d
		}
		out[i] = math.Sqrt(sumSq / float64(window-1))
	}
	return out
}

// computeZScore fills (close - rolling_mean)/rolling_std columns for each
// requested period (spec §4.3 "Z-Score over periods {20,50,125}").
func computeZScore(e *series.Enriched, periods []int) {
	close_ := e.Get(series.ColClose)
	n := e.Len()
	for _, p := range periods {
		mean := rollingMean(close_, p)
		std := rollingStd(close_, p)
		z := nanSlice(n)
		for i := 0; i < n; i++ {
			if !isNaN(mean[i]) && !isNaN(std[i]) && std[i] != 0 {
				z[i] = (close_[i] - mean[i]) / std[i]
			}
		}
		e.Set(zscoreColumn(p), z)
	}
}

func zscoreColumn(period int) series.Column {
	switch period {
	case 20:
		return series.ColZScore20
	case 50:
		return series.ColZScore50
	case 125:
		return series.ColZScore125
	default:
		return series.Column("zscore_custom")
	}
}

// computeRange52w fills 52-week high/low and range-position columns (spec
// §4.3 "52-week range").
func computeRange52w(e *series.Enriched) {
	high := e.Get(series.ColHigh)
	low := e.Get(series.ColLow)
	close_ := e.Get(series.ColClose)
	n := e.Len()

	high52 := rollingMax(high, 252)
	low52 := rollingMin(low, 252)
	rangePos := nanSlice(n)
	for i := 0; i < n; i++ {
		if isNaN(high52[i]) || isNaN(low52[i]) {
			continue
		}
		span := high52[i] - low52[i]
		if span != 0 {
			rangePos[i] = 100 * (close_[i] - low52[i]) / span
		}
	}

	e.Set(series.ColHigh52w, high52)
	e.Set(series.ColLow52w, low52)
	e.Set(series.ColRangePosition, rangePos)
}

// computeReturns fills the 1d/5d/21d/63d percentage-return columns (spec
// §4.3 "Returns").
func computeReturns(e *series.Enriched) {
	close_ := e.Get(series.ColClose)
	n := e.Len()
	periods := []struct {
		p   int
		col series.Column
	}{
		{1, series.ColReturn1d},
		{5, series.ColReturn5d},
		{21, series.ColReturn21d},
		{63, series.ColReturn63d},
	}
	for _, pc := range periods {
		shifted := shift(close_, pc.p)
		ret := nanSlice(n)
		for i := 0; i < n; i++ {
			if !isNaN(shifted[i]) && shifted[i] != 0 {
				ret[i] = 100 * (close_[i]/shifted[i] - 1)
			}
		}
		e.Set(pc.col, ret)
	}
}

// computeVolume fills vol_sma_20, vol_ratio and cumulative OBV (spec §4.3
// "Volume"), only when volume is present and positive for at least one bar.
func computeVolume(e *series.Enriched) {
	volume := e.Get(series.ColVolume)
	close_ := e.Get(series.ColClose)
	n := e.Len()

	hasVolume := false
	for _, v := range volume {
		if v > 0 {
			hasVolume = true
			break
		}
	}
	if !hasVolume {
		return
	}

	volSMA := rollingMean(volume, 20)
	volRatio := nanSlice(n)
	for i := 0; i < n; i++ {
		if !isNaN(volSMA[i]) && volSMA[i] != 0 {
			volRatio[i] = volume[i] / volSMA[i]
		}
	}

	obv := make([]float64, n)
	for i := 1; i < n; i++ {
		switch {
		case close_[i] > close_[i-1]:
			obv[i] = obv[i-1] + volume[i]
		case close_[i] < close_[i-1]:
			obv[i] = obv[i-1] - volume[i]
		default:
			obv[i] = obv[i-1]
		}
	}

	e.Set(series.ColVolSMA20, volSMA)
	e.Set(series.ColVolRatio, volRatio)
	e.Set(series.ColOBV, obv)
}
