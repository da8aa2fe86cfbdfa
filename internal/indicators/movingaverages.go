package indicators

import "github.com/marketlab/dma/internal/series"

// computeMovingAverages fills SMA20/50/200 (plain SMAs), the SMA_125
// mean-minus-median oscillator (see doc below), and the dist_sma_*_pct
// columns for all four periods (spec §4.3).
//
// SMA_125 is NOT a plain SMA: it is rolling_mean(close,125) -
// rolling_median(close,126). The scoring engine's "price > SMA_125" test is
// therefore a zero-crossing test of this oscillator, not a price-vs-average
// test. Do not replace this with a plain 125-period SMA; see spec §9.
func computeMovingAverages(e *series.Enriched) {
	close_ := e.Get(series.ColClose)
	n := e.Len()

	sma20 := rollingMean(close_, 20)
	sma50 := rollingMean(close_, 50)
	sma200 := rollingMean(close_, 200)

	mean125 := rollingMean(close_, 125)
	median126 := rollingMedian(close_, 126)
	sma125 := nanSlice(n)
	for i := 0; i < n; i++ {
		if !isNaN(mean125[i]) && !isNaN(median126[i]) {
			sma125[i] = mean125[i] - median126[i]
		}
	}

	e.Set(series.ColSMA20, sma20)
	e.Set(series.ColSMA50, sma50)
	e.Set(series.ColSMA125, sma125)
	e.Set(series.ColSMA200, sma200)

	e.Set(series.ColDistSMA20Pct, distPct(close_, sma20))
	e.Set(series.ColDistSMA50Pct, distPct(close_, sma50))
	e.Set(series.ColDistSMA125Pct, distPct(close_, sma125))
	e.Set(series.ColDistSMA200Pct, distPct(close_, sma200))
}

// distPct computes 100*(close-ma)/ma, NaN-safe, NaN when ma is zero.
func distPct(close_, ma []float64) []float64 {
	out := nanSlice(len(close_))
	for i := range close_ {
		if !isNaN(ma[i]) && ma[i] != 0 {
			out[i] = 100 * (close_[i] - ma[i]) / ma[i]
		}
	}
	return out
}
