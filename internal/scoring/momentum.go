package scoring

import (
	"math"

	"github.com/marketlab/dma/internal/indicators"
	"github.com/marketlab/dma/internal/series"
)

const (
	momentumWeightRSI         = 0.35
	momentumWeightMACDPercent = 0.35
	momentumWeightROC         = 0.30

	percentileWindow     = 252
	percentileMinPeriods = 50
)

// MomentumScore computes the Momentum sub-score (spec §4.4 "Momentum Score").
func MomentumScore(e *series.Enriched) float64 {
	rsiScore := rsiClampedScore(e.Last(series.ColRSI14))
	macdPercentileScore := macdHistogramPercentileScore(e)
	rocCompositeScore := rocCompositeNormalized(e)

	composite := momentumWeightRSI*rsiScore +
		momentumWeightMACDPercent*macdPercentileScore +
		momentumWeightROC*rocCompositeScore

	return round2(clamp(composite, 0, 100))
}

func rsiClampedScore(rsi float64) float64 {
	if math.IsNaN(rsi) {
		return 50
	}
	return clamp(rsi, 0, 100)
}

// macdHistogramPercentileScore is the rolling percentile rank of the MACD
// histogram series, a relative-position test (NOT a crossover test).
func macdHistogramPercentileScore(e *series.Enriched) float64 {
	hist := e.Get(series.ColMACDHistogram)
	rank := indicators.LastRollingPercentileRank(hist, percentileWindow, percentileMinPeriods)
	if math.IsNaN(rank) {
		return 50
	}
	return rank
}

// rocCompositeNormalized blends ROC_10/20/60 and normalizes [-20,20] -> [0,100].
func rocCompositeNormalized(e *series.Enriched) float64 {
	roc10 := e.Last(series.ColROC10)
	roc20 := e.Last(series.ColROC20)
	roc60 := e.Last(series.ColROC60)
	if math.IsNaN(roc10) {
		roc10 = 0
	}
	if math.IsNaN(roc20) {
		roc20 = 0
	}
	if math.IsNaN(roc60) {
		roc60 = 0
	}
	value := 0.5*roc10 + 0.3*roc20 + 0.2*roc60
	return linearNormalize(value, -20, 20)
}
