package scoring

import (
	"math"

	"github.com/marketlab/dma/internal/indicators"
	"github.com/marketlab/dma/internal/series"
)

const (
	volatilityWeightATRPercentile   = 0.40
	volatilityWeightBBPercentile    = 0.35
	volatilityWeightHVolRatio       = 0.25
)

// VolatilityScore computes the Volatility sub-score (spec §4.4 "Volatility
// Score"). HIGH means highly volatile / risky; the composite score is the
// only place this gets inverted (spec §4.4, §9).
func VolatilityScore(e *series.Enriched) float64 {
	atrRank := rankOrDefault(e.Get(series.ColATRPct))
	bbRank := rankOrDefault(e.Get(series.ColBBBandWidth))
	hvolScore := hvolRatioScore(e)

	composite := volatilityWeightATRPercentile*atrRank +
		volatilityWeightBBPercentile*bbRank +
		volatilityWeightHVolRatio*hvolScore

	return round2(clamp(composite, 0, 100))
}

func rankOrDefault(col []float64) float64 {
	rank := indicators.LastRollingPercentileRank(col, percentileWindow, percentileMinPeriods)
	if math.IsNaN(rank) {
		return 50
	}
	return rank
}

// hvolRatioScore normalizes hvol_20/hvol_60 linearly from [0.5,1.5] to [0,100].
func hvolRatioScore(e *series.Enriched) float64 {
	hvol20 := e.Last(series.ColHVol20)
	hvol60 := e.Last(series.ColHVol60)
	if math.IsNaN(hvol20) || math.IsNaN(hvol60) || hvol60 == 0 {
		return 50
	}
	ratio := hvol20 / hvol60
	return linearNormalize(ratio, 0.5, 1.5)
}
