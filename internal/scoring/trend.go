package scoring

import (
	"math"

	"github.com/marketlab/dma/internal/series"
)

// trendWeights are the fixed sub-weights of the Trend score (spec §4.4).
const (
	trendWeightSMAPositioning = 0.30
	trendWeightADXDirection   = 0.25
	trendWeightROC            = 0.25
	trendWeightPattern        = 0.20
)

// TrendScore computes the Trend sub-score (spec §4.4 "Trend Score").
func TrendScore(e *series.Enriched) float64 {
	smaScore := smaPositioningScore(e)
	adxScore := adxDirectionScore(e)
	rocScore := rocNormalizedScore(e.Last(series.ColROC20))
	patternScore := patternScore(e)

	composite := trendWeightSMAPositioning*smaScore +
		trendWeightADXDirection*adxScore +
		trendWeightROC*rocScore +
		trendWeightPattern*patternScore

	return round2(clamp(composite, 0, 100))
}

// smaPositioningScore awards 25 points per SMA(20,50,125,200) the close exceeds.
func smaPositioningScore(e *series.Enriched) float64 {
	close_ := e.Last(series.ColClose)
	cols := []series.Column{series.ColSMA20, series.ColSMA50, series.ColSMA125, series.ColSMA200}
	points := 0.0
	for _, c := range cols {
		ma := e.Last(c)
		if math.IsNaN(ma) {
			continue
		}
		if close_ > ma {
			points += 25
		}
	}
	return clamp(points, 0, 100)
}

// adxDirectionScore implements 50 + (min(ADX,50)-25)*2*sign(+DI--DI), clamped.
// Missing ADX/DI values are treated as neutral: ADX=20, +DI=-DI=50.
func adxDirectionScore(e *series.Enriched) float64 {
	adx := e.Last(series.ColADX)
	plusDI := e.Last(series.ColPlusDI)
	minusDI := e.Last(series.ColMinusDI)

	if math.IsNaN(adx) {
		adx = 20
	}
	if math.IsNaN(plusDI) {
		plusDI = 50
	}
	if math.IsNaN(minusDI) {
		minusDI = 50
	}

	sign := 0.0
	if plusDI > minusDI {
		sign = 1
	} else if plusDI < minusDI {
		sign = -1
	}

	adxCapped := math.Min(adx, 50)
	score := 50 + (adxCapped-25)*2*sign
	return clamp(score, 0, 100)
}

// rocNormalizedScore linearly maps ROC_20 from [-20,+20] to [0,100].
func rocNormalizedScore(roc20 float64) float64 {
	return linearNormalize(roc20, -20, 20)
}

// patternScore applies the hierarchical price-level test, first match wins,
// most-bearish first (spec §4.4 "Pattern").
func patternScore(e *series.Enriched) float64 {
	close_ := e.Last(series.ColClose)
	prevWeekLow := e.Last(series.ColPrevWeekLow)
	prevDayLow := e.Last(series.ColPrevDayLow)
	prevWeekHigh := e.Last(series.ColPrevWeekHigh)
	prevDayHigh := e.Last(series.ColPrevDayHigh)
	pivot := e.Last(series.ColPivotPoint)

	if !math.IsNaN(prevWeekLow) && close_ < prevWeekLow {
		return 0
	}
	if !math.IsNaN(prevDayLow) && close_ < prevDayLow {
		return 25
	}
	if !math.IsNaN(prevWeekHigh) && close_ > prevWeekHigh {
		return 100
	}
	if !math.IsNaN(prevDayHigh) && close_ > prevDayHigh {
		return 75
	}
	if !math.IsNaN(pivot) && close_ > pivot {
		return 60
	}
	return 50
}
