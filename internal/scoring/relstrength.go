package scoring

import (
	"math"

	"github.com/marketlab/dma/internal/indicators"
	"github.com/marketlab/dma/internal/series"
)

const relStrengthMinAlignedRows = 50

// RelativeStrengthScore computes the Relative Strength sub-score (spec §4.4
// "Relative Strength Score"). Returns 50 when the benchmark equals the
// symbol, is missing, or its enriched series is unavailable, or when fewer
// than 50 aligned rows can be joined.
func RelativeStrengthScore(ticker, benchmarkTicker string, e *series.Enriched, benchmark *series.Enriched) float64 {
	if benchmarkTicker == "" || benchmarkTicker == ticker || benchmark == nil {
		return 50
	}

	symClose, benchClose, aligned := innerJoinOnDate(e, benchmark)
	if aligned < relStrengthMinAlignedRows {
		return 50
	}

	rsRatio := make([]float64, len(symClose))
	for i := range symClose {
		if benchClose[i] == 0 {
			rsRatio[i] = math.NaN()
			continue
		}
		rsRatio[i] = symClose[i] / benchClose[i]
	}

	rsRank := indicators.LastRollingPercentileRank(rsRatio, percentileWindow, percentileMinPeriods)
	if math.IsNaN(rsRank) {
		rsRank = 50
	}

	rsMomentum := percentChange(rsRatio, 10)

	score := rsRank + 100*rsMomentum*0.5
	return round2(clamp(score, 0, 100))
}

// innerJoinOnDate aligns two enriched series' close columns on matching
// dates, returning the joined slices in date order and the aligned count.
func innerJoinOnDate(a, b *series.Enriched) ([]float64, []float64, int) {
	bIndex := make(map[string]int, b.Len())
	for i, d := range b.Dates {
		bIndex[d.Format("2006-01-02")] = i
	}

	var outA, outB []float64
	aClose := a.Get(series.ColClose)
	bClose := b.Get(series.ColClose)
	for i, d := range a.Dates {
		if j, ok := bIndex[d.Format("2006-01-02")]; ok {
			outA = append(outA, aClose[i])
			outB = append(outB, bClose[j])
		}
	}
	return outA, outB, len(outA)
}

// percentChange returns the last value's percentage change vs `period` rows back.
func percentChange(s []float64, period int) float64 {
	n := len(s)
	if n <= period {
		return 0
	}
	last := s[n-1]
	prior := s[n-1-period]
	if math.IsNaN(last) || math.IsNaN(prior) || prior == 0 {
		return 0
	}
	return last/prior - 1
}
