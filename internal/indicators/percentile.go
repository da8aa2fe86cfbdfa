package indicators

import "math"

// RollingPercentileRank implements spec §4.3's "rolling percentile rank"
// utility, shared by every sub-score that consults it (MACD histogram
// percentile, ATR_pct percentile, band_width percentile, relative-strength
// rank): for series s and window W, the value at position i is the fraction
// of s[i-W+1..i-1] STRICTLY LESS than s[i], times 100. The spec pins strict-
// less semantics (spec §9 open question (a)); ties do not count toward the
// rank. Needs at least minPeriods prior observations or the result is NaN.
func RollingPercentileRank(s []float64, window, minPeriods int) []float64 {
	out := nanSlice(len(s))
	for i := 0; i < len(s); i++ {
		if isNaN(s[i]) {
			continue
		}
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		count := 0
		less := 0
		for j := lo; j < i; j++ {
			if isNaN(s[j]) {
				continue
			}
			count++
			if s[j] < s[i] {
				less++
			}
		}
		if count < minPeriods {
			continue
		}
		out[i] = float64(less) / float64(count) * 100
	}
	return out
}

// LastRollingPercentileRank is a convenience for scoring call sites that
// only need the final row's rank (defaulting to NaN if undefined).
func LastRollingPercentileRank(s []float64, window, minPeriods int) float64 {
	ranks := RollingPercentileRank(s, window, minPeriods)
	if len(ranks) == 0 {
		return math.NaN()
	}
	return ranks[len(ranks)-1]
}
