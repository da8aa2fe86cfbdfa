package marketdata

import "github.com/marketlab/dma/internal/series"

// applyAdjustment back-adjusts provider-A bars in place (spec §4.2): each
// bar's O/H/L are scaled by factor = adjusted_close/close, and close is
// replaced by adjusted_close. When close is 0 the factor is undefined and
// defaults to 1, per the original's adjustment rule (SPEC_FULL §11).
func applyAdjustment(bars []series.Bar) {
	for i, b := range bars {
		factor := 1.0
		if b.Close != 0 {
			factor = b.AdjClose / b.Close
		}
		bars[i].Open = b.Open * factor
		bars[i].High = b.High * factor
		bars[i].Low = b.Low * factor
		bars[i].Close = b.AdjClose
	}
}
