package indicators

import "github.com/marketlab/dma/internal/series"

// computePriceLevels fills prev-day / prev-week / pivot columns (spec §4.3,
// "Price levels (T-1 semantics)"). All values are derived by shifting one row
// back so no row looks ahead of itself.
func computePriceLevels(e *series.Enriched) {
	high := e.Get(series.ColHigh)
	low := e.Get(series.ColLow)
	close_ := e.Get(series.ColClose)
	n := e.Len()

	prevHigh := shift(high, 1)
	prevLow := shift(low, 1)
	prevClose := shift(close_, 1)

	prevRangePct := nanSlice(n)
	for i := 0; i < n; i++ {
		if !isNaN(prevHigh[i]) && !isNaN(prevLow[i]) && !isNaN(prevClose[i]) && prevClose[i] != 0 {
			prevRangePct[i] = 100 * (prevHigh[i] - prevLow[i]) / prevClose[i]
		}
	}

	// prev_week_high/low: rolling max/min of the last 5 SHIFTED highs/lows.
	shiftedHighWindow := rollingMax(prevHigh, 5)
	shiftedLowWindow := rollingMin(prevLow, 5)

	// weekly_return_pct = 100*(close/close.shift(5)-1), itself shifted by 1.
	closeShift5 := shift(close_, 5)
	weeklyReturnRaw := nanSlice(n)
	for i := 0; i < n; i++ {
		if !isNaN(closeShift5[i]) && closeShift5[i] != 0 {
			weeklyReturnRaw[i] = 100 * (close_[i]/closeShift5[i] - 1)
		}
	}
	weeklyReturnPct := shift(weeklyReturnRaw, 1)

	pivot := nanSlice(n)
	r1 := nanSlice(n)
	r2 := nanSlice(n)
	s1 := nanSlice(n)
	s2 := nanSlice(n)
	for i := 0; i < n; i++ {
		if isNaN(prevHigh[i]) || isNaN(prevLow[i]) || isNaN(prevClose[i]) {
			continue
		}
		p := (prevHigh[i] + prevLow[i] + prevClose[i]) / 3
		pivot[i] = p
		r1[i] = 2*p - prevLow[i]
		r2[i] = p + (prevHigh[i] - prevLow[i])
		s1[i] = 2*p - prevHigh[i]
		s2[i] = p - (prevHigh[i] - prevLow[i])
	}

	e.Set(series.ColPrevDayHigh, prevHigh)
	e.Set(series.ColPrevDayLow, prevLow)
	e.Set(series.ColPrevDayClose, prevClose)
	e.Set(series.ColPrevDayRangePct, prevRangePct)
	e.Set(series.ColPrevWeekHigh, shiftedHighWindow)
	e.Set(series.ColPrevWeekLow, shiftedLowWindow)
	e.Set(series.ColWeeklyReturnPct, weeklyReturnPct)
	e.Set(series.ColPivotPoint, pivot)
	e.Set(series.ColR1, r1)
	e.Set(series.ColR2, r2)
	e.Set(series.ColS1, s1)
	e.Set(series.ColS2, s2)
}
