// Package signals derives discrete, human-readable signal strings from an
// enriched series (spec §4.6). Pure functions over the last two rows; never
// touches the network or a clock.
package signals

import (
	"fmt"
	"math"

	"github.com/marketlab/dma/internal/config"
	"github.com/marketlab/dma/internal/series"
)

// Generate inspects the last and second-to-last rows of e and returns an
// ordered, de-duplicated list of signal strings. Any signal whose operands
// include NaN is silently skipped rather than erroring (spec §4.6).
func Generate(e *series.Enriched, th config.SignalThresholds) []string {
	var out []string
	seen := make(map[string]bool)
	emit := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	priceLevelSignals(e, emit)
	rsiSignals(e, th, emit)
	bollingerSignals(e, th, emit)
	volumeSurgeSignal(e, th, emit)
	gapSignal(e, th, emit)
	macdCrossoverSignal(e, emit)
	smaCrossSignal(e, emit)
	adxStrongTrendSignal(e, th, emit)

	return out
}

type level struct {
	name  string
	value float64
}

// priceLevelSignals covers prev_week_high/low and prev_day_high/low: a close
// crossing through the level emits a breakout, a high/low merely reaching it
// without a close-side cross emits a test.
func priceLevelSignals(e *series.Enriched, emit func(string)) {
	lastClose := e.Last(series.ColClose)
	prevClose := e.SecondLast(series.ColClose)
	lastHigh := e.Last(series.ColHigh)
	lastLow := e.Last(series.ColLow)
	if anyNaN(lastClose, prevClose, lastHigh, lastLow) {
		return
	}

	levels := []level{
		{"prev week high", e.Last(series.ColPrevWeekHigh)},
		{"prev week low", e.Last(series.ColPrevWeekLow)},
		{"prev day high", e.Last(series.ColPrevDayHigh)},
		{"prev day low", e.Last(series.ColPrevDayLow)},
	}

	for _, lv := range levels {
		if math.IsNaN(lv.value) {
			continue
		}
		crossedUp := prevClose <= lv.value && lastClose > lv.value
		crossedDown := prevClose >= lv.value && lastClose < lv.value
		switch {
		case crossedUp:
			emit(fmt.Sprintf("Breaking above %s", lv.name))
		case crossedDown:
			emit(fmt.Sprintf("Breaking below %s", lv.name))
		case lastHigh >= lv.value && lastClose <= lv.value:
			emit(fmt.Sprintf("Testing %s", lv.name))
		case lastLow <= lv.value && lastClose >= lv.value:
			emit(fmt.Sprintf("Testing %s", lv.name))
		}
	}
}

func rsiSignals(e *series.Enriched, th config.SignalThresholds, emit func(string)) {
	rsi := e.Last(series.ColRSI14)
	if math.IsNaN(rsi) {
		return
	}
	switch {
	case rsi >= th.RSIExtremeOverbought:
		emit("Extreme Overbought")
	case rsi >= th.RSIOverbought:
		emit("Overbought")
	case rsi <= th.RSIExtremeOversold:
		emit("Extreme Oversold")
	case rsi <= th.RSIOversold:
		emit("Oversold")
	}
}

func bollingerSignals(e *series.Enriched, th config.SignalThresholds, emit func(string)) {
	closeVal := e.Last(series.ColClose)
	high := e.Last(series.ColHigh)
	low := e.Last(series.ColLow)
	upper := e.Last(series.ColBBUpper)
	lower := e.Last(series.ColBBLower)
	if anyNaN(closeVal, high, low, upper, lower) {
		return
	}

	lowerProximity := 1 + (1 - th.BBBreakout)

	switch {
	case closeVal > upper:
		emit("BB Upper Breakout")
	case high >= th.BBBreakout*upper:
		emit("Testing upper Bollinger Band")
	}

	switch {
	case closeVal < lower:
		emit("BB Lower Breakout")
	case low <= lowerProximity*lower:
		emit("Testing lower Bollinger Band")
	}
}

func volumeSurgeSignal(e *series.Enriched, th config.SignalThresholds, emit func(string)) {
	ratio := e.Last(series.ColVolRatio)
	if math.IsNaN(ratio) {
		return
	}
	if ratio > th.VolumeSurge {
		emit(fmt.Sprintf("Volume Surge (%.1fx)", ratio))
	}
}

func gapSignal(e *series.Enriched, th config.SignalThresholds, emit func(string)) {
	open := e.Last(series.ColOpen)
	prevClose := e.SecondLast(series.ColClose)
	if anyNaN(open, prevClose) || prevClose == 0 {
		return
	}
	gapPct := open/prevClose - 1
	if math.Abs(gapPct) <= th.GapThreshold {
		return
	}
	if gapPct > 0 {
		emit(fmt.Sprintf("Gap Up (%.1f%%)", gapPct*100))
	} else {
		emit(fmt.Sprintf("Gap Down (%.1f%%)", gapPct*100))
	}
}

func macdCrossoverSignal(e *series.Enriched, emit func(string)) {
	lastMACD := e.Last(series.ColMACD)
	lastSignal := e.Last(series.ColMACDSignal)
	prevMACD := e.SecondLast(series.ColMACD)
	prevSignal := e.SecondLast(series.ColMACDSignal)
	if anyNaN(lastMACD, lastSignal, prevMACD, prevSignal) {
		return
	}
	prevDiff := prevMACD - prevSignal
	lastDiff := lastMACD - lastSignal
	switch {
	case prevDiff <= 0 && lastDiff > 0:
		emit("MACD Bullish Crossover")
	case prevDiff >= 0 && lastDiff < 0:
		emit("MACD Bearish Crossover")
	}
}

func smaCrossSignal(e *series.Enriched, emit func(string)) {
	last50 := e.Last(series.ColSMA50)
	last200 := e.Last(series.ColSMA200)
	prev50 := e.SecondLast(series.ColSMA50)
	prev200 := e.SecondLast(series.ColSMA200)
	if anyNaN(last50, last200, prev50, prev200) {
		return
	}
	switch {
	case prev50 <= prev200 && last50 > last200:
		emit("Golden Cross")
	case prev50 >= prev200 && last50 < last200:
		emit("Death Cross")
	}
}

func adxStrongTrendSignal(e *series.Enriched, th config.SignalThresholds, emit func(string)) {
	adx := e.Last(series.ColADX)
	if math.IsNaN(adx) {
		return
	}
	if adx > th.ADXStrongTrend {
		emit(fmt.Sprintf("Strong Trend (ADX %.1f)", adx))
	}
}

func anyNaN(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
