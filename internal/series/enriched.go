package series

import (
	"math"
	"time"
)

// Column names the derived indicator columns. Using a typed string (rather
// than a rigid struct field per column) lets the indicator engine add new
// derived columns without changing the Enriched type.
type Column string

const (
	ColOpen     Column = "open"
	ColHigh     Column = "high"
	ColLow      Column = "low"
	ColClose    Column = "close"
	ColAdjClose Column = "adj_close"
	ColVolume   Column = "volume"

	ColPrevDayHigh     Column = "prev_day_high"
	ColPrevDayLow      Column = "prev_day_low"
	ColPrevDayClose    Column = "prev_day_close"
	ColPrevDayRangePct Column = "prev_day_range_pct"
	ColPrevWeekHigh    Column = "prev_week_high"
	ColPrevWeekLow     Column = "prev_week_low"
	ColWeeklyReturnPct Column = "weekly_return_pct"
	ColPivotPoint      Column = "pivot_point"
	ColR1              Column = "r1"
	ColR2              Column = "r2"
	ColS1              Column = "s1"
	ColS2              Column = "s2"

	ColSMA20  Column = "sma_20"
	ColSMA50  Column = "sma_50"
	ColSMA125 Column = "sma_125" // mean-minus-median oscillator, NOT a plain SMA
	ColSMA200 Column = "sma_200"

	ColDistSMA20Pct  Column = "dist_sma_20_pct"
	ColDistSMA50Pct  Column = "dist_sma_50_pct"
	ColDistSMA125Pct Column = "dist_sma_125_pct"
	ColDistSMA200Pct Column = "dist_sma_200_pct"

	ColRSI14 Column = "rsi_14"

	ColMACD          Column = "macd"
	ColMACDSignal    Column = "macd_signal"
	ColMACDHistogram Column = "macd_histogram"
	ColMACDCrossover Column = "macd_crossover" // -1, 0, +1

	ColPlusDI  Column = "plus_di"
	ColMinusDI Column = "minus_di"
	ColADX     Column = "adx"

	ColROC10 Column = "roc_10"
	ColROC20 Column = "roc_20"
	ColROC60 Column = "roc_60"

	ColATR    Column = "atr"
	ColATRPct Column = "atr_pct"

	ColBBMiddle    Column = "bb_middle"
	ColBBUpper     Column = "bb_upper"
	ColBBLower     Column = "bb_lower"
	ColBBBandWidth Column = "bb_band_width"
	ColBBPctB      Column = "bb_pct_b"

	ColHVol20 Column = "hvol_20"
	ColHVol60 Column = "hvol_60"

	ColZScore20  Column = "zscore_20"
	ColZScore50  Column = "zscore_50"
	ColZScore125 Column = "zscore_125"

	ColHigh52w       Column = "high_52w"
	ColLow52w        Column = "low_52w"
	ColRangePosition Column = "range_position"

	ColReturn1d  Column = "return_1d"
	ColReturn5d  Column = "return_5d"
	ColReturn21d Column = "return_21d"
	ColReturn63d Column = "return_63d"

	ColVolSMA20 Column = "vol_sma_20"
	ColVolRatio Column = "vol_ratio"
	ColOBV      Column = "obv"
)

// Enriched is a struct-of-arrays view of one symbol's bars plus every
// derived column the indicator engine computes. Row i across all columns
// corresponds to Dates[i]; row count always equals the raw row count after
// session trimming (spec §3).
type Enriched struct {
	Ticker  string
	Dates   []time.Time
	columns map[Column][]float64
}

// NewEnriched seeds an Enriched series from a (already-trimmed, sorted) Raw series.
func NewEnriched(raw Raw) *Enriched {
	n := len(raw.Bars)
	e := &Enriched{
		Ticker:  raw.Ticker,
		Dates:   make([]time.Time, n),
		columns: make(map[Column][]float64, 48),
	}
	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	close_ := make([]float64, n)
	adj := make([]float64, n)
	vol := make([]float64, n)
	for i, b := range raw.Bars {
		e.Dates[i] = b.Date
		open[i] = b.Open
		high[i] = b.High
		low[i] = b.Low
		close_[i] = b.Close
		adj[i] = b.AdjClose
		vol[i] = b.Volume
	}
	e.columns[ColOpen] = open
	e.columns[ColHigh] = high
	e.columns[ColLow] = low
	e.columns[ColClose] = close_
	e.columns[ColAdjClose] = adj
	e.columns[ColVolume] = vol
	return e
}

// Len returns the row count.
func (e *Enriched) Len() int { return len(e.Dates) }

// Set stores a full column. Panics if the length does not match Len(), since
// every derived column must be aligned to the same row index.
func (e *Enriched) Set(col Column, values []float64) {
	if len(values) != e.Len() {
		panic("series: column length mismatch for " + string(col))
	}
	e.columns[col] = values
}

// Get returns a column's values, or nil if never computed.
func (e *Enriched) Get(col Column) []float64 {
	return e.columns[col]
}

// Has reports whether a column has been computed.
func (e *Enriched) Has(col Column) bool {
	_, ok := e.columns[col]
	return ok
}

// At returns the value of a column at row i, or NaN if the column is absent
// or the index is out of range.
func (e *Enriched) At(col Column, i int) float64 {
	vals, ok := e.columns[col]
	if !ok || i < 0 || i >= len(vals) {
		return math.NaN()
	}
	return vals[i]
}

// Last returns the final row's value for a column, or NaN if empty/absent.
func (e *Enriched) Last(col Column) float64 {
	return e.At(col, e.Len()-1)
}

// SecondLast returns the second-to-last row's value for a column, or NaN.
func (e *Enriched) SecondLast(col Column) float64 {
	return e.At(col, e.Len()-2)
}

// LastDate returns the last bar's date, or the zero time if empty.
func (e *Enriched) LastDate() time.Time {
	if e.Len() == 0 {
		return time.Time{}
	}
	return e.Dates[e.Len()-1]
}
