// Package orchestrator sequences a single end-of-day analysis run: fetch,
// indicator computation, scoring, regime classification, signal generation,
// and consolidation into the emitted AnalysisResult (spec §4.7).
package orchestrator

import (
	"time"

	"github.com/marketlab/dma/internal/regime"
	"github.com/marketlab/dma/internal/scoring"
)

const version = "1.0.0"

// DateRange is the [start,end] window a run was computed over.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Metadata is the run's header record (spec §6.3).
type Metadata struct {
	AnalysisDate        time.Time `json:"analysis_date"`
	GeneratedAt         time.Time `json:"generated_at"`
	Version             string    `json:"version"`
	InstrumentsAnalyzed int       `json:"instruments_analyzed"`
	DateRange           DateRange `json:"date_range"`
}

// CurrentBar summarizes the last bar of a symbol's enriched series.
type CurrentBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// KeyLevels summarizes the pivot/support/resistance levels of spec §4.3.
type KeyLevels struct {
	PrevDayHigh  float64 `json:"prev_day_high"`
	PrevDayLow   float64 `json:"prev_day_low"`
	PrevWeekHigh float64 `json:"prev_week_high"`
	PrevWeekLow  float64 `json:"prev_week_low"`
	PivotPoint   float64 `json:"pivot_point"`
	R1           float64 `json:"r1"`
	R2           float64 `json:"r2"`
	S1           float64 `json:"s1"`
	S2           float64 `json:"s2"`
}

// IndicatorSummary surfaces the headline indicator values for a symbol.
type IndicatorSummary struct {
	SMA20  float64 `json:"sma_20"`
	SMA50  float64 `json:"sma_50"`
	SMA125 float64 `json:"sma_125"`
	SMA200 float64 `json:"sma_200"`
	RSI14  float64 `json:"rsi_14"`
	MACD   float64 `json:"macd"`
	ADX    float64 `json:"adx"`
	ATRPct float64 `json:"atr_pct"`
}

// Info is the static descriptor carried through to the instrument record.
type Info struct {
	Ticker    string `json:"ticker"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Benchmark string `json:"benchmark"`
}

// InstrumentRecord is one symbol's full per-run output (spec §3, §6.3).
type InstrumentRecord struct {
	Info       Info             `json:"info"`
	Current    CurrentBar       `json:"current"`
	KeyLevels  KeyLevels        `json:"key_levels"`
	Indicators IndicatorSummary `json:"indicators"`
	Scores     scoring.Set      `json:"scores"`
	Signals    []string         `json:"signals"`
}

// Rankings holds the universe sorted by each scoring criterion (spec §4.7 step 8).
type Rankings struct {
	ByCompositeScore   []string `json:"by_composite_score"`
	ByTrend            []string `json:"by_trend"`
	ByMomentum         []string `json:"by_momentum"`
	ByVolatility       []string `json:"by_volatility"`
	ByRelativeStrength []string `json:"by_relative_strength"`
}

// AnalysisResult is the full emitted shape of spec §6.3.
type AnalysisResult struct {
	RunID         string                      `json:"run_id"`
	Metadata      Metadata                    `json:"metadata"`
	MarketRegime  regime.Snapshot             `json:"market_regime"`
	Instruments   map[string]InstrumentRecord `json:"instruments"`
	Rankings      Rankings                    `json:"rankings"`
	NotableEvents []string                    `json:"notable_events"`
	FailedSymbols map[string]string           `json:"failed_symbols,omitempty"`
}
