package signals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/marketlab/dma/internal/config"
	"github.com/marketlab/dma/internal/series"
)

func baseEnriched(n int) *series.Enriched {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]series.Bar, n)
	for i := 0; i < n; i++ {
		c := 100.0
		bars[i] = series.Bar{Date: start.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c, AdjClose: c, Volume: 1_000_000}
	}
	return series.NewEnriched(series.Raw{Ticker: "SIG", Bars: bars})
}

func TestGenerate_RSIExtremeOverbought(t *testing.T) {
	e := baseEnriched(3)
	e.Set(series.ColRSI14, []float64{50, 50, 85})
	sigs := Generate(e, config.Default().SignalThresholds)
	assert.Contains(t, sigs, "Extreme Overbought")
}

func TestGenerate_RSIOversold(t *testing.T) {
	e := baseEnriched(3)
	e.Set(series.ColRSI14, []float64{50, 50, 25})
	sigs := Generate(e, config.Default().SignalThresholds)
	assert.Contains(t, sigs, "Oversold")
}

func TestGenerate_NaNRSISuppressed(t *testing.T) {
	e := baseEnriched(3)
	e.Set(series.ColRSI14, []float64{50, 50, nan()})
	sigs := Generate(e, config.Default().SignalThresholds)
	for _, s := range sigs {
		assert.NotContains(t, s, "Overbought")
		assert.NotContains(t, s, "Oversold")
	}
}

func TestGenerate_GoldenCross(t *testing.T) {
	e := baseEnriched(2)
	e.Set(series.ColSMA50, []float64{99, 101})
	e.Set(series.ColSMA200, []float64{100, 100})
	sigs := Generate(e, config.Default().SignalThresholds)
	assert.Contains(t, sigs, "Golden Cross")
}

func TestGenerate_DeathCross(t *testing.T) {
	e := baseEnriched(2)
	e.Set(series.ColSMA50, []float64{101, 99})
	e.Set(series.ColSMA200, []float64{100, 100})
	sigs := Generate(e, config.Default().SignalThresholds)
	assert.Contains(t, sigs, "Death Cross")
}

func TestGenerate_MACDBullishCrossover(t *testing.T) {
	e := baseEnriched(2)
	e.Set(series.ColMACD, []float64{-1, 1})
	e.Set(series.ColMACDSignal, []float64{0, 0})
	sigs := Generate(e, config.Default().SignalThresholds)
	assert.Contains(t, sigs, "MACD Bullish Crossover")
}

func TestGenerate_GapUp(t *testing.T) {
	e := baseEnriched(2)
	open := e.Get(series.ColOpen)
	open[1] = 103
	closeCol := e.Get(series.ColClose)
	closeCol[0] = 100
	sigs := Generate(e, config.Default().SignalThresholds)
	found := false
	for _, s := range sigs {
		if s == "Gap Up (3.0%)" {
			found = true
		}
	}
	assert.True(t, found, "expected a gap-up signal, got %v", sigs)
}

func TestGenerate_VolumeSurge(t *testing.T) {
	e := baseEnriched(2)
	e.Set(series.ColVolRatio, []float64{1.0, 2.5})
	sigs := Generate(e, config.Default().SignalThresholds)
	assert.Contains(t, sigs, "Volume Surge (2.5x)")
}

func TestGenerate_ADXStrongTrend(t *testing.T) {
	e := baseEnriched(2)
	e.Set(series.ColADX, []float64{20, 30})
	sigs := Generate(e, config.Default().SignalThresholds)
	assert.Contains(t, sigs, "Strong Trend (ADX 30.0)")
}

func TestGenerate_BreakingAbovePrevDayHigh(t *testing.T) {
	e := baseEnriched(2)
	e.Set(series.ColPrevDayHigh, []float64{nan(), 100.5})
	closeCol := e.Get(series.ColClose)
	closeCol[0] = 99
	closeCol[1] = 101
	sigs := Generate(e, config.Default().SignalThresholds)
	assert.Contains(t, sigs, "Breaking above prev day high")
}

func TestGenerate_Deduplicated(t *testing.T) {
	e := baseEnriched(2)
	e.Set(series.ColADX, []float64{30, 30})
	sigs := Generate(e, config.Default().SignalThresholds)
	count := 0
	for _, s := range sigs {
		if s == "Strong Trend (ADX 30.0)" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func nan() float64 {
	var zero float64
	return zero / zero
}
