package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketlab/dma/internal/config"
	"github.com/marketlab/dma/internal/indicators"
	"github.com/marketlab/dma/internal/series"
)

func defaultIndicatorParams() indicators.Params {
	return indicators.Params{
		SMAPeriods: []int{20, 50, 125, 200}, ROCPeriods: []int{10, 20, 60},
		HVolPeriods: []int{20, 60}, ZScorePeriods: []int{20, 50, 125},
		RSIPeriod: 14, MACDFast: 12, MACDSlow: 26, MACDSignal: 9,
		ADXPeriod: 14, ATRPeriod: 14, BBPeriod: 20, BBStdDev: 2.0,
	}
}

func linearEnriched(t *testing.T, n int) *series.Enriched {
	t.Helper()
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]series.Bar, n)
	for i := 0; i < n; i++ {
		c := 100 + float64(i)
		bars[i] = series.Bar{Date: start.AddDate(0, 0, i), Open: c - 0.2, High: c + 0.5, Low: c - 0.5, Close: c, AdjClose: c, Volume: 1_000_000}
	}
	e, err := indicators.ComputeAll(series.Raw{Ticker: "TREND", Bars: bars}, defaultIndicatorParams())
	require.NoError(t, err)
	return e
}

func TestTrendScore_MonotonicUptrendScoresHigh(t *testing.T) {
	e := linearEnriched(t, 260)
	score := TrendScore(e)
	assert.GreaterOrEqual(t, score, 85.0, "SMA positioning, ADX direction, and pattern all favor a pure uptrend")
}

func TestComposite_WeightIdentity(t *testing.T) {
	e := linearEnriched(t, 260)
	weights := config.Default().Weights
	set := Score("TREND", "", e, nil, weights)

	expected := weights.Trend*set.Trend + weights.Momentum*set.Momentum +
		weights.Volatility*(100-set.Volatility) + weights.RelStrength*set.RelativeStrength
	assert.InDelta(t, expected, set.Composite, 0.01)
}

func TestSubScores_BoundedToZeroHundred(t *testing.T) {
	e := linearEnriched(t, 260)
	weights := config.Default().Weights
	set := Score("TREND", "", e, nil, weights)

	for name, v := range map[string]float64{
		"composite": set.Composite, "trend": set.Trend, "momentum": set.Momentum,
		"volatility": set.Volatility, "rel_strength": set.RelativeStrength,
	} {
		assert.GreaterOrEqual(t, v, 0.0, name)
		assert.LessOrEqual(t, v, 100.0, name)
	}
}

func TestRelativeStrength_BenchmarkEqualsSelfYields50(t *testing.T) {
	e := linearEnriched(t, 260)
	score := RelativeStrengthScore("TREND", "TREND", e, e)
	assert.Equal(t, 50.0, score)
}

func TestRelativeStrength_MissingBenchmarkYields50(t *testing.T) {
	e := linearEnriched(t, 260)
	score := RelativeStrengthScore("TREND", "SPY", e, nil)
	assert.Equal(t, 50.0, score)
}

func TestRelativeStrength_FewAlignedRowsYields50(t *testing.T) {
	e := linearEnriched(t, 260)
	short := linearEnriched(t, 10)
	score := RelativeStrengthScore("TREND", "SHORT", e, short)
	assert.Equal(t, 50.0, score)
}
