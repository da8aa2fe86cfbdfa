package indicators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketlab/dma/internal/series"
)

func defaultParams() Params {
	return Params{
		SMAPeriods:    []int{20, 50, 125, 200},
		ROCPeriods:    []int{10, 20, 60},
		HVolPeriods:   []int{20, 60},
		ZScorePeriods: []int{20, 50, 125},
		RSIPeriod:     14,
		MACDFast:      12,
		MACDSlow:      26,
		MACDSignal:    9,
		ADXPeriod:     14,
		ATRPeriod:     14,
		BBPeriod:      20,
		BBStdDev:      2.0,
	}
}

func linearSeries(n int, start time.Time) series.Raw {
	bars := make([]series.Bar, n)
	for i := 0; i < n; i++ {
		close_ := 100 + float64(i)
		bars[i] = series.Bar{
			Date:     start.AddDate(0, 0, i),
			Open:     close_ - 0.2,
			High:     close_ + 0.5,
			Low:      close_ - 0.5,
			Close:    close_,
			AdjClose: close_,
			Volume:   1_000_000,
		}
	}
	return series.Raw{Ticker: "TEST", Bars: bars}
}

// Scenario 1: trivial monotonic uptrend; close = 100+i over 260 bars.
func TestComputeAll_MonotonicTrend(t *testing.T) {
	raw := linearSeries(260, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	e, err := ComputeAll(raw, defaultParams())
	require.NoError(t, err)

	lastClose := e.Last(series.ColClose)
	assert.Greater(t, lastClose, e.Last(series.ColSMA20))
	assert.Greater(t, lastClose, e.Last(series.ColSMA50))
	assert.Greater(t, lastClose, e.Last(series.ColSMA200))
	// SMA_125 is an oscillator near the close-median spread, not a price level;
	// the "close above it" comparison is still well-defined.
	assert.Greater(t, lastClose, e.Last(series.ColSMA125))

	rsi := e.Last(series.ColRSI14)
	assert.InDelta(t, 100, rsi, 0.01, "no losses in a pure uptrend saturates RSI to 100")

	roc20 := e.Last(series.ColROC20)
	assert.Greater(t, roc20, 0.0, "monotonic uptrend has positive ROC")

	assert.Greater(t, e.Last(series.ColClose), e.Last(series.ColPrevWeekHigh))
}

// Scenario 2: Wilder RSI seed with alternating +/-1 changes converges near 50.
func TestComputeRSI_AlternatingConvergesNear50(t *testing.T) {
	n := 20
	bars := make([]series.Bar, n)
	base := 100.0
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		c := base
		if i%2 == 1 {
			c = base + 1
		}
		bars[i] = series.Bar{
			Date: start.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c, AdjClose: c, Volume: 1000,
		}
	}
	raw := series.Raw{Ticker: "ALT", Bars: bars}
	e, err := ComputeAll(raw, defaultParams())
	require.NoError(t, err)
	rsi := e.Last(series.ColRSI14)
	if !isNaN(rsi) {
		assert.InDelta(t, 50, rsi, 15)
	}
}

// Scenario 3: monotonically increasing MACD histogram yields rank 100 at the
// last bar (strict-less semantics: every prior value in the window is
// strictly less than a new max; the current value itself is excluded).
func TestRollingPercentileRank_MonotonicIncreasingYieldsHundredAtEnd(t *testing.T) {
	s := make([]float64, 300)
	for i := range s {
		s[i] = float64(i)
	}
	ranks := RollingPercentileRank(s, 252, 50)
	last := ranks[len(ranks)-1]
	assert.Equal(t, 100.0, last, "max-so-far series: all 251 prior window values are strictly less than the new max")
}

func TestNoLookahead_TruncatingFutureRowsDoesNotChangePast(t *testing.T) {
	raw := linearSeries(260, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	full, err := ComputeAll(raw, defaultParams())
	require.NoError(t, err)

	truncated := series.Raw{Ticker: raw.Ticker, Bars: raw.Bars[:200]}
	partial, err := ComputeAll(truncated, defaultParams())
	require.NoError(t, err)

	for _, col := range []series.Column{series.ColSMA20, series.ColRSI14, series.ColMACD, series.ColATR} {
		a := full.At(col, 199)
		b := partial.At(col, 199)
		if isNaN(a) && isNaN(b) {
			continue
		}
		assert.InDelta(t, a, b, 1e-9, "column %s at row 199 changed when future rows were truncated", col)
	}
}
