package regime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/marketlab/dma/internal/series"
)

func enrichedWithClose(t *testing.T, closeVal float64, sma200 float64) *series.Enriched {
	t.Helper()
	e := series.NewEnriched(series.Raw{Ticker: "X", Bars: []series.Bar{
		{Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Open: closeVal, High: closeVal, Low: closeVal, Close: closeVal, AdjClose: closeVal, Volume: 1},
	}})
	e.Set(series.ColSMA200, []float64{sma200})
	return e
}

func TestClassify_BullishLowVixUptrend(t *testing.T) {
	vix := enrichedWithClose(t, 12, 0)
	spy := enrichedWithClose(t, 450, 400)
	snap := Classify(vix, spy, 15, 25)
	assert.Equal(t, VixLow, snap.VixRegime)
	assert.Equal(t, TrendUp, snap.SpyTrend)
	assert.Equal(t, ConditionBullish, snap.MarketCondition)
	assert.Equal(t, RiskOn, snap.RiskAppetite)
}

func TestClassify_BearishHighVixDowntrend(t *testing.T) {
	vix := enrichedWithClose(t, 30, 0)
	spy := enrichedWithClose(t, 380, 400)
	snap := Classify(vix, spy, 15, 25)
	assert.Equal(t, VixHigh, snap.VixRegime)
	assert.Equal(t, TrendDown, snap.SpyTrend)
	assert.Equal(t, ConditionBearish, snap.MarketCondition)
	assert.Equal(t, RiskOff, snap.RiskAppetite)
}

func TestClassify_MissingReferenceSymbolsYieldsUnknown(t *testing.T) {
	snap := Classify(nil, nil, 15, 25)
	assert.Equal(t, VixUnknown, snap.VixRegime)
	assert.Equal(t, TrendUnknown, snap.SpyTrend)
	assert.Equal(t, ConditionUnknown, snap.MarketCondition)
	assert.Equal(t, RiskNeutral, snap.RiskAppetite)
}

func TestClassify_LowVixDowntrendIsQuietBearish(t *testing.T) {
	vix := enrichedWithClose(t, 12, 0)
	spy := enrichedWithClose(t, 380, 400)
	snap := Classify(vix, spy, 15, 25)
	assert.Equal(t, ConditionQuietBearish, snap.MarketCondition)
}
