package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/marketlab/dma/internal/series"
)

func TestApplyAdjustment_ScalesOHLCByFactor(t *testing.T) {
	bars := []series.Bar{
		{Date: time.Now(), Open: 100, High: 110, Low: 90, Close: 100, AdjClose: 50, Volume: 1},
	}
	applyAdjustment(bars)

	assert.InDelta(t, 50, bars[0].Open, 1e-9)
	assert.InDelta(t, 55, bars[0].High, 1e-9)
	assert.InDelta(t, 45, bars[0].Low, 1e-9)
	assert.InDelta(t, 50, bars[0].Close, 1e-9)
}

func TestApplyAdjustment_ZeroCloseDefaultsFactorToOne(t *testing.T) {
	bars := []series.Bar{
		{Date: time.Now(), Open: 10, High: 12, Low: 8, Close: 0, AdjClose: 10, Volume: 1},
	}
	applyAdjustment(bars)

	assert.InDelta(t, 10, bars[0].Open, 1e-9)
	assert.InDelta(t, 12, bars[0].High, 1e-9)
	assert.InDelta(t, 8, bars[0].Low, 1e-9)
	assert.InDelta(t, 10, bars[0].Close, 1e-9)
}
