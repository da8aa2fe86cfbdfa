package orchestrator

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketlab/dma/internal/scoring"
)

func TestSanitize_NaNBecomesNull(t *testing.T) {
	result := &AnalysisResult{
		RunID: "run-1",
		Instruments: map[string]InstrumentRecord{
			"AAPL": {
				Indicators: IndicatorSummary{SMA20: math.NaN(), RSI14: 55.5},
				Scores:     scoring.Set{Composite: 50},
			},
		},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	instruments := decoded["instruments"].(map[string]interface{})
	aapl := instruments["AAPL"].(map[string]interface{})
	indicators := aapl["indicators"].(map[string]interface{})

	assert.Nil(t, indicators["sma_20"])
	assert.Equal(t, 55.5, indicators["rsi_14"])
}

func TestSanitize_InfiniteBecomesNull(t *testing.T) {
	out := Sanitize(math.Inf(1))
	assert.Nil(t, out)
}

func TestSanitize_FiniteFloatPassesThrough(t *testing.T) {
	out := Sanitize(42.5)
	assert.Equal(t, 42.5, out)
}
