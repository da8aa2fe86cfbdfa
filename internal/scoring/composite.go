package scoring

import (
	"github.com/marketlab/dma/internal/config"
	"github.com/marketlab/dma/internal/series"
)

// Score computes the full Set for one symbol (spec §4.4 "score(symbol,
// enriched series, benchmark enriched series) -> score set"). benchmark may
// be nil if its series was unavailable.
func Score(ticker, benchmarkTicker string, e *series.Enriched, benchmark *series.Enriched, weights config.Weights) Set {
	trend := TrendScore(e)
	momentum := MomentumScore(e)
	volatility := VolatilityScore(e)
	relStrength := RelativeStrengthScore(ticker, benchmarkTicker, e, benchmark)

	composite := weights.Trend*trend +
		weights.Momentum*momentum +
		weights.Volatility*(100-volatility) +
		weights.RelStrength*relStrength

	return Set{
		Composite:        round2(clamp(composite, 0, 100)),
		Trend:            trend,
		Momentum:         momentum,
		Volatility:       volatility,
		RelativeStrength: relStrength,
	}
}
