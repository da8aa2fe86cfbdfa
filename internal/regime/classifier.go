// Package regime classifies the aggregate market regime from the enriched
// series of two reference symbols: a volatility index and a broad-market
// equity proxy (spec §4.5).
package regime

import (
	"math"

	"github.com/marketlab/dma/internal/series"
)

type VixRegime string

const (
	VixLow     VixRegime = "low"
	VixMedium  VixRegime = "medium"
	VixHigh    VixRegime = "high"
	VixUnknown VixRegime = "unknown"
)

type Trend string

const (
	TrendUp      Trend = "uptrend"
	TrendDown    Trend = "downtrend"
	TrendUnknown Trend = "unknown"
)

type Tristate string

const (
	TristateTrue    Tristate = "true"
	TristateFalse   Tristate = "false"
	TristateUnknown Tristate = "unknown"
)

type MarketCondition string

const (
	ConditionBullish         MarketCondition = "bullish"
	ConditionBearish         MarketCondition = "bearish"
	ConditionVolatileBullish MarketCondition = "volatile_bullish"
	ConditionQuietBearish    MarketCondition = "quiet_bearish"
	ConditionNeutral         MarketCondition = "neutral"
	ConditionUnknown         MarketCondition = "unknown"
)

type RiskAppetite string

const (
	RiskOn      RiskAppetite = "risk-on"
	RiskNeutral RiskAppetite = "neutral"
	RiskOff     RiskAppetite = "risk-off"
)

// Snapshot is the regime record emitted alongside the analysis result (spec §3).
type Snapshot struct {
	VixLevel        float64
	VixRegime       VixRegime
	SpyAboveSMA200  Tristate
	SpyTrend        Trend
	MarketCondition MarketCondition
	RiskAppetite    RiskAppetite
}

// Classify implements spec §4.5. vixSeries/broadSeries may be nil if the
// reference symbol's enriched series was unavailable, in which case the
// corresponding fields are marked unknown but a Snapshot is still returned.
func Classify(vixSeries *series.Enriched, broadSeries *series.Enriched, vixLow, vixMedium float64) Snapshot {
	snap := Snapshot{
		VixRegime:       VixUnknown,
		SpyAboveSMA200:  TristateUnknown,
		SpyTrend:        TrendUnknown,
		MarketCondition: ConditionUnknown,
		RiskAppetite:    RiskNeutral,
	}

	if vixSeries != nil {
		level := vixSeries.Last(series.ColClose)
		if !math.IsNaN(level) {
			snap.VixLevel = level
			switch {
			case level < vixLow:
				snap.VixRegime = VixLow
			case level < vixMedium:
				snap.VixRegime = VixMedium
			default:
				snap.VixRegime = VixHigh
			}
		}
	}

	if broadSeries != nil {
		closeVal := broadSeries.Last(series.ColClose)
		sma200 := broadSeries.Last(series.ColSMA200)
		if !math.IsNaN(closeVal) && !math.IsNaN(sma200) {
			if closeVal > sma200 {
				snap.SpyAboveSMA200 = TristateTrue
				snap.SpyTrend = TrendUp
			} else {
				snap.SpyAboveSMA200 = TristateFalse
				snap.SpyTrend = TrendDown
			}
		}
	}

	snap.RiskAppetite = riskAppetiteFor(snap.VixRegime)
	snap.MarketCondition = marketConditionFor(snap.VixRegime, snap.SpyTrend)

	return snap
}

func riskAppetiteFor(v VixRegime) RiskAppetite {
	switch v {
	case VixLow:
		return RiskOn
	case VixHigh:
		return RiskOff
	default:
		return RiskNeutral
	}
}

// marketConditionFor implements the decision table of spec §4.5, first match wins.
func marketConditionFor(v VixRegime, trend Trend) MarketCondition {
	switch {
	case v == VixLow && trend == TrendUp:
		return ConditionBullish
	case v == VixHigh && trend == TrendDown:
		return ConditionBearish
	case v == VixHigh && trend == TrendUp:
		return ConditionVolatileBullish
	case v == VixLow && trend == TrendDown:
		return ConditionQuietBearish
	default:
		return ConditionNeutral
	}
}
