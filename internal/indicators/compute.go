package indicators

import (
	"fmt"

	"github.com/marketlab/dma/internal/config"
	"github.com/marketlab/dma/internal/series"
)

// Params carries the subset of config needed by the indicator engine.
type Params struct {
	SMAPeriods    []int
	ROCPeriods    []int
	HVolPeriods   []int
	ZScorePeriods []int
	RSIPeriod     int
	MACDFast      int
	MACDSlow      int
	MACDSignal    int
	ADXPeriod     int
	ATRPeriod     int
	BBPeriod      int
	BBStdDev      float64
}

// ParamsFromConfig adapts the process config into indicator Params.
func ParamsFromConfig(c config.Config) Params {
	return Params{
		SMAPeriods:    c.SMAPeriods,
		ROCPeriods:    c.ROCPeriods,
		HVolPeriods:   c.HVolPeriods,
		ZScorePeriods: c.ZScorePeriods,
		RSIPeriod:     c.RSIPeriod,
		MACDFast:      c.MACDFast,
		MACDSlow:      c.MACDSlow,
		MACDSignal:    c.MACDSignal,
		ADXPeriod:     c.ADXPeriod,
		ATRPeriod:     c.ATRPeriod,
		BBPeriod:      c.BBPeriod,
		BBStdDev:      c.BBStdDev,
	}
}

// ComputeAll is the pure function from a raw series to an enriched series
// (spec §4.3). Required columns are Date/Open/High/Low/Close/Volume;
// AdjClose falls back to Close if the raw series didn't populate it (raw.Bars
// always carries it per spec §3, but the engine itself does not need it
// beyond close for indicator math).
func ComputeAll(raw series.Raw, p Params) (*series.Enriched, error) {
	if len(raw.Bars) == 0 {
		return nil, fmt.Errorf("indicators: empty series for %s", raw.Ticker)
	}

	e := series.NewEnriched(raw)

	adj := e.Get(series.ColAdjClose)
	close_ := e.Get(series.ColClose)
	for i := range adj {
		if adj[i] == 0 {
			adj[i] = close_[i]
		}
	}

	computePriceLevels(e)
	computeMovingAverages(e)
	computeRSI(e, p.RSIPeriod)
	computeMACD(e, p.MACDFast, p.MACDSlow, p.MACDSignal)
	computeADX(e, p.ADXPeriod)
	computeROC(e, p.ROCPeriods)
	computeATR(e, p.ATRPeriod)
	computeBollinger(e, p.BBPeriod, p.BBStdDev)
	computeHistoricalVolatility(e, p.HVolPeriods)
	computeZScore(e, p.ZScorePeriods)
	computeRange52w(e)
	computeReturns(e)
	computeVolume(e)

	return e, nil
}
