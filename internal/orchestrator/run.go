package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marketlab/dma/internal/clock"
	"github.com/marketlab/dma/internal/config"
	"github.com/marketlab/dma/internal/indicators"
	"github.com/marketlab/dma/internal/marketdata"
	"github.com/marketlab/dma/internal/regime"
	"github.com/marketlab/dma/internal/scoring"
	"github.com/marketlab/dma/internal/series"
	"github.com/marketlab/dma/internal/signals"
	"github.com/marketlab/dma/internal/universe"
)

// Orchestrator sequences one run end to end (spec §4.7).
type Orchestrator struct {
	cfg     config.Config
	uni     *universe.Universe
	fetcher *marketdata.Fetcher
	oracle  clock.Oracle
	metrics *Metrics
	store   *Store
	log     zerolog.Logger
}

func New(cfg config.Config, uni *universe.Universe, fetcher *marketdata.Fetcher, oracle clock.Oracle, metrics *Metrics, store *Store, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{cfg: cfg, uni: uni, fetcher: fetcher, oracle: oracle, metrics: metrics, store: store, log: log}
}

// Run executes the full pipeline of spec §4.7, returning a partial result
// (with the symbols completed so far) if ctx is cancelled mid-flight.
func (o *Orchestrator) Run(ctx context.Context) (*AnalysisResult, error) {
	runStart := time.Now()
	runID := uuid.NewString()
	log := o.log.With().Str("run_id", runID).Logger()

	end := o.oracle.TodayNY()
	start := end.AddDate(0, 0, -o.cfg.DataLookbackDays)

	raw, fetchFailures := o.fetcher.FetchUniverse(ctx, o.uni, start, end)
	if o.metrics != nil {
		o.metrics.ObserveFetchFailures(len(fetchFailures))
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("orchestrator: no symbols fetched, aborting run")
	}

	failed := make(map[string]string, len(fetchFailures))
	for ticker, err := range fetchFailures {
		failed[ticker] = err.Error()
	}

	enriched := make(map[string]*series.Enriched, len(raw))
	params := indicators.ParamsFromConfig(o.cfg)
	for ticker, rawSeries := range raw {
		e, err := indicators.ComputeAll(rawSeries, params)
		if err != nil {
			log.Warn().Str("ticker", ticker).Err(err).Msg("indicator computation failed")
			failed[ticker] = err.Error()
			continue
		}
		enriched[ticker] = e
	}

	// Barrier: every enriched series must exist before scoring begins,
	// since relative-strength scoring does cross-series benchmark lookups.
	volSym, hasVol := o.uni.VolatilityIndex()
	broadSym, hasBroad := o.uni.BroadMarket()

	var vixSeries, broadSeries *series.Enriched
	if hasVol {
		vixSeries = enriched[volSym.Ticker]
	}
	if hasBroad {
		broadSeries = enriched[broadSym.Ticker]
	}

	// A global failure: with neither reference symbol present, regime
	// classification has nothing to work from at all (spec §4.7, §7).
	if vixSeries == nil && broadSeries == nil {
		return nil, fmt.Errorf("orchestrator: no reference symbols produced enriched series, aborting run")
	}
	if vixSeries == nil || broadSeries == nil {
		log.Warn().Msg("one reference symbol missing, regime snapshot will be marked unknown")
	}
	snapshot := regime.Classify(vixSeries, broadSeries, o.cfg.VIXLow, o.cfg.VIXMedium)

	instruments := make(map[string]InstrumentRecord, len(enriched))
	for ticker, e := range enriched {
		sym, _ := o.uni.Get(ticker)
		var benchmark *series.Enriched
		if sym.Benchmark != "" {
			benchmark = enriched[sym.Benchmark]
		}
		scoreSet := scoring.Score(ticker, sym.Benchmark, e, benchmark, o.cfg.Weights)
		sigList := signals.Generate(e, o.cfg.SignalThresholds)

		instruments[ticker] = InstrumentRecord{
			Info: Info{Ticker: ticker, Name: sym.Name, Category: sym.Category, Benchmark: sym.Benchmark},
			Current: CurrentBar{
				Date: e.LastDate(), Open: e.Last(series.ColOpen), High: e.Last(series.ColHigh),
				Low: e.Last(series.ColLow), Close: e.Last(series.ColClose), Volume: e.Last(series.ColVolume),
			},
			KeyLevels: KeyLevels{
				PrevDayHigh: e.Last(series.ColPrevDayHigh), PrevDayLow: e.Last(series.ColPrevDayLow),
				PrevWeekHigh: e.Last(series.ColPrevWeekHigh), PrevWeekLow: e.Last(series.ColPrevWeekLow),
				PivotPoint: e.Last(series.ColPivotPoint), R1: e.Last(series.ColR1), R2: e.Last(series.ColR2),
				S1: e.Last(series.ColS1), S2: e.Last(series.ColS2),
			},
			Indicators: IndicatorSummary{
				SMA20: e.Last(series.ColSMA20), SMA50: e.Last(series.ColSMA50),
				SMA125: e.Last(series.ColSMA125), SMA200: e.Last(series.ColSMA200),
				RSI14: e.Last(series.ColRSI14), MACD: e.Last(series.ColMACD),
				ADX: e.Last(series.ColADX), ATRPct: e.Last(series.ColATRPct),
			},
			Scores:  scoreSet,
			Signals: sigList,
		}
	}

	rankings := buildRankings(instruments, o.uni)

	result := &AnalysisResult{
		RunID: runID,
		Metadata: Metadata{
			AnalysisDate:        end,
			GeneratedAt:         time.Now(),
			Version:             version,
			InstrumentsAnalyzed: len(instruments),
			DateRange:           DateRange{Start: start, End: end},
		},
		MarketRegime:  snapshot,
		Instruments:   instruments,
		Rankings:      rankings,
		NotableEvents: collectNotableEvents(instruments),
		FailedSymbols: failed,
	}

	if o.metrics != nil {
		o.metrics.ObserveRunDuration(time.Since(runStart))
	}
	if o.store != nil {
		if err := o.store.SaveRun(ctx, result); err != nil {
			log.Warn().Err(err).Msg("failed to persist run")
		}
	}

	return result, nil
}

// buildRankings sorts the universe by each scoring criterion (spec §4.7 step
// 8, §8 scenario 6): descending for all but volatility, which ranks ascending
// (lowest realized volatility first). Ties break by the symbol's declared
// position in the universe.
func buildRankings(instruments map[string]InstrumentRecord, uni *universe.Universe) Rankings {
	order := make(map[string]int, len(uni.Symbols))
	for i, s := range uni.Symbols {
		order[s.Ticker] = i
	}

	tickers := make([]string, 0, len(instruments))
	for t := range instruments {
		tickers = append(tickers, t)
	}

	rankBy := func(score func(InstrumentRecord) float64, ascending bool) []string {
		out := make([]string, len(tickers))
		copy(out, tickers)
		sort.SliceStable(out, func(i, j int) bool {
			si, sj := score(instruments[out[i]]), score(instruments[out[j]])
			if si == sj {
				return order[out[i]] < order[out[j]]
			}
			if ascending {
				return si < sj
			}
			return si > sj
		})
		return out
	}

	return Rankings{
		ByCompositeScore:   rankBy(func(r InstrumentRecord) float64 { return r.Scores.Composite }, false),
		ByTrend:            rankBy(func(r InstrumentRecord) float64 { return r.Scores.Trend }, false),
		ByMomentum:         rankBy(func(r InstrumentRecord) float64 { return r.Scores.Momentum }, false),
		ByVolatility:       rankBy(func(r InstrumentRecord) float64 { return r.Scores.Volatility }, true),
		ByRelativeStrength: rankBy(func(r InstrumentRecord) float64 { return r.Scores.RelativeStrength }, false),
	}
}

// collectNotableEvents surfaces a coarse, human-readable digest of symbols
// carrying a breakout or extreme-momentum signal, for quick scanning.
func collectNotableEvents(instruments map[string]InstrumentRecord) []string {
	var events []string
	for ticker, rec := range instruments {
		for _, s := range rec.Signals {
			if s == "Extreme Overbought" || s == "Extreme Oversold" || s == "Golden Cross" || s == "Death Cross" {
				events = append(events, fmt.Sprintf("%s: %s", ticker, s))
			}
		}
	}
	sort.Strings(events)
	return events
}
