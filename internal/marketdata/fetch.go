// Package marketdata implements the Data Acquisition Layer (spec §4.2):
// provider routing, retry/backoff, rate limiting, adjustment, session
// trimming, and the bounded-concurrency universe fetch.
package marketdata

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketlab/dma/internal/clock"
	"github.com/marketlab/dma/internal/config"
	"github.com/marketlab/dma/internal/secrets"
	"github.com/marketlab/dma/internal/series"
	"github.com/marketlab/dma/internal/universe"
)

// Fetcher is the entry point collaborators use to pull and clean a symbol's
// bar history. A new worker-local Provider client is created per fetch so
// the rate limiter and RNG are never shared across goroutines (spec §5, §9).
type Fetcher struct {
	cfg      config.Config
	secrets  secrets.Secrets
	oracle   clock.Oracle
	cache    *Cache
	baseURLA string
	baseURLB string
	log      zerolog.Logger
}

func NewFetcher(cfg config.Config, sec secrets.Secrets, oracle clock.Oracle, cache *Cache, baseURLA, baseURLB string, log zerolog.Logger) *Fetcher {
	return &Fetcher{cfg: cfg, secrets: sec, oracle: oracle, cache: cache, baseURLA: baseURLA, baseURLB: baseURLB, log: log}
}

// Fetch implements spec §4.2's `fetch(symbol, start_date, end_date)` for one symbol.
func (f *Fetcher) Fetch(ctx context.Context, sym universe.Symbol, start, end time.Time) (series.Raw, error) {
	return f.fetchOne(ctx, sym, start, end, time.Now().UnixNano())
}

func (f *Fetcher) fetchOne(ctx context.Context, sym universe.Symbol, start, end time.Time, seed int64) (series.Raw, error) {
	if cached, ok := f.cache.Get(ctx, sym.Ticker, start, end); ok {
		return f.finish(sym.Ticker, cached)
	}

	var provider Provider
	if sym.IsVolIndex {
		provider = NewProviderB(f.cfg, f.baseURLB, seed, f.log)
	} else {
		provider = NewProviderA(f.cfg, f.baseURLA, f.secrets.ProviderAToken, seed, f.log)
	}

	bars, err := provider.Fetch(ctx, sym.Ticker, sym.Exchange, start, end)
	if err != nil {
		return series.Raw{}, err
	}

	if !sym.IsVolIndex {
		applyAdjustment(bars)
	}

	f.cache.Set(ctx, sym.Ticker, start, end, bars)
	return f.finish(sym.Ticker, bars)
}

func (f *Fetcher) finish(ticker string, bars []series.Bar) (series.Raw, error) {
	trimmed := trimSession(bars, f.oracle)
	if len(trimmed) < f.cfg.MinRequiredRows {
		return series.Raw{}, newErr(KindInsufficient, ticker,
			fmt.Errorf("got %d rows, need at least %d", len(trimmed), f.cfg.MinRequiredRows))
	}

	raw := series.Raw{Ticker: ticker, Bars: trimmed}
	if err := raw.Validate(); err != nil {
		return series.Raw{}, newErr(KindInternal, ticker, err)
	}
	return raw, nil
}

// FetchUniverse implements spec §4.2's `fetch_universe(start,end)`: bounded
// concurrency across the universe (max BATCH_SIZE in flight), throttled by a
// BATCH_DELAY pause every BATCH_SIZE completions. Per-symbol failures are
// collected, never aborting the run.
func (f *Fetcher) FetchUniverse(ctx context.Context, uni *universe.Universe, start, end time.Time) (map[string]series.Raw, map[string]error) {
	batchSize := f.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 1
	}

	results := make(map[string]series.Raw, len(uni.Symbols))
	failures := make(map[string]error, len(uni.Symbols))
	var mu sync.Mutex

	sem := make(chan struct{}, batchSize)
	var wg sync.WaitGroup
	var completed int32

	for i, sym := range uni.Symbols {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, sym universe.Symbol) {
			defer wg.Done()
			defer func() { <-sem }()

			// Each goroutine gets its own RNG; *rand.Rand is not safe for
			// concurrent use and batch boundaries from different goroutines
			// can land at the same time (spec §5, §9).
			workerRNG := rand.New(rand.NewSource(int64(i) + 1))

			raw, err := f.fetchOne(ctx, sym, start, end, int64(i+1))

			mu.Lock()
			if err != nil {
				failures[sym.Ticker] = err
				f.log.Warn().Str("ticker", sym.Ticker).Err(err).Msg("symbol fetch failed")
			} else {
				results[sym.Ticker] = raw
			}
			mu.Unlock()

			if n := atomic.AddInt32(&completed, 1); n%int32(batchSize) == 0 {
				_ = sleepCtx(ctx, randomDelay(workerRNG, f.cfg.BatchDelayMinSeconds, f.cfg.BatchDelayMaxSeconds))
			}
		}(i, sym)
	}
	wg.Wait()

	return results, failures
}
