package marketdata

import (
	"context"
	"math/rand"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/marketlab/dma/internal/config"
	"github.com/marketlab/dma/internal/series"
)

// Provider fetches a raw, unadjusted bar history for one ticker (spec §4.2
// "fetch(symbol, start_date, end_date) → raw series or error", provider half).
type Provider interface {
	Fetch(ctx context.Context, ticker, exchange string, start, end time.Time) ([]series.Bar, error)
}

// randomDelay returns a randomized duration in [min,max] seconds, per spec's
// per-request jitter. Uses the caller's own *rand.Rand so concurrent workers
// never contend on a shared RNG (spec §9 design notes).
func randomDelay(rng *rand.Rand, minSeconds, maxSeconds float64) time.Duration {
	if maxSeconds <= minSeconds {
		return time.Duration(minSeconds * float64(time.Second))
	}
	span := maxSeconds - minSeconds
	d := minSeconds + rng.Float64()*span
	return time.Duration(d * float64(time.Second))
}

// sleepCtx sleeps for d or returns early with ctx.Err() if cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	st := gobreaker.Settings{Name: name}
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 5
	}
	st.Timeout = 30 * time.Second
	return gobreaker.NewCircuitBreaker(st)
}

func newWorkerLimiter(cfg config.Config) *rate.Limiter {
	// At most one request per RequestDelayMax seconds; burst 1 so every
	// call actually waits, matching the spec's per-request jitter rather
	// than a token-bucket burst.
	rps := 1.0
	if cfg.RequestDelayMaxSeconds > 0 {
		rps = 1.0 / cfg.RequestDelayMaxSeconds
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}
