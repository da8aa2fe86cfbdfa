package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/marketlab/dma/internal/config"
	"github.com/marketlab/dma/internal/series"
)

// ProviderA is the keyed EOD data provider (spec §6.1). One instance is
// created per worker goroutine; its rate limiter and RNG are never shared
// (spec §5, §9).
type ProviderA struct {
	httpClient *http.Client
	baseURL    string
	token      string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	rng        *rand.Rand
	cfg        config.Config
	log        zerolog.Logger
}

// NewProviderA builds a worker-local provider A client. rngSeed should be
// distinct per worker to avoid correlated jitter across goroutines.
func NewProviderA(cfg config.Config, baseURL, token string, rngSeed int64, log zerolog.Logger) *ProviderA {
	return &ProviderA{
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		baseURL:    baseURL,
		token:      token,
		limiter:    newWorkerLimiter(cfg),
		breaker:    newBreaker("provider-a"),
		rng:        rand.New(rand.NewSource(rngSeed)),
		cfg:        cfg,
		log:        log.With().Str("provider", "A").Logger(),
	}
}

type providerABar struct {
	Date          string  `json:"date"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	AdjustedClose float64 `json:"adjusted_close"`
	Volume        float64 `json:"volume"`
}

// Fetch implements Provider for the keyed EOD API (spec §6.1, §4.2 retries).
func (p *ProviderA) Fetch(ctx context.Context, ticker, exchange string, start, end time.Time) ([]series.Bar, error) {
	if p.token == "" {
		return nil, newErr(KindConfigMissing, ticker, fmt.Errorf("provider A token not configured"))
	}

	u := fmt.Sprintf("%s/eod/%s.%s", p.baseURL, ticker, exchange)
	q := url.Values{}
	q.Set("api_token", p.token)
	q.Set("from", start.Format("2006-01-02"))
	q.Set("to", end.Format("2006-01-02"))
	q.Set("fmt", "json")
	q.Set("period", "d")

	var raw []providerABar
	attempt := 0
	for {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, newErr(KindInternal, ticker, err)
		}
		if err := sleepCtx(ctx, randomDelay(p.rng, p.cfg.RequestDelayMinSeconds, p.cfg.RequestDelayMaxSeconds)); err != nil {
			return nil, newErr(KindInternal, ticker, err)
		}

		result, execErr := p.breaker.Execute(func() (interface{}, error) {
			return p.doRequest(ctx, u+"?"+q.Encode())
		})

		if execErr == nil {
			raw = result.([]providerABar)
			break
		}

		mdErr, ok := execErr.(*Error)
		if !ok {
			// gobreaker.ErrOpenState / ErrTooManyRequests: the breaker itself
			// is short-circuiting calls to an already-failing provider.
			mdErr = newErr(KindTransient, ticker, execErr)
		}
		if !mdErr.Kind.Retryable() || attempt >= p.cfg.MaxRetries {
			return nil, mdErr
		}

		backoff := retryBackoff(mdErr.Kind, attempt)
		p.log.Warn().Str("ticker", ticker).Int("attempt", attempt).Dur("backoff", backoff).Msg("retrying provider A request")
		if err := sleepCtx(ctx, backoff); err != nil {
			return nil, newErr(KindInternal, ticker, err)
		}
		attempt++
	}

	bars := make([]series.Bar, 0, len(raw))
	for _, b := range raw {
		d, err := time.Parse("2006-01-02", b.Date)
		if err != nil {
			continue
		}
		bars = append(bars, series.Bar{
			Date: d, Open: b.Open, High: b.High, Low: b.Low,
			Close: b.Close, AdjClose: b.AdjustedClose, Volume: b.Volume,
		})
	}
	return bars, nil
}

func (p *ProviderA) doRequest(ctx context.Context, fullURL string) ([]providerABar, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, newErr(KindInternal, "", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, newErr(KindTransient, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newErr(classifyStatus(resp.StatusCode), "", fmt.Errorf("provider A returned status %d", resp.StatusCode))
	}

	var raw []providerABar
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, newErr(KindInternal, "", err)
	}
	return raw, nil
}

// classifyStatus implements spec §4.2's retry/error classification table.
func classifyStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuthFailed
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 500:
		return KindTransient
	default:
		return KindProviderRejected
	}
}

// retryBackoff implements exponential backoff (base 2) for transient
// failures and linear backoff (attempt × base) for rate limiting.
func retryBackoff(kind Kind, attempt int) time.Duration {
	const base = 1 * time.Second
	switch kind {
	case KindRateLimited:
		return time.Duration(attempt+1) * base
	default:
		return time.Duration(math.Pow(2, float64(attempt))) * base
	}
}
