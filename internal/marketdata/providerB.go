package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/marketlab/dma/internal/config"
	"github.com/marketlab/dma/internal/series"
)

// ProviderB is the keyless history provider (spec §6.1). It returns the full
// available history for a ticker; Fetch filters to [start,end] locally.
type ProviderB struct {
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
	rng        *rand.Rand
	cfg        config.Config
	log        zerolog.Logger
}

func NewProviderB(cfg config.Config, baseURL string, rngSeed int64, log zerolog.Logger) *ProviderB {
	return &ProviderB{
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		baseURL:    baseURL,
		breaker:    newBreaker("provider-b"),
		rng:        rand.New(rand.NewSource(rngSeed)),
		cfg:        cfg,
		log:        log.With().Str("provider", "B").Logger(),
	}
}

type providerBBar struct {
	Date     string  `json:"Date"`
	Open     float64 `json:"Open"`
	High     float64 `json:"High"`
	Low      float64 `json:"Low"`
	Close    float64 `json:"Close"`
	AdjClose float64 `json:"Adj Close"`
	Volume   float64 `json:"Volume"`
}

// Fetch implements Provider for the keyless history API. No token, no
// per-request jitter is required by spec (jitter is a provider-A rule), but
// the circuit breaker and retry classification still apply.
func (p *ProviderB) Fetch(ctx context.Context, ticker, exchange string, start, end time.Time) ([]series.Bar, error) {
	u := fmt.Sprintf("%s/history/%s", p.baseURL, ticker)

	var raw []providerBBar
	attempt := 0
	for {
		result, execErr := p.breaker.Execute(func() (interface{}, error) {
			return p.doRequest(ctx, u)
		})
		if execErr == nil {
			raw = result.([]providerBBar)
			break
		}

		mdErr, ok := execErr.(*Error)
		if !ok {
			mdErr = newErr(KindTransient, ticker, execErr)
		}
		if !mdErr.Kind.Retryable() || attempt >= p.cfg.MaxRetries {
			return nil, mdErr
		}
		if err := sleepCtx(ctx, retryBackoff(mdErr.Kind, attempt)); err != nil {
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
		if d.Before(start) || d.After(end) {
			continue
		}
		adj := b.AdjClose
		if adj == 0 {
			adj = b.Close
		}
		bars = append(bars, series.Bar{
			Date: d, Open: b.Open, High: b.High, Low: b.Low,
			Close: b.Close, AdjClose: adj, Volume: b.Volume,
		})
	}
	return bars, nil
}

func (p *ProviderB) doRequest(ctx context.Context, fullURL string) ([]providerBBar, error) {
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
		return nil, newErr(classifyStatus(resp.StatusCode), "", fmt.Errorf("provider B returned status %d", resp.StatusCode))
	}

	var raw []providerBBar
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, newErr(KindInternal, "", err)
	}
	return raw, nil
}
