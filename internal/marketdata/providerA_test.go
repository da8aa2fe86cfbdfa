package marketdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketlab/dma/internal/config"
)

func testConfig() config.Config {
	c := config.Default()
	c.RequestDelayMinSeconds = 0
	c.RequestDelayMaxSeconds = 0.001
	c.MaxRetries = 2
	c.TimeoutSeconds = 5
	return c
}

func TestProviderA_Fetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]providerABar{
			{Date: "2024-01-02", Open: 10, High: 11, Low: 9, Close: 10, AdjustedClose: 10, Volume: 100},
			{Date: "2024-01-03", Open: 11, High: 12, Low: 10, Close: 11, AdjustedClose: 11, Volume: 120},
		})
	}))
	defer srv.Close()

	p := NewProviderA(testConfig(), srv.URL, "tok", 1, zerolog.Nop())
	bars, err := p.Fetch(context.Background(), "AAPL", "US", time.Now().AddDate(0, 0, -10), time.Now())
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 10.0, bars[0].Close)
}

func TestProviderA_Fetch_NoTokenIsConfigMissing(t *testing.T) {
	p := NewProviderA(testConfig(), "http://example.invalid", "", 1, zerolog.Nop())
	_, err := p.Fetch(context.Background(), "AAPL", "US", time.Now(), time.Now())
	require.Error(t, err)
	mdErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindConfigMissing, mdErr.Kind)
}

func TestProviderA_Fetch_401FailsFastWithoutRetry(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewProviderA(testConfig(), srv.URL, "tok", 1, zerolog.Nop())
	_, err := p.Fetch(context.Background(), "AAPL", "US", time.Now(), time.Now())
	require.Error(t, err)
	mdErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindAuthFailed, mdErr.Kind)
	assert.Equal(t, 1, attempts)
}

func TestProviderA_Fetch_TransientRetriesThenSucceeds(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode([]providerABar{
			{Date: "2024-01-02", Open: 10, High: 11, Low: 9, Close: 10, AdjustedClose: 10, Volume: 100},
		})
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxRetries = 3
	p := NewProviderA(cfg, srv.URL, "tok", 1, zerolog.Nop())
	bars, err := p.Fetch(context.Background(), "AAPL", "US", time.Now(), time.Now())
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, 3, attempts)
}

func TestProviderA_Fetch_NonRetryable4xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewProviderA(testConfig(), srv.URL, "tok", 1, zerolog.Nop())
	_, err := p.Fetch(context.Background(), "AAPL", "US", time.Now(), time.Now())
	require.Error(t, err)
	mdErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindProviderRejected, mdErr.Kind)
}
