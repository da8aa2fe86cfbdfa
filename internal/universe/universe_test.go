package universe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
symbols:
  - ticker: VIX
    is_volatility_index: true
  - ticker: SPY
    is_broad_market: true
  - ticker: AAPL
    benchmark: SPY
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "universe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	return path
}

func TestLoad_PreservesOrderAndLookups(t *testing.T) {
	u, err := Load(writeSample(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"VIX", "SPY", "AAPL"}, u.Tickers())

	vix, ok := u.VolatilityIndex()
	require.True(t, ok)
	assert.Equal(t, "VIX", vix.Ticker)

	spy, ok := u.BroadMarket()
	require.True(t, ok)
	assert.Equal(t, "SPY", spy.Ticker)

	aapl, ok := u.Get("AAPL")
	require.True(t, ok)
	assert.Equal(t, "SPY", aapl.Benchmark)

	_, ok = u.Get("MISSING")
	assert.False(t, ok)
}

func TestLoad_RejectsDuplicateTickers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "universe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("symbols:\n  - ticker: AAPL\n  - ticker: AAPL\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
