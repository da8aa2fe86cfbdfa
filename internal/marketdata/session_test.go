package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketlab/dma/internal/clock"
	"github.com/marketlab/dma/internal/series"
)

func bar(dateStr string) series.Bar {
	d, _ := time.Parse("2006-01-02", dateStr)
	return series.Bar{Date: d, Open: 1, High: 2, Low: 0.5, Close: 1.5, AdjClose: 1.5, Volume: 100}
}

// Scenario 4 (session trim), spec §8.
func TestTrimSession_MarketOpen_DropsTodayBar(t *testing.T) {
	oracle, err := clock.NewFixed("2006-01-02 15:04", "2024-01-15 14:00")
	require.NoError(t, err)

	bars := []series.Bar{bar("2024-01-12"), bar("2024-01-15")}
	out := trimSession(bars, oracle)

	require.Len(t, out, 1)
	assert.Equal(t, "2024-01-12", out[0].Date.Format("2006-01-02"))
}

func TestTrimSession_MarketClosed_RetainsTodayBar(t *testing.T) {
	oracle, err := clock.NewFixed("2006-01-02 15:04", "2024-01-15 16:16")
	require.NoError(t, err)

	bars := []series.Bar{bar("2024-01-12"), bar("2024-01-15")}
	out := trimSession(bars, oracle)

	require.Len(t, out, 2)
	assert.Equal(t, "2024-01-15", out[1].Date.Format("2006-01-02"))
}

func TestTrimSession_DropsNonPositiveBarsAndSorts(t *testing.T) {
	oracle, err := clock.NewFixed("2006-01-02 15:04", "2024-01-15 16:16")
	require.NoError(t, err)

	bad := bar("2024-01-10")
	bad.Close = 0

	bars := []series.Bar{bar("2024-01-12"), bad, bar("2024-01-11")}
	out := trimSession(bars, oracle)

	require.Len(t, out, 2)
	assert.True(t, out[0].Date.Before(out[1].Date))
}
