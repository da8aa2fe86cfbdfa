package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed_MarketClosedForToday(t *testing.T) {
	cases := []struct {
		name   string
		at     string
		closed bool
	}{
		{"mid-afternoon, still open", "2024-01-15 14:00", false},
		{"just before buffer", "2024-01-15 16:14", false},
		{"at buffer", "2024-01-15 16:15", true},
		{"well after close", "2024-01-15 16:16", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewFixed("2006-01-02 15:04", tc.at)
			require.NoError(t, err)
			assert.Equal(t, tc.closed, f.MarketClosedForToday())
		})
	}
}

func TestFixed_TodayNY(t *testing.T) {
	f, err := NewFixed("2006-01-02 15:04", "2024-01-15 23:59")
	require.NoError(t, err)
	today := f.TodayNY()
	assert.Equal(t, 2024, today.Year())
	assert.Equal(t, 15, today.Day())
	assert.Equal(t, 0, today.Hour())
}
