package marketdata

import (
	"sort"
	"time"

	"github.com/marketlab/dma/internal/clock"
	"github.com/marketlab/dma/internal/series"
)

// trimSession implements spec §4.2's session-trimming rule: drop today's bar
// if the market has not yet closed, drop any bar with a non-positive
// open/high/low/close, and sort ascending by date.
func trimSession(bars []series.Bar, oracle clock.Oracle) []series.Bar {
	todayNY := oracle.TodayNY()
	marketClosed := oracle.MarketClosedForToday()

	out := make([]series.Bar, 0, len(bars))
	for _, b := range bars {
		if !marketClosed && sameDate(b.Date, todayNY) {
			continue
		}
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			continue
		}
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
