// Package series models the raw OHLCV bar and the enriched, struct-of-arrays
// series that the indicator engine produces from it (spec §3, design note in
// spec §9: a typed, column-oriented view rather than a rigid schema).
package series

import (
	"fmt"
	"time"
)

// Bar is one day's OHLCV record for a symbol.
type Bar struct {
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   float64
}

// Raw is an ordered sequence of bars for one symbol, ascending by date.
type Raw struct {
	Ticker string
	Bars   []Bar
}

// Validate checks the per-bar invariants from spec §3, including that dates
// are strictly increasing across bars; an unsorted or duplicated date is an error.
func (r Raw) Validate() error {
	for i, b := range r.Bars {
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			return fmt.Errorf("%s: bar %d (%s) has non-positive O/H/L/C", r.Ticker, i, b.Date.Format("2006-01-02"))
		}
		if b.AdjClose <= 0 {
			return fmt.Errorf("%s: bar %d (%s) has non-positive adjusted close", r.Ticker, i, b.Date.Format("2006-01-02"))
		}
		if b.Volume < 0 {
			return fmt.Errorf("%s: bar %d (%s) has negative volume", r.Ticker, i, b.Date.Format("2006-01-02"))
		}
		maxOCL := max3(b.Open, b.Close, b.Low)
		if b.High < maxOCL {
			return fmt.Errorf("%s: bar %d (%s) high %.4f below max(open,close,low) %.4f", r.Ticker, i, b.Date.Format("2006-01-02"), b.High, maxOCL)
		}
		minOCH := min3(b.Open, b.Close, b.High)
		if b.Low > minOCH {
			return fmt.Errorf("%s: bar %d (%s) low %.4f above min(open,close,high) %.4f", r.Ticker, i, b.Date.Format("2006-01-02"), b.Low, minOCH)
		}
		if i > 0 && !b.Date.After(r.Bars[i-1].Date) {
			return fmt.Errorf("%s: bar %d (%s) date not strictly increasing after %s", r.Ticker, i, b.Date.Format("2006-01-02"), r.Bars[i-1].Date.Format("2006-01-02"))
		}
	}
	return nil
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
