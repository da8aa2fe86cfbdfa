// Package clock supplies the reference as-of date and session-closed state
// used to decide whether today's (possibly partial) bar should be trimmed.
package clock

import "time"

// closeHour/closeMinute mark the US equity closing buffer: 16:15 America/New_York.
const (
	closeHour   = 16
	closeMinute = 15
)

// Oracle reports the current NY calendar date and whether the session is
// considered closed for that date. It is injected wherever "now" matters so
// tests can pin the wall clock.
type Oracle interface {
	TodayNY() time.Time
	MarketClosedForToday() bool
}

// SystemOracle implements Oracle against the real wall clock.
type SystemOracle struct {
	loc *time.Location
}

// NewSystemOracle loads America/New_York once and returns an Oracle bound to it.
func NewSystemOracle() (*SystemOracle, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, err
	}
	return &SystemOracle{loc: loc}, nil
}

// TodayNY returns the current calendar date in America/New_York, time-of-day truncated.
func (o *SystemOracle) TodayNY() time.Time {
	now := time.Now().In(o.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, o.loc)
}

// MarketClosedForToday is true once NY local time reaches the 16:15 closing buffer.
// Weekends and holidays are not handled here; downstream trimming relies on data absence.
func (o *SystemOracle) MarketClosedForToday() bool {
	now := time.Now().In(o.loc)
	closeAt := time.Date(now.Year(), now.Month(), now.Day(), closeHour, closeMinute, 0, 0, o.loc)
	return !now.Before(closeAt)
}

// Fixed is a test/mock Oracle pinned to an explicit NY-local instant.
type Fixed struct {
	At time.Time // must already be in America/New_York
}

// NewFixed parses a "2006-01-02 15:04" string in America/New_York and returns a Fixed oracle.
func NewFixed(layout, value string) (*Fixed, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, err
	}
	at, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		return nil, err
	}
	return &Fixed{At: at}, nil
}

func (f *Fixed) TodayNY() time.Time {
	return time.Date(f.At.Year(), f.At.Month(), f.At.Day(), 0, 0, 0, 0, f.At.Location())
}

func (f *Fixed) MarketClosedForToday() bool {
	closeAt := time.Date(f.At.Year(), f.At.Month(), f.At.Day(), closeHour, closeMinute, 0, 0, f.At.Location())
	return !f.At.Before(closeAt)
}
