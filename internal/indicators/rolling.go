// Package indicators computes the ~40 derived columns of spec §4.3 as a pure
// function of an input OHLCV series. No I/O; every value at row i depends
// only on rows <= i (no look-ahead).
package indicators

import (
	"math"
	"sort"
)

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// shift returns s shifted forward by k rows: out[i] = s[i-k], NaN for i<k.
// This implements the spec's "shift(1)" (T-1) semantics.
func shift(s []float64, k int) []float64 {
	out := nanSlice(len(s))
	for i := k; i < len(s); i++ {
		out[i] = s[i-k]
	}
	return out
}

// rollingMean computes the simple moving average over `window` trailing
// values (inclusive of row i). NaN until the window is filled.
func rollingMean(s []float64, window int) []float64 {
	out := nanSlice(len(s))
	if window <= 0 {
		return out
	}
	sum := 0.0
	for i := 0; i < len(s); i++ {
		sum += s[i]
		if i >= window {
			sum -= s[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// rollingMedian computes the trailing median over `window` values.
func rollingMedian(s []float64, window int) []float64 {
	out := nanSlice(len(s))
	if window <= 0 {
		return out
	}
	buf := make([]float64, window)
	for i := window - 1; i < len(s); i++ {
		copy(buf, s[i-window+1:i+1])
		sort.Float64s(buf)
		if window%2 == 1 {
			out[i] = buf[window/2]
		} else {
			out[i] = (buf[window/2-1] + buf[window/2]) / 2
		}
	}
	return out
}

// rollingStd computes the trailing sample standard deviation (ddof=1) over `window`.
func rollingStd(s []float64, window int) []float64 {
	out := nanSlice(len(s))
	if window < 2 {
		return out
	}
	for i := window - 1; i < len(s); i++ {
		mean := 0.0
		for j := i - window + 1; j <= i; j++ {
			mean += s[j]
		}
		mean /= float64(window)
		sumSq := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := s[j] - mean
			sumSq += d * d
		}
		out[i] = math.Sqrt(sumSq / float64(window-1))
	}
	return out
}

// rollingMax computes the trailing max over `window` values.
func rollingMax(s []float64, window int) []float64 {
	out := nanSlice(len(s))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(s); i++ {
		m := s[i-window+1]
		for j := i - window + 2; j <= i; j++ {
			if s[j] > m {
				m = s[j]
			}
		}
		out[i] = m
	}
	return out
}

// rollingMin computes the trailing min over `window` values.
func rollingMin(s []float64, window int) []float64 {
	out := nanSlice(len(s))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(s); i++ {
		m := s[i-window+1]
		for j := i - window + 2; j <= i; j++ {
			if s[j] < m {
				m = s[j]
			}
		}
		out[i] = m
	}
	return out
}

// wilderSmooth applies Wilder smoothing (alpha = 1/period) to s: the first
// `period` values are seeded by their simple average (placed at index
// period-1), every later value is prev*(1-alpha) + cur*alpha.
func wilderSmooth(s []float64, period int) []float64 {
	out := nanSlice(len(s))
	if len(s) < period {
		return out
	}
	alpha := 1.0 / float64(period)
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += s[i]
	}
	seed /= float64(period)
	out[period-1] = seed
	prev := seed
	for i := period; i < len(s); i++ {
		prev = prev*(1-alpha) + s[i]*alpha
		out[i] = prev
	}
	return out
}

// ema computes the exponential moving average with the standard smoothing
// factor alpha = 2/(period+1), seeded by the simple average of the first
// `period` values.
func ema(s []float64, period int) []float64 {
	out := nanSlice(len(s))
	if len(s) < period {
		return out
	}
	alpha := 2.0 / float64(period+1)
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += s[i]
	}
	seed /= float64(period)
	out[period-1] = seed
	prev := seed
	for i := period; i < len(s); i++ {
		prev = prev*(1-alpha) + s[i]*alpha
		out[i] = prev
	}
	return out
}

// diff returns first differences: out[i] = s[i]-s[i-1], NaN at i=0.
func diff(s []float64) []float64 {
	out := nanSlice(len(s))
	for i := 1; i < len(s); i++ {
		out[i] = s[i] - s[i-1]
	}
	return out
}

func isNaN(v float64) bool { return math.IsNaN(v) }
