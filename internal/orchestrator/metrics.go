package orchestrator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the run-level Prometheus instrumentation named in
// SPEC_FULL §4.7: fetch failures, run duration, and completed runs.
// Acquisition-layer detail (per-request retries, latency) is not
// instrumented; internal/marketdata registers no collectors.
type Metrics struct {
	runDuration    prometheus.Histogram
	fetchFailures  prometheus.Counter
	runsTotal      prometheus.Counter
}

// NewMetrics registers the orchestrator's collectors against reg. Pass
// prometheus.NewRegistry() (or prometheus.DefaultRegisterer) from the caller.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dma",
			Subsystem: "orchestrator",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a full analysis run.",
			Buckets:   prometheus.DefBuckets,
		}),
		fetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dma",
			Subsystem: "orchestrator",
			Name:      "fetch_failures_total",
			Help:      "Count of per-symbol fetch failures across all runs.",
		}),
		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dma",
			Subsystem: "orchestrator",
			Name:      "runs_total",
			Help:      "Count of completed analysis runs.",
		}),
	}
	reg.MustRegister(m.runDuration, m.fetchFailures, m.runsTotal)
	return m
}

func (m *Metrics) ObserveRunDuration(d time.Duration) {
	m.runDuration.Observe(d.Seconds())
	m.runsTotal.Inc()
}

func (m *Metrics) ObserveFetchFailures(n int) {
	m.fetchFailures.Add(float64(n))
}
