// Package metrics exposes planner counters in the Prometheus text format.
package metrics

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is safe to use through a nil pointer; every recorder is then a no-op.
type Metrics struct {
	reg         *prometheus.Registry
	runs        *prometheus.CounterVec
	rows        *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	adjustments prometheus.Counter
	actuals     prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fertiplan",
			Name:      "runs_total",
			Help:      "Plan generations and reconciliations by kind and outcome.",
		}, []string{"kind", "outcome"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fertiplan",
			Name:      "rows_generated_total",
			Help:      "Rows produced by each generator kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fertiplan",
			Name:      "run_duration_seconds",
			Help:      "Wall time of each run.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"kind"}),
		adjustments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fertiplan",
			Name:      "adjustments_total",
			Help:      "Deviations carried forward onto a later application.",
		}),
		actuals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fertiplan",
			Name:      "actuals_recorded_total",
			Help:      "Single application records updated with actual values.",
		}),
	}
	m.reg.MustRegister(
		m.runs, m.rows, m.duration, m.adjustments, m.actuals,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRun records one run of kind (monthly|weekly|reconcile).
func (m *Metrics) ObserveRun(kind, outcome string, rows int, started time.Time) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(kind, outcome).Inc()
	m.rows.WithLabelValues(kind).Add(float64(rows))
	m.duration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}

func (m *Metrics) AddAdjustments(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.adjustments.Add(float64(n))
}

func (m *Metrics) ActualRecorded() {
	if m == nil {
		return
	}
	m.actuals.Inc()
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry on an echo route.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
}
