package reconciler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"realmform/internal/changes"
	"realmform/internal/former"
	"realmform/pkg/logging"
)

// Metrics tracks reconciliation runs for monitoring and alerting.
//
// The metrics live in a private registry so they can be written to a
// node-exporter textfile after every run.
type Metrics struct {
	registry    *prometheus.Registry
	runs        *prometheus.CounterVec
	resources   *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	lastRun     prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// NewMetrics creates and registers the run metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "realmform_runs_total",
				Help: "Reconciliation runs by mode and result.",
			},
			[]string{"mode", "result"},
		),
		resources: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "realmform_resources_total",
				Help: "Resources touched by reconciliation runs by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "realmform_run_duration_seconds",
				Help:    "Duration of reconciliation runs.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "realmform_last_run_timestamp_seconds",
			Help: "Unix time of the last reconciliation run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "realmform_last_success_timestamp_seconds",
			Help: "Unix time of the last successful reconciliation run.",
		}),
	}
	m.registry.MustRegister(m.runs, m.resources, m.duration, m.lastRun, m.lastSuccess)
	return m
}

// Registry returns the registry holding the run metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRun records the outcome of one run. report may be nil when the run
// failed before forming started.
func (m *Metrics) RecordRun(mode changes.Mode, report *former.Report, err error, duration time.Duration) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	now := float64(time.Now().Unix())

	m.runs.WithLabelValues(mode.String(), result).Inc()
	m.duration.WithLabelValues(mode.String()).Observe(duration.Seconds())
	m.lastRun.Set(now)
	if err == nil {
		m.lastSuccess.Set(now)
	}
	if report != nil {
		for _, e := range report.Entries {
			m.resources.WithLabelValues(string(e.Kind), string(e.Outcome)).Inc()
		}
	}

	logging.Debug("ReconcilerMetrics", "Recorded %s run (%s) in %s", mode, result, duration)
}

// WriteTextfile writes the metrics in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
