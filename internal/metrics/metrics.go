// Package metrics records anchor submissions for Prometheus. The CLI is a
// batch job, so it writes a node-exporter textfile instead of serving
// /metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/anchor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements anchor.Recorder on its own registry.
type Recorder struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	lastRun     prometheus.Gauge
}

var _ anchor.Recorder = (*Recorder)(nil)

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_anchor_submissions_total",
			Help: "Anchor submissions by mode and outcome.",
		}, []string{"mode", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sentinel_anchor_submit_seconds",
			Help:    "Anchor submission duration in seconds.",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"mode"}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_anchor_last_run_timestamp_seconds",
			Help: "Unix time of the last recorded submission.",
		}),
	}
}

func (r *Recorder) ObserveSubmission(mode anchor.Mode, outcome string, duration time.Duration) {
	r.submissions.WithLabelValues(string(mode), outcome).Inc()
	r.duration.WithLabelValues(string(mode)).Observe(duration.Seconds())
	r.lastRun.SetToCurrentTime()
}

// Registry exposes the recorder's registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the metrics in the textfile collector format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
