package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipeline_stage_duration_seconds",
		Help:    "Duration of pipeline stage invocations.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	}, []string{"stage"})

	stageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_stage_failures_total",
		Help: "Pipeline stage invocations that surfaced a typed failure.",
	}, []string{"stage"})

	itemsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_items_skipped_total",
		Help: "Per-item fan-out failures absorbed by a stage (keyword searches, clip fetches).",
	}, []string{"stage"})
)

func observeStage(stage string, start time.Time, err error) {
	stageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	if err != nil {
		stageFailures.WithLabelValues(stage).Inc()
	}
}
