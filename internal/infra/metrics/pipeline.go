package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(jobsTotal, stageDuration, aiCallsTotal, fallbacksTotal)
}

var (
	jobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_jobs_total",
			Help: "Pipeline jobs by terminal status.",
		},
		[]string{"status"}, // 'completed', 'failed'
	)

	stageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_stage_duration_seconds",
			Help:    "Wall time spent per pipeline stage.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"stage"},
	)

	aiCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_ai_calls_total",
			Help: "AI generate calls per stage and outcome.",
		},
		[]string{"stage", "outcome"}, // 'ok', 'error', 'unparsable'
	)

	fallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_fallbacks_total",
			Help: "Deterministic fallbacks taken per stage.",
		},
		[]string{"stage"},
	)
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncJob(status string) {
	jobsTotal.WithLabelValues(norm(status)).Inc()
}

func ObserveStage(stage string, d time.Duration) {
	stageDuration.WithLabelValues(norm(stage)).Observe(d.Seconds())
}

func IncAICall(stage, outcome string) {
	aiCallsTotal.WithLabelValues(norm(stage), norm(outcome)).Inc()
}

func IncFallback(stage string) {
	fallbacksTotal.WithLabelValues(norm(stage)).Inc()
}
