package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gemrelay_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// ProbeAttempts counts model probe calls by candidate and outcome.
	// Failing candidates still burn provider quota, so this is worth watching.
	ProbeAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gemrelay_probe_attempts_total",
		Help: "Model probe attempts by candidate model and outcome.",
	}, []string{"model", "outcome"})

	// ChatDuration tracks generation latency per model.
	ChatDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gemrelay_chat_duration_seconds",
		Help:    "Time spent on chat generation calls.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"model"})

	// ActiveSessions tracks the number of sessions with a working model.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gemrelay_active_sessions",
		Help: "Number of configured sessions.",
	})
)
