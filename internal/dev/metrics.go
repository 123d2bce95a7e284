package dev

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// buildsTotal counts dev rebuilds by result.
	buildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "redwood",
		Subsystem: "dev",
		Name:      "builds_total",
		Help:      "Number of web-side builds triggered by the dev server.",
	}, []string{"result"})

	// buildDuration observes how long rebuilds take.
	buildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "redwood",
		Subsystem: "dev",
		Name:      "build_duration_seconds",
		Help:      "Duration of web-side builds.",
		Buckets:   prometheus.DefBuckets,
	})

	// reloadClients tracks connected live-reload clients.
	reloadClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "redwood",
		Subsystem: "dev",
		Name:      "reload_clients",
		Help:      "Connected live-reload WebSocket clients.",
	})
)
