package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	engineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habitmood_engine_duration_seconds",
			Help:    "Time spent computing statistics",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"engine"},
	)

	statsCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitmood_stats_cache_total",
			Help: "Statistics cache lookups by result",
		},
		[]string{"kind", "result"},
	)
)

func observeEngine(engine string, start time.Time) {
	engineDuration.WithLabelValues(engine).Observe(time.Since(start).Seconds())
}
