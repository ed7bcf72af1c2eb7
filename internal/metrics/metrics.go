// Package metrics defines the Prometheus instrumentation for the optimizer
// API. All collectors are registered on the default registry and exposed via
// the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OptimizeRequests counts optimize runs by outcome ("ok" or "error").
	OptimizeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "milewise",
		Name:      "optimize_requests_total",
		Help:      "Total number of booking optimize requests.",
	}, []string{"status"})

	// OptimizeDuration observes how long one optimize run takes end to end.
	OptimizeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "milewise",
		Name:      "optimize_duration_seconds",
		Help:      "Duration of booking optimize runs.",
		Buckets:   prometheus.DefBuckets,
	})

	// ItinerarySaves counts saved itineraries.
	ItinerarySaves = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "milewise",
		Name:      "itinerary_saves_total",
		Help:      "Total number of itineraries saved.",
	})
)
