// Package metrics provides Prometheus metrics for the showroom service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ResolutionsTotal counts product resolutions by the fallback tier that produced them.
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "showroom",
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Total number of product resolutions by tier",
		},
		[]string{"tier"},
	)

	// PlacementFallbacksTotal counts scenes rendered with the default placement.
	PlacementFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "showroom",
			Subsystem: "scene",
			Name:      "placement_fallbacks_total",
			Help:      "Total number of scene assemblies that used the default placement",
		},
		[]string{"reason"},
	)

	CatalogQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "showroom",
			Subsystem: "catalog",
			Name:      "query_duration_seconds",
			Help:      "Duration of catalog store queries in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"query"},
	)
)

const (
	FallbackReasonEmpty = "empty"
	FallbackReasonError = "error"
)

func RecordResolution(tier string) {
	ResolutionsTotal.WithLabelValues(tier).Inc()
}

func RecordPlacementFallback(reason string) {
	PlacementFallbacksTotal.WithLabelValues(reason).Inc()
}

// ObserveQuery is meant to be deferred: defer metrics.ObserveQuery("get_scene", time.Now()).
func ObserveQuery(query string, start time.Time) {
	CatalogQueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}
