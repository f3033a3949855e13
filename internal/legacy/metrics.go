package legacy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "legacy_fetch_total",
		Help: "Completed requests to the legacy backend, any status.",
	})
	fetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "legacy_fetch_failures_total",
		Help: "Requests to the legacy backend that failed at the transport level.",
	})
	salvagedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "legacy_salvaged_json_total",
		Help: "Responses where valid JSON had to be extracted from surrounding noise.",
	})
	classifiedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "legacy_classified_total",
		Help: "Legacy response bodies by classification outcome.",
	}, []string{"kind"})
)

// ObserveClassification records the outcome of classifying one body.
func ObserveClassification(c Classification) {
	classifiedTotal.WithLabelValues(string(c.Kind)).Inc()
	if c.Salvaged {
		salvagedTotal.Inc()
	}
}
