package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// AdmissionRejectionsTotal counts gate rejections by reason.
	AdmissionRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "codesearch",
			Name:      "admission_rejections_total",
			Help:      "Admission gate rejections by reason",
		},
		[]string{"reason"},
	)

	// SearchesTotal counts executed statute searches.
	SearchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "codesearch",
			Name:      "searches_total",
			Help:      "Statute searches executed against the index",
		},
	)

	// CatalogProbesTotal counts index liveness probes during catalog builds.
	// Stays flat while the listing is served from cache.
	CatalogProbesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "codesearch",
			Name:      "catalog_probes_total",
			Help:      "Index liveness probes issued while building the code catalog",
		},
	)
)

// RegisterDomainMetrics registers the service-level collectors. Called once
// from the composition root (no init side effects).
func RegisterDomainMetrics() {
	prometheus.MustRegister(AdmissionRejectionsTotal)
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(CatalogProbesTotal)
}
