package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Murli fetch metrics
	MurliFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "murli_fetches_total",
			Help: "Total number of murli document fetches",
		},
		[]string{"language", "outcome"},
	)

	MurliFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "murli_fetch_duration_seconds",
			Help:    "Murli document fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"language"},
	)

	StaleResultsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "murli_stale_results_discarded_total",
			Help: "Fetch results dropped because the selection changed while in flight",
		},
	)

	FontOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "murli_font_operations_total",
			Help: "Font size operations by kind",
		},
		[]string{"operation"},
	)

	FetchEventsPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "murli_fetch_events_pruned_total",
			Help: "Fetch log rows removed by retention",
		},
	)

	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "application_info",
			Help: "Application information",
		},
		[]string{"service", "version"},
	)
)

// Init records static build information.
func Init(serviceName, version string) {
	ApplicationInfo.WithLabelValues(serviceName, version).Set(1)
}
