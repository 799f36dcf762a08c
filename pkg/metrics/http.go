package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of HTTP handlers, labeled by route and method
	HTTPRequestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_latency_seconds",
		Help:    "Latency of HTTP handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// Total number of HTTP requests served, labeled by status class
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	// Total number of deal listing queries, labeled by sort mode
	DealListingQueries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "deal_listing_queries_total",
		Help: "Total number of deal listing queries executed",
	}, []string{"sort_by"})
)

func Init() {
	prometheus.MustRegister(
		HTTPRequestLatency,
		HTTPRequestsTotal,
		DealListingQueries,
	)
}
