package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// BalanceQueriesTotal counts balance queries by chain and outcome.
	BalanceQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "balance_queries_total",
			Help: "Total number of balance queries, labelled by chain and status.",
		},
		[]string{"chain", "status"},
	)

	// BalanceQueryDuration observes end-to-end balance query latency.
	BalanceQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "balance_query_duration_seconds",
			Help:    "End-to-end duration of balance queries.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"chain"},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once at process start.
func MustRegisterMetrics() {
	prometheus.MustRegister(BalanceQueriesTotal, BalanceQueryDuration)
}
