// Package metrics exposes Prometheus metrics for query execution.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcome labels.
const (
	StatusOK         = "ok"
	StatusParseError = "parse_error"
	StatusEvalError  = "eval_error"
	StatusCanceled   = "canceled"
)

var (
	// QueriesTotal counts queries by outcome.
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostdb_queries_total",
			Help: "Total number of select queries",
		},
		[]string{"status"},
	)
	// QueryRows counts rows returned by successful queries.
	QueryRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hostdb_query_rows_total",
			Help: "Total number of rows returned by select queries",
		},
	)
	// QueryDuration is the latency of queries.
	QueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hostdb_query_duration_seconds",
			Help:    "Select query latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// ObserveQuery records one finished query.
func ObserveQuery(status string, rows int, elapsed time.Duration) {
	QueriesTotal.WithLabelValues(status).Inc()
	QueryDuration.Observe(elapsed.Seconds())
	if status == StatusOK {
		QueryRows.Add(float64(rows))
	}
}
