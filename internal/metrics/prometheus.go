package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Worker metrics
	WorkerExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "excer_worker_executions_total",
			Help: "Total number of worker executions",
		},
		[]string{"worker", "status"}, // status: success|error
	)

	WorkerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "excer_worker_duration_seconds",
			Help:    "Worker execution duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"worker"},
	)

	WorkerLastRun = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "excer_worker_last_run_timestamp",
			Help: "Unix timestamp of last worker execution",
		},
		[]string{"worker"},
	)

	// Fetcher metrics
	FetchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "excer_fetch_requests_total",
			Help: "Total number of forum API requests",
		},
		[]string{"status"}, // status: success|rate_limited|error
	)

	FetchRetriesExhausted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "excer_fetch_retries_exhausted_total",
			Help: "Total number of fetches that spent all rate-limit retries",
		},
	)

	// Ingestion metrics
	PostsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "excer_posts_ingested_total",
			Help: "Total number of posts processed per subreddit",
		},
		[]string{"subreddit"},
	)

	SourceFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "excer_source_failures_total",
			Help: "Total number of per-source ingestion failures",
		},
		[]string{"subreddit"},
	)

	SnapshotStocks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "excer_snapshot_stocks_count",
			Help: "Number of stocks in the last published snapshot",
		},
	)

	SnapshotSaves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "excer_snapshot_saves_total",
			Help: "Total number of snapshot writes",
		},
		[]string{"status"}, // status: ok|error
	)
)

func init() {
	prometheus.MustRegister(
		WorkerExecutions,
		WorkerDuration,
		WorkerLastRun,
		FetchRequests,
		FetchRetriesExhausted,
		PostsIngested,
		SourceFailures,
		SnapshotStocks,
		SnapshotSaves,
	)
}

// Handler returns the HTTP handler serving the metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
