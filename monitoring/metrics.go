package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)
)

var (
	StorageWrites = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storage_writes_total",
			Help: "Total whole-collection writes to the storage slot",
		},
	)

	CatalogFetchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_fetch_failures_total",
			Help: "Exercise catalog fetches that fell back to the static table",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(StorageWrites)
	prometheus.MustRegister(CatalogFetchFailures)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
