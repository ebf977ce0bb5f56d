// Package metrics exposes Prometheus instrumentation for the generation
// pipeline: per-stage duration, cells processed, active runs, and result
// cache hit/miss counters.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "terragen_stage_duration_seconds",
		Help:    "Wall-clock duration of a single pipeline stage",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	cellsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "terragen_cells_processed_total",
		Help: "Number of mesh cells processed by a stage",
	}, []string{"stage"})

	activeRuns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "terragen_active_runs",
		Help: "Number of generation runs currently in progress",
	})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "terragen_result_cache_hits_total",
		Help: "Result cache hits",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "terragen_result_cache_misses_total",
		Help: "Result cache misses",
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "terragen_http_requests_total",
		Help: "HTTP requests served by the API driver",
	}, []string{"method", "path", "status"})
)

// RecordStageDuration observes how long a pipeline stage took.
func RecordStageDuration(stage string, d time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordCellsProcessed adds n to the cells-processed counter for stage.
func RecordCellsProcessed(stage string, n int) {
	cellsGenerated.WithLabelValues(stage).Add(float64(n))
}

// SetActiveRuns sets the gauge of in-flight generation runs.
func SetActiveRuns(n int) {
	activeRuns.Set(float64(n))
}

// RecordCacheHit increments the result cache hit counter.
func RecordCacheHit() {
	cacheHits.Inc()
}

// RecordCacheMiss increments the result cache miss counter.
func RecordCacheMiss() {
	cacheMisses.Inc()
}

// Middleware wraps an http.Handler, recording a request counter labeled by
// method, raw request path, and status text (http.StatusText of the code).
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		httpRequests.WithLabelValues(r.Method, r.URL.Path, http.StatusText(sw.status)).Inc()
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
