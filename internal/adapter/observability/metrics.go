package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus collectors. Registered once per process via InitMetrics.
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_analyses_total",
			Help: "Completed resume analyses by kind (single, batch_entry).",
		},
		[]string{"kind"},
	)
	BatchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resume_batch_size",
			Help:    "Number of resumes per batch request.",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		},
	)
	MatchPercentHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resume_match_percent",
			Help:    "Distribution of computed domain match percentages.",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

// InitMetrics registers all collectors with the default registry.
func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(AnalysesTotal)
	prometheus.MustRegister(BatchSize)
	prometheus.MustRegister(MatchPercentHistogram)
}

// HTTPMetricsMiddleware records request counts and latency per chi route.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// ObserveAnalysis records one completed analysis and its match percentage.
func ObserveAnalysis(kind string, matchPercent int) {
	AnalysesTotal.WithLabelValues(kind).Inc()
	MatchPercentHistogram.Observe(float64(matchPercent))
}
