package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_submitted_total",
			Help: "Total number of subscription lead submissions by outcome",
		},
		[]string{"outcome"},
	)

	cacheRevalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_revalidations_total",
			Help: "Total number of cache revalidation requests by content type, entry mode and result",
		},
		[]string{"type", "mode", "result"},
	)

	rateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern limita a cardinalidade do label: /api/posts/{slug} em vez de cada slug.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func RecordLeadSubmission(outcome string) {
	leadsSubmitted.WithLabelValues(outcome).Inc()
}

var revalidationTypes = map[string]bool{
	"post": true, "testimonial": true, "faq": true, "pricing": true,
	"subscriptionRequest": true, "siteSettings": true, "all": true,
}

// RecordRevalidation agrupa tipos desconhecidos em "other" (o tipo vem de quem chama).
func RecordRevalidation(contentType, mode, result string) {
	switch {
	case contentType == "":
		contentType = "default"
	case !revalidationTypes[contentType]:
		contentType = "other"
	}
	cacheRevalidations.WithLabelValues(contentType, mode, result).Inc()
}
