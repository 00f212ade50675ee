// Package metrics provides Prometheus metric collection and exposure for the
// GameVault API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records HTTP-level metrics to a Prometheus registry
type Collector struct {
	requests prometheus.Counter
	statuses *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewCollector creates a collector and registers its metrics with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamevault_http_requests_total",
			Help: "Total number of HTTP requests handled",
		}),
		statuses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamevault_http_status_total",
			Help: "HTTP responses by status code",
		}, []string{"status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gamevault_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}

	reg.MustRegister(
		c.requests,
		c.statuses,
		c.latency,
	)

	return c
}

// RecordRequest records one handled request
func (c *Collector) RecordRequest(method string, statusCode int, duration time.Duration) {
	c.requests.Inc()
	c.statuses.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	c.latency.WithLabelValues(method).Observe(duration.Seconds())
}

// Middleware returns an HTTP middleware that records request metrics
func (c *Collector) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			c.RecordRequest(r.Method, wrapped.status, time.Since(start))
		})
	}
}

// Handler returns the Prometheus scrape handler
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}
