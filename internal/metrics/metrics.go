package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Simplici0/orchard.works/internal/logging"
)

// Collector provides application metrics collection
type Collector struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CalculationsDerived prometheus.Counter
	CalculationsSkipped *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry under namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	c := &Collector{
		registry: registry,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route, method, and status",
		}, []string{"route", "method", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1.0},
		}, []string{"route"}),

		CalculationsDerived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_derived_total",
			Help:      "Total number of calculations run through the cost calculator",
		}),

		CalculationsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_skipped_total",
			Help:      "Calculations left out of a rendered report, by reason",
		}, []string{"reason"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// RecordDerived counts n successfully derived calculations.
func (c *Collector) RecordDerived(n int) {
	c.CalculationsDerived.Add(float64(n))
}

// RecordSkipped counts a calculation skipped for reason.
func (c *Collector) RecordSkipped(reason string) {
	c.CalculationsSkipped.WithLabelValues(reason).Inc()
}

// Handler exposes the collector's registry for scraping.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Middleware records request counts and latency keyed by the chi route pattern.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &logging.StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
		next.ServeHTTP(sr, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		c.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(sr.Status)).Inc()
		c.HTTPRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
