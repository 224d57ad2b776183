// Package metrics defines the Prometheus metrics exported by the checker.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nexus",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nexus",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Map metrics
	HitResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nexus",
		Subsystem: "map",
		Name:      "hit_resolutions_total",
		Help:      "Point-to-state resolutions by outcome",
	}, []string{"outcome"})

	SnapshotDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "nexus",
		Subsystem: "map",
		Name:      "snapshot_render_seconds",
		Help:      "Time spent rasterising map snapshots",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	})

	// Answer metrics
	AnswersSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nexus",
		Subsystem: "answers",
		Name:      "saved_total",
		Help:      "Answer sets written to the store",
	}, []string{"store"})

	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nexus",
		Subsystem: "answers",
		Name:      "store_errors_total",
		Help:      "Answer store failures by operation",
	}, []string{"store", "operation"})

	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "nexus",
		Subsystem: "answers",
		Name:      "sessions_created_total",
		Help:      "Answer sessions created",
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}

// ObserveResolve counts one hit resolution.
func ObserveResolve(found bool) {
	if found {
		HitResolutions.WithLabelValues("hit").Inc()
	} else {
		HitResolutions.WithLabelValues("miss").Inc()
	}
}
