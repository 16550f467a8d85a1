// Package metrics exposes prometheus collectors for the completion and
// upload proxies on a private registry.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "novel"

type Collector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	chunksTotal     prometheus.Counter
	upstreamErrors  *prometheus.CounterVec
	uploadBytes     prometheus.Counter
}

// NewCollector registers all collectors on registry. A nil registry gets a
// fresh one with the go and process collectors attached.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	c := &Collector{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, including the full stream for completions.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"route"}),
		chunksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_chunks_total",
			Help:      "Completion chunks forwarded to callers.",
		}),
		upstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_errors_total",
			Help:      "Failed calls to third-party providers.",
		}, []string{"provider"}),
		uploadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_bytes_total",
			Help:      "Bytes forwarded to blob storage.",
		}),
	}
	registry.MustRegister(c.requestsTotal, c.requestDuration, c.chunksTotal, c.upstreamErrors, c.uploadBytes)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) AddChunk() {
	c.chunksTotal.Inc()
}

func (c *Collector) UpstreamError(provider string) {
	c.upstreamErrors.WithLabelValues(provider).Inc()
}

func (c *Collector) AddUploadBytes(n int64) {
	c.uploadBytes.Add(float64(n))
}

// Middleware records request counts and latency per route template.
func (c *Collector) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}
			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			c.requestsTotal.WithLabelValues(route, strconv.Itoa(ctx.Response().Status)).Inc()
			c.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

func (c *Collector) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
}
