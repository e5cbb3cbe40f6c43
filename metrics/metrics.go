// Package metrics exposes Prometheus collectors for HTTP traffic and model
// capability calls.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "content_analysis"

type Metrics struct {
	RequestDuration    *prometheus.HistogramVec
	RequestsTotal      *prometheus.CounterVec
	InFlightGauge      prometheus.Gauge
	CapabilityDuration *prometheus.HistogramVec
	CapabilityErrors   *prometheus.CounterVec
}

// New creates and registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status_code"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status_code"}),
		InFlightGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of HTTP requests currently being processed.",
		}),
		CapabilityDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "model",
			Name:      "call_duration_seconds",
			Help:      "Duration of model capability calls in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"capability"}),
		CapabilityErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "model",
			Name:      "call_errors_total",
			Help:      "Total number of failed model capability calls.",
		}, []string{"capability"}),
	}

	reg.MustRegister(m.RequestDuration, m.RequestsTotal, m.InFlightGauge, m.CapabilityDuration, m.CapabilityErrors)
	return m
}

// ObserveCapability records one model call.
func (m *Metrics) ObserveCapability(capability string, elapsed time.Duration, err error) {
	m.CapabilityDuration.WithLabelValues(capability).Observe(elapsed.Seconds())
	if err != nil {
		m.CapabilityErrors.WithLabelValues(capability).Inc()
	}
}

// Middleware records HTTP metrics, skipping /metrics.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "/metrics" {
			c.Next()
			return
		}
		if route == "" {
			route = "unmatched"
		}

		m.InFlightGauge.Inc()
		defer m.InFlightGauge.Dec()

		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		m.RequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		m.RequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
	}
}
