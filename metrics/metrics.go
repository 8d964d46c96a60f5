// Package metrics
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Provider holds the Prometheus collectors. A nil *Provider records nothing.
type Provider struct {
	gatherer prometheus.Gatherer

	upstreamCallsTotal   *prometheus.CounterVec
	upstreamCallDuration *prometheus.HistogramVec

	cacheRequestsTotal *prometheus.CounterVec

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry.
func New() *Provider {
	return NewWithRegistry(prometheus.NewRegistry())
}

func NewWithRegistry(registry *prometheus.Registry) *Provider {
	factory := promauto.With(registry)
	return &Provider{
		gatherer: registry,
		upstreamCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_calls_total",
				Help: "Total number of upstream calls by source, method and status",
			},
			[]string{"source", "method", "status"},
		),
		upstreamCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "upstream_call_duration_seconds",
				Help:    "Duration of upstream calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"source", "method"},
		),
		cacheRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_requests_total",
				Help: "Total number of response cache lookups by key and result",
			},
			[]string{"key", "result"},
		),
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path and status code",
			},
			[]string{"method", "path", "code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

func (p *Provider) RecordUpstreamCall(source, method string, err error, duration time.Duration) {
	if p == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	p.upstreamCallsTotal.WithLabelValues(source, method, status).Inc()
	p.upstreamCallDuration.WithLabelValues(source, method).Observe(duration.Seconds())
}

func (p *Provider) RecordCacheLookup(key string, hit bool) {
	if p == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	p.cacheRequestsTotal.WithLabelValues(key, result).Inc()
}

func (p *Provider) RecordHTTPRequest(method, path string, code int, duration time.Duration) {
	if p == nil {
		return
	}
	p.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
	p.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (p *Provider) Handler() http.Handler {
	if p == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}
