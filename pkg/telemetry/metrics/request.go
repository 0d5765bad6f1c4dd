package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"srs-hq/rulediff/pkg/config"
)

// RequestMetrics tracks HTTP requests served by rulediff.
type RequestMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewRequestMetrics creates and registers HTTP request metrics.
func NewRequestMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status code",
			},
			[]string{"method", "path", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	registry.MustRegister(rm.requestsTotal, rm.requestDuration)
	return rm
}

// RecordHTTPRequest records a served request. path should be a route
// pattern, not the raw URL, to keep cardinality bounded.
func (c *Collector) RecordHTTPRequest(method, path string, code int, duration time.Duration) {
	if !c.Enabled() {
		return
	}
	c.request.requestsTotal.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
	c.request.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
