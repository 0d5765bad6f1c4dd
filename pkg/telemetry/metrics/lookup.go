package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"srs-hq/rulediff/pkg/config"
)

// Lookup statuses used as label values.
const (
	LookupData          = "data"
	LookupNotConfigured = "not_configured"
	LookupError         = "error"
)

// LookupMetrics tracks external lookups and the lookup cache.
type LookupMetrics struct {
	lookupsTotal   *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
	inFlight       prometheus.Gauge
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheEntries   prometheus.Gauge
}

// NewLookupMetrics creates and registers lookup metrics.
func NewLookupMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LookupMetrics {
	lm := &LookupMetrics{
		lookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "lookups_total",
				Help:      "Rule lookups by backend and result status",
			},
			[]string{"backend", "status"},
		),
		lookupDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "lookup_duration_seconds",
				Help:      "Duration of rule lookups in seconds",
				Buckets:   cfg.LookupDurationBuckets,
			},
			[]string{"backend"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "lookups_in_flight",
				Help:      "Rule lookups currently in flight",
			},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "lookup_cache_hits_total",
				Help:      "Lookups answered from the cache",
			},
		),
		cacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "lookup_cache_misses_total",
				Help:      "Lookups that reached the backend",
			},
		),
		cacheEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "lookup_cache_entries",
				Help:      "Entries currently held by the lookup cache",
			},
		),
	}

	registry.MustRegister(
		lm.lookupsTotal,
		lm.lookupDuration,
		lm.inFlight,
		lm.cacheHits,
		lm.cacheMisses,
		lm.cacheEntries,
	)

	return lm
}

// LookupStarted increments the in-flight gauge.
func (c *Collector) LookupStarted() {
	if !c.Enabled() {
		return
	}
	c.lookup.inFlight.Inc()
}

// LookupFinished decrements the in-flight gauge and records the outcome.
func (c *Collector) LookupFinished(backend, status string, duration time.Duration) {
	if !c.Enabled() {
		return
	}
	c.lookup.inFlight.Dec()
	c.lookup.lookupsTotal.WithLabelValues(backend, status).Inc()
	c.lookup.lookupDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

// RecordCacheHit records a cache hit.
func (c *Collector) RecordCacheHit() {
	if !c.Enabled() {
		return
	}
	c.lookup.cacheHits.Inc()
}

// RecordCacheMiss records a cache miss.
func (c *Collector) RecordCacheMiss() {
	if !c.Enabled() {
		return
	}
	c.lookup.cacheMisses.Inc()
}

// SetCacheEntries sets the current cache size.
func (c *Collector) SetCacheEntries(n int) {
	if !c.Enabled() {
		return
	}
	c.lookup.cacheEntries.Set(float64(n))
}
