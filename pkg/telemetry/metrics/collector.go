package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"srs-hq/rulediff/pkg/config"
)

// Collector records all rulediff metrics.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	comparison *ComparisonMetrics
	lookup     *LookupMetrics
	request    *RequestMetrics
}

// NewCollector creates a collector registered on registry. If registry is nil
// a new private registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if cfg == nil {
		cfg = &config.MetricsConfig{Enabled: true}
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.LookupDurationBuckets) == 0 {
		cfg.LookupDurationBuckets = append([]float64(nil), config.DefaultLookupDurationBuckets...)
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Collector{
		config:     cfg,
		registry:   registry,
		comparison: NewComparisonMetrics(cfg, registry),
		lookup:     NewLookupMetrics(cfg, registry),
		request:    NewRequestMetrics(cfg, registry),
	}
}

// Enabled reports whether recording is active.
func (c *Collector) Enabled() bool {
	return c != nil && c.config.Enabled
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
