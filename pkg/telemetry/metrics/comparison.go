package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"srs-hq/rulediff/pkg/config"
)

// Comparison outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeInputError = "input_error"
	OutcomeError      = "error"
)

// ComparisonMetrics tracks comparisons and their partitions.
type ComparisonMetrics struct {
	comparisonsTotal   *prometheus.CounterVec
	comparisonDuration prometheus.Histogram
	rulesTotal         *prometheus.CounterVec
	shadowedTotal      *prometheus.CounterVec
	unnamedTotal       prometheus.Counter
}

// NewComparisonMetrics creates and registers comparison metrics.
func NewComparisonMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ComparisonMetrics {
	cm := &ComparisonMetrics{
		comparisonsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "comparisons_total",
				Help:      "Total number of document comparisons by outcome",
			},
			[]string{"outcome"},
		),
		comparisonDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "comparison_duration_seconds",
				Help:      "Duration of comparisons including enrichment",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		rulesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "rules_total",
				Help:      "Rules classified per partition",
			},
			[]string{"partition"},
		),
		shadowedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "shadowed_duplicates_total",
				Help:      "Rules whose description was shadowed by a later rule with the same name",
			},
			[]string{"side"},
		),
		unnamedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "unnamed_records_total",
				Help:      "Rule records skipped because they carry no name",
			},
		),
	}

	registry.MustRegister(
		cm.comparisonsTotal,
		cm.comparisonDuration,
		cm.rulesTotal,
		cm.shadowedTotal,
		cm.unnamedTotal,
	)

	return cm
}

// RecordComparison records a finished comparison.
func (c *Collector) RecordComparison(outcome string, duration time.Duration) {
	if !c.Enabled() {
		return
	}
	c.comparison.comparisonsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		c.comparison.comparisonDuration.Observe(duration.Seconds())
	}
}

// RecordPartitions records partition sizes of a comparison.
func (c *Collector) RecordPartitions(dropped, added, retained, changed int) {
	if !c.Enabled() {
		return
	}
	c.comparison.rulesTotal.WithLabelValues("dropped").Add(float64(dropped))
	c.comparison.rulesTotal.WithLabelValues("added").Add(float64(added))
	c.comparison.rulesTotal.WithLabelValues("retained").Add(float64(retained))
	c.comparison.rulesTotal.WithLabelValues("changed").Add(float64(changed))
}

// RecordShadowed records shadowed duplicates per side ("old" or "new").
func (c *Collector) RecordShadowed(side string, n int) {
	if !c.Enabled() || n <= 0 {
		return
	}
	c.comparison.shadowedTotal.WithLabelValues(side).Add(float64(n))
}

// RecordUnnamed records skipped rule records.
func (c *Collector) RecordUnnamed(n int) {
	if !c.Enabled() || n <= 0 {
		return
	}
	c.comparison.unnamedTotal.Add(float64(n))
}
