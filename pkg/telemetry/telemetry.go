package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"srs-hq/rulediff/pkg/config"
	"srs-hq/rulediff/pkg/telemetry/health"
	"srs-hq/rulediff/pkg/telemetry/logging"
	"srs-hq/rulediff/pkg/telemetry/metrics"
	"srs-hq/rulediff/pkg/telemetry/tracing"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// Telemetry holds the process-wide observability components.
type Telemetry struct {
	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	health  *health.Checker
	build   BuildInfo
}

// New builds all components from cfg. The logger is also installed as the
// slog default.
func New(cfg *config.TelemetryConfig, build BuildInfo) (*Telemetry, error) {
	return NewWithWriter(cfg, build, nil)
}

// NewWithWriter is New with logs sent to w. A nil w logs to stderr.
func NewWithWriter(cfg *config.TelemetryConfig, build BuildInfo, w io.Writer) (*Telemetry, error) {
	if cfg == nil {
		return nil, fmt.Errorf("telemetry config is nil")
	}

	logger, err := logging.New(logging.Config{
		Level:         cfg.Logging.Level,
		Format:        cfg.Logging.Format,
		AddSource:     cfg.Logging.AddSource,
		SensitiveKeys: cfg.Logging.SensitiveKeys,
		Writer:        w,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	slog.SetDefault(logger)

	tracer, err := tracing.New(&cfg.Tracing, build.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	return &Telemetry{
		logger:  logger,
		metrics: metrics.NewCollector(&cfg.Metrics, nil),
		tracer:  tracer,
		health:  health.New(cfg.Health.CheckTimeout),
		build:   build,
	}, nil
}

// Logger returns the root logger.
func (t *Telemetry) Logger() *slog.Logger { return t.logger }

// Metrics returns the metrics collector.
func (t *Telemetry) Metrics() *metrics.Collector { return t.metrics }

// Tracer returns the tracer.
func (t *Telemetry) Tracer() *tracing.Tracer { return t.tracer }

// Health returns the health checker.
func (t *Telemetry) Health() *health.Checker { return t.health }

// Build returns the build information.
func (t *Telemetry) Build() BuildInfo { return t.build }

// Shutdown flushes pending spans.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if err := t.tracer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down tracer: %w", err)
	}
	return nil
}
