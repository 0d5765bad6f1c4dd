package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:5000"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 120 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxBodyBytes    = int64(32 << 20)
	DefaultCORSEnabled     = true
	DefaultCORSMaxAge      = 3600

	// Store defaults
	DefaultStoreDriver          = "oracle"
	DefaultStoreTable           = "SRS_RULES"
	DefaultStoreNameColumn      = "RULE_NAME"
	DefaultStoreMaxOpenConns    = 4
	DefaultStoreMaxIdleConns    = 2
	DefaultStoreConnMaxLifetime = 30 * time.Minute
	DefaultStoreQueryTimeout    = 10 * time.Second

	// Lookup defaults
	DefaultLookupMode          = "http"
	DefaultLookupEndpoint      = "http://127.0.0.1:5000"
	DefaultLookupTimeout       = 30 * time.Second
	DefaultLookupCacheEnabled  = true
	DefaultLookupCacheTTL      = 10 * time.Minute
	DefaultLookupSweepSchedule = "@every 5m"

	// Rules defaults
	DefaultSanitizeDescriptions = true

	// Report defaults
	DefaultReportFormat = "text"

	// Source defaults
	DefaultGitAuthType     = "none"
	DefaultGitCloneTimeout = 2 * time.Minute
	DefaultWatchDebounce   = 250 * time.Millisecond

	// Telemetry defaults
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "json"
	DefaultMetricsEnabled     = true
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "rulediff"
	DefaultTracingSampler     = "ratio"
	DefaultTracingSampleRatio = 0.1
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingService     = "rulediff"
	DefaultTracingInsecure    = true
	DefaultTracingTimeout     = 10 * time.Second
	DefaultHealthCheckTimeout = 5 * time.Second
)

var (
	// DefaultCORSAllowedOrigins allows any origin.
	DefaultCORSAllowedOrigins = []string{"*"}

	// DefaultCORSAllowedMethods covers the service's endpoints.
	DefaultCORSAllowedMethods = []string{"GET", "POST", "OPTIONS"}

	// DefaultCORSAllowedHeaders covers JSON bodies and request IDs.
	DefaultCORSAllowedHeaders = []string{"Content-Type", "X-Request-ID"}

	// DefaultLookupDurationBuckets spans local SQLite to remote Oracle latency.
	DefaultLookupDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
)

// NewDefaultConfig returns a configuration with every default applied,
// boolean defaults included.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Server.CORS.Enabled = DefaultCORSEnabled
	cfg.Lookup.Cache.Enabled = DefaultLookupCacheEnabled
	cfg.Lookup.Cache.SweepSchedule = DefaultLookupSweepSchedule
	cfg.Rules.SanitizeDescriptions = DefaultSanitizeDescriptions
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	cfg.Telemetry.Tracing.Insecure = DefaultTracingInsecure
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with defaults. Booleans cannot be
// told apart from an explicit false here; files are decoded over
// NewDefaultConfig so their boolean defaults survive.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if len(cfg.Server.CORS.AllowedOrigins) == 0 {
		cfg.Server.CORS.AllowedOrigins = append([]string(nil), DefaultCORSAllowedOrigins...)
	}
	if len(cfg.Server.CORS.AllowedMethods) == 0 {
		cfg.Server.CORS.AllowedMethods = append([]string(nil), DefaultCORSAllowedMethods...)
	}
	if len(cfg.Server.CORS.AllowedHeaders) == 0 {
		cfg.Server.CORS.AllowedHeaders = append([]string(nil), DefaultCORSAllowedHeaders...)
	}
	if cfg.Server.CORS.MaxAge == 0 {
		cfg.Server.CORS.MaxAge = DefaultCORSMaxAge
	}

	// Store defaults
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = DefaultStoreDriver
	}
	if cfg.Store.Table == "" {
		cfg.Store.Table = DefaultStoreTable
	}
	if cfg.Store.NameColumn == "" {
		cfg.Store.NameColumn = DefaultStoreNameColumn
	}
	if cfg.Store.MaxOpenConns == 0 {
		cfg.Store.MaxOpenConns = DefaultStoreMaxOpenConns
	}
	if cfg.Store.MaxIdleConns == 0 {
		cfg.Store.MaxIdleConns = DefaultStoreMaxIdleConns
	}
	if cfg.Store.ConnMaxLifetime == 0 {
		cfg.Store.ConnMaxLifetime = DefaultStoreConnMaxLifetime
	}
	if cfg.Store.QueryTimeout == 0 {
		cfg.Store.QueryTimeout = DefaultStoreQueryTimeout
	}

	// Lookup defaults
	if cfg.Lookup.Mode == "" {
		cfg.Lookup.Mode = DefaultLookupMode
	}
	if cfg.Lookup.Endpoint == "" {
		cfg.Lookup.Endpoint = DefaultLookupEndpoint
	}
	if cfg.Lookup.Timeout == 0 {
		cfg.Lookup.Timeout = DefaultLookupTimeout
	}
	if cfg.Lookup.Cache.TTL == 0 {
		cfg.Lookup.Cache.TTL = DefaultLookupCacheTTL
	}

	// Report defaults
	if cfg.Report.Format == "" {
		cfg.Report.Format = DefaultReportFormat
	}

	// Source defaults
	if cfg.Source.Git.Auth.Type == "" {
		cfg.Source.Git.Auth.Type = DefaultGitAuthType
	}
	if cfg.Source.Git.CloneTimeout == 0 {
		cfg.Source.Git.CloneTimeout = DefaultGitCloneTimeout
	}
	if cfg.Source.WatchDebounce == 0 {
		cfg.Source.WatchDebounce = DefaultWatchDebounce
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if len(cfg.Telemetry.Metrics.LookupDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.LookupDurationBuckets = append([]float64(nil), DefaultLookupDurationBuckets...)
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingService
	}
	if cfg.Telemetry.Tracing.Timeout == 0 {
		cfg.Telemetry.Tracing.Timeout = DefaultTracingTimeout
	}
	if cfg.Telemetry.Health.CheckTimeout == 0 {
		cfg.Telemetry.Health.CheckTimeout = DefaultHealthCheckTimeout
	}
}
