package config

import "time"

// Config is the root configuration structure for rulediff.
type Config struct {
	// Server contains HTTP service configuration.
	Server ServerConfig `yaml:"server"`

	// Store contains relational store configuration used for direct lookups
	// and by the /rule endpoint.
	Store StoreConfig `yaml:"store"`

	// Lookup controls how comparisons enrich rules with stored data.
	Lookup LookupConfig `yaml:"lookup"`

	// Rules controls rule extraction.
	Rules RulesConfig `yaml:"rules"`

	// Report controls comparison output.
	Report ReportConfig `yaml:"report"`

	// Source controls how documents are read from git and watched.
	Source SourceConfig `yaml:"source"`

	// Credentials are the default store credentials for CLI lookups.
	Credentials CredentialsConfig `yaml:"credentials"`

	// Telemetry contains logging, metrics, tracing and health configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains HTTP service configuration.
type ServerConfig struct {
	// ListenAddress is the address the server binds to.
	// Default: "127.0.0.1:5000"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. Comparisons with many lookups may need more.
	// Default: 120s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxBodyBytes limits request bodies, uploads included.
	// Default: 32MB
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// CORS contains cross-origin configuration for browser front ends.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS configuration.
type CORSConfig struct {
	// Enabled controls whether CORS headers are sent.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins lists allowed origins; "*" allows any.
	// Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods lists allowed methods.
	// Default: ["GET", "POST", "OPTIONS"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders lists allowed request headers.
	// Default: ["Content-Type", "X-Request-ID"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// MaxAge is the preflight cache duration in seconds.
	// Default: 3600
	MaxAge int `yaml:"max_age"`
}

// StoreConfig contains relational store configuration.
type StoreConfig struct {
	// Driver is "oracle", "sqlite" or "sqlite3".
	// Default: "oracle"
	Driver string `yaml:"driver"`

	// Path is the database file for the sqlite drivers.
	Path string `yaml:"path"`

	// Table holds one row per rule.
	// Default: "SRS_RULES"
	Table string `yaml:"table"`

	// NameColumn is matched against the rule name.
	// Default: "RULE_NAME"
	NameColumn string `yaml:"name_column"`

	// MaxOpenConns is the per-database connection limit.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the per-database idle connection limit.
	// Default: 2
	MaxIdleConns int `yaml:"max_idle_conns"`

	// ConnMaxLifetime recycles old connections.
	// Default: 30m
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`

	// QueryTimeout bounds a single lookup.
	// Default: 10s
	QueryTimeout time.Duration `yaml:"query_timeout"`
}

// LookupConfig controls enrichment lookups.
type LookupConfig struct {
	// Mode selects the lookup backend: "http" calls a rulediff server's
	// /rule endpoint, "store" queries the database directly.
	// Default: "http"
	Mode string `yaml:"mode"`

	// Endpoint is the rulediff server base URL for the http mode.
	// Default: "http://127.0.0.1:5000"
	Endpoint string `yaml:"endpoint"`

	// Timeout bounds one HTTP lookup.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// MaxConcurrency caps lookups in flight per partition. 0 is unbounded.
	// Default: 0
	MaxConcurrency int `yaml:"max_concurrency"`

	// Cache contains lookup result caching configuration.
	Cache LookupCacheConfig `yaml:"cache"`
}

// LookupCacheConfig contains lookup cache configuration.
type LookupCacheConfig struct {
	// Enabled controls whether successful lookups are cached.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// TTL is how long a cached result stays valid.
	// Default: 10m
	TTL time.Duration `yaml:"ttl"`

	// SweepSchedule is a cron expression for purging expired entries.
	// Empty disables sweeping.
	// Default: "@every 5m"
	SweepSchedule string `yaml:"sweep_schedule"`
}

// RulesConfig controls rule extraction.
type RulesConfig struct {
	// SanitizeDescriptions strips markup outside the synthesizer's own
	// elements from descriptions.
	// Default: true
	SanitizeDescriptions bool `yaml:"sanitize_descriptions"`
}

// ReportConfig controls comparison output.
type ReportConfig struct {
	// Format is the CLI output format: "text", "json" or "csv".
	// Default: "text"
	Format string `yaml:"format"`

	// OutputDir, when set, receives the three partition CSV files.
	OutputDir string `yaml:"output_dir"`
}

// SourceConfig controls document sources.
type SourceConfig struct {
	// Git contains repository access configuration for git refs.
	Git GitSourceConfig `yaml:"git"`

	// WatchDebounce is the quiet period after a file change before a watched
	// comparison reruns.
	// Default: 250ms
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// GitSourceConfig configures reading documents at git revisions.
type GitSourceConfig struct {
	// Auth contains authentication for remote repositories.
	Auth GitAuthConfig `yaml:"auth"`

	// CloneTimeout bounds cloning a remote repository.
	// Default: 2m
	CloneTimeout time.Duration `yaml:"clone_timeout"`
}

// GitAuthConfig contains git authentication configuration.
type GitAuthConfig struct {
	// Type is "none", "token" or "ssh".
	// Default: "none"
	Type string `yaml:"type"`

	// Token is an HTTPS access token for the token type.
	Token string `yaml:"token"`

	// SSHKeyPath is the private key for the ssh type.
	SSHKeyPath string `yaml:"ssh_key_path"`

	// SSHKeyPassphrase decrypts the key, if needed.
	SSHKeyPassphrase string `yaml:"ssh_key_passphrase"`
}

// CredentialsConfig holds default store credentials.
type CredentialsConfig struct {
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	ServiceName string `yaml:"service_name"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`

	// Health contains health check configuration.
	Health HealthConfig `yaml:"health"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// SensitiveKeys extends the attribute keys whose values are redacted.
	SensitiveKeys []string `yaml:"sensitive_keys"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "rulediff"
	Namespace string `yaml:"namespace"`

	// LookupDurationBuckets defines histogram buckets for lookup latency
	// in seconds.
	// Default: [0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10]
	LookupDurationBuckets []float64 `yaml:"lookup_duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Default: 0.1
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "rulediff"
	ServiceName string `yaml:"service_name"`

	// Insecure disables TLS for the collector connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout is the export timeout.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// HealthConfig contains health check configuration.
type HealthConfig struct {
	// CheckTimeout is the timeout for individual readiness checks.
	// Default: 5s
	CheckTimeout time.Duration `yaml:"check_timeout"`
}
