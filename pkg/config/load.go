package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RULEDIFF_"

// LoadConfig loads configuration from a YAML file at the specified path.
// The file is decoded over the defaults and validated. Environment variables
// are not applied; use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides.
//
// The loading sequence is:
// 1. Decode YAML over the defaults
// 2. Apply environment variable overrides
// 3. Validate final configuration
//
// An empty path yields defaults plus environment overrides.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if cfg, err = parse(data); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadOptional behaves like LoadConfigWithEnvOverrides but treats a missing
// file as empty.
func LoadOptional(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	return LoadConfigWithEnvOverrides(path)
}

func parse(data []byte) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(cfg)
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format RULEDIFF_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Server overrides
	envString("SERVER_LISTEN_ADDRESS", &cfg.Server.ListenAddress)
	envDuration("SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	envDuration("SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	envDuration("SERVER_IDLE_TIMEOUT", &cfg.Server.IdleTimeout)
	envDuration("SERVER_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)
	if val := os.Getenv(EnvPrefix + "SERVER_MAX_BODY_BYTES"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Server.MaxBodyBytes = i
		}
	}
	envBool("SERVER_CORS_ENABLED", &cfg.Server.CORS.Enabled)
	envList("SERVER_CORS_ALLOWED_ORIGINS", &cfg.Server.CORS.AllowedOrigins)

	// Store overrides
	envString("STORE_DRIVER", &cfg.Store.Driver)
	envString("STORE_PATH", &cfg.Store.Path)
	envString("STORE_TABLE", &cfg.Store.Table)
	envString("STORE_NAME_COLUMN", &cfg.Store.NameColumn)
	envInt("STORE_MAX_OPEN_CONNS", &cfg.Store.MaxOpenConns)
	envInt("STORE_MAX_IDLE_CONNS", &cfg.Store.MaxIdleConns)
	envDuration("STORE_QUERY_TIMEOUT", &cfg.Store.QueryTimeout)

	// Lookup overrides
	envString("LOOKUP_MODE", &cfg.Lookup.Mode)
	envString("LOOKUP_ENDPOINT", &cfg.Lookup.Endpoint)
	envDuration("LOOKUP_TIMEOUT", &cfg.Lookup.Timeout)
	envInt("LOOKUP_MAX_CONCURRENCY", &cfg.Lookup.MaxConcurrency)
	envBool("LOOKUP_CACHE_ENABLED", &cfg.Lookup.Cache.Enabled)
	envDuration("LOOKUP_CACHE_TTL", &cfg.Lookup.Cache.TTL)
	envString("LOOKUP_CACHE_SWEEP_SCHEDULE", &cfg.Lookup.Cache.SweepSchedule)

	// Rules overrides
	envBool("RULES_SANITIZE_DESCRIPTIONS", &cfg.Rules.SanitizeDescriptions)

	// Report overrides
	envString("REPORT_FORMAT", &cfg.Report.Format)
	envString("REPORT_OUTPUT_DIR", &cfg.Report.OutputDir)

	// Source overrides
	envString("SOURCE_GIT_AUTH_TYPE", &cfg.Source.Git.Auth.Type)
	envString("SOURCE_GIT_AUTH_TOKEN", &cfg.Source.Git.Auth.Token)
	envString("SOURCE_GIT_AUTH_SSH_KEY_PATH", &cfg.Source.Git.Auth.SSHKeyPath)
	envDuration("SOURCE_WATCH_DEBOUNCE", &cfg.Source.WatchDebounce)

	// Credential overrides
	envString("CREDENTIALS_USERNAME", &cfg.Credentials.Username)
	envString("CREDENTIALS_PASSWORD", &cfg.Credentials.Password)
	envString("CREDENTIALS_HOST", &cfg.Credentials.Host)
	envString("CREDENTIALS_PORT", &cfg.Credentials.Port)
	envString("CREDENTIALS_SERVICE_NAME", &cfg.Credentials.ServiceName)

	// Telemetry overrides
	envString("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	envString("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	envBool("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	envString("TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	envBool("TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	envString("TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	if val := os.Getenv(EnvPrefix + "TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
}

func envString(name string, dst *string) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		*dst = val
	}
}

func envBool(name string, dst *bool) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func envInt(name string, dst *int) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func envDuration(name string, dst *time.Duration) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}

func envList(name string, dst *[]string) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		var out []string
		for _, part := range strings.Split(val, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		*dst = out
	}
}
