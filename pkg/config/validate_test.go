package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{name: "valid defaults", mutate: func(*Config) {}},
		{name: "sqlite with path", mutate: func(c *Config) { c.Store.Driver = "sqlite"; c.Store.Path = "r.db" }},
		{name: "store lookup mode", mutate: func(c *Config) { c.Lookup.Mode = "store"; c.Lookup.Endpoint = "" }},
		{name: "empty listen address", mutate: func(c *Config) { c.Server.ListenAddress = "" }, wantField: "server.listen_address"},
		{name: "negative read timeout", mutate: func(c *Config) { c.Server.ReadTimeout = -1 }, wantField: "server.read_timeout"},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "mysql" }, wantField: "store.driver"},
		{name: "sqlite without path", mutate: func(c *Config) { c.Store.Driver = "sqlite3" }, wantField: "store.path"},
		{name: "table injection", mutate: func(c *Config) { c.Store.Table = "T; DROP TABLE T" }, wantField: "store.table"},
		{name: "bad column", mutate: func(c *Config) { c.Store.NameColumn = "1COL" }, wantField: "store.name_column"},
		{name: "unknown lookup mode", mutate: func(c *Config) { c.Lookup.Mode = "grpc" }, wantField: "lookup.mode"},
		{name: "bad endpoint", mutate: func(c *Config) { c.Lookup.Endpoint = "ftp://x" }, wantField: "lookup.endpoint"},
		{name: "negative concurrency", mutate: func(c *Config) { c.Lookup.MaxConcurrency = -1 }, wantField: "lookup.max_concurrency"},
		{name: "bad sweep schedule", mutate: func(c *Config) { c.Lookup.Cache.SweepSchedule = "sometimes" }, wantField: "lookup.cache.sweep_schedule"},
		{name: "bad report format", mutate: func(c *Config) { c.Report.Format = "xlsx" }, wantField: "report.format"},
		{name: "token auth", mutate: func(c *Config) { c.Source.Git.Auth.Type = "token"; c.Source.Git.Auth.Token = "ghp_x" }},
		{name: "token auth without token", mutate: func(c *Config) { c.Source.Git.Auth.Type = "token" }, wantField: "source.git.auth.token"},
		{name: "ssh auth without key", mutate: func(c *Config) { c.Source.Git.Auth.Type = "ssh" }, wantField: "source.git.auth.ssh_key_path"},
		{name: "unknown git auth", mutate: func(c *Config) { c.Source.Git.Auth.Type = "kerberos" }, wantField: "source.git.auth.type"},
		{name: "negative debounce", mutate: func(c *Config) { c.Source.WatchDebounce = -1 }, wantField: "source.watch_debounce"},
		{name: "bad log level", mutate: func(c *Config) { c.Telemetry.Logging.Level = "loud" }, wantField: "telemetry.logging.level"},
		{name: "bad log format", mutate: func(c *Config) { c.Telemetry.Logging.Format = "xml" }, wantField: "telemetry.logging.format"},
		{name: "bad metrics path", mutate: func(c *Config) { c.Telemetry.Metrics.Path = "metrics" }, wantField: "telemetry.metrics.path"},
		{
			name: "bad sample ratio",
			mutate: func(c *Config) {
				c.Telemetry.Tracing.Enabled = true
				c.Telemetry.Tracing.SampleRatio = 1.5
			},
			wantField: "telemetry.tracing.sample_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() errors %v do not include field %q", verr.Errors, tt.wantField)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	if got := (ValidationError{}).Error(); got != "configuration validation failed" {
		t.Errorf("empty Error() = %q", got)
	}

	one := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}}}
	if got := one.Error(); got != "configuration validation failed: a: bad" {
		t.Errorf("single Error() = %q", got)
	}

	two := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}}
	got := two.Error()
	if !strings.Contains(got, "2 errors") || !strings.Contains(got, "  - b: worse") {
		t.Errorf("multi Error() = %q", got)
	}
}
