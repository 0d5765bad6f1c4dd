// Package config loads rulediff configuration.
//
// Configuration comes from a YAML file, is completed with defaults, may be
// overridden by environment variables and is then validated:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("rulediff.yaml")
//
// Environment variables follow the RULEDIFF_SECTION_FIELD convention, for
// example RULEDIFF_SERVER_LISTEN_ADDRESS or RULEDIFF_CREDENTIALS_PASSWORD.
// They always take precedence over the file.
//
// Validation collects every problem into a single [ValidationError] so an
// operator can fix a file in one pass.
//
// # Example file
//
//	server:
//	  listen_address: "127.0.0.1:5000"
//	store:
//	  driver: oracle
//	  table: SRS_RULES
//	  name_column: RULE_NAME
//	lookup:
//	  mode: http
//	  endpoint: "http://127.0.0.1:5000"
//	  cache:
//	    enabled: true
//	    ttl: 10m
//	    sweep_schedule: "@every 5m"
//	rules:
//	  sanitize_descriptions: true
//	telemetry:
//	  logging:
//	    level: info
//	    format: json
//
// A process-wide instance is available through [Initialize] and [GetConfig].
package config
