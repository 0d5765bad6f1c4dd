// Package metrics exposes rulediff's Prometheus metrics.
//
// A [Collector] owns a private registry so tests and embedded servers never
// collide with the global one. All recording methods are no-ops when metrics
// are disabled or the collector is nil.
//
// Metrics (namespace "rulediff" by default):
//
//	rulediff_comparisons_total{outcome}
//	rulediff_comparison_duration_seconds
//	rulediff_rules_total{partition}
//	rulediff_shadowed_duplicates_total{side}
//	rulediff_unnamed_records_total
//	rulediff_lookups_total{backend,status}
//	rulediff_lookup_duration_seconds{backend}
//	rulediff_lookups_in_flight
//	rulediff_lookup_cache_hits_total
//	rulediff_lookup_cache_misses_total
//	rulediff_lookup_cache_entries
//	rulediff_http_requests_total{method,path,code}
//	rulediff_http_request_duration_seconds{method,path}
//
// Serve them with [Collector.Handler] at telemetry.metrics.path.
package metrics
