// Package tracing wires OpenTelemetry tracing for rulediff.
//
// With tracing enabled, spans are exported over OTLP gRPC to
// telemetry.tracing.endpoint. Disabled tracing yields a noop tracer so
// callers never branch on configuration.
//
// Spans produced by rulediff:
//
//	comparator.compare     one comparison, carrying the report ID
//	comparator.extract     extraction of one document side
//	comparator.diff        partitioning
//	enrich.partition       fan-out over one partition
//	enrich.lookup          one rule lookup
//	http.request           one served HTTP request
//
// W3C trace context is extracted from incoming requests and injected into
// outgoing /rule lookups.
package tracing
