package logging

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const (
	// RequestIDKey is the context key for HTTP request IDs.
	RequestIDKey contextKey = "request_id"

	// ComparisonIDKey is the context key for comparison report IDs.
	ComparisonIDKey contextKey = "comparison_id"

	loggerKey contextKey = "logger"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithComparisonID adds a comparison ID to the context.
func WithComparisonID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ComparisonIDKey, id)
}

// GetComparisonID retrieves the comparison ID from the context.
func GetComparisonID(ctx context.Context) string {
	if id, ok := ctx.Value(ComparisonIDKey).(string); ok {
		return id
	}
	return ""
}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the context's logger (or the default logger) with the
// request ID, comparison ID and trace ID attached when present.
func FromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok {
		logger = slog.Default()
	}
	if args := contextFields(ctx); len(args) > 0 {
		logger = logger.With(args...)
	}
	return logger
}

func contextFields(ctx context.Context) []any {
	var args []any
	if id := GetRequestID(ctx); id != "" {
		args = append(args, string(RequestIDKey), id)
	}
	if id := GetComparisonID(ctx); id != "" {
		args = append(args, string(ComparisonIDKey), id)
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		args = append(args, "trace_id", sc.TraceID().String())
	}
	return args
}
