// Package telemetry bundles rulediff observability: structured logging,
// Prometheus metrics, OpenTelemetry tracing and health checks.
//
//	tel, err := telemetry.New(&cfg.Telemetry, telemetry.BuildInfo{Version: version})
//	if err != nil {
//		return err
//	}
//	defer tel.Shutdown(context.Background())
//
//	tel.Logger().Info("comparison finished", "dropped", 3)
//	tel.Metrics().RecordComparison(metrics.OutcomeSuccess, time.Second)
//	ctx, span := tel.Tracer().Start(ctx, "comparator.compare")
//	defer span.End()
package telemetry
