// Package observability provides OpenTelemetry tracing and metrics for the
// export pipeline, plus health reporting for the engine sidecars.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("lucidscript"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "export.transcribe")
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("lucidscript"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("lucidscript"))
//	metrics.RecordExport(ctx, "pdf", "ok", duration)
package observability
