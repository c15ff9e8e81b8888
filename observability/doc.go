// Package observability wires OpenTelemetry tracing and metrics into the
// SDK. Both are optional: initialize them once at startup, then hand
// ClientMetrics to the root client to record calls and retries.
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("agrovia-sdk"))
//	defer tp.Shutdown(ctx)
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("agrovia-sdk"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewClientMetrics(observability.Meter("agrovia-sdk"))
package observability
