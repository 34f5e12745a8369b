// Package tracing provides OpenTelemetry tracing integration for the
// ingest, extract, and digest pipeline stages.
//
// Example usage:
//
//	import "hornwatch/internal/observability/tracing"
//
//	func runIngestCycle(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "ingest.Run")
//	    defer span.End()
//	    // ...
//	}
package tracing
