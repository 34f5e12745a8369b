// Package observability provides structured logging and tracing infrastructure
// shared across the ingest, extract, and digest pipeline stages.
//
// Subpackages:
//   - logging: Structured logging utilities with slog, keyed by cron run ID
//   - tracing: OpenTelemetry tracer accessor for pipeline spans
//
// Example usage:
//
//	import (
//	    "hornwatch/internal/observability/logging"
//	    "hornwatch/internal/observability/tracing"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("worker started")
//
//	    ctx, span := tracing.GetTracer().Start(ctx, "ingest.Run")
//	    defer span.End()
//	}
package observability
