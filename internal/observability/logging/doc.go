// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Key features:
//   - JSON and text output formats
//   - Cron run ID propagation, so every log line from one ingest or digest
//     cycle can be correlated
//   - Context-aware logging
//   - Configurable log levels
//
// Example usage:
//
//	import "hornwatch/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("worker started", slog.String("version", "1.0"))
//	}
//
//	func runIngestCycle(ctx context.Context) {
//	    ctx = logging.WithRunIDValue(ctx, uuid.NewString())
//	    logger := logging.WithRunID(ctx, slog.Default())
//	    logger.Info("ingest cycle started")
//	}
package logging
