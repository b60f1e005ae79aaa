// Package logging provides structured logging for wakehub.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the application. Logging is silent by default so
// that CLI output stays clean; set WAKEHUB_LOG_LEVEL (or pass a level to
// Initialize) to enable it.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (per-request traces, probe details)
//   - Info: Normal operations (wake dispatches, server lifecycle)
//   - Warn: Non-fatal issues (corrupt store recovery, probe anomalies)
//   - Error: Fatal issues (startup failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Magic packet sent",
//	    zap.String("mac", "AA:BB:CC:DD:EE:FF"),
//	    zap.String("destination", "192.168.1.255"),
//	    zap.Int("port", 9),
//	)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
