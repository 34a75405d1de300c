// Package logging provides structured logging for the camera configurator.
//
// This package wraps zap logger with convenience functions for the logging
// patterns used throughout the tool. CLI commands are silent by default;
// verbosity is opt-in via a flag or the ONVIFCFG_LOG_LEVEL environment
// variable.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Per-request detail (SOAP actions, response codes, timings)
//   - Info: Normal operations (batch start, per-camera results, summary)
//   - Warn: Non-fatal issues (verification still pending, skipped steps)
//   - Error: Fatal issues (unreadable plan file, logger setup failures)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Camera result",
//	    zap.String("current_ip", "192.168.1.64"),
//	    zap.String("new_ip", "10.0.0.11"),
//	    zap.String("status", "success"),
//	)
//
// # Run Log Files
//
// InitializeWithFile additionally writes every record to a timestamped file
// (ip_change_YYYYMMDD_HHMMSS.log) so each batch run leaves an audit trail
// even when the console stays quiet. RunLogPath returns the active file.
// Credentials are never logged.
//
// # Configuration
//
// Initialize logging at command startup:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
