package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "ONVIFCFG_LOG_LEVEL"

// runLogFormat is the filename layout for per-run log files,
// e.g. ip_change_20240115_103000.log
const runLogFormat = "ip_change_20060102_150405.log"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks ONVIFCFG_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	return InitializeWithFile(level, "")
}

// InitializeWithFile creates a logger that writes to stdout and, when
// logDir is non-empty, also to a timestamped run log file in that
// directory. The file path is returned by RunLogPath afterwards.
func InitializeWithFile(level, logDir string) error {
	// If no level provided, check environment variable
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	// A run log file forces logging on even in silent mode; the console
	// stays quiet but the file gets everything from info up
	if level == "" && logDir == "" {
		logger = zap.NewNop()
		return nil
	}

	zapLevel := parseLevel(level)

	outputs := []string{}
	if level != "" {
		outputs = append(outputs, "stdout")
	}
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		runLogPath = filepath.Join(logDir, time.Now().Format(runLogFormat))
		outputs = append(outputs, runLogPath)
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}

	// Customize encoder for better readability
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info", "":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		return zapcore.InfoLevel
	}
}

// runLogPath is the current run's log file, when one was requested
var runLogPath string

// RunLogPath returns the path of the run log file, or "" when logging to
// file was not enabled
func RunLogPath() string {
	return runLogPath
}

// InitializeFromEnv initializes the logger from the ONVIFCFG_LOG_LEVEL
// environment variable. This is the recommended way to initialize logging
// for CLI commands that want silent mode by default.
func InitializeFromEnv() error {
	return Initialize("")
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		// This ensures no unexpected log output in CLI commands
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	GetLogger().Fatal(msg, fields...)
}

// LogResult emits the structured outcome record for one camera in a batch
// run. Credentials never appear in these fields.
func LogResult(runID, currentIP, newIP, status, detail string, duration time.Duration) {
	Info("Camera result",
		zap.String("run_id", runID),
		zap.String("current_ip", currentIP),
		zap.String("new_ip", newIP),
		zap.String("status", status),
		zap.String("detail", detail),
		zap.Duration("duration", duration),
	)
}

// LogRequest logs one SOAP round trip at debug level
func LogRequest(cameraIP, action string, statusCode int, duration time.Duration) {
	Debug("SOAP request",
		zap.String("camera", cameraIP),
		zap.String("action", action),
		zap.Int("status_code", statusCode),
		zap.Duration("duration", duration),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
