// Package logging provides ECS-compatible structured logging for env-report.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/eco2-team/backend/domains/env-report/internal/constants"
)

const (
	// Log levels (re-exported for convenience)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger wraps slog.Logger with ECS-compatible defaults.
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration.
type Config struct {
	Level       slog.Level
	Output      io.Writer
	Environment string
}

// DefaultConfig returns default logger configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:       parseLevel(os.Getenv(constants.EnvLogLevel)),
		Output:      os.Stdout,
		Environment: getEnv(constants.EnvEnvironment, constants.DefaultEnvironment),
	}
}

// New creates a new ECS-compatible logger.
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	opts := &slog.HandlerOptions{
		Level: cfg.Level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// ECS field mapping
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{Key: constants.ECSFieldTimestamp, Value: a.Value}
			case slog.LevelKey:
				return slog.Attr{Key: constants.ECSFieldLogLevel, Value: slog.StringValue(a.Value.String())}
			case slog.MessageKey:
				return a
			}
			return a
		},
	}

	handler := slog.NewJSONHandler(cfg.Output, opts)
	baseLogger := slog.New(handler)

	// Add ECS base fields
	ecsLogger := baseLogger.With(
		slog.Group("ecs",
			slog.String("version", constants.ECSVersion),
		),
		slog.Group("service",
			slog.String("name", constants.ServiceName),
			slog.String("version", constants.ServiceVersion),
			slog.String("environment", cfg.Environment),
		),
	)

	return &Logger{Logger: ecsLogger}
}

// WithRequest returns a logger with HTTP request metadata.
func (l *Logger) WithRequest(method, path, host string) *Logger {
	return &Logger{
		Logger: l.With(
			slog.Group("http",
				slog.String("request.method", method),
				slog.String("url.path", path),
			),
			slog.String("host.name", host),
		),
	}
}

// WithTrace returns a logger with trace context.
func (l *Logger) WithTrace(traceID, spanID string) *Logger {
	if traceID == "" {
		return l
	}
	attrs := []any{
		slog.String(constants.ECSFieldTraceID, traceID),
	}
	if spanID != "" {
		attrs = append(attrs, slog.String(constants.ECSFieldSpanID, spanID))
	}
	return &Logger{
		Logger: l.With(attrs...),
	}
}

// WithPrincipal returns a logger with requester context (masked).
func (l *Logger) WithPrincipal(name string) *Logger {
	if name == "" {
		return l
	}
	return &Logger{
		Logger: l.With(
			slog.Group("user",
				slog.String("id", MaskPrincipal(name)),
			),
		),
	}
}

// WithDuration returns a logger with duration information.
func (l *Logger) WithDuration(d time.Duration) *Logger {
	return &Logger{
		Logger: l.With(
			slog.Group("event",
				slog.Float64("duration_ms", float64(d.Microseconds())/1000),
			),
		),
	}
}

// ReportServed logs a completed environment report request.
func (l *Logger) ReportServed(method, path, host, principal string, sources int, duration time.Duration) {
	l.WithRequest(method, path, host).
		WithPrincipal(principal).
		WithDuration(duration).
		Info("Environment report served",
			slog.String(constants.ECSFieldEventAction, constants.EventActionEnvReport),
			slog.String(constants.ECSFieldEventOutcome, constants.EventOutcomeSuccess),
			slog.Int(constants.ECSFieldSourceCount, sources),
		)
}

// ReportFailed logs a failed environment report request.
func (l *Logger) ReportFailed(method, path, host, reason string, duration time.Duration, err error) {
	logger := l.WithRequest(method, path, host).
		WithDuration(duration)

	attrs := []any{
		slog.String(constants.ECSFieldEventAction, constants.EventActionEnvReport),
		slog.String(constants.ECSFieldEventOutcome, constants.EventOutcomeFailure),
		slog.String(constants.ECSFieldEventReason, reason),
	}

	if err != nil {
		attrs = append(attrs, slog.String(constants.ECSFieldErrorMessage, err.Error()))
	}

	logger.Warn("Environment report failed", attrs...)
}

// TokenRejected logs a rejected bearer token. The token is masked
// before it reaches the log stream.
func (l *Logger) TokenRejected(method, path, host, token string, err error) {
	attrs := []any{
		slog.String(constants.ECSFieldEventAction, constants.EventActionEnvReport),
		slog.String(constants.ECSFieldEventOutcome, constants.EventOutcomeFailure),
		slog.String("authentication.token", MaskToken(token)),
	}
	if err != nil {
		attrs = append(attrs, slog.String(constants.ECSFieldErrorMessage, err.Error()))
	}
	l.WithRequest(method, path, host).Warn("Token rejected", attrs...)
}

// parseLevel maps a LOG_LEVEL value to a slog.Level (defaults to info).
func parseLevel(s string) slog.Level {
	switch s {
	case constants.LogLevelDebug:
		return LevelDebug
	case constants.LogLevelWarn:
		return LevelWarn
	case constants.LogLevelError:
		return LevelError
	default:
		return LevelInfo
	}
}

// getEnv returns environment variable or default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Global logger instance
var defaultLogger *Logger

// Init initializes the global logger.
func Init(cfg *Config) {
	defaultLogger = New(cfg)
}

// Default returns the global logger.
func Default() *Logger {
	if defaultLogger == nil {
		defaultLogger = New(nil)
	}
	return defaultLogger
}

// NewTestLogger creates a logger for testing (discards output).
func NewTestLogger() *Logger {
	cfg := &Config{
		Level:       LevelDebug,
		Output:      io.Discard,
		Environment: "test",
	}
	return New(cfg)
}
