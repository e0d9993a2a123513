package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/infrastructure/config"
)

type LoggerFactoryImpl struct {
	config *config.LoggingConfig
	out    io.Writer
}

func NewLoggerFactory(config *config.LoggingConfig) domain.LoggerFactory {
	return NewLoggerFactoryTo(config, os.Stderr)
}

// NewLoggerFactoryTo builds loggers whose local output goes to out
func NewLoggerFactoryTo(cfg *config.LoggingConfig, out io.Writer) *LoggerFactoryImpl {
	if cfg == nil {
		cfg = config.DefaultConfig().Logging
	}
	return &LoggerFactoryImpl{config: cfg, out: out}
}

// CreateLogger ships to Loki when a Promtail URL is configured and writes to the console otherwise
func (f *LoggerFactoryImpl) CreateLogger(component string) domain.Logger {
	level := ParseLogLevel(f.config.Level)
	if f.config.Debug {
		level = domain.LogLevelDebug
	}

	var logger domain.Logger
	if f.config.Promtail != nil && f.config.Promtail.URL != "" {
		promtailLogger, err := NewPromtailLogger(f.config.Promtail, component)
		if err == nil {
			logger = promtailLogger
			if f.config.Debug {
				logger = NewDebugLoggerTo(logger, component, f.out)
			}
		} else {
			console := NewConsoleLogger(f.out, component)
			console.Warn(context.Background(), "Promtail unavailable, logging to console", domain.ErrorField(err))
			logger = console
		}
	} else {
		logger = NewConsoleLogger(f.out, component)
	}

	return NewLevelFilterLogger(logger, level)
}

// ParseLogLevel maps a configured level name to a domain level, defaulting to info
func ParseLogLevel(level string) domain.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return domain.LogLevelDebug
	case "info":
		return domain.LogLevelInfo
	case "warn":
		return domain.LogLevelWarn
	case "error":
		return domain.LogLevelError
	default:
		return domain.LogLevelInfo
	}
}

// LevelFilterLogger filters log messages based on minimum level
type LevelFilterLogger struct {
	wrapped  domain.Logger
	minLevel domain.LogLevel
}

func NewLevelFilterLogger(wrapped domain.Logger, minLevel domain.LogLevel) *LevelFilterLogger {
	return &LevelFilterLogger{
		wrapped:  wrapped,
		minLevel: minLevel,
	}
}

func (l *LevelFilterLogger) Debug(ctx context.Context, msg string, fields ...domain.Field) {
	if domain.LogLevelDebug >= l.minLevel {
		l.wrapped.Debug(ctx, msg, fields...)
	}
}

func (l *LevelFilterLogger) Info(ctx context.Context, msg string, fields ...domain.Field) {
	if domain.LogLevelInfo >= l.minLevel {
		l.wrapped.Info(ctx, msg, fields...)
	}
}

func (l *LevelFilterLogger) Warn(ctx context.Context, msg string, fields ...domain.Field) {
	if domain.LogLevelWarn >= l.minLevel {
		l.wrapped.Warn(ctx, msg, fields...)
	}
}

func (l *LevelFilterLogger) Error(ctx context.Context, msg string, fields ...domain.Field) {
	if domain.LogLevelError >= l.minLevel {
		l.wrapped.Error(ctx, msg, fields...)
	}
}

func (l *LevelFilterLogger) WithFields(fields ...domain.Field) domain.Logger {
	return &LevelFilterLogger{
		wrapped:  l.wrapped.WithFields(fields...),
		minLevel: l.minLevel,
	}
}

func (l *LevelFilterLogger) Shutdown() error {
	if shutdowner, ok := l.wrapped.(domain.Shutdowner); ok {
		return shutdowner.Shutdown()
	}
	return nil
}

// NoOpLogger is a logger that does nothing
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(ctx context.Context, msg string, fields ...domain.Field) {}
func (n *NoOpLogger) Info(ctx context.Context, msg string, fields ...domain.Field)  {}
func (n *NoOpLogger) Warn(ctx context.Context, msg string, fields ...domain.Field)  {}
func (n *NoOpLogger) Error(ctx context.Context, msg string, fields ...domain.Field) {}
func (n *NoOpLogger) WithFields(fields ...domain.Field) domain.Logger {
	return n
}
