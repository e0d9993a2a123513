package logging

import (
	"context"
	"io"
	"time"

	"github.com/ca-srg/tzcore/domain"
	"github.com/rs/zerolog"
)

// ConsoleLogger writes human-readable lines through zerolog's ConsoleWriter
type ConsoleLogger struct {
	logger zerolog.Logger
}

// NewConsoleLogger creates a console logger for component writing to out
func NewConsoleLogger(out io.Writer, component string) *ConsoleLogger {
	output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	return &ConsoleLogger{
		logger: zerolog.New(output).With().Timestamp().Str("component", component).Logger(),
	}
}

// NewJSONConsoleLogger writes one JSON object per line, for log shippers reading stderr
func NewJSONConsoleLogger(out io.Writer, component string) *ConsoleLogger {
	return &ConsoleLogger{
		logger: zerolog.New(out).With().Timestamp().Str("component", component).Logger(),
	}
}

func (c *ConsoleLogger) Debug(ctx context.Context, msg string, fields ...domain.Field) {
	c.emit(c.logger.Debug(), msg, fields)
}

func (c *ConsoleLogger) Info(ctx context.Context, msg string, fields ...domain.Field) {
	c.emit(c.logger.Info(), msg, fields)
}

func (c *ConsoleLogger) Warn(ctx context.Context, msg string, fields ...domain.Field) {
	c.emit(c.logger.Warn(), msg, fields)
}

func (c *ConsoleLogger) Error(ctx context.Context, msg string, fields ...domain.Field) {
	c.emit(c.logger.Error(), msg, fields)
}

func (c *ConsoleLogger) WithFields(fields ...domain.Field) domain.Logger {
	child := c.logger.With()
	for _, field := range fields {
		child = child.Interface(field.Key, field.Value)
	}
	return &ConsoleLogger{logger: child.Logger()}
}

func (c *ConsoleLogger) emit(event *zerolog.Event, msg string, fields []domain.Field) {
	for _, field := range fields {
		event = event.Interface(field.Key, field.Value)
	}
	event.Msg(msg)
}
