package logging

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/infrastructure/config"
	"github.com/ic2hrmk/promtail"
)

// Fields promoted to Loki labels; everything else goes into the line to keep label cardinality low.
var promtailLabelKeys = map[string]bool{
	"zone":   true,
	"source": true,
}

type PromtailLogger struct {
	client    promtail.Client
	component string
	fields    []domain.Field
	mu        sync.RWMutex
}

func NewPromtailLogger(cfg *config.PromtailConfig, component string) (*PromtailLogger, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("promtail url is not configured")
	}

	defaultLabels := map[string]string{
		"app":       "tzcore",
		"component": component,
	}

	batchSize := cfg.BatchCapacity
	if batchSize < 1 {
		batchSize = 100
	}
	batchWait := time.Duration(cfg.BatchWaitSeconds) * time.Second
	if batchWait <= 0 {
		batchWait = time.Second
	}

	client, err := promtail.NewJSONv1Client(
		cfg.URL,
		defaultLabels,
		promtail.WithSendBatchSize(uint(batchSize)),
		promtail.WithSendBatchTimeout(batchWait),
		promtail.WithBasicAuth(cfg.Username, cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create promtail client: %w", err)
	}

	return &PromtailLogger{
		client:    client,
		component: component,
	}, nil
}

func (p *PromtailLogger) Debug(ctx context.Context, msg string, fields ...domain.Field) {
	p.log(domain.LogLevelDebug, msg, fields...)
}

func (p *PromtailLogger) Info(ctx context.Context, msg string, fields ...domain.Field) {
	p.log(domain.LogLevelInfo, msg, fields...)
}

func (p *PromtailLogger) Warn(ctx context.Context, msg string, fields ...domain.Field) {
	p.log(domain.LogLevelWarn, msg, fields...)
}

func (p *PromtailLogger) Error(ctx context.Context, msg string, fields ...domain.Field) {
	p.log(domain.LogLevelError, msg, fields...)
}

func (p *PromtailLogger) WithFields(fields ...domain.Field) domain.Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()

	newFields := make([]domain.Field, 0, len(p.fields)+len(fields))
	newFields = append(newFields, p.fields...)
	newFields = append(newFields, fields...)

	return &PromtailLogger{
		client:    p.client,
		component: p.component,
		fields:    newFields,
	}
}

func (p *PromtailLogger) log(level domain.LogLevel, msg string, fields ...domain.Field) {
	p.mu.RLock()
	all := make([]domain.Field, 0, len(p.fields)+len(fields))
	all = append(all, p.fields...)
	all = append(all, fields...)
	p.mu.RUnlock()

	if p.client == nil {
		return
	}

	labels, line := promtailEntry(level, msg, all)
	p.client.LogfWithLabels(promtailLevel(level), labels, "%s", line)
}

// promtailEntry splits fields into stream labels and a logfmt-style line
func promtailEntry(level domain.LogLevel, msg string, fields []domain.Field) (map[string]string, string) {
	labels := map[string]string{
		"level": levelToString(level),
	}

	var line strings.Builder
	line.WriteString(msg)
	for _, field := range fields {
		value := fmt.Sprintf("%v", field.Value)
		if promtailLabelKeys[field.Key] {
			labels[field.Key] = value
			continue
		}
		line.WriteString(" ")
		line.WriteString(field.Key)
		line.WriteString("=")
		if strings.ContainsAny(value, " \t\"") {
			value = fmt.Sprintf("%q", value)
		}
		line.WriteString(value)
	}

	return labels, line.String()
}

func promtailLevel(level domain.LogLevel) promtail.Level {
	switch level {
	case domain.LogLevelDebug:
		return promtail.Debug
	case domain.LogLevelWarn:
		return promtail.Warn
	case domain.LogLevelError:
		return promtail.Error
	default:
		return promtail.Info
	}
}

func (p *PromtailLogger) Shutdown() error {
	if p.client != nil {
		p.client.Close()
	}
	return nil
}
