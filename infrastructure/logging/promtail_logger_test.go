package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/infrastructure/config"
)

func TestNewPromtailLogger_RequiresURL(t *testing.T) {
	_, err := NewPromtailLogger(nil, "test")
	assert.Error(t, err)

	_, err = NewPromtailLogger(&config.PromtailConfig{}, "test")
	assert.Error(t, err)
}

func TestPromtailEntry(t *testing.T) {
	labels, line := promtailEntry(domain.LogLevelWarn, "Host zone detection failed", []domain.Field{
		domain.ZoneField("Asia/Tokyo"),
		domain.NewField("fallback", "UTC"),
		domain.NewField("error", "no such file or directory"),
	})

	assert.Equal(t, map[string]string{"level": "WARN", "zone": "Asia/Tokyo"}, labels)
	assert.Equal(t, `Host zone detection failed fallback=UTC error="no such file or directory"`, line)
}

func TestPromtailLogger_WithFields(t *testing.T) {
	logger := &PromtailLogger{component: "test"}

	base := logger.WithFields(domain.NewField("version", "1.0.0"))
	child := base.WithFields(domain.NewField("module", "test"), domain.ZoneField("UTC"))

	assert.NotSame(t, logger, base)
	childImpl, ok := child.(*PromtailLogger)
	require.True(t, ok)
	assert.Len(t, childImpl.fields, 3)
	assert.Len(t, base.(*PromtailLogger).fields, 1, "parent fields are not shared with children")

	// no client: logging is a no-op rather than a panic
	child.Info(context.Background(), "message")
	assert.NoError(t, childImpl.Shutdown())
}
