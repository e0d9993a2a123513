package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TZCORE_ZONE_SOURCE", "embedded")
	t.Setenv("TZCORE_ARCHIVE_FORMAT", "protobuf")
	t.Setenv("TZCORE_ARCHIVE_COMPRESS", "true")
	t.Setenv("TZCORE_WATCH_INTERVAL_SECONDS", "60")
	t.Setenv("TZCORE_LOG_LEVEL", "warn")
	t.Setenv("TZCORE_LOKI_URL", "http://loki:3100")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "embedded", config.ZoneDatabase.Source)
	assert.Equal(t, "protobuf", config.Archive.Format)
	assert.True(t, config.Archive.Compress)
	assert.Equal(t, 60, config.Watcher.IntervalSec)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.Equal(t, "http://loki:3100", config.Logging.Promtail.URL)

	assert.Equal(t, SourceEnvironment, config.ConfigSources["ZoneDatabase.Source"])
	assert.Equal(t, SourceEnvironment, config.ConfigSources["Archive.Compress"])
	assert.Equal(t, SourceEnvironment, config.ConfigSources["Watcher.IntervalSec"])
	assert.Equal(t, SourceEnvironment, config.ConfigSources["Promtail.URL"])
	assert.Equal(t, SourceDefault, config.ConfigSources["Storage.DefaultZoneDBPath"])
}

func TestLoadFromEnv_OverridesJSON(t *testing.T) {
	var jsonConfig AppConfig
	require.NoError(t, json.Unmarshal([]byte(`{"watcher": {"interval_seconds": 30}, "archive": {"format": "protobuf"}}`), &jsonConfig))

	config := DefaultConfig()
	config.MarkDefaults()
	config.MergeJSONConfig(&jsonConfig)

	t.Setenv("TZCORE_WATCH_INTERVAL_SECONDS", "120")
	require.NoError(t, config.LoadFromEnv())

	assert.Equal(t, 120, config.Watcher.IntervalSec)
	assert.Equal(t, SourceEnvironment, config.ConfigSources["Watcher.IntervalSec"])

	// Unset variables leave JSON values alone
	assert.Equal(t, "protobuf", config.Archive.Format)
	assert.Equal(t, SourceJSONFile, config.ConfigSources["Archive.Format"])
}

func TestLoadConfig_InvalidEnvironment(t *testing.T) {
	t.Setenv("TZCORE_ZONE_SOURCE", "cloud")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
