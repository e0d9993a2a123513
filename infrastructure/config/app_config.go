package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Netflix/go-env"
)

// ZoneDatabaseConfig selects where zone rules come from
type ZoneDatabaseConfig struct {
	// Source is "system" (host zoneinfo, then linked tzdata) or "embedded" (4d63.com/tz)
	Source string `json:"source,omitempty" env:"TZCORE_ZONE_SOURCE"`
}

// StorageConfig holds persistence configuration
type StorageConfig struct {
	// DefaultZoneDBPath is the SQLite file holding the system default override.
	// Empty keeps the override in memory for the lifetime of the process.
	DefaultZoneDBPath string `json:"default_zone_db_path,omitempty" env:"TZCORE_DEFAULT_ZONE_DB"`
}

// ArchiveConfig holds zone archive configuration
type ArchiveConfig struct {
	// Format is the byte encoding of archives: "json" or "protobuf"
	Format string `json:"format,omitempty" env:"TZCORE_ARCHIVE_FORMAT"`

	// Compress wraps archives in snappy framing
	Compress bool `json:"compress,omitempty" env:"TZCORE_ARCHIVE_COMPRESS"`
}

// WatcherConfig holds host zone watcher configuration
type WatcherConfig struct {
	// IntervalSec is the polling interval in seconds
	IntervalSec int `json:"interval_seconds,omitempty" env:"TZCORE_WATCH_INTERVAL_SECONDS"`
}

// PromtailConfig holds Promtail logging configuration
type PromtailConfig struct {
	// URL is the Promtail push endpoint URL. Empty disables shipping to Loki.
	URL string `json:"url" env:"TZCORE_LOKI_URL"`

	// Username is the username for basic authentication
	Username string `json:"username" env:"TZCORE_LOKI_USERNAME"`

	// Password is the password for basic authentication
	Password string `json:"password" env:"TZCORE_LOKI_PASSWORD"`

	// BatchWaitSeconds is the time to wait before sending a batch
	BatchWaitSeconds int `json:"batch_wait_seconds,omitempty" env:"TZCORE_LOKI_BATCH_WAIT_SECONDS"`

	// BatchCapacity is the maximum number of log entries in a batch
	BatchCapacity int `json:"batch_capacity,omitempty" env:"TZCORE_LOKI_BATCH_CAPACITY"`

	// TimeoutSeconds is the timeout for sending logs
	TimeoutSeconds int `json:"timeout_seconds,omitempty" env:"TZCORE_LOKI_TIMEOUT_SECONDS"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `json:"level,omitempty" env:"TZCORE_LOG_LEVEL"`

	// Debug enables debug mode with stdout logging
	Debug bool `json:"debug,omitempty" env:"TZCORE_LOG_DEBUG"`

	// Promtail holds Promtail configuration
	Promtail *PromtailConfig `json:"promtail,omitempty"`
}

// ConfigSource represents the source of a configuration value
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceJSONFile    ConfigSource = "json"
	SourceEnvironment ConfigSource = "env"
)

// ConfigSourceMap tracks the source of each configuration field
type ConfigSourceMap map[string]ConfigSource

// AppConfig holds application configuration
type AppConfig struct {
	// Version is the configuration schema version
	Version int `json:"version,omitempty"`

	// ZoneDatabase selects the zone rule source
	ZoneDatabase *ZoneDatabaseConfig `json:"zone_database,omitempty"`

	// Storage holds persistence configuration
	Storage *StorageConfig `json:"storage,omitempty"`

	// Archive holds archive encoding configuration
	Archive *ArchiveConfig `json:"archive,omitempty"`

	// Watcher holds host zone watcher configuration
	Watcher *WatcherConfig `json:"watcher,omitempty"`

	// Logging holds logging configuration
	Logging *LoggingConfig `json:"logging,omitempty"`

	// ConfigSources tracks the source of each configuration field
	ConfigSources ConfigSourceMap `json:"-"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Version: 1,
		ZoneDatabase: &ZoneDatabaseConfig{
			Source: "system",
		},
		Storage: &StorageConfig{
			DefaultZoneDBPath: "",
		},
		Archive: &ArchiveConfig{
			Format:   "json",
			Compress: false,
		},
		Watcher: &WatcherConfig{
			IntervalSec: 5,
		},
		Logging: &LoggingConfig{
			Level: "info",
			Debug: false,
			Promtail: &PromtailConfig{
				URL:              "",
				BatchWaitSeconds: 1,
				BatchCapacity:    100,
				TimeoutSeconds:   5,
			},
		},
		ConfigSources: make(ConfigSourceMap),
	}
}

// MinimalDefaultConfig returns the configuration template written by "config init"
func MinimalDefaultConfig() *AppConfig {
	cfg := DefaultConfig()
	cfg.Storage.DefaultZoneDBPath = DefaultZoneDBPath()
	return cfg
}

// DefaultZoneDBPath returns ~/.config/tzcore/default_zone.db
func DefaultZoneDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return homeDir + "/.config/tzcore/default_zone.db"
}

// LoadConfig loads configuration from defaults and environment variables
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()
	config.MarkDefaults()

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadFromEnv loads configuration from environment variables using Netflix/go-env
func (c *AppConfig) LoadFromEnv() error {
	if c.ConfigSources == nil {
		c.ConfigSources = make(ConfigSourceMap)
	}

	if c.ZoneDatabase != nil {
		if _, err := env.UnmarshalFromEnviron(c.ZoneDatabase); err != nil {
			return fmt.Errorf("failed to unmarshal ZoneDatabase environment variables: %w", err)
		}
		c.trackEnv("ZoneDatabase.Source", "TZCORE_ZONE_SOURCE")
	}

	if c.Storage != nil {
		if _, err := env.UnmarshalFromEnviron(c.Storage); err != nil {
			return fmt.Errorf("failed to unmarshal Storage environment variables: %w", err)
		}
		c.trackEnv("Storage.DefaultZoneDBPath", "TZCORE_DEFAULT_ZONE_DB")
	}

	if c.Archive != nil {
		if _, err := env.UnmarshalFromEnviron(c.Archive); err != nil {
			return fmt.Errorf("failed to unmarshal Archive environment variables: %w", err)
		}
		c.trackEnv("Archive.Format", "TZCORE_ARCHIVE_FORMAT")
		c.trackEnv("Archive.Compress", "TZCORE_ARCHIVE_COMPRESS")
	}

	if c.Watcher != nil {
		if _, err := env.UnmarshalFromEnviron(c.Watcher); err != nil {
			return fmt.Errorf("failed to unmarshal Watcher environment variables: %w", err)
		}
		c.trackEnv("Watcher.IntervalSec", "TZCORE_WATCH_INTERVAL_SECONDS")
	}

	if c.Logging != nil {
		if _, err := env.UnmarshalFromEnviron(c.Logging); err != nil {
			return fmt.Errorf("failed to unmarshal Logging environment variables: %w", err)
		}
		c.trackEnv("Logging.Level", "TZCORE_LOG_LEVEL")
		c.trackEnv("Logging.Debug", "TZCORE_LOG_DEBUG")

		if c.Logging.Promtail != nil {
			if _, err := env.UnmarshalFromEnviron(c.Logging.Promtail); err != nil {
				return fmt.Errorf("failed to unmarshal Promtail environment variables: %w", err)
			}
			c.trackEnv("Promtail.URL", "TZCORE_LOKI_URL")
			c.trackEnv("Promtail.Username", "TZCORE_LOKI_USERNAME")
			c.trackEnv("Promtail.Password", "TZCORE_LOKI_PASSWORD")
			c.trackEnv("Promtail.BatchWaitSeconds", "TZCORE_LOKI_BATCH_WAIT_SECONDS")
			c.trackEnv("Promtail.BatchCapacity", "TZCORE_LOKI_BATCH_CAPACITY")
			c.trackEnv("Promtail.TimeoutSeconds", "TZCORE_LOKI_TIMEOUT_SECONDS")
		}
	}

	return nil
}

// trackEnv marks field as coming from the environment when variable is set
func (c *AppConfig) trackEnv(field, variable string) {
	if _, ok := os.LookupEnv(variable); ok {
		c.ConfigSources[field] = SourceEnvironment
	}
}

// Validate validates the configuration
func (c *AppConfig) Validate() error {
	if err := c.validateZoneDatabase(); err != nil {
		return err
	}

	if err := c.validateArchive(); err != nil {
		return err
	}

	if err := c.validateWatcher(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	return nil
}

// validateZoneDatabase validates ZoneDatabase configuration
func (c *AppConfig) validateZoneDatabase() error {
	if c.ZoneDatabase == nil || c.ZoneDatabase.Source == "" {
		return nil
	}

	switch strings.ToLower(c.ZoneDatabase.Source) {
	case "system", "embedded":
		return nil
	default:
		return fmt.Errorf("invalid zone database source: %s (must be system or embedded)", c.ZoneDatabase.Source)
	}
}

// validateArchive validates Archive configuration
func (c *AppConfig) validateArchive() error {
	if c.Archive == nil || c.Archive.Format == "" {
		return nil
	}

	switch strings.ToLower(c.Archive.Format) {
	case "json", "protobuf":
		return nil
	default:
		return fmt.Errorf("invalid archive format: %s (must be json or protobuf)", c.Archive.Format)
	}
}

// validateWatcher validates Watcher configuration
func (c *AppConfig) validateWatcher() error {
	if c.Watcher == nil {
		return nil
	}

	if c.Watcher.IntervalSec < 1 {
		return fmt.Errorf("watcher interval must be at least 1 second")
	}

	if c.Watcher.IntervalSec > 3600 {
		return fmt.Errorf("watcher interval must not exceed 3600 seconds")
	}

	return nil
}

// validateLogging validates Logging configuration
func (c *AppConfig) validateLogging() error {
	if c.Logging == nil {
		return nil
	}

	// Validate log level only if specified
	if c.Logging.Level != "" {
		validLevels := map[string]bool{
			"debug": true,
			"info":  true,
			"warn":  true,
			"error": true,
		}
		if !validLevels[c.Logging.Level] {
			return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
		}
	}

	// Validate Promtail configuration
	if c.Logging.Promtail != nil {
		// Skip validation if Promtail URL is empty (console logging)
		if c.Logging.Promtail.URL == "" {
			return nil
		}

		if c.Logging.Promtail.BatchWaitSeconds < 1 {
			return fmt.Errorf("promtail batch wait must be at least 1 second")
		}

		if c.Logging.Promtail.BatchCapacity < 1 {
			return fmt.Errorf("promtail batch capacity must be at least 1")
		}

		if c.Logging.Promtail.TimeoutSeconds < 1 {
			return fmt.Errorf("promtail timeout must be at least 1 second")
		}
	}

	return nil
}

// MarkDefaults marks all configuration fields as coming from defaults
func (c *AppConfig) MarkDefaults() {
	if c.ConfigSources == nil {
		c.ConfigSources = make(ConfigSourceMap)
	}
	for _, field := range []string{
		"Version",
		"ZoneDatabase.Source",
		"Storage.DefaultZoneDBPath",
		"Archive.Format",
		"Archive.Compress",
		"Watcher.IntervalSec",
		"Logging.Level",
		"Logging.Debug",
		"Promtail.URL",
		"Promtail.Username",
		"Promtail.Password",
		"Promtail.BatchWaitSeconds",
		"Promtail.BatchCapacity",
		"Promtail.TimeoutSeconds",
	} {
		c.ConfigSources[field] = SourceDefault
	}
}

// MergeJSONConfig merges JSON configuration into the current configuration
func (c *AppConfig) MergeJSONConfig(jsonConfig *AppConfig) {
	if c.ConfigSources == nil {
		c.ConfigSources = make(ConfigSourceMap)
	}

	// Always merge version from JSON, even if it's 0 (legacy config)
	c.Version = jsonConfig.Version
	c.ConfigSources["Version"] = SourceJSONFile

	if jsonConfig.ZoneDatabase != nil {
		if c.ZoneDatabase == nil {
			c.ZoneDatabase = &ZoneDatabaseConfig{}
		}
		if jsonConfig.ZoneDatabase.Source != "" {
			c.ZoneDatabase.Source = jsonConfig.ZoneDatabase.Source
			c.ConfigSources["ZoneDatabase.Source"] = SourceJSONFile
		}
	}

	if jsonConfig.Storage != nil {
		if c.Storage == nil {
			c.Storage = &StorageConfig{}
		}
		if jsonConfig.Storage.DefaultZoneDBPath != "" {
			c.Storage.DefaultZoneDBPath = jsonConfig.Storage.DefaultZoneDBPath
			c.ConfigSources["Storage.DefaultZoneDBPath"] = SourceJSONFile
		}
	}

	if jsonConfig.Archive != nil {
		if c.Archive == nil {
			c.Archive = &ArchiveConfig{}
		}
		c.mergeArchiveConfig(jsonConfig.Archive)
	}

	if jsonConfig.Watcher != nil {
		if c.Watcher == nil {
			c.Watcher = &WatcherConfig{}
		}
		if jsonConfig.Watcher.IntervalSec != 0 {
			c.Watcher.IntervalSec = jsonConfig.Watcher.IntervalSec
			c.ConfigSources["Watcher.IntervalSec"] = SourceJSONFile
		}
	}

	if jsonConfig.Logging != nil {
		if c.Logging == nil {
			c.Logging = &LoggingConfig{}
		}
		c.mergeLoggingConfig(jsonConfig.Logging)
	}
}

// mergeArchiveConfig merges Archive configuration from JSON
func (c *AppConfig) mergeArchiveConfig(jsonConfig *ArchiveConfig) {
	if jsonConfig.Format != "" {
		c.Archive.Format = jsonConfig.Format
		c.ConfigSources["Archive.Format"] = SourceJSONFile
	}
	if jsonConfig.Compress {
		c.Archive.Compress = true
		c.ConfigSources["Archive.Compress"] = SourceJSONFile
	}
}

// mergeLoggingConfig merges Logging configuration from JSON
func (c *AppConfig) mergeLoggingConfig(jsonConfig *LoggingConfig) {
	if jsonConfig.Level != "" {
		c.Logging.Level = jsonConfig.Level
		c.ConfigSources["Logging.Level"] = SourceJSONFile
	}
	if jsonConfig.Debug {
		c.Logging.Debug = true
		c.ConfigSources["Logging.Debug"] = SourceJSONFile
	}

	if jsonConfig.Promtail != nil {
		if c.Logging.Promtail == nil {
			c.Logging.Promtail = &PromtailConfig{}
		}
		c.mergePromtailConfig(jsonConfig.Promtail)
	}
}

// mergePromtailConfig merges Promtail configuration from JSON
func (c *AppConfig) mergePromtailConfig(jsonConfig *PromtailConfig) {
	if jsonConfig.URL != "" {
		c.Logging.Promtail.URL = jsonConfig.URL
		c.ConfigSources["Promtail.URL"] = SourceJSONFile
	}
	if jsonConfig.Username != "" {
		c.Logging.Promtail.Username = jsonConfig.Username
		c.ConfigSources["Promtail.Username"] = SourceJSONFile
	}
	if jsonConfig.Password != "" {
		c.Logging.Promtail.Password = jsonConfig.Password
		c.ConfigSources["Promtail.Password"] = SourceJSONFile
	}
	if jsonConfig.BatchWaitSeconds != 0 {
		c.Logging.Promtail.BatchWaitSeconds = jsonConfig.BatchWaitSeconds
		c.ConfigSources["Promtail.BatchWaitSeconds"] = SourceJSONFile
	}
	if jsonConfig.BatchCapacity != 0 {
		c.Logging.Promtail.BatchCapacity = jsonConfig.BatchCapacity
		c.ConfigSources["Promtail.BatchCapacity"] = SourceJSONFile
	}
	if jsonConfig.TimeoutSeconds != 0 {
		c.Logging.Promtail.TimeoutSeconds = jsonConfig.TimeoutSeconds
		c.ConfigSources["Promtail.TimeoutSeconds"] = SourceJSONFile
	}
}
