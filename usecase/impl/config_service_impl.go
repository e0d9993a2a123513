package impl

import (
	"context"
	"fmt"
	"sync"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/repository"
	"github.com/ca-srg/tzcore/infrastructure/config"
	usecase "github.com/ca-srg/tzcore/usecase/interface"
)

const maskedSecret = "****"

// ConfigServiceImpl は ConfigService の実装
type ConfigServiceImpl struct {
	configRepo repository.ConfigRepository
	config     *config.AppConfig
	logger     domain.Logger
	mu         sync.RWMutex
}

// NewConfigService は設定を読み込んで ConfigService を作成する
func NewConfigService(configRepo repository.ConfigRepository, logger domain.Logger) (usecase.ConfigService, error) {
	cfg, err := loadConfigWithFallback(configRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &ConfigServiceImpl{
		configRepo: configRepo,
		config:     cfg,
		logger:     logger,
	}, nil
}

// loadConfigWithFallback は defaults -> JSON -> 環境変数 の順に重ね、失敗した段はスキップする
func loadConfigWithFallback(configRepo repository.ConfigRepository, logger domain.Logger) (*config.AppConfig, error) {
	ctx := context.Background()
	configPath := configRepo.GetConfigPath()

	cfg := config.DefaultConfig()
	cfg.MarkDefaults()
	logger.Debug(ctx, "Loading configuration", domain.NewField("config_path", configPath))

	jsonConfig, err := configRepo.Load()
	switch {
	case err != nil:
		logger.Warn(ctx, "Failed to load JSON configuration, using defaults",
			domain.ErrorField(err),
			domain.NewField("config_path", configPath))
	case jsonConfig != nil:
		cfg.MergeJSONConfig(jsonConfig)
		logger.Debug(ctx, "Loaded JSON configuration", domain.NewField("config_path", configPath))
	default:
		logger.Debug(ctx, "No JSON configuration file found, using defaults",
			domain.NewField("config_path", configPath))
	}

	// 環境変数は JSON より優先
	if err := cfg.LoadFromEnv(); err != nil {
		logger.Warn(ctx, "Failed to load environment variables, using fallback values",
			domain.ErrorField(err))
	}

	if err := cfg.Validate(); err != nil {
		logger.Warn(ctx, "Configuration validation failed, using default values",
			domain.ErrorField(err))
		cfg = config.DefaultConfig()
		cfg.MarkDefaults()
	}

	return cfg, nil
}

// GetConfig は現在の設定を取得する
func (s *ConfigServiceImpl) GetConfig() *config.AppConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config
}

// GetConfigWithSources は設定とそのソース情報を取得する
func (s *ConfigServiceImpl) GetConfigWithSources() (*config.AppConfig, config.ConfigSourceMap) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config, s.config.ConfigSources
}

// UpdateConfig は設定を更新する
func (s *ConfigServiceImpl) UpdateConfig(newConfig *config.AppConfig) error {
	if newConfig == nil {
		return domain.ErrInvalidInput("config", "config cannot be nil")
	}
	if err := newConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.configRepo.Save(newConfig); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	s.config = newConfig

	return nil
}

// ReloadConfig は設定を再読み込みする
func (s *ConfigServiceImpl) ReloadConfig() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	newConfig, err := loadConfigWithFallback(s.configRepo, s.logger)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}
	s.config = newConfig
	s.logger.Info(context.Background(), "Configuration reloaded",
		domain.NewField("config_path", s.configRepo.GetConfigPath()))

	return nil
}

// GetConfigPath は設定ファイルのパスを返す
func (s *ConfigServiceImpl) GetConfigPath() string {
	return s.configRepo.GetConfigPath()
}

// CreateDefaultConfig はデフォルト設定ファイルを作成する
func (s *ConfigServiceImpl) CreateDefaultConfig() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.configRepo.Exists()
	if err != nil {
		return fmt.Errorf("failed to check config existence: %w", err)
	}
	if exists {
		return fmt.Errorf("config file already exists at %s", s.configRepo.GetConfigPath())
	}

	return s.writeTemplate()
}

// EnsureConfigExists は設定ファイルがなければテンプレートを作成する
func (s *ConfigServiceImpl) EnsureConfigExists() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.configRepo.Exists()
	if err != nil {
		return fmt.Errorf("failed to check config existence: %w", err)
	}
	if exists {
		return nil
	}

	return s.writeTemplate()
}

// writeTemplate は MinimalDefaultConfig を保存する。呼び出し側でロックを取ること
func (s *ConfigServiceImpl) writeTemplate() error {
	ctx := context.Background()
	configPath := s.configRepo.GetConfigPath()

	template := config.MinimalDefaultConfig()
	template.MarkDefaults()
	if err := s.configRepo.Save(template); err != nil {
		s.logger.Error(ctx, "Failed to create template configuration",
			domain.ErrorField(err),
			domain.NewField("config_path", configPath))
		return fmt.Errorf("failed to create template config: %w", err)
	}

	// Reload so environment overrides still apply on top of the new file
	cfg, err := loadConfigWithFallback(s.configRepo, s.logger)
	if err != nil {
		cfg = template
	}
	s.config = cfg
	s.logger.Info(ctx, "Template configuration created", domain.NewField("config_path", configPath))
	return nil
}

// ExportConfig は現在の設定をエクスポート用に整形する（パスワードなどをマスク）
func (s *ConfigServiceImpl) ExportConfig() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exportMap := map[string]interface{}{
		"version": s.config.Version,
	}

	if s.config.ZoneDatabase != nil {
		exportMap["zone_database"] = map[string]interface{}{
			"source": s.config.ZoneDatabase.Source,
		}
	}

	if s.config.Storage != nil {
		exportMap["storage"] = map[string]interface{}{
			"default_zone_db_path": s.config.Storage.DefaultZoneDBPath,
		}
	}

	if s.config.Archive != nil {
		exportMap["archive"] = map[string]interface{}{
			"format":   s.config.Archive.Format,
			"compress": s.config.Archive.Compress,
		}
	}

	if s.config.Watcher != nil {
		exportMap["watcher"] = map[string]interface{}{
			"interval_seconds": s.config.Watcher.IntervalSec,
		}
	}

	if s.config.Logging != nil {
		loggingMap := map[string]interface{}{
			"level": s.config.Logging.Level,
			"debug": s.config.Logging.Debug,
		}
		if p := s.config.Logging.Promtail; p != nil {
			promtailMap := map[string]interface{}{
				"url":                p.URL,
				"username":           p.Username,
				"batch_wait_seconds": p.BatchWaitSeconds,
				"batch_capacity":     p.BatchCapacity,
				"timeout_seconds":    p.TimeoutSeconds,
			}
			if p.Password != "" {
				promtailMap["password"] = maskedSecret
			}
			loggingMap["promtail"] = promtailMap
		}
		exportMap["logging"] = loggingMap
	}

	sourcesMap := make(map[string]string, len(s.config.ConfigSources))
	for key, source := range s.config.ConfigSources {
		sourcesMap[key] = string(source)
	}
	exportMap["_sources"] = sourcesMap

	return exportMap
}
