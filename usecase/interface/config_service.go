package usecase

import (
	"github.com/ca-srg/tzcore/infrastructure/config"
)

// ConfigService は設定管理のサービスインターフェース
type ConfigService interface {
	// GetConfig は現在の設定を取得する
	GetConfig() *config.AppConfig

	// GetConfigWithSources は設定と各フィールドの取得元を返す
	GetConfigWithSources() (*config.AppConfig, config.ConfigSourceMap)

	// UpdateConfig は設定を検証して保存し、メモリ上の設定を置き換える
	UpdateConfig(newConfig *config.AppConfig) error

	// ReloadConfig は設定ファイルと環境変数から再読み込みする
	ReloadConfig() error

	// GetConfigPath は設定ファイルのパスを返す
	GetConfigPath() string

	// CreateDefaultConfig はデフォルト設定ファイルを作成する。既にあればエラー
	CreateDefaultConfig() error

	// EnsureConfigExists は設定ファイルがなければテンプレートを作成する
	EnsureConfigExists() error

	// ExportConfig は表示用に整形した設定を返す（パスワードはマスク）
	ExportConfig() map[string]interface{}
}
