package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/ca-srg/tzcore/domain/repository"
	"github.com/ca-srg/tzcore/infrastructure/config"
)

const (
	configFileName = "config.json"
	backupsToKeep  = 5
)

// JSONConfigRepository は ~/.config/tzcore/config.json を読み書きする ConfigRepository 実装
type JSONConfigRepository struct {
	configDir  string
	configFile string
}

// NewJSONConfigRepository はユーザーの設定ディレクトリを使うリポジトリを作成する
func NewJSONConfigRepository() repository.ConfigRepository {
	homeDir, _ := os.UserHomeDir()
	return NewJSONConfigRepositoryAt(filepath.Join(homeDir, ".config", "tzcore"))
}

// NewJSONConfigRepositoryAt は任意のディレクトリに設定を置くリポジトリを作成する
func NewJSONConfigRepositoryAt(dir string) *JSONConfigRepository {
	return &JSONConfigRepository{
		configDir:  dir,
		configFile: filepath.Join(dir, configFileName),
	}
}

// Exists は設定ファイルの有無を返す
func (r *JSONConfigRepository) Exists() (bool, error) {
	_, err := os.Stat(r.configFile)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check config file existence: %w", err)
}

// Load は設定ファイルを読み込む。ファイルがなければ nil, nil を返す
func (r *JSONConfigRepository) Load() (*config.AppConfig, error) {
	exists, err := r.Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	if err := r.ensureSecurePermissions(r.configFile, false); err != nil {
		return nil, fmt.Errorf("config file security check failed: %w", err)
	}

	data, err := os.ReadFile(r.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg config.AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Save は検証済みの設定を一時ファイル経由でアトミックに保存する
func (r *JSONConfigRepository) Save(cfg *config.AppConfig) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := r.EnsureConfigDir(); err != nil {
		return err
	}

	exists, err := r.Exists()
	if err != nil {
		return err
	}
	if exists {
		if err := r.Backup(); err != nil {
			// バックアップに失敗しても保存は続行する
			fmt.Fprintf(os.Stderr, "Warning: failed to create backup: %v\n", err)
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpFile := r.configFile + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp config file: %w", err)
	}

	if err := os.Rename(tmpFile, r.configFile); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	if err := r.ensureSecurePermissions(r.configFile, false); err != nil {
		return fmt.Errorf("failed to secure config file: %w", err)
	}

	if cfg.Logging != nil && cfg.Logging.Promtail != nil {
		if p := cfg.Logging.Promtail.Password; p != "" && len(p) < 8 {
			fmt.Fprintf(os.Stderr, "Warning: Promtail password appears to be weak\n")
		}
	}

	return nil
}

// GetConfigPath は設定ファイルのパスを返す
func (r *JSONConfigRepository) GetConfigPath() string {
	return r.configFile
}

// EnsureConfigDir は設定ディレクトリを 0700 で作成する
func (r *JSONConfigRepository) EnsureConfigDir() error {
	if err := os.MkdirAll(r.configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := r.ensureSecurePermissions(r.configDir, true); err != nil {
		return fmt.Errorf("failed to secure config directory: %w", err)
	}

	return nil
}

// Backup は現在の設定ファイルをタイムスタンプ付きで複製する
func (r *JSONConfigRepository) Backup() error {
	data, err := os.ReadFile(r.configFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file for backup: %w", err)
	}

	backupFile := fmt.Sprintf("%s.backup.%s", r.configFile, time.Now().Format("20060102-150405.000"))
	if err := os.WriteFile(backupFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	return r.pruneBackups()
}

// pruneBackups は新しいものから backupsToKeep 個を残して削除する
func (r *JSONConfigRepository) pruneBackups() error {
	matches, err := filepath.Glob(r.configFile + ".backup.*")
	if err != nil {
		return err
	}
	if len(matches) <= backupsToKeep {
		return nil
	}

	// タイムスタンプ形式なので名前順 = 古い順
	sort.Strings(matches)
	for _, old := range matches[:len(matches)-backupsToKeep] {
		if err := os.Remove(old); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove old backup %s: %v\n", old, err)
		}
	}

	return nil
}

// ensureSecurePermissions はパーミッションを 0600 / 0700 に揃え、所有者を確認する
func (r *JSONConfigRepository) ensureSecurePermissions(path string, isDir bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	expectedMode := os.FileMode(0600)
	if isDir {
		expectedMode = 0700
	}
	if info.Mode().Perm() != expectedMode {
		if err := os.Chmod(path, expectedMode); err != nil {
			return fmt.Errorf("failed to set permissions: %w", err)
		}
	}

	// Unix 以外では Stat_t が取れないので所有者チェックは省略
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return nil
	}
	if uid := uint32(os.Getuid()); stat.Uid != uid {
		return fmt.Errorf("ownership check failed: file is not owned by current user (uid: %d, expected: %d)", stat.Uid, uid)
	}

	return nil
}
