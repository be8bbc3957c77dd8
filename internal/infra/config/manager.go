package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/runoshun/initiative/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	dataDir       string // Path to the data directory holding the repository config
	globalConfDir string // Path to global config directory (e.g., ~/.config/initiative)
}

// NewManager creates a new Manager.
func NewManager(dataDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(dataDir, globalConfDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// GetRepoConfigInfo returns information about the repository config file.
func (m *Manager) GetRepoConfigInfo() domain.ConfigInfo {
	return getConfigInfo(filepath.Join(m.dataDir, domain.ConfigFileName))
}

// GetGlobalConfigInfo returns information about the global config file.
func (m *Manager) GetGlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return getConfigInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

// getConfigInfo reads a config file and returns its info.
func getConfigInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{
			Path:   path,
			Exists: false,
		}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitRepoConfig creates a repository config file rendered from cfg.
func (m *Manager) InitRepoConfig(cfg *domain.Config) error {
	if err := os.MkdirAll(m.dataDir, 0o750); err != nil {
		return err
	}
	return initConfig(filepath.Join(m.dataDir, domain.ConfigFileName), cfg)
}

// InitGlobalConfig creates a global config file rendered from cfg.
func (m *Manager) InitGlobalConfig(cfg *domain.Config) error {
	if m.globalConfDir == "" {
		return errors.New("global config directory not available")
	}
	if err := os.MkdirAll(m.globalConfDir, 0o700); err != nil {
		return err
	}
	return initConfig(filepath.Join(m.globalConfDir, domain.ConfigFileName), cfg)
}

// initConfig writes the config template unless the file already exists.
func initConfig(path string, cfg *domain.Config) error {
	if _, err := os.Stat(path); err == nil {
		return domain.ErrConfigExists
	}
	return os.WriteFile(path, []byte(domain.RenderConfigTemplate(cfg)), 0o600)
}
