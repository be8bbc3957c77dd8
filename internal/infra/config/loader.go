// Package config provides configuration loading functionality.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/initiative/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to the data directory holding the repository config
	globalConfDir string // Path to global config directory (e.g., ~/.config/initiative)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// DefaultGlobalConfigDir returns the default global config directory.
func DefaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalDataDir(configHome)
}

// Load returns the merged configuration.
// Precedence: default <- global <- repository.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	for _, path := range []string{l.globalPath(), l.repoPath()} {
		if path == "" {
			continue
		}
		fc, err := loadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		fc.applyTo(cfg)
	}

	return cfg, nil
}

// LoadGlobal returns the default configuration overlaid with the global file.
// Returns os.ErrNotExist if there is no global config file.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	path := l.globalPath()
	if path == "" {
		return nil, os.ErrNotExist
	}
	fc, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := domain.NewDefaultConfig()
	fc.applyTo(cfg)
	return cfg, nil
}

func (l *Loader) repoPath() string {
	if l.dataDir == "" {
		return ""
	}
	return filepath.Join(l.dataDir, domain.ConfigFileName)
}

func (l *Loader) globalPath() string {
	if l.globalConfDir == "" {
		return ""
	}
	return filepath.Join(l.globalConfDir, domain.ConfigFileName)
}

// fileConfig is one config file as written. Nil fields were not set and
// leave the lower-precedence value in place.
type fileConfig struct {
	Store struct {
		Backend   *string `toml:"backend"`
		Namespace *string `toml:"namespace"`
	} `toml:"store"`
	Combat struct {
		DefaultAC *int `toml:"default_ac"`
	} `toml:"combat"`
	Log struct {
		Level *string `toml:"level"`
	} `toml:"log"`
	TUI struct {
		HideEffects *bool `toml:"hide_effects"`
		ShowNotes   *bool `toml:"show_notes"`
	} `toml:"tui"`
	warnings []string
}

// loadFile parses a config file. Unknown keys become warnings, not errors.
func loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc fileConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err = dec.Decode(&fc)

	var strict *toml.StrictMissingError
	switch {
	case err == nil:
	case errors.As(err, &strict):
		for _, e := range strict.Errors {
			fc.warnings = append(fc.warnings, unknownKeyWarning(path, e.Key()))
		}
		// Decode again without the strict check to pick up the known keys
		warnings := fc.warnings
		fc = fileConfig{}
		if err := toml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		fc.warnings = warnings
	default:
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	slices.Sort(fc.warnings)
	return &fc, nil
}

func unknownKeyWarning(path string, key toml.Key) string {
	if len(key) <= 1 {
		return fmt.Sprintf("%s: unknown section: %s", path, strings.Join(key, "."))
	}
	return fmt.Sprintf("%s: unknown key in [%s]: %s", path, strings.Join(key[:len(key)-1], "."), key[len(key)-1])
}

// applyTo overlays the values set in fc onto cfg, skipping invalid ones.
func (fc *fileConfig) applyTo(cfg *domain.Config) {
	cfg.Warnings = append(cfg.Warnings, fc.warnings...)

	if v := fc.Store.Backend; v != nil {
		switch *v {
		case domain.StoreJSON, domain.StoreGit, domain.StoreMemory:
			cfg.Store.Backend = *v
		default:
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown store backend %q, keeping %q", *v, cfg.Store.Backend))
		}
	}
	if v := fc.Store.Namespace; v != nil && *v != "" {
		cfg.Store.Namespace = *v
	}
	if v := fc.Combat.DefaultAC; v != nil {
		if *v < 0 {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("combat.default_ac cannot be negative (%d), keeping %d", *v, cfg.Combat.DefaultAC))
		} else {
			cfg.Combat.DefaultAC = *v
		}
	}
	if v := fc.Log.Level; v != nil {
		switch *v {
		case "debug", "info", "warn", "error":
			cfg.Log.Level = *v
		default:
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown log level %q, keeping %q", *v, cfg.Log.Level))
		}
	}
	if v := fc.TUI.HideEffects; v != nil {
		cfg.TUI.HideEffects = *v
	}
	if v := fc.TUI.ShowNotes; v != nil {
		cfg.TUI.ShowNotes = *v
	}
}
