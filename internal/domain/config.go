package domain

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Store backends.
const (
	StoreJSON   = "json"   // encounters.json in the data directory (default)
	StoreGit    = "git"    // YAML blobs under refs/<namespace>/ in the git repository
	StoreMemory = "memory" // Process-local, discarded on exit
)

// Default configuration values.
const (
	DefaultLogLevel       = "info"
	DefaultStoreBackend   = StoreJSON
	DefaultStoreNamespace = "initiative"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string     `toml:"-"`
	Store    StoreConfig  `toml:"store"`
	Log      LogConfig    `toml:"log"`
	TUI      TUIConfig    `toml:"tui"`
	Combat   CombatConfig `toml:"combat"`
}

// StoreConfig holds settings for encounter storage from [store] section.
type StoreConfig struct {
	Backend   string `toml:"backend,omitempty"`   // "json" (default), "git" or "memory"
	Namespace string `toml:"namespace,omitempty"` // Git ref namespace (default: "initiative")
}

// CombatConfig holds encounter defaults from [combat] section.
type CombatConfig struct {
	DefaultAC int `toml:"default_ac,omitempty"` // AC for combatants added without one
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// TUIConfig holds terminal UI settings from [tui] section.
type TUIConfig struct {
	HideEffects bool `toml:"hide_effects,omitempty"` // Hide status effect column
	ShowNotes   bool `toml:"show_notes,omitempty"`   // Show combatant notes column
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:   DefaultStoreBackend,
			Namespace: DefaultStoreNamespace,
		},
		Combat: CombatConfig{
			DefaultAC: DefaultAC,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// RenderConfigTemplate renders the commented config file written by
// 'initiative config init', filled with the values of cfg.
func RenderConfigTemplate(cfg *Config) string {
	tmpl := template.Must(template.New("config").Parse(configTemplateContent))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return configTemplateContent
	}
	return buf.String()
}
