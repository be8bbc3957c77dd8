package domain

import "time"

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	Initialize() error
}

// EncounterRepository manages encounter snapshots.
type EncounterRepository interface {
	// Get retrieves an encounter by ID. Returns nil if not found.
	Get(id int) (*Encounter, error)

	// List retrieves encounters matching the filter, ordered by ID.
	List(filter EncounterFilter) ([]*Encounter, error)

	// Save creates or updates an encounter.
	// The stored version must equal enc.Version, otherwise ErrVersionConflict
	// is returned. On success enc.Version is incremented.
	Save(enc *Encounter) error

	// Delete removes an encounter by ID.
	Delete(id int) error

	// NextID returns the next available encounter ID.
	NextID() (int, error)
}

// EncounterFilter specifies criteria for listing encounters.
// Fields are ordered to minimize memory padding.
type EncounterFilter struct {
	CampaignID string   // "" = all campaigns
	Statuses   []Status // empty = any status
}

// Matches returns true if the encounter passes the filter.
func (f EncounterFilter) Matches(e *Encounter) bool {
	if f.CampaignID != "" && e.CampaignID != f.CampaignID {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if e.Status == s {
			return true
		}
	}
	return false
}

// SnapshotHistory is implemented by stores that keep previous versions.
type SnapshotHistory interface {
	// History lists saved versions of an encounter, oldest first.
	History(id int) ([]SnapshotInfo, error)

	// GetVersion retrieves one saved version. Returns nil if not found.
	GetVersion(id, version int) (*Encounter, error)
}

// SnapshotInfo describes one saved version of an encounter.
type SnapshotInfo struct {
	Status     Status
	Version    int
	Round      int
	Turn       int
	Combatants int
}

// RemoteSync is implemented by stores that can share encounters through a
// git remote.
type RemoteSync interface {
	// Push sends local encounter refs to the remote.
	Push() error

	// Fetch replaces local encounter refs with the remote ones.
	Fetch() error
}

// CharacterRecord holds the defaults copied into a combatant created from
// an existing character. A nil AC falls back to the configured default.
// Fields are ordered to minimize memory padding.
type CharacterRecord struct {
	AC       *int   `yaml:"ac,omitempty"`
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Notes    string `yaml:"notes,omitempty"`
	HP       int    `yaml:"hp"`
	MaxHP    int    `yaml:"max_hp"`
	IsPlayer bool   `yaml:"player"`
}

// CharacterSource supplies character records.
type CharacterSource interface {
	// GetCharacter retrieves a character by ID. Returns nil if not found.
	GetCharacter(id string) (*CharacterRecord, error)

	// ListCharacters returns all known characters.
	ListCharacters() ([]CharacterRecord, error)
}

// IDGenerator produces opaque identifiers for combatants and effects.
type IDGenerator interface {
	NewID() string
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (repo + global).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetRepoConfigInfo returns information about the repository config file.
	GetRepoConfigInfo() ConfigInfo

	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitRepoConfig creates a repository config file rendered from cfg.
	InitRepoConfig(cfg *Config) error

	// InitGlobalConfig creates a global config file rendered from cfg.
	InitGlobalConfig(cfg *Config) error
}

// ConfigInfo contains information about a config file.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// Logger writes encounter activity logs.
// encounterID 0 writes to the global log only.
type Logger interface {
	Info(encounterID int, category, msg string)
	Debug(encounterID int, category, msg string)
	Warn(encounterID int, category, msg string)
	Error(encounterID int, category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
