package domain

import (
	"fmt"
	"path/filepath"
)

// File and directory names.
const (
	DataDirName        = "initiative"      // Under .git/ or the global config home
	LocalDataDirName   = ".initiative"     // Used outside git repositories
	ConfigFileName     = "config.toml"     // Config file name
	StoreFileName      = "encounters.json" // JSON store file name
	CharactersFileName = "characters.yaml" // Character records
	logsDirName        = "logs"
)

// RepoDataDir returns the data directory inside a git directory.
func RepoDataDir(gitDir string) string {
	return filepath.Join(gitDir, DataDirName)
}

// LocalDataDir returns the data directory used outside git repositories.
func LocalDataDir(dir string) string {
	return filepath.Join(dir, LocalDataDirName)
}

// GlobalDataDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalDataDir(configHome string) string {
	return filepath.Join(configHome, DataDirName)
}

// StorePath returns the path to the JSON store file.
func StorePath(dataDir string) string {
	return filepath.Join(dataDir, StoreFileName)
}

// CharactersPath returns the path to the character records file.
func CharactersPath(dataDir string) string {
	return filepath.Join(dataDir, CharactersFileName)
}

// EncounterLogPath returns the path to the encounter log file.
func EncounterLogPath(dataDir string, encounterID int) string {
	return filepath.Join(dataDir, logsDirName, fmt.Sprintf("encounter-%d.log", encounterID))
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, logsDirName, "initiative.log")
}

// ShortID returns the first 8 characters of an opaque ID for display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
