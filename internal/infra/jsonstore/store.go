// Package jsonstore provides a JSON file-based implementation of EncounterRepository.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"syscall"

	"github.com/runoshun/initiative/internal/domain"
)

// storeData represents the JSON file structure.
// Fields are ordered to minimize memory padding.
type storeData struct {
	Encounters map[string]*domain.Encounter `json:"encounters"`
	Meta       meta                         `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	NextEncounterID int `json:"nextEncounterID"`
}

// Store implements domain.EncounterRepository using a JSON file.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; Initialize creates it.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Get retrieves an encounter by ID.
func (s *Store) Get(id int) (*domain.Encounter, error) {
	var enc *domain.Encounter
	err := s.withLock(func(data *storeData) error {
		if e, ok := data.Encounters[strconv.Itoa(id)]; ok {
			enc = e
			enc.ID = id
		}
		return nil
	})
	return enc, err
}

// List retrieves encounters matching the filter.
func (s *Store) List(filter domain.EncounterFilter) ([]*domain.Encounter, error) {
	var encounters []*domain.Encounter
	err := s.withLock(func(data *storeData) error {
		for key, e := range data.Encounters {
			id, _ := strconv.Atoi(key)
			e.ID = id
			if filter.Matches(e) {
				encounters = append(encounters, e)
			}
		}
		return nil
	})

	// Sort by ID for consistent ordering
	slices.SortFunc(encounters, func(a, b *domain.Encounter) int {
		return a.ID - b.ID
	})

	return encounters, err
}

// Save creates or updates an encounter if its version matches the stored one.
// A failed write leaves enc.Version unchanged.
func (s *Store) Save(enc *domain.Encounter) error {
	bumped := false
	err := s.withLockWrite(func(data *storeData) error {
		key := strconv.Itoa(enc.ID)
		stored := 0
		if cur, ok := data.Encounters[key]; ok {
			stored = cur.Version
		}
		if stored != enc.Version {
			return fmt.Errorf("encounter #%d: stored version %d, have %d: %w",
				enc.ID, stored, enc.Version, domain.ErrVersionConflict)
		}
		enc.Version++
		bumped = true
		data.Encounters[key] = enc
		return nil
	})
	if err != nil && bumped {
		enc.Version--
	}
	return err
}

// Delete removes an encounter by ID.
func (s *Store) Delete(id int) error {
	return s.withLockWrite(func(data *storeData) error {
		delete(data.Encounters, strconv.Itoa(id))
		return nil
	})
}

// NextID returns the next available encounter ID.
func (s *Store) NextID() (int, error) {
	var id int
	err := s.withLockWrite(func(data *storeData) error {
		id = data.Meta.NextEncounterID
		data.Meta.NextEncounterID++
		return nil
	})
	return id, err
}

// IsInitialized checks if the store file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates an empty store file if it doesn't exist.
func (s *Store) Initialize() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return nil // Already exists
	}

	data := &storeData{
		Meta:       meta{NextEncounterID: 1},
		Encounters: make(map[string]*domain.Encounter),
	}

	return s.write(data)
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}

	if data.Encounters == nil {
		data.Encounters = make(map[string]*domain.Encounter)
	}

	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Ensure Store implements the domain interfaces.
var (
	_ domain.EncounterRepository = (*Store)(nil)
	_ domain.StoreInitializer    = (*Store)(nil)
)
