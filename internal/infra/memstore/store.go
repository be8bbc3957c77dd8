// Package memstore provides a process-local implementation of EncounterRepository.
// It backs the "memory" store backend and one-shot scripted sessions.
package memstore

import (
	"fmt"
	"slices"
	"sync"

	"github.com/runoshun/initiative/internal/domain"
)

// Store keeps deep copies of saved encounters so callers never share state
// with the store or with each other.
type Store struct {
	encounters map[int]*domain.Encounter
	history    map[int][]*domain.Encounter
	nextID     int
	mu         sync.RWMutex
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		encounters: make(map[int]*domain.Encounter),
		history:    make(map[int][]*domain.Encounter),
		nextID:     1,
	}
}

// Initialize is a no-op; a memory store is always ready.
func (s *Store) Initialize() error {
	return nil
}

// Get retrieves an encounter by ID.
func (s *Store) Get(id int) (*domain.Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	enc, ok := s.encounters[id]
	if !ok {
		return nil, nil
	}
	return enc.Clone(), nil
}

// List retrieves encounters matching the filter, ordered by ID.
func (s *Store) List(filter domain.EncounterFilter) ([]*domain.Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*domain.Encounter, 0, len(s.encounters))
	for _, enc := range s.encounters {
		if filter.Matches(enc) {
			res = append(res, enc.Clone())
		}
	}
	slices.SortFunc(res, func(a, b *domain.Encounter) int {
		return a.ID - b.ID
	})
	return res, nil
}

// Save creates or updates an encounter if its version matches the stored one.
func (s *Store) Save(enc *domain.Encounter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := 0
	if cur, ok := s.encounters[enc.ID]; ok {
		stored = cur.Version
	}
	if stored != enc.Version {
		return fmt.Errorf("encounter #%d: stored version %d, have %d: %w",
			enc.ID, stored, enc.Version, domain.ErrVersionConflict)
	}

	enc.Version++
	snapshot := enc.Clone()
	s.encounters[enc.ID] = snapshot
	s.history[enc.ID] = append(s.history[enc.ID], snapshot.Clone())
	if enc.ID >= s.nextID {
		s.nextID = enc.ID + 1
	}
	return nil
}

// Delete removes an encounter and its history.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.encounters, id)
	delete(s.history, id)
	return nil
}

// NextID returns the next available encounter ID.
func (s *Store) NextID() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	return id, nil
}

// History lists the saved versions of an encounter, oldest first.
func (s *Store) History(id int) ([]domain.SnapshotInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	versions := s.history[id]
	infos := make([]domain.SnapshotInfo, 0, len(versions))
	for _, enc := range versions {
		infos = append(infos, domain.SnapshotInfo{
			Version:    enc.Version,
			Status:     enc.Status,
			Round:      enc.CurrentRound,
			Turn:       enc.CurrentTurn,
			Combatants: len(enc.Combatants),
		})
	}
	return infos, nil
}

// GetVersion retrieves one saved version of an encounter.
func (s *Store) GetVersion(id, version int) (*domain.Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, enc := range s.history[id] {
		if enc.Version == version {
			return enc.Clone(), nil
		}
	}
	return nil, nil
}

// Ensure Store implements the domain interfaces.
var (
	_ domain.EncounterRepository = (*Store)(nil)
	_ domain.SnapshotHistory     = (*Store)(nil)
	_ domain.StoreInitializer    = (*Store)(nil)
)
