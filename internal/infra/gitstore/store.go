// Package gitstore provides a Git plumbing-based implementation of EncounterRepository.
package gitstore

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/initiative/internal/domain"
)

// Store implements domain.EncounterRepository using Git plumbing (refs and blobs).
//
// Data structure:
//
//	refs/<namespace>/
//	  meta         → blob (nextEncounterID)
//	  initialized  → blob (marker)
//	  encounters/
//	    <id>       → blob (encounter YAML, latest version)
//	  history/
//	    <id>/<ver> → blob (encounter YAML as saved at that version)
type Store struct {
	repo      *git.Repository
	repoPath  string // path to the repository, empty for in-memory repositories
	namespace string // e.g., "initiative"
	mu        sync.RWMutex
}

// meta contains store metadata.
type meta struct {
	NextEncounterID int `yaml:"nextEncounterID"`
}

// New creates a new Store for the repository at repoPath.
func New(repoPath, namespace string) (*Store, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	return &Store{
		repo:      repo,
		repoPath:  repoPath,
		namespace: namespace,
	}, nil
}

// NewWithRepo creates a new Store with an existing repository instance.
func NewWithRepo(repo *git.Repository, namespace string) *Store {
	return &Store{
		repo:      repo,
		namespace: namespace,
	}
}

// refPrefix returns the ref prefix for this namespace.
func (s *Store) refPrefix() string {
	return "refs/" + s.namespace + "/"
}

// encounterRef returns the ref name for an encounter.
func (s *Store) encounterRef(id int) plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "encounters/" + strconv.Itoa(id))
}

// historyPrefix returns the ref prefix holding saved versions of an encounter.
func (s *Store) historyPrefix(id int) string {
	return s.refPrefix() + "history/" + strconv.Itoa(id) + "/"
}

// historyRef returns the ref name for one saved version of an encounter.
func (s *Store) historyRef(id, version int) plumbing.ReferenceName {
	return plumbing.ReferenceName(s.historyPrefix(id) + strconv.Itoa(version))
}

// metaRef returns the ref name for metadata.
func (s *Store) metaRef() plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "meta")
}

// initializedRef returns the ref name for the initialized marker.
func (s *Store) initializedRef() plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "initialized")
}

// Get retrieves an encounter by ID.
func (s *Store) Get(id int) (*domain.Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	enc, _, err := s.getLocked(id)
	return enc, err
}

// getLocked loads an encounter and its ref without locking (caller must hold lock).
func (s *Store) getLocked(id int) (*domain.Encounter, *plumbing.Reference, error) {
	ref, err := s.repo.Reference(s.encounterRef(id), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil, nil // Not found
		}
		return nil, nil, fmt.Errorf("get encounter ref: %w", err)
	}

	enc, err := s.decodeEncounter(ref.Hash(), id)
	if err != nil {
		return nil, nil, err
	}
	return enc, ref, nil
}

// List retrieves encounters matching the filter.
func (s *Store) List(filter domain.EncounterFilter) ([]*domain.Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var encounters []*domain.Encounter
	prefix := s.refPrefix() + "encounters/"

	err := s.forEachRef(prefix, func(suffix string, ref *plumbing.Reference) error {
		id, parseErr := strconv.Atoi(suffix)
		if parseErr != nil {
			return nil // Skip invalid refs
		}

		enc, decodeErr := s.decodeEncounter(ref.Hash(), id)
		if decodeErr != nil {
			return decodeErr
		}
		if filter.Matches(enc) {
			encounters = append(encounters, enc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Sort by ID for consistent ordering
	slices.SortFunc(encounters, func(a, b *domain.Encounter) int {
		return a.ID - b.ID
	})

	return encounters, nil
}

// Save creates or updates an encounter if its version matches the stored one.
// Every successful save is also recorded under the history refs.
func (s *Store) Save(enc *domain.Encounter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, oldRef, err := s.getLocked(enc.ID)
	if err != nil {
		return err
	}
	stored := 0
	if current != nil {
		stored = current.Version
	}
	if stored != enc.Version {
		return fmt.Errorf("encounter #%d: stored version %d, have %d: %w",
			enc.ID, stored, enc.Version, domain.ErrVersionConflict)
	}

	enc.Version++
	data, err := yaml.Marshal(enc)
	if err != nil {
		enc.Version--
		return fmt.Errorf("marshal encounter: %w", err)
	}

	hash, err := s.writeBlob(data)
	if err != nil {
		enc.Version--
		return err
	}

	// Another process may have moved the ref since we read it
	newRef := plumbing.NewHashReference(s.encounterRef(enc.ID), hash)
	if err := s.repo.Storer.CheckAndSetReference(newRef, oldRef); err != nil {
		enc.Version--
		if errors.Is(err, storage.ErrReferenceHasChanged) {
			return fmt.Errorf("encounter #%d: %w", enc.ID, domain.ErrVersionConflict)
		}
		return fmt.Errorf("set encounter ref: %w", err)
	}

	histRef := plumbing.NewHashReference(s.historyRef(enc.ID, enc.Version), hash)
	if err := s.repo.Storer.SetReference(histRef); err != nil {
		return fmt.Errorf("set history ref: %w", err)
	}

	return nil
}

// Delete removes an encounter and its history.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.removeRef(s.encounterRef(id)); err != nil {
		return fmt.Errorf("remove encounter ref: %w", err)
	}

	var history []plumbing.ReferenceName
	err := s.forEachRef(s.historyPrefix(id), func(_ string, ref *plumbing.Reference) error {
		history = append(history, ref.Name())
		return nil
	})
	if err != nil {
		return err
	}
	for _, name := range history {
		if err := s.removeRef(name); err != nil {
			return fmt.Errorf("remove history ref: %w", err)
		}
	}

	return nil
}

// NextID returns the next available encounter ID.
func (s *Store) NextID() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadMeta()
	if err != nil {
		return 0, err
	}

	id := m.NextEncounterID
	m.NextEncounterID++

	if err := s.saveMeta(m); err != nil {
		return 0, err
	}

	return id, nil
}

// History lists the saved versions of an encounter, oldest first.
func (s *Store) History(id int) ([]domain.SnapshotInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var infos []domain.SnapshotInfo
	err := s.forEachRef(s.historyPrefix(id), func(suffix string, ref *plumbing.Reference) error {
		if _, parseErr := strconv.Atoi(suffix); parseErr != nil {
			return nil
		}
		enc, err := s.decodeEncounter(ref.Hash(), id)
		if err != nil {
			return err
		}
		infos = append(infos, domain.SnapshotInfo{
			Version:    enc.Version,
			Status:     enc.Status,
			Round:      enc.CurrentRound,
			Turn:       enc.CurrentTurn,
			Combatants: len(enc.Combatants),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(infos, func(a, b domain.SnapshotInfo) int {
		return a.Version - b.Version
	})
	return infos, nil
}

// GetVersion retrieves one saved version of an encounter.
func (s *Store) GetVersion(id, version int) (*domain.Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, err := s.repo.Reference(s.historyRef(id, version), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get history ref: %w", err)
	}
	return s.decodeEncounter(ref.Hash(), id)
}

// Initialize creates the initialized marker and metadata if they don't exist.
// A meta ref behind the highest stored encounter ID is repaired.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	minNextID := s.calculateNextEncounterID()
	m, err := s.loadMeta()
	if err != nil {
		return fmt.Errorf("load meta: %w", err)
	}
	if m.NextEncounterID < minNextID {
		m.NextEncounterID = minNextID
		if err := s.saveMeta(m); err != nil {
			return err
		}
	}

	_, err = s.repo.Reference(s.initializedRef(), true)
	if err == nil {
		return nil // Already initialized
	}
	if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return fmt.Errorf("check initialized ref: %w", err)
	}

	hash, err := s.writeBlob([]byte("initialized"))
	if err != nil {
		return err
	}
	ref := plumbing.NewHashReference(s.initializedRef(), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set initialized ref: %w", err)
	}

	return nil
}

// IsInitialized checks if the store has been initialized.
func (s *Store) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.repo.Reference(s.initializedRef(), true)
	return err == nil
}

// loadMeta loads metadata from the meta ref.
// If the meta ref doesn't exist, NextEncounterID is derived from existing encounters.
func (s *Store) loadMeta() (*meta, error) {
	ref, err := s.repo.Reference(s.metaRef(), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return &meta{NextEncounterID: s.calculateNextEncounterID()}, nil
		}
		return nil, fmt.Errorf("get meta ref: %w", err)
	}

	data, err := s.readBlob(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("read meta: %w", err)
	}

	var m meta
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode meta: %w", err)
	}

	return &m, nil
}

// calculateNextEncounterID returns the maximum stored encounter ID plus one.
func (s *Store) calculateNextEncounterID() int {
	maxID := 0
	_ = s.forEachRef(s.refPrefix()+"encounters/", func(suffix string, _ *plumbing.Reference) error {
		if id, err := strconv.Atoi(suffix); err == nil && id > maxID {
			maxID = id
		}
		return nil
	})
	return maxID + 1
}

// saveMeta saves metadata to the meta ref.
func (s *Store) saveMeta(m *meta) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}

	hash, err := s.writeBlob(data)
	if err != nil {
		return err
	}

	ref := plumbing.NewHashReference(s.metaRef(), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set meta ref: %w", err)
	}

	return nil
}

// forEachRef calls fn for every ref under prefix with the remainder of its name.
func (s *Store) forEachRef(prefix string, fn func(suffix string, ref *plumbing.Reference) error) error {
	refs, err := s.repo.References()
	if err != nil {
		return fmt.Errorf("list refs: %w", err)
	}

	return refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if !strings.HasPrefix(name, prefix) || len(name) == len(prefix) {
			return nil
		}
		return fn(name[len(prefix):], ref)
	})
}

func (s *Store) removeRef(name plumbing.ReferenceName) error {
	err := s.repo.Storer.RemoveReference(name)
	if err != nil && !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return err
	}
	return nil
}

// decodeEncounter reads an encounter blob and restores its ID.
func (s *Store) decodeEncounter(hash plumbing.Hash, id int) (*domain.Encounter, error) {
	data, err := s.readBlob(hash)
	if err != nil {
		return nil, fmt.Errorf("read encounter: %w", err)
	}

	var enc domain.Encounter
	if err := yaml.Unmarshal(data, &enc); err != nil {
		return nil, fmt.Errorf("decode encounter: %w", err)
	}
	enc.ID = id
	return &enc, nil
}

// writeBlob writes data to a blob and returns the hash.
func (s *Store) writeBlob(data []byte) (plumbing.Hash, error) {
	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}

	if _, writeErr := writer.Write(data); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}

	return hash, nil
}

// readBlob reads data from a blob.
func (s *Store) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob data: %w", err)
	}
	return data, nil
}

// === Remote sync operations ===

// Push pushes encounter refs to the origin remote.
func (s *Store) Push() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repoPath == "" {
		return errors.New("push requires an on-disk repository")
	}

	// Use git command for push (go-git push requires auth config)
	refspec := fmt.Sprintf("refs/%s/*:refs/%s/*", s.namespace, s.namespace)
	cmd := exec.Command("git", "-C", s.repoPath, "push", "origin", refspec) //nolint:gosec // refspec is constructed from trusted namespace
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("push failed: %s: %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}

// Fetch fetches encounter refs from the origin remote, overwriting local ones.
func (s *Store) Fetch() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repoPath == "" {
		return errors.New("fetch requires an on-disk repository")
	}

	refspec := fmt.Sprintf("+refs/%s/*:refs/%s/*", s.namespace, s.namespace)
	cmd := exec.Command("git", "-C", s.repoPath, "fetch", "origin", refspec) //nolint:gosec // refspec is constructed from trusted namespace
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("fetch failed: %s: %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}

// Ensure Store implements the domain interfaces.
var (
	_ domain.EncounterRepository = (*Store)(nil)
	_ domain.SnapshotHistory     = (*Store)(nil)
	_ domain.StoreInitializer    = (*Store)(nil)
	_ domain.RemoteSync          = (*Store)(nil)
)
