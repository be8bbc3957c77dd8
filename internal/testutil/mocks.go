// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/runoshun/initiative/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// SequenceIDs is a deterministic domain.IDGenerator producing <Prefix>1, <Prefix>2, ...
type SequenceIDs struct {
	Prefix string
	n      int
}

// NewID returns the next ID in the sequence.
func (s *SequenceIDs) NewID() string {
	s.n++
	prefix := s.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s%d", prefix, s.n)
}

// MockEncounterRepository is a test double for domain.EncounterRepository.
// It keeps clones and enforces the same version check as the real stores.
// BeforeSave runs before each Save; tests use it to simulate a concurrent writer.
// Fields are ordered to minimize memory padding.
type MockEncounterRepository struct {
	Encounters map[int]*domain.Encounter
	GetErr     error
	SaveErr    error
	ListErr    error
	DeleteErr  error
	NextIDErr  error
	BeforeSave func(m *MockEncounterRepository)
	NextIDN    int
	SaveCalls  int
}

// NewMockEncounterRepository creates a new MockEncounterRepository.
func NewMockEncounterRepository() *MockEncounterRepository {
	return &MockEncounterRepository{
		Encounters: make(map[int]*domain.Encounter),
		NextIDN:    1,
	}
}

// Put stores an encounter as-is, bypassing the version check.
func (m *MockEncounterRepository) Put(enc *domain.Encounter) {
	m.Encounters[enc.ID] = enc.Clone()
}

// Get retrieves a copy of an encounter by ID.
func (m *MockEncounterRepository) Get(id int) (*domain.Encounter, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	enc, ok := m.Encounters[id]
	if !ok {
		return nil, nil
	}
	return enc.Clone(), nil
}

// List returns copies of the matching encounters ordered by ID.
func (m *MockEncounterRepository) List(filter domain.EncounterFilter) ([]*domain.Encounter, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	res := make([]*domain.Encounter, 0, len(m.Encounters))
	for _, enc := range m.Encounters {
		if filter.Matches(enc) {
			res = append(res, enc.Clone())
		}
	}
	slices.SortFunc(res, func(a, b *domain.Encounter) int { return a.ID - b.ID })
	return res, nil
}

// Save stores a copy of the encounter if its version matches.
func (m *MockEncounterRepository) Save(enc *domain.Encounter) error {
	m.SaveCalls++
	if m.BeforeSave != nil {
		m.BeforeSave(m)
	}
	if m.SaveErr != nil {
		return m.SaveErr
	}
	stored := 0
	if cur, ok := m.Encounters[enc.ID]; ok {
		stored = cur.Version
	}
	if stored != enc.Version {
		return fmt.Errorf("encounter #%d: %w", enc.ID, domain.ErrVersionConflict)
	}
	enc.Version++
	m.Encounters[enc.ID] = enc.Clone()
	return nil
}

// Delete removes an encounter by ID.
func (m *MockEncounterRepository) Delete(id int) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Encounters, id)
	return nil
}

// NextID returns the next available encounter ID.
func (m *MockEncounterRepository) NextID() (int, error) {
	if m.NextIDErr != nil {
		return 0, m.NextIDErr
	}
	id := m.NextIDN
	m.NextIDN++
	return id, nil
}

// MockStoreInitializer is a test double for domain.StoreInitializer.
type MockStoreInitializer struct {
	InitErr     error
	Initialized bool
	InitCalled  bool
}

// Initialize records the call and returns the configured error.
func (m *MockStoreInitializer) Initialize() error {
	m.InitCalled = true
	return m.InitErr
}

// IsInitialized returns the configured value.
func (m *MockStoreInitializer) IsInitialized() bool {
	return m.Initialized
}

// MockCharacterSource is a test double for domain.CharacterSource.
type MockCharacterSource struct {
	Characters []domain.CharacterRecord
	Err        error
}

// GetCharacter retrieves a character by ID.
func (m *MockCharacterSource) GetCharacter(id string) (*domain.CharacterRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Characters {
		if m.Characters[i].ID == id {
			rec := m.Characters[i]
			return &rec, nil
		}
	}
	return nil, nil
}

// ListCharacters returns all configured characters.
func (m *MockCharacterSource) ListCharacters() ([]domain.CharacterRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return slices.Clone(m.Characters), nil
}

// LogEntry is one message captured by MockLogger.
type LogEntry struct {
	Level       string
	Category    string
	Msg         string
	EncounterID int
}

// MockLogger is a test double for domain.Logger that records every message.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level string, encounterID int, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Category: category, Msg: msg, EncounterID: encounterID})
}

// Info records an info message.
func (m *MockLogger) Info(encounterID int, category, msg string) {
	m.add("INFO", encounterID, category, msg)
}

// Debug records a debug message.
func (m *MockLogger) Debug(encounterID int, category, msg string) {
	m.add("DEBUG", encounterID, category, msg)
}

// Warn records a warning message.
func (m *MockLogger) Warn(encounterID int, category, msg string) {
	m.add("WARN", encounterID, category, msg)
}

// Error records an error message.
func (m *MockLogger) Error(encounterID int, category, msg string) {
	m.add("ERROR", encounterID, category, msg)
}

// Messages returns the recorded messages of one category.
func (m *MockLogger) Messages(category string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.Entries {
		if e.Category == category {
			out = append(out, e.Msg)
		}
	}
	return out
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitRepoErr   error
	InitGlobalErr error
	LastConfig    *domain.Config
	RepoInfo      domain.ConfigInfo
	GlobalInfo    domain.ConfigInfo
	RepoInit      bool
	GlobalInit    bool
}

// NewMockConfigManager creates a new MockConfigManager with default paths.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		RepoInfo:   domain.ConfigInfo{Path: "/repo/.git/initiative/config.toml"},
		GlobalInfo: domain.ConfigInfo{Path: "/home/user/.config/initiative/config.toml"},
	}
}

// GetRepoConfigInfo returns the configured repo info.
func (m *MockConfigManager) GetRepoConfigInfo() domain.ConfigInfo {
	return m.RepoInfo
}

// GetGlobalConfigInfo returns the configured global info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalInfo
}

// InitRepoConfig records the call.
func (m *MockConfigManager) InitRepoConfig(cfg *domain.Config) error {
	if m.InitRepoErr != nil {
		return m.InitRepoErr
	}
	m.RepoInit = true
	m.LastConfig = cfg
	return nil
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	if m.InitGlobalErr != nil {
		return m.InitGlobalErr
	}
	m.GlobalInit = true
	m.LastConfig = cfg
	return nil
}

// MockSyncRepository is a MockEncounterRepository that also implements
// domain.RemoteSync and domain.SnapshotHistory.
type MockSyncRepository struct {
	*MockEncounterRepository
	PushErr   error
	FetchErr  error
	Snapshots map[int][]*domain.Encounter
	Pushed    int
	Fetched   int
}

// NewMockSyncRepository creates a new MockSyncRepository.
func NewMockSyncRepository() *MockSyncRepository {
	return &MockSyncRepository{
		MockEncounterRepository: NewMockEncounterRepository(),
		Snapshots:               make(map[int][]*domain.Encounter),
	}
}

// Push records the call.
func (m *MockSyncRepository) Push() error {
	m.Pushed++
	return m.PushErr
}

// Fetch records the call.
func (m *MockSyncRepository) Fetch() error {
	m.Fetched++
	return m.FetchErr
}

// History lists the configured snapshots.
func (m *MockSyncRepository) History(id int) ([]domain.SnapshotInfo, error) {
	var infos []domain.SnapshotInfo
	for _, enc := range m.Snapshots[id] {
		infos = append(infos, domain.SnapshotInfo{
			Status:     enc.Status,
			Version:    enc.Version,
			Round:      enc.CurrentRound,
			Turn:       enc.CurrentTurn,
			Combatants: len(enc.Combatants),
		})
	}
	return infos, nil
}

// GetVersion returns one configured snapshot.
func (m *MockSyncRepository) GetVersion(id, version int) (*domain.Encounter, error) {
	for _, enc := range m.Snapshots[id] {
		if enc.Version == version {
			return enc.Clone(), nil
		}
	}
	return nil, nil
}

var (
	_ domain.Clock               = (*MockClock)(nil)
	_ domain.IDGenerator         = (*SequenceIDs)(nil)
	_ domain.EncounterRepository = (*MockEncounterRepository)(nil)
	_ domain.StoreInitializer    = (*MockStoreInitializer)(nil)
	_ domain.CharacterSource     = (*MockCharacterSource)(nil)
	_ domain.Logger              = (*MockLogger)(nil)
	_ domain.ConfigManager       = (*MockConfigManager)(nil)
	_ domain.RemoteSync          = (*MockSyncRepository)(nil)
	_ domain.SnapshotHistory     = (*MockSyncRepository)(nil)
)
