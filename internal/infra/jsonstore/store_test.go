package jsonstore

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/runoshun/initiative/internal/domain"
)

func TestStore_Initialize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "initiative", "encounters.json")

	store := New(path)
	if store.IsInitialized() {
		t.Fatal("IsInitialized() = true before Initialize()")
	}

	// Initialize should create the file and its directory
	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("store file not created: %v", err)
	}
	if !store.IsInitialized() {
		t.Error("IsInitialized() = false after Initialize()")
	}

	// Initialize again should be idempotent
	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize() second call error = %v", err)
	}
}

func TestStore_NotInitialized(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "encounters.json"))

	_, err := store.Get(1)
	if !errors.Is(err, domain.ErrNotInitialized) {
		t.Errorf("Get() error = %v, want ErrNotInitialized", err)
	}
	_, err = store.NextID()
	if !errors.Is(err, domain.ErrNotInitialized) {
		t.Errorf("NextID() error = %v, want ErrNotInitialized", err)
	}
}

func TestStore_NextID(t *testing.T) {
	store := newTestStore(t)

	id1, err := store.NextID()
	if err != nil {
		t.Fatalf("NextID() error = %v", err)
	}
	if id1 != 1 {
		t.Errorf("NextID() = %d, want 1", id1)
	}

	id2, err := store.NextID()
	if err != nil {
		t.Fatalf("NextID() error = %v", err)
	}
	if id2 != 2 {
		t.Errorf("NextID() = %d, want 2", id2)
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)

	now := time.Now().Truncate(time.Second)
	enc := newEncounter(1, "Goblin ambush", now)
	enc.CampaignID = "camp-1"
	enc.AddEnvironmentEffect("darkness")
	enc.Combatants[0].StatusEffects = []domain.StatusEffect{
		{ID: "e1", Name: "Poisoned", Type: domain.EffectDebuff, Duration: 2},
	}

	if err := store.Save(enc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if enc.Version != 1 {
		t.Errorf("Version after Save() = %d, want 1", enc.Version)
	}

	got, err := store.Get(1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() returned nil")
	}

	if got.ID != 1 {
		t.Errorf("ID = %d, want 1", got.ID)
	}
	if got.Name != enc.Name {
		t.Errorf("Name = %q, want %q", got.Name, enc.Name)
	}
	if got.CampaignID != "camp-1" {
		t.Errorf("CampaignID = %q, want %q", got.CampaignID, "camp-1")
	}
	if got.Status != domain.StatusPreparing {
		t.Errorf("Status = %q, want %q", got.Status, domain.StatusPreparing)
	}
	if !got.Created.Equal(now) {
		t.Errorf("Created = %v, want %v", got.Created, now)
	}
	if got.Version != 1 {
		t.Errorf("Version = %d, want 1", got.Version)
	}
	if len(got.Combatants) != 2 {
		t.Fatalf("Combatants = %d, want 2", len(got.Combatants))
	}
	if got.Combatants[0].Name != "Elf" || got.Combatants[0].MaxHP != 12 {
		t.Errorf("Combatants[0] = %+v, want Elf with maxHP 12", got.Combatants[0])
	}
	if len(got.Combatants[0].StatusEffects) != 1 || got.Combatants[0].StatusEffects[0].Duration != 2 {
		t.Errorf("StatusEffects = %+v, want one effect with duration 2", got.Combatants[0].StatusEffects)
	}
	if len(got.EnvironmentEffects) != 1 || got.EnvironmentEffects[0] != "darkness" {
		t.Errorf("EnvironmentEffects = %v, want [darkness]", got.EnvironmentEffects)
	}
}

func TestStore_GetNotFound(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Get(999)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %v, want nil for non-existent encounter", got)
	}
}

func TestStore_SaveVersionConflict(t *testing.T) {
	store := newTestStore(t)

	enc := newEncounter(1, "Bridge", time.Now())
	if err := store.Save(enc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Two readers of the same version
	first, _ := store.Get(1)
	second, _ := store.Get(1)

	first.CurrentRound = 3
	if err := store.Save(first); err != nil {
		t.Fatalf("Save() first writer error = %v", err)
	}

	second.CurrentRound = 7
	err := store.Save(second)
	if !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("Save() stale writer error = %v, want ErrVersionConflict", err)
	}
	if second.Version != 1 {
		t.Errorf("stale Version = %d, want unchanged 1", second.Version)
	}

	got, _ := store.Get(1)
	if got.CurrentRound != 3 {
		t.Errorf("CurrentRound = %d, want 3 (stale write must not land)", got.CurrentRound)
	}
	if got.Version != 2 {
		t.Errorf("Version = %d, want 2", got.Version)
	}
}

func TestStore_SaveNewWithStaleVersion(t *testing.T) {
	store := newTestStore(t)

	enc := newEncounter(5, "Ghost", time.Now())
	enc.Version = 4

	if err := store.Save(enc); !errors.Is(err, domain.ErrVersionConflict) {
		t.Errorf("Save() error = %v, want ErrVersionConflict", err)
	}
}

func TestStore_SaveWriteFailureKeepsVersion(t *testing.T) {
	store := newTestStore(t)

	enc := newEncounter(1, "Bridge", time.Now())
	if err := store.Save(enc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// A directory in place of the temp file makes the write fail.
	if err := os.Mkdir(store.path+".tmp", 0o750); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}

	enc.CurrentRound = 2
	if err := store.Save(enc); err == nil {
		t.Fatal("Save() error = nil, want write failure")
	}
	if enc.Version != 1 {
		t.Errorf("Version after failed Save() = %d, want 1", enc.Version)
	}

	if err := os.Remove(store.path + ".tmp"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := store.Save(enc); err != nil {
		t.Errorf("retry Save() error = %v", err)
	}
	if enc.Version != 2 {
		t.Errorf("Version after retry = %d, want 2", enc.Version)
	}
}

func TestStore_ConcurrentSaves(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(newEncounter(1, "Race", time.Now())); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			enc, err := store.Get(1)
			if err != nil {
				t.Errorf("Get() error = %v", err)
				return
			}
			enc.CurrentRound++
			if err := store.Save(enc); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else if !errors.Is(err, domain.ErrVersionConflict) {
				t.Errorf("Save() error = %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := store.Get(1)
	if got.Version != 1+succeeded {
		t.Errorf("Version = %d, want %d (one bump per successful save)", got.Version, 1+succeeded)
	}
	if got.CurrentRound != succeeded {
		t.Errorf("CurrentRound = %d, want %d", got.CurrentRound, succeeded)
	}
}

func TestStore_List(t *testing.T) {
	store := newTestStore(t)

	a := newEncounter(2, "Second", time.Now())
	a.CampaignID = "camp-1"
	b := newEncounter(1, "First", time.Now())
	b.CampaignID = "camp-1"
	if err := b.Start(time.Now()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	c := newEncounter(3, "Elsewhere", time.Now())
	c.CampaignID = "camp-2"

	for _, enc := range []*domain.Encounter{a, b, c} {
		if err := store.Save(enc); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	tests := []struct {
		name   string
		filter domain.EncounterFilter
		want   []int
	}{
		{"all", domain.EncounterFilter{}, []int{1, 2, 3}},
		{"campaign", domain.EncounterFilter{CampaignID: "camp-1"}, []int{1, 2}},
		{"status", domain.EncounterFilter{Statuses: []domain.Status{domain.StatusActive}}, []int{1}},
		{"none", domain.EncounterFilter{CampaignID: "camp-9"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("List() returned %d encounters, want %d", len(got), len(tt.want))
			}
			for i, enc := range got {
				if enc.ID != tt.want[i] {
					t.Errorf("List()[%d].ID = %d, want %d", i, enc.ID, tt.want[i])
				}
			}
		})
	}
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(newEncounter(1, "To Delete", time.Now())); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := store.Delete(1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	got, err := store.Get(1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Error("Get() returned encounter after Delete()")
	}

	// Deleting again is not an error
	if err := store.Delete(1); err != nil {
		t.Errorf("Delete() second call error = %v", err)
	}
}

func newEncounter(id int, name string, now time.Time) *domain.Encounter {
	enc := domain.NewEncounter(id, name, "", now)
	enc.Combatants = []*domain.Combatant{
		{ID: "a1", Name: "Elf", Initiative: 18, HP: 12, MaxHP: 12, AC: 15, IsPlayer: true, StatusEffects: []domain.StatusEffect{}},
		{ID: "b2", Name: "Goblin", Initiative: 11, HP: 7, MaxHP: 7, AC: 13, StatusEffects: []domain.StatusEffect{}},
	}
	return enc
}

// newTestStore creates a new store with a temporary file for testing.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "encounters.json")
	store := New(path)
	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return store
}
