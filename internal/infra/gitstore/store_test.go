package gitstore

import (
	"os"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/initiative/internal/domain"
)

func setupTestRepo(t *testing.T) *git.Repository {
	t.Helper()

	dir, err := os.MkdirTemp("", "gitstore-test-*")
	require.NoError(t, err)

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	// Create an initial commit so the repository looks like a real project
	wt, err := repo.Worktree()
	require.NoError(t, err)

	dummyFile := dir + "/README.md"
	err = os.WriteFile(dummyFile, []byte("# Test"), 0o644)
	require.NoError(t, err)

	_, err = wt.Add("README.md")
	require.NoError(t, err)

	_, err = wt.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = os.RemoveAll(dir)
	})

	return repo
}

func newMemoryStore(t *testing.T) *Store {
	t.Helper()
	repo, err := git.Init(memory.NewStorage(), nil)
	require.NoError(t, err)
	store := NewWithRepo(repo, "initiative-test")
	require.NoError(t, store.Initialize())
	return store
}

func testEncounter(id int) *domain.Encounter {
	enc := domain.NewEncounter(id, "Crypt", "camp-1", time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC))
	enc.Combatants = []*domain.Combatant{
		{ID: "a1", Name: "Cleric", Initiative: 14, HP: 20, MaxHP: 24, AC: 18, IsPlayer: true, StatusEffects: []domain.StatusEffect{
			{ID: "e1", Name: "Bless", Type: domain.EffectBuff, Duration: 10},
		}},
		{ID: "b2", Name: "Skeleton", Initiative: 9, HP: 13, MaxHP: 13, AC: 13, StatusEffects: []domain.StatusEffect{}},
	}
	return enc
}

func TestStore_Initialize(t *testing.T) {
	repo := setupTestRepo(t)
	store := NewWithRepo(repo, "initiative-test")

	assert.False(t, store.IsInitialized())

	err := store.Initialize()
	require.NoError(t, err)
	assert.True(t, store.IsInitialized())

	// Second call should be idempotent
	err = store.Initialize()
	require.NoError(t, err)
}

func TestStore_Initialize_RepairsMeta(t *testing.T) {
	store := newMemoryStore(t)

	first, err := store.NextID()
	require.NoError(t, err)
	require.Equal(t, 1, first)

	// An encounter saved with an ID the meta ref has not handed out yet
	require.NoError(t, store.Save(testEncounter(7)))
	require.NoError(t, store.Initialize())

	id, err := store.NextID()
	require.NoError(t, err)
	assert.Equal(t, 8, id)
}

func TestStore_NextID(t *testing.T) {
	repo := setupTestRepo(t)
	store := NewWithRepo(repo, "initiative-test")

	id1, err := store.NextID()
	require.NoError(t, err)
	assert.Equal(t, 1, id1)

	id2, err := store.NextID()
	require.NoError(t, err)
	assert.Equal(t, 2, id2)

	id3, err := store.NextID()
	require.NoError(t, err)
	assert.Equal(t, 3, id3)
}

func TestStore_SaveAndGet(t *testing.T) {
	repo := setupTestRepo(t)
	store := NewWithRepo(repo, "initiative-test")
	require.NoError(t, store.Initialize())

	enc := testEncounter(1)
	enc.AddEnvironmentEffect("difficult terrain")
	require.NoError(t, enc.Start(enc.Created.Add(time.Minute)))

	require.NoError(t, store.Save(enc))
	assert.Equal(t, 1, enc.Version)

	got, err := store.Get(1)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 1, got.ID)
	assert.Equal(t, "Crypt", got.Name)
	assert.Equal(t, "camp-1", got.CampaignID)
	assert.Equal(t, domain.StatusActive, got.Status)
	assert.Equal(t, 1, got.CurrentRound)
	assert.True(t, got.Created.Equal(enc.Created))
	assert.True(t, got.StartedAt.Equal(enc.StartedAt))
	assert.True(t, got.EndedAt.IsZero())
	assert.Equal(t, []string{"difficult terrain"}, got.EnvironmentEffects)
	require.Len(t, got.Combatants, 2)
	assert.Equal(t, "Cleric", got.Combatants[0].Name)
	assert.True(t, got.Combatants[0].IsPlayer)
	assert.Equal(t, 24, got.Combatants[0].MaxHP)
	require.Len(t, got.Combatants[0].StatusEffects, 1)
	assert.Equal(t, domain.EffectBuff, got.Combatants[0].StatusEffects[0].Type)
	assert.Equal(t, 10, got.Combatants[0].StatusEffects[0].Duration)
}

func TestStore_GetNotFound(t *testing.T) {
	store := newMemoryStore(t)

	got, err := store.Get(999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_SaveVersionConflict(t *testing.T) {
	store := newMemoryStore(t)
	require.NoError(t, store.Save(testEncounter(1)))

	first, err := store.Get(1)
	require.NoError(t, err)
	second, err := store.Get(1)
	require.NoError(t, err)

	first.Name = "Crypt, second floor"
	require.NoError(t, store.Save(first))

	second.Name = "Lost update"
	err = store.Save(second)
	require.ErrorIs(t, err, domain.ErrVersionConflict)
	assert.Equal(t, 1, second.Version)

	got, err := store.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Crypt, second floor", got.Name)
	assert.Equal(t, 2, got.Version)
}

// racingStorage moves a ref right before the next compare-and-swap on it,
// as another process writing the same encounter would.
type racingStorage struct {
	*memory.Storage
	moveBefore plumbing.ReferenceName
}

func (r *racingStorage) CheckAndSetReference(ref, old *plumbing.Reference) error {
	if r.moveBefore != "" && ref.Name() == r.moveBefore {
		r.moveBefore = ""
		other := plumbing.NewHashReference(ref.Name(), plumbing.NewHash("1111111111111111111111111111111111111111"))
		if err := r.Storage.SetReference(other); err != nil {
			return err
		}
	}
	return r.Storage.CheckAndSetReference(ref, old)
}

func TestStore_SaveRefMovedConcurrently(t *testing.T) {
	storage := &racingStorage{Storage: memory.NewStorage()}
	repo, err := git.Init(storage, nil)
	require.NoError(t, err)
	store := NewWithRepo(repo, "initiative-test")
	require.NoError(t, store.Initialize())
	require.NoError(t, store.Save(testEncounter(1)))

	enc, err := store.Get(1)
	require.NoError(t, err)
	enc.Name = "Lost update"

	storage.moveBefore = store.encounterRef(1)
	err = store.Save(enc)

	require.ErrorIs(t, err, domain.ErrVersionConflict)
	assert.Equal(t, 1, enc.Version)
	history, err := store.History(1)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestStore_List(t *testing.T) {
	store := newMemoryStore(t)

	a := testEncounter(3)
	b := testEncounter(1)
	b.CampaignID = "camp-2"
	c := testEncounter(2)
	c.End(c.Created)

	for _, enc := range []*domain.Encounter{a, b, c} {
		require.NoError(t, store.Save(enc))
	}

	all, err := store.List(domain.EncounterFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, 2, all[1].ID)
	assert.Equal(t, 3, all[2].ID)

	camp1, err := store.List(domain.EncounterFilter{CampaignID: "camp-1"})
	require.NoError(t, err)
	assert.Len(t, camp1, 2)

	done, err := store.List(domain.EncounterFilter{Statuses: []domain.Status{domain.StatusCompleted}})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, 2, done[0].ID)
}

func TestStore_History(t *testing.T) {
	store := newMemoryStore(t)

	enc := testEncounter(1)
	require.NoError(t, store.Save(enc))
	require.NoError(t, enc.Start(enc.Created))
	require.NoError(t, store.Save(enc))
	_, err := enc.NextTurn()
	require.NoError(t, err)
	_, err = enc.NextTurn()
	require.NoError(t, err)
	require.NoError(t, store.Save(enc))

	history, err := store.History(1)
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, domain.SnapshotInfo{Version: 1, Status: domain.StatusPreparing, Round: 0, Turn: 0, Combatants: 2}, history[0])
	assert.Equal(t, domain.SnapshotInfo{Version: 2, Status: domain.StatusActive, Round: 1, Turn: 0, Combatants: 2}, history[1])
	assert.Equal(t, domain.SnapshotInfo{Version: 3, Status: domain.StatusActive, Round: 2, Turn: 0, Combatants: 2}, history[2])

	v1, err := store.GetVersion(1, 1)
	require.NoError(t, err)
	require.NotNil(t, v1)
	assert.Equal(t, domain.StatusPreparing, v1.Status)
	assert.Equal(t, 1, v1.ID)

	missing, err := store.GetVersion(1, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_Delete(t *testing.T) {
	store := newMemoryStore(t)

	enc := testEncounter(1)
	require.NoError(t, store.Save(enc))
	require.NoError(t, store.Save(enc))
	other := testEncounter(10)
	require.NoError(t, store.Save(other))

	require.NoError(t, store.Delete(1))

	got, err := store.Get(1)
	require.NoError(t, err)
	assert.Nil(t, got)

	history, err := store.History(1)
	require.NoError(t, err)
	assert.Empty(t, history)

	// Encounter 10 shares the "1" prefix and must survive
	kept, err := store.History(10)
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	// Deleting again is not an error
	require.NoError(t, store.Delete(1))
}

func TestStore_NamespaceIsolation(t *testing.T) {
	repo, err := git.Init(memory.NewStorage(), nil)
	require.NoError(t, err)

	gm1 := NewWithRepo(repo, "initiative-gm1")
	gm2 := NewWithRepo(repo, "initiative-gm2")

	require.NoError(t, gm1.Save(testEncounter(1)))

	got, err := gm2.Get(1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_PushRequiresPath(t *testing.T) {
	store := newMemoryStore(t)

	assert.Error(t, store.Push())
	assert.Error(t, store.Fetch())
}
