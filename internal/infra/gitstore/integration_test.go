//go:build integration

package gitstore

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/initiative/internal/domain"
)

// testRepoPath creates a temporary git repository for integration testing.
// Returns the path to the repository.
func testRepoPath(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	run(t, dir, "git", "init")
	run(t, dir, "git", "config", "user.email", "test@example.com")
	run(t, dir, "git", "config", "user.name", "Test User")

	readme := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("# Test\n"), 0o644))
	run(t, dir, "git", "add", ".")
	run(t, dir, "git", "commit", "-m", "Initial commit")

	return dir
}

// run executes a command and fails the test if it errors.
func run(t *testing.T, dir string, name string, args ...string) string {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "command failed: %s %v\noutput: %s", name, args, out)
	return string(out)
}

// =============================================================================
// New Function Tests
// =============================================================================

func TestIntegration_New(t *testing.T) {
	dir := testRepoPath(t)

	store, err := New(dir, "initiative-test")
	require.NoError(t, err)
	require.NotNil(t, store)
}

func TestIntegration_New_NotGitRepo(t *testing.T) {
	dir := t.TempDir() // Not a git repo

	store, err := New(dir, "initiative-test")
	assert.Error(t, err)
	assert.Nil(t, store)
}

// =============================================================================
// Persistence Tests
// =============================================================================

func TestIntegration_Persistence(t *testing.T) {
	dir := testRepoPath(t)

	store1, err := New(dir, "initiative-test")
	require.NoError(t, err)
	require.NoError(t, store1.Initialize())

	enc := testEncounter(1)
	require.NoError(t, store1.Save(enc))

	// Create new store instance (simulating process restart)
	store2, err := New(dir, "initiative-test")
	require.NoError(t, err)

	got, err := store2.Get(1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Crypt", got.Name)
	assert.Equal(t, 1, got.Version)
	assert.Len(t, got.Combatants, 2)
	assert.True(t, store2.IsInitialized())
}

// =============================================================================
// Git Interoperability Tests
// =============================================================================

func TestIntegration_GitRefs_Visible(t *testing.T) {
	dir := testRepoPath(t)

	store, err := New(dir, "initiative-test")
	require.NoError(t, err)
	require.NoError(t, store.Initialize())

	_, err = store.NextID()
	require.NoError(t, err)
	require.NoError(t, store.Save(testEncounter(1)))

	out := run(t, dir, "git", "for-each-ref", "--format=%(refname)", "refs/initiative-test/")
	assert.Contains(t, out, "refs/initiative-test/encounters/1")
	assert.Contains(t, out, "refs/initiative-test/history/1/1")
	assert.Contains(t, out, "refs/initiative-test/meta")
	assert.Contains(t, out, "refs/initiative-test/initialized")
}

func TestIntegration_GitCatFile(t *testing.T) {
	dir := testRepoPath(t)

	store, err := New(dir, "initiative-test")
	require.NoError(t, err)
	require.NoError(t, store.Save(testEncounter(1)))

	out := run(t, dir, "git", "cat-file", "-p", "refs/initiative-test/encounters/1")
	assert.Contains(t, out, "name: Crypt")
	assert.Contains(t, out, "name: Skeleton")
	assert.Contains(t, out, "version: 1")
}

// =============================================================================
// Remote Sync Tests
// =============================================================================

func TestIntegration_PushFetch(t *testing.T) {
	remote := t.TempDir()
	run(t, remote, "git", "init", "--bare")

	gm := testRepoPath(t)
	run(t, gm, "git", "remote", "add", "origin", remote)

	player := testRepoPath(t)
	run(t, player, "git", "remote", "add", "origin", remote)

	gmStore, err := New(gm, "initiative-test")
	require.NoError(t, err)
	require.NoError(t, gmStore.Initialize())
	require.NoError(t, gmStore.Save(testEncounter(1)))
	require.NoError(t, gmStore.Push())

	playerStore, err := New(player, "initiative-test")
	require.NoError(t, err)
	require.NoError(t, playerStore.Fetch())

	// Reopen so go-git sees the refs written by the git CLI
	playerStore, err = New(player, "initiative-test")
	require.NoError(t, err)

	got, err := playerStore.Get(1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Crypt", got.Name)
	assert.Equal(t, domain.StatusPreparing, got.Status)
}

func TestIntegration_Push_NoRemote(t *testing.T) {
	dir := testRepoPath(t)

	store, err := New(dir, "initiative-test")
	require.NoError(t, err)
	require.NoError(t, store.Initialize())

	err = store.Push()
	assert.Error(t, err)
}
