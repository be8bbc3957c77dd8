package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/initiative/internal/app"
	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/testutil"
)

var testNow = time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)

// newTestContainer creates an app.Container with mock dependencies.
func newTestContainer(repo domain.EncounterRepository) *app.Container {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	container := app.NewWithDeps(
		app.Config{},
		repo,
		&testutil.MockStoreInitializer{},
		&testutil.MockClock{NowTime: testNow},
		logger,
	)
	container.IDs = &testutil.SequenceIDs{Prefix: "n"}
	return container
}

// execute runs cmd with args and returns everything it printed.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// seedEncounter stores encounter #1 in the given status.
func seedEncounter(t *testing.T, repo *testutil.MockEncounterRepository, status domain.Status, combatants ...domain.CombatantInput) *domain.Encounter {
	t.Helper()

	enc := domain.NewEncounter(1, "Goblin ambush", "", testNow)
	ids := &testutil.SequenceIDs{Prefix: "c"}
	for _, in := range combatants {
		enc.AddCombatant(ids, in)
	}

	switch status {
	case domain.StatusActive:
		require.NoError(t, enc.Start(testNow))
	case domain.StatusPaused:
		require.NoError(t, enc.Start(testNow))
		require.NoError(t, enc.Pause())
	case domain.StatusCompleted:
		if len(combatants) > 0 {
			require.NoError(t, enc.Start(testNow))
		}
		enc.End(testNow.Add(10 * time.Minute))
	case domain.StatusPreparing:
	}

	repo.Put(enc)
	repo.NextIDN = 2
	return enc
}

func goblin(init int) domain.CombatantInput {
	return domain.CombatantInput{Name: "Goblin", Initiative: init, HP: 7, MaxHP: 7}
}

func aria(init int) domain.CombatantInput {
	return domain.CombatantInput{Name: "Aria", Initiative: init, HP: 24, MaxHP: 30, IsPlayer: true}
}

// =============================================================================
// New Command Tests
// =============================================================================

func TestNewCommand_CreatesEncounter(t *testing.T) {
	repo := testutil.NewMockEncounterRepository()
	container := newTestContainer(repo)

	out, err := execute(newNewCommand(container), "Goblin ambush", "--campaign", "strahd")

	require.NoError(t, err)
	assert.Contains(t, out, "Created encounter #1: Goblin ambush")
	enc := repo.Encounters[1]
	require.NotNil(t, enc)
	assert.Equal(t, "strahd", enc.CampaignID)
	assert.Equal(t, domain.StatusPreparing, enc.Status)
}

func TestNewCommand_EmptyName(t *testing.T) {
	repo := testutil.NewMockEncounterRepository()
	container := newTestContainer(repo)

	_, err := execute(newNewCommand(container), "   ")

	require.ErrorIs(t, err, domain.ErrEmptyName)
	assert.Empty(t, repo.Encounters)
}

func TestNewCommand_RequiresName(t *testing.T) {
	container := newTestContainer(testutil.NewMockEncounterRepository())

	_, err := execute(newNewCommand(container))

	assert.Error(t, err)
}

// =============================================================================
// List Command Tests
// =============================================================================

func TestListCommand_HidesCompletedByDefault(t *testing.T) {
	repo := testutil.NewMockEncounterRepository()
	open := domain.NewEncounter(1, "Bridge troll", "strahd", testNow)
	done := domain.NewEncounter(2, "Old fight", "", testNow)
	done.End(testNow)
	repo.Put(open)
	repo.Put(done)
	container := newTestContainer(repo)

	out, err := execute(newListCommand(container))

	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Bridge troll")
	assert.Contains(t, out, "strahd")
	assert.NotContains(t, out, "Old fight")
}

func TestListCommand_All(t *testing.T) {
	repo := testutil.NewMockEncounterRepository()
	done := domain.NewEncounter(2, "Old fight", "", testNow)
	done.End(testNow)
	repo.Put(done)
	container := newTestContainer(repo)

	out, err := execute(newListCommand(container), "--all")

	require.NoError(t, err)
	assert.Contains(t, out, "Old fight")
	assert.Contains(t, out, "completed")
}

func TestListCommand_StatusFilter(t *testing.T) {
	repo := testutil.NewMockEncounterRepository()
	seedEncounter(t, repo, domain.StatusPaused, goblin(10))
	container := newTestContainer(repo)

	out, err := execute(newListCommand(container), "--status", "active")
	require.NoError(t, err)
	assert.Contains(t, out, "No encounters.")

	out, err = execute(newListCommand(container), "--status", "Paused")
	require.NoError(t, err)
	assert.Contains(t, out, "Goblin ambush")
}

func TestListCommand_InvalidStatus(t *testing.T) {
	container := newTestContainer(testutil.NewMockEncounterRepository())

	_, err := execute(newListCommand(container), "--status", "sleeping")

	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

// =============================================================================
// Show Command Tests
// =============================================================================

func TestShowCommand_PrintsRosterWithCurrentMarker(t *testing.T) {
	repo := testutil.NewMockEncounterRepository()
	seedEncounter(t, repo, domain.StatusActive, goblin(10), aria(18))
	container := newTestContainer(repo)

	out, err := execute(newShowCommand(container), "#1")

	require.NoError(t, err)
	assert.Contains(t, out, "# 1: Goblin ambush")
	assert.Contains(t, out, "Status: active (round 1)")
	assert.Regexp(t, `>\s+18\s+Aria\s+24/30`, out)
	assert.Regexp(t, `\s+10\s+Goblin\s+7/7`, out)
}

func TestShowCommand_JSON(t *testing.T) {
	repo := testutil.NewMockEncounterRepository()
	seedEncounter(t, repo, domain.StatusActive, goblin(10), aria(18))
	container := newTestContainer(repo)

	out, err := execute(newShowCommand(container), "1", "--json")

	require.NoError(t, err)
	var got struct {
		Name       string `json:"name"`
		Current    string `json:"current"`
		Status     string `json:"status"`
		Combatants []struct {
			Name string `json:"name"`
		} `json:"combatants"`
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, "Goblin ambush", got.Name)
	assert.Equal(t, "active", got.Status)
	assert.Equal(t, "c2", got.Current)
	require.Len(t, got.Combatants, 2)
	assert.Equal(t, "Aria", got.Combatants[0].Name)
}

func TestShowCommand_NotFound(t *testing.T) {
	container := newTestContainer(testutil.NewMockEncounterRepository())

	_, err := execute(newShowCommand(container), "42")

	require.ErrorIs(t, err, domain.ErrEncounterNotFound)
}

func TestShowCommand_InvalidID(t *testing.T) {
	container := newTestContainer(testutil.NewMockEncounterRepository())

	tests := []string{"abc", "0", "-3"}
	for _, arg := range tests {
		t.Run(arg, func(t *testing.T) {
			_, err := execute(newShowCommand(container), "--", arg)
			assert.Error(t, err)
		})
	}
}

// =============================================================================
// Rm Command Tests
// =============================================================================

func TestRmCommand(t *testing.T) {
	repo := testutil.NewMockEncounterRepository()
	seedEncounter(t, repo, domain.StatusPreparing)
	container := newTestContainer(repo)

	out, err := execute(newRmCommand(container), "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted encounter #1: Goblin ambush")
	assert.Empty(t, repo.Encounters)
}

// =============================================================================
// Lifecycle Command Tests
// =============================================================================

func TestLifecycleCommands(t *testing.T) {
	repo := testutil.NewMockEncounterRepository()
	seedEncounter(t, repo, domain.StatusPreparing, goblin(10), aria(18))
	container := newTestContainer(repo)

	out, err := execute(newStartCommand(container), "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Started encounter #1: round 1, Aria acts first")
	assert.Equal(t, domain.StatusActive, repo.Encounters[1].Status)

	out, err = execute(newPauseCommand(container), "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Paused encounter #1")
	assert.Equal(t, domain.StatusPaused, repo.Encounters[1].Status)

	out, err = execute(newResumeCommand(container), "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Resumed encounter #1")
	assert.Equal(t, domain.StatusActive, repo.Encounters[1].Status)

	out, err = execute(newEndCommand(container), "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Ended encounter #1 after 1 rounds (0 min)")
	assert.Equal(t, domain.StatusCompleted, repo.Encounters[1].Status)

	out, err = execute(newEndCommand(container), "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Encounter #1 already ended")
}

func TestStartCommand_WithoutCombatants(t *testing.T) {
	repo := testutil.NewMockEncounterRepository()
	seedEncounter(t, repo, domain.StatusPreparing)
	container := newTestContainer(repo)

	_, err := execute(newStartCommand(container), "1")

	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.StatusPreparing, repo.Encounters[1].Status)
}

func TestPauseCommand_NotActive(t *testing.T) {
	repo := testutil.NewMockEncounterRepository()
	seedEncounter(t, repo, domain.StatusPreparing, goblin(10))
	container := newTestContainer(repo)

	_, err := execute(newPauseCommand(container), "1")

	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// =============================================================================
// Summary / History Command Tests
// =============================================================================

func TestSummaryCommand(t *testing.T) {
	repo := testutil.NewMockEncounterRepository()
	seedEncounter(t, repo, domain.StatusActive, goblin(10), aria(18))
	container := newTestContainer(repo)
	container.Clock = &testutil.MockClock{NowTime: testNow.Add(7 * time.Minute)}

	out, err := execute(newSummaryCommand(container), "1")

	require.NoError(t, err)
	assert.Regexp(t, `Status:\s+Active`, out)
	assert.Regexp(t, `Current:\s+Aria`, out)
	assert.Regexp(t, `Combatants:\s+2 \(1 players, 1 enemies\)`, out)
	assert.Regexp(t, `Health:\s+83\.8%`, out)
	assert.Regexp(t, `Elapsed:\s+7 min`, out)
}

func TestSummaryCommand_NotStarted(t *testing.T) {
	repo := testutil.NewMockEncounterRepository()
	seedEncounter(t, repo, domain.StatusPreparing, goblin(10))
	container := newTestContainer(repo)

	out, err := execute(newSummaryCommand(container), "1")

	require.NoError(t, err)
	assert.Regexp(t, `Current:\s+-`, out)
	assert.Regexp(t, `Elapsed:\s+-`, out)
}

func TestHistoryCommand(t *testing.T) {
	repo := testutil.NewMockSyncRepository()
	enc := seedEncounter(t, repo.MockEncounterRepository, domain.StatusActive, goblin(10), aria(18))
	v1 := enc.Clone()
	v1.Version = 1
	v2 := enc.Clone()
	v2.Version = 2
	v2.CurrentTurn = 1
	repo.Snapshots[1] = []*domain.Encounter{v1, v2}
	container := newTestContainer(repo)

	out, err := execute(newHistoryCommand(container), "1")
	require.NoError(t, err)
	assert.Contains(t, out, "VERSION")
	assert.Regexp(t, `2\s+active\s+1\s+2\s+2`, out)

	out, err = execute(newHistoryCommand(container), "1", "--version", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Version 2")
	assert.Regexp(t, `>\s+10\s+Goblin`, out)
}

func TestHistoryCommand_Unsupported(t *testing.T) {
	repo := testutil.NewMockEncounterRepository()
	seedEncounter(t, repo, domain.StatusPreparing)
	container := newTestContainer(repo)

	_, err := execute(newHistoryCommand(container), "1")

	require.ErrorIs(t, err, domain.ErrHistoryUnsupported)
}
