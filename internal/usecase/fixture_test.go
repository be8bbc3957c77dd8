package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/testutil"
)

var testStart = time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)

// fixture bundles the test doubles shared by encounter use cases.
type fixture struct {
	repo   *testutil.MockEncounterRepository
	clock  *testutil.MockClock
	logger *testutil.MockLogger
	ids    *testutil.SequenceIDs
}

func newFixture() *fixture {
	return &fixture{
		repo:   testutil.NewMockEncounterRepository(),
		clock:  &testutil.MockClock{NowTime: testStart},
		logger: &testutil.MockLogger{},
		ids:    &testutil.SequenceIDs{Prefix: "c"},
	}
}

// seed stores encounter #1 with the given combatants and returns a copy.
func (f *fixture) seed(t *testing.T, status domain.Status, combatants ...domain.CombatantInput) *domain.Encounter {
	t.Helper()
	enc := domain.NewEncounter(1, "Goblin ambush", "", testStart)
	for _, in := range combatants {
		enc.AddCombatant(f.ids, in)
	}
	switch status {
	case domain.StatusActive:
		require.NoError(t, enc.Start(testStart))
	case domain.StatusPaused:
		require.NoError(t, enc.Start(testStart))
		require.NoError(t, enc.Pause())
	case domain.StatusCompleted:
		if len(combatants) > 0 {
			require.NoError(t, enc.Start(testStart))
		}
		enc.End(testStart.Add(10 * time.Minute))
	}
	require.NoError(t, f.repo.Save(enc))
	f.repo.NextIDN = 2
	return enc
}

// stored returns the persisted encounter #1.
func (f *fixture) stored(t *testing.T) *domain.Encounter {
	t.Helper()
	enc, ok := f.repo.Encounters[1]
	require.True(t, ok, "encounter #1 not stored")
	return enc
}

func combatant(name string, init, hp int) domain.CombatantInput {
	return domain.CombatantInput{Name: name, Initiative: init, HP: hp, MaxHP: hp}
}

func player(name string, init, hp int) domain.CombatantInput {
	in := combatant(name, init, hp)
	in.IsPlayer = true
	return in
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }
