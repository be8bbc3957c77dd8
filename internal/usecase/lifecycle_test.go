package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/initiative/internal/domain"
)

func TestStartEncounter_Execute(t *testing.T) {
	f := newFixture()
	f.seed(t, domain.StatusPreparing, combatant("Goblin", 12, 7), player("Aria", 17, 22))
	f.clock.Advance(5 * time.Minute)
	uc := NewStartEncounter(f.repo, f.clock, f.logger)

	out, err := uc.Execute(context.Background(), StartEncounterInput{EncounterID: 1})

	require.NoError(t, err)
	assert.Equal(t, "Aria", out.Current.Name)

	stored := f.stored(t)
	assert.Equal(t, domain.StatusActive, stored.Status)
	assert.Equal(t, 1, stored.CurrentRound)
	assert.Equal(t, 0, stored.CurrentTurn)
	assert.Equal(t, testStart.Add(5*time.Minute), stored.StartedAt)
	assert.Equal(t, []string{"started with 2 combatants, Aria acts first"}, f.logger.Messages("lifecycle"))
}

func TestStartEncounter_Execute_Guards(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.Status
		combatants []domain.CombatantInput
	}{
		{"empty roster", domain.StatusPreparing, nil},
		{"already active", domain.StatusActive, []domain.CombatantInput{combatant("Goblin", 1, 1)}},
		{"paused", domain.StatusPaused, []domain.CombatantInput{combatant("Goblin", 1, 1)}},
		{"completed", domain.StatusCompleted, []domain.CombatantInput{combatant("Goblin", 1, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			before := f.seed(t, tt.status, tt.combatants...)
			uc := NewStartEncounter(f.repo, f.clock, nil)

			_, err := uc.Execute(context.Background(), StartEncounterInput{EncounterID: 1})

			require.ErrorIs(t, err, domain.ErrInvalidTransition)
			assert.Equal(t, before.Version, f.stored(t).Version, "nothing saved")
		})
	}
}

func TestPauseResume_Execute(t *testing.T) {
	f := newFixture()
	f.seed(t, domain.StatusActive, combatant("Goblin", 12, 7))
	pause := NewPauseEncounter(f.repo, f.logger)
	resume := NewResumeEncounter(f.repo, f.logger)
	ctx := context.Background()

	_, err := resume.Execute(ctx, ResumeEncounterInput{EncounterID: 1})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	out, err := pause.Execute(ctx, PauseEncounterInput{EncounterID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaused, out.Encounter.Status)

	_, err = pause.Execute(ctx, PauseEncounterInput{EncounterID: 1})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	rout, err := resume.Execute(ctx, ResumeEncounterInput{EncounterID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, rout.Encounter.Status)
	assert.Equal(t, []string{"paused", "resumed"}, f.logger.Messages("lifecycle"))
}

func TestEndEncounter_Execute(t *testing.T) {
	f := newFixture()
	f.seed(t, domain.StatusPaused, combatant("Goblin", 12, 7))
	f.clock.Advance(42 * time.Minute)
	uc := NewEndEncounter(f.repo, f.clock, f.logger)

	out, err := uc.Execute(context.Background(), EndEncounterInput{EncounterID: 1})

	require.NoError(t, err)
	assert.False(t, out.AlreadyEnded)
	assert.Equal(t, 42, out.ElapsedMinutes)
	stored := f.stored(t)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	assert.Equal(t, testStart.Add(42*time.Minute), stored.EndedAt)
}

func TestEndEncounter_Execute_FromPreparing(t *testing.T) {
	f := newFixture()
	f.seed(t, domain.StatusPreparing)
	uc := NewEndEncounter(f.repo, f.clock, nil)

	out, err := uc.Execute(context.Background(), EndEncounterInput{EncounterID: 1})

	require.NoError(t, err)
	assert.Zero(t, out.ElapsedMinutes)
	assert.Equal(t, domain.StatusCompleted, f.stored(t).Status)
}

func TestEndEncounter_Execute_Idempotent(t *testing.T) {
	f := newFixture()
	f.seed(t, domain.StatusCompleted, combatant("Goblin", 12, 7))
	before := f.stored(t).Clone()
	f.clock.Advance(time.Hour)
	uc := NewEndEncounter(f.repo, f.clock, f.logger)

	out, err := uc.Execute(context.Background(), EndEncounterInput{EncounterID: 1})

	require.NoError(t, err)
	assert.True(t, out.AlreadyEnded)
	assert.Equal(t, 10, out.ElapsedMinutes)
	assert.Equal(t, before.EndedAt, f.stored(t).EndedAt)
	assert.Equal(t, before.Version, f.stored(t).Version)
	assert.Empty(t, f.logger.Messages("lifecycle"))
}
