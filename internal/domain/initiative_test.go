package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareInitiative(t *testing.T) {
	tests := []struct {
		name string
		a    *Combatant
		b    *Combatant
		want int
	}{
		{"higher initiative first", &Combatant{Name: "Z", Initiative: 20}, &Combatant{Name: "A", Initiative: 10}, -1},
		{"lower initiative last", &Combatant{Name: "A", Initiative: 5}, &Combatant{Name: "Z", Initiative: 6}, 1},
		{"tie broken by name", &Combatant{Name: "Elf", Initiative: 15}, &Combatant{Name: "Orc", Initiative: 15}, -1},
		{"full tie broken by id", &Combatant{ID: "b", Name: "Orc", Initiative: 15}, &Combatant{ID: "a", Name: "Orc", Initiative: 15}, 1},
		{"negative initiative", &Combatant{Name: "A", Initiative: -2}, &Combatant{Name: "B", Initiative: 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareInitiative(tt.a, tt.b))
		})
	}
}

func TestEncounter_NextTurn_WrapsIntoNewRound(t *testing.T) {
	enc, _ := newTestEncounter(t, fighter("Orc", 15), fighter("Elf", 15), fighter("Goblin", 10))
	require.NoError(t, enc.Start(testNow))

	res, err := enc.NextTurn()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Turn)
	assert.Equal(t, "Orc", res.Current.Name)
	assert.False(t, res.NewRound)

	res, err = enc.NextTurn()
	require.NoError(t, err)
	assert.Equal(t, 2, res.Turn)
	assert.Equal(t, "Goblin", res.Current.Name)

	res, err = enc.NextTurn()
	require.NoError(t, err)
	assert.Equal(t, 0, res.Turn)
	assert.Equal(t, 2, res.Round)
	assert.True(t, res.NewRound)
	assert.Equal(t, "Elf", res.Current.Name)
	assert.Equal(t, 2, enc.CurrentRound)
	assert.Equal(t, 0, enc.CurrentTurn)
}

func TestEncounter_NextTurn_SweepRunsOncePerRound(t *testing.T) {
	enc, ids := newTestEncounter(t, fighter("Orc", 15), fighter("Elf", 12), fighter("Goblin", 10))
	_, ok := enc.AddStatusEffect(ids, "c1", StatusEffectInput{Name: "Hasted", Duration: intPtr(3)})
	require.True(t, ok)
	require.NoError(t, enc.Start(testNow))

	for range 3 {
		_, err := enc.NextTurn()
		require.NoError(t, err)
	}

	orc, _ := enc.Combatant("c1")
	require.Len(t, orc.StatusEffects, 1)
	assert.Equal(t, 2, orc.StatusEffects[0].Duration, "three turns in a three-combatant round decrement once")
}

func TestEncounter_NextTurn_ExpiresEffectsAtRollover(t *testing.T) {
	enc, ids := newTestEncounter(t, fighter("Orc", 15), fighter("Elf", 12))
	enc.AddStatusEffect(ids, "c1", StatusEffectInput{Name: "Stunned", Type: EffectDebuff, Duration: intPtr(1)})
	enc.AddStatusEffect(ids, "c1", StatusEffectInput{Name: "Cursed", Type: EffectDebuff})
	enc.AddStatusEffect(ids, "c2", StatusEffectInput{Name: "Blessed", Type: EffectBuff, Duration: intPtr(2)})
	require.NoError(t, enc.Start(testNow))

	res, err := enc.NextTurn()
	require.NoError(t, err)
	assert.Empty(t, res.Expired, "no sweep before rollover")

	res, err = enc.NextTurn()
	require.NoError(t, err)
	require.True(t, res.NewRound)
	require.Len(t, res.Expired, 1)
	assert.Equal(t, "Stunned", res.Expired[0].Effect.Name)
	assert.Equal(t, "Orc", res.Expired[0].CombatantName)

	orc, _ := enc.Combatant("c1")
	require.Len(t, orc.StatusEffects, 1)
	assert.Equal(t, "Cursed", orc.StatusEffects[0].Name)
	assert.Equal(t, PermanentDuration, orc.StatusEffects[0].Duration, "permanent effects are untouched")

	elf, _ := enc.Combatant("c2")
	require.Len(t, elf.StatusEffects, 1)
	assert.Equal(t, 1, elf.StatusEffects[0].Duration)
}

func TestEncounter_NextTurn_RequiresActive(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Encounter)
	}{
		{"preparing", func(*Encounter) {}},
		{"paused", func(e *Encounter) { _ = e.Start(testNow); _ = e.Pause() }},
		{"completed", func(e *Encounter) { _ = e.Start(testNow); e.End(testNow) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, _ := newTestEncounter(t, fighter("Orc", 15), fighter("Elf", 12))
			tt.setup(enc)
			round, turn := enc.CurrentRound, enc.CurrentTurn

			_, err := enc.NextTurn()
			require.ErrorIs(t, err, ErrInvalidTransition)
			_, err = enc.PreviousTurn()
			require.ErrorIs(t, err, ErrInvalidTransition)

			assert.Equal(t, round, enc.CurrentRound)
			assert.Equal(t, turn, enc.CurrentTurn)
		})
	}
}

func TestEncounter_NextTurn_EmptyRosterIsNoop(t *testing.T) {
	enc, _ := newTestEncounter(t, fighter("Orc", 15))
	require.NoError(t, enc.Start(testNow))
	require.True(t, enc.RemoveCombatant("c1"))

	res, err := enc.NextTurn()

	require.NoError(t, err)
	assert.Nil(t, res.Current)
	assert.Equal(t, 1, enc.CurrentRound)
	assert.Equal(t, 0, enc.CurrentTurn)
}

func TestEncounter_PreviousTurn(t *testing.T) {
	enc, _ := newTestEncounter(t, fighter("A", 30), fighter("B", 20), fighter("C", 10))
	require.NoError(t, enc.Start(testNow))

	res, err := enc.PreviousTurn()
	require.NoError(t, err)
	assert.Equal(t, 2, res.Turn)
	assert.Equal(t, 1, res.Round, "round never drops below 1")
	assert.Equal(t, "C", res.Current.Name)

	res, err = enc.PreviousTurn()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Turn)
	assert.Equal(t, 1, res.Round)
}

func TestEncounter_PreviousTurn_StepsBackARound(t *testing.T) {
	enc, _ := newTestEncounter(t, fighter("A", 30), fighter("B", 20))
	require.NoError(t, enc.Start(testNow))
	for range 2 {
		_, err := enc.NextTurn()
		require.NoError(t, err)
	}
	require.Equal(t, 2, enc.CurrentRound)

	res, err := enc.PreviousTurn()

	require.NoError(t, err)
	assert.Equal(t, 1, res.Round)
	assert.Equal(t, 1, res.Turn)
	assert.False(t, res.NewRound)
}

func TestEncounter_PreviousTurn_DoesNotRestoreExpiredEffects(t *testing.T) {
	enc, ids := newTestEncounter(t, fighter("A", 30))
	enc.AddStatusEffect(ids, "c1", StatusEffectInput{Name: "Stunned", Duration: intPtr(1)})
	require.NoError(t, enc.Start(testNow))

	res, err := enc.NextTurn()
	require.NoError(t, err)
	require.Len(t, res.Expired, 1)

	_, err = enc.PreviousTurn()
	require.NoError(t, err)

	a, _ := enc.Combatant("c1")
	assert.Empty(t, a.StatusEffects)
}

func TestEncounter_CurrentCombatant(t *testing.T) {
	enc, _ := newTestEncounter(t, fighter("A", 30), fighter("B", 20))

	cur, ok := enc.CurrentCombatant()
	require.True(t, ok)
	assert.Equal(t, "A", cur.Name)

	enc.CurrentTurn = 5
	_, ok = enc.CurrentCombatant()
	assert.False(t, ok)
}
