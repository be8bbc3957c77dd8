package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectType_IsValid(t *testing.T) {
	assert.True(t, EffectBuff.IsValid())
	assert.True(t, EffectDebuff.IsValid())
	assert.True(t, EffectNeutral.IsValid())
	assert.False(t, EffectType("curse").IsValid())
	assert.False(t, EffectType("").IsValid())
}

func TestEncounter_AddStatusEffect_Defaults(t *testing.T) {
	enc, ids := newTestEncounter(t, fighter("Orc", 15))

	se, ok := enc.AddStatusEffect(ids, "c1", StatusEffectInput{Name: "Prone"})

	require.True(t, ok)
	assert.Equal(t, "c2", se.ID)
	assert.Equal(t, EffectNeutral, se.Type)
	assert.Equal(t, PermanentDuration, se.Duration)
	assert.True(t, se.IsPermanent())

	orc, _ := enc.Combatant("c1")
	assert.Equal(t, []StatusEffect{se}, orc.StatusEffects)
}

func TestEncounter_AddStatusEffect_Explicit(t *testing.T) {
	enc, ids := newTestEncounter(t, fighter("Orc", 15))

	se, ok := enc.AddStatusEffect(ids, "c1", StatusEffectInput{
		Name:        "Bless",
		Description: "+1d4 to attacks",
		Type:        EffectBuff,
		Duration:    intPtr(10),
	})

	require.True(t, ok)
	assert.Equal(t, EffectBuff, se.Type)
	assert.Equal(t, 10, se.Duration)
	assert.Equal(t, "+1d4 to attacks", se.Description)
	assert.False(t, se.IsPermanent())
}

func TestEncounter_AddStatusEffect_UnknownCombatant(t *testing.T) {
	enc, ids := newTestEncounter(t)

	_, ok := enc.AddStatusEffect(ids, "ghost", StatusEffectInput{Name: "Prone"})

	assert.False(t, ok)
}

func TestEncounter_RemoveStatusEffect(t *testing.T) {
	enc, ids := newTestEncounter(t, fighter("Orc", 15))
	first, _ := enc.AddStatusEffect(ids, "c1", StatusEffectInput{Name: "Prone"})
	second, _ := enc.AddStatusEffect(ids, "c1", StatusEffectInput{Name: "Grappled"})

	assert.True(t, enc.RemoveStatusEffect("c1", first.ID))
	assert.False(t, enc.RemoveStatusEffect("c1", first.ID))
	assert.False(t, enc.RemoveStatusEffect("ghost", second.ID))

	orc, _ := enc.Combatant("c1")
	assert.Equal(t, []StatusEffect{second}, orc.StatusEffects)
}

func TestCombatant_FindEffect(t *testing.T) {
	c := &Combatant{StatusEffects: []StatusEffect{
		{ID: "aa11", Name: "Poisoned"},
		{ID: "aa22", Name: "Prone"},
		{ID: "bb33", Name: "poisoned"},
	}}

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr error
	}{
		{"exact id", "bb33", "bb33", nil},
		{"unique prefix", "aa2", "aa22", nil},
		{"ambiguous prefix", "aa", "", ErrAmbiguousEffect},
		{"unique name", "PRONE", "aa22", nil},
		{"ambiguous name", "poisoned", "", ErrAmbiguousEffect},
		{"missing", "blinded", "", ErrEffectNotFound},
		{"blank", "", "", ErrEffectNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se, err := c.FindEffect(tt.ref)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, se.ID)
		})
	}
}
