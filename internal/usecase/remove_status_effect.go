package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// RemoveStatusEffectInput contains the parameters for removing a status effect.
type RemoveStatusEffectInput struct {
	Ref         string // Combatant id, unique id prefix or unique name
	EffectRef   string // Effect id, unique id prefix or unique name
	EncounterID int
}

// RemoveStatusEffectOutput contains the removed effect.
type RemoveStatusEffectOutput struct {
	Combatant *domain.Combatant
	Removed   domain.StatusEffect
}

// RemoveStatusEffect is the use case for removing a status effect early.
type RemoveStatusEffect struct {
	encounters domain.EncounterRepository
	logger     domain.Logger
}

// NewRemoveStatusEffect creates a new RemoveStatusEffect use case.
func NewRemoveStatusEffect(encounters domain.EncounterRepository, logger domain.Logger) *RemoveStatusEffect {
	return &RemoveStatusEffect{
		encounters: encounters,
		logger:     logger,
	}
}

// Execute removes the effect from the combatant.
func (uc *RemoveStatusEffect) Execute(_ context.Context, in RemoveStatusEffectInput) (*RemoveStatusEffectOutput, error) {
	var cid string
	var removed domain.StatusEffect
	enc, err := shared.MutateEncounter(uc.encounters, in.EncounterID, func(enc *domain.Encounter) error {
		if err := shared.RequireEditable(enc); err != nil {
			return err
		}
		c, err := enc.FindCombatant(in.Ref)
		if err != nil {
			return err
		}
		se, err := c.FindEffect(in.EffectRef)
		if err != nil {
			return fmt.Errorf("%s on %q: %w", in.EffectRef, c.Name, err)
		}
		cid, removed = c.ID, se
		enc.RemoveStatusEffect(c.ID, se.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c, _ := enc.Combatant(cid)
	if uc.logger != nil {
		uc.logger.Info(enc.ID, "effect", fmt.Sprintf("%q loses %q", c.Name, removed.Name))
	}

	return &RemoveStatusEffectOutput{Combatant: c, Removed: removed}, nil
}
