package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// RemoveCombatantInput contains the parameters for removing a combatant.
type RemoveCombatantInput struct {
	Ref         string // Combatant id, unique id prefix or unique name
	EncounterID int
}

// RemoveCombatantOutput contains the removed combatant.
type RemoveCombatantOutput struct {
	Removed   domain.Combatant
	Encounter *domain.Encounter
}

// RemoveCombatant is the use case for removing a combatant from the roster.
type RemoveCombatant struct {
	encounters domain.EncounterRepository
	logger     domain.Logger
}

// NewRemoveCombatant creates a new RemoveCombatant use case.
func NewRemoveCombatant(encounters domain.EncounterRepository, logger domain.Logger) *RemoveCombatant {
	return &RemoveCombatant{
		encounters: encounters,
		logger:     logger,
	}
}

// Execute removes the combatant. The turn index is re-clamped so the same
// combatant keeps acting when possible.
func (uc *RemoveCombatant) Execute(_ context.Context, in RemoveCombatantInput) (*RemoveCombatantOutput, error) {
	var removed domain.Combatant
	enc, err := shared.MutateEncounter(uc.encounters, in.EncounterID, func(enc *domain.Encounter) error {
		if err := shared.RequireEditable(enc); err != nil {
			return err
		}
		c, err := enc.FindCombatant(in.Ref)
		if err != nil {
			return err
		}
		removed = *c
		enc.RemoveCombatant(c.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.logger != nil {
		uc.logger.Info(enc.ID, "roster", fmt.Sprintf("removed %q", removed.Name))
	}

	return &RemoveCombatantOutput{Removed: removed, Encounter: enc}, nil
}
