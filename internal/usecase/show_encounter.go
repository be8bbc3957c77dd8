package usecase

import (
	"context"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// ShowEncounterInput contains the parameters for showing an encounter.
type ShowEncounterInput struct {
	EncounterID int
}

// ShowEncounterOutput contains the encounter snapshot.
type ShowEncounterOutput struct {
	Encounter *domain.Encounter
	Current   *domain.Combatant // nil unless the encounter is running
}

// ShowEncounter is the use case for loading one encounter snapshot.
type ShowEncounter struct {
	encounters domain.EncounterRepository
}

// NewShowEncounter creates a new ShowEncounter use case.
func NewShowEncounter(encounters domain.EncounterRepository) *ShowEncounter {
	return &ShowEncounter{encounters: encounters}
}

// Execute loads the encounter.
func (uc *ShowEncounter) Execute(_ context.Context, in ShowEncounterInput) (*ShowEncounterOutput, error) {
	enc, err := shared.GetEncounter(uc.encounters, in.EncounterID)
	if err != nil {
		return nil, err
	}

	out := &ShowEncounterOutput{Encounter: enc}
	if enc.Status.IsRunning() {
		if c, ok := enc.CurrentCombatant(); ok {
			out.Current = c
		}
	}
	return out, nil
}
