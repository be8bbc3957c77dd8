package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// StartEncounterInput contains the parameters for starting an encounter.
type StartEncounterInput struct {
	EncounterID int
}

// StartEncounterOutput contains the encounter after it started.
type StartEncounterOutput struct {
	Encounter *domain.Encounter
	Current   *domain.Combatant // Combatant holding the first turn
}

// StartEncounter is the use case for starting combat.
type StartEncounter struct {
	encounters domain.EncounterRepository
	clock      domain.Clock
	logger     domain.Logger
}

// NewStartEncounter creates a new StartEncounter use case.
func NewStartEncounter(encounters domain.EncounterRepository, clock domain.Clock, logger domain.Logger) *StartEncounter {
	return &StartEncounter{
		encounters: encounters,
		clock:      clock,
		logger:     logger,
	}
}

// Execute moves a preparing encounter to active, round 1, first turn.
func (uc *StartEncounter) Execute(_ context.Context, in StartEncounterInput) (*StartEncounterOutput, error) {
	now := uc.clock.Now()
	enc, err := shared.MutateEncounter(uc.encounters, in.EncounterID, func(enc *domain.Encounter) error {
		return enc.Start(now)
	})
	if err != nil {
		return nil, err
	}

	cur, _ := enc.CurrentCombatant()
	if uc.logger != nil {
		uc.logger.Info(enc.ID, "lifecycle", fmt.Sprintf("started with %d combatants, %s acts first", len(enc.Combatants), cur.Name))
	}

	return &StartEncounterOutput{Encounter: enc, Current: cur}, nil
}
