package usecase

import (
	"context"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// PauseEncounterInput contains the parameters for pausing an encounter.
type PauseEncounterInput struct {
	EncounterID int
}

// PauseEncounterOutput contains the encounter after the transition.
type PauseEncounterOutput struct {
	Encounter *domain.Encounter
}

// PauseEncounter is the use case that halts an active encounter.
type PauseEncounter struct {
	encounters domain.EncounterRepository
	logger     domain.Logger
}

// NewPauseEncounter creates a new PauseEncounter use case.
func NewPauseEncounter(encounters domain.EncounterRepository, logger domain.Logger) *PauseEncounter {
	return &PauseEncounter{
		encounters: encounters,
		logger:     logger,
	}
}

// Execute halts an active encounter.
func (uc *PauseEncounter) Execute(_ context.Context, in PauseEncounterInput) (*PauseEncounterOutput, error) {
	enc, err := shared.MutateEncounter(uc.encounters, in.EncounterID, func(enc *domain.Encounter) error {
		return enc.Pause()
	})
	if err != nil {
		return nil, err
	}

	if uc.logger != nil {
		uc.logger.Info(enc.ID, "lifecycle", "paused")
	}

	return &PauseEncounterOutput{Encounter: enc}, nil
}
