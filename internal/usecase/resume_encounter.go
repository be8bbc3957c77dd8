package usecase

import (
	"context"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// ResumeEncounterInput contains the parameters for resuming an encounter.
type ResumeEncounterInput struct {
	EncounterID int
}

// ResumeEncounterOutput contains the encounter after the transition.
type ResumeEncounterOutput struct {
	Encounter *domain.Encounter
}

// ResumeEncounter is the use case that continues a paused encounter.
type ResumeEncounter struct {
	encounters domain.EncounterRepository
	logger     domain.Logger
}

// NewResumeEncounter creates a new ResumeEncounter use case.
func NewResumeEncounter(encounters domain.EncounterRepository, logger domain.Logger) *ResumeEncounter {
	return &ResumeEncounter{
		encounters: encounters,
		logger:     logger,
	}
}

// Execute continues a paused encounter.
func (uc *ResumeEncounter) Execute(_ context.Context, in ResumeEncounterInput) (*ResumeEncounterOutput, error) {
	enc, err := shared.MutateEncounter(uc.encounters, in.EncounterID, func(enc *domain.Encounter) error {
		return enc.Resume()
	})
	if err != nil {
		return nil, err
	}

	if uc.logger != nil {
		uc.logger.Info(enc.ID, "lifecycle", "resumed")
	}

	return &ResumeEncounterOutput{Encounter: enc}, nil
}
