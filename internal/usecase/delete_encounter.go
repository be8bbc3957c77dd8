package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// DeleteEncounterInput contains the parameters for deleting an encounter.
type DeleteEncounterInput struct {
	EncounterID int
}

// DeleteEncounterOutput contains the result of deleting an encounter.
type DeleteEncounterOutput struct {
	Name string // Name of the deleted encounter
}

// DeleteEncounter is the use case for deleting an encounter.
type DeleteEncounter struct {
	encounters domain.EncounterRepository
	logger     domain.Logger
}

// NewDeleteEncounter creates a new DeleteEncounter use case.
func NewDeleteEncounter(encounters domain.EncounterRepository, logger domain.Logger) *DeleteEncounter {
	return &DeleteEncounter{
		encounters: encounters,
		logger:     logger,
	}
}

// Execute deletes the encounter.
func (uc *DeleteEncounter) Execute(_ context.Context, in DeleteEncounterInput) (*DeleteEncounterOutput, error) {
	enc, err := shared.GetEncounter(uc.encounters, in.EncounterID)
	if err != nil {
		return nil, err
	}

	if err := uc.encounters.Delete(enc.ID); err != nil {
		return nil, fmt.Errorf("delete encounter: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(enc.ID, "encounter", fmt.Sprintf("deleted: %q", enc.Name))
	}

	return &DeleteEncounterOutput{Name: enc.Name}, nil
}
