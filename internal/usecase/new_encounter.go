// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// NewEncounterInput contains the parameters for creating a new encounter.
type NewEncounterInput struct {
	Name       string `validate:"required,max=100"` // Encounter name (required)
	CampaignID string `validate:"max=100"`          // Owning campaign (optional, not validated)
}

// NewEncounterOutput contains the result of creating a new encounter.
type NewEncounterOutput struct {
	Encounter *domain.Encounter
}

// NewEncounter is the use case for creating a new encounter.
type NewEncounter struct {
	encounters domain.EncounterRepository
	clock      domain.Clock
	logger     domain.Logger
}

// NewNewEncounter creates a new NewEncounter use case.
func NewNewEncounter(encounters domain.EncounterRepository, clock domain.Clock, logger domain.Logger) *NewEncounter {
	return &NewEncounter{
		encounters: encounters,
		clock:      clock,
		logger:     logger,
	}
}

// Execute creates a new encounter in the preparing state.
func (uc *NewEncounter) Execute(_ context.Context, in NewEncounterInput) (*NewEncounterOutput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.CampaignID = strings.TrimSpace(in.CampaignID)
	if err := shared.Validate(in); err != nil {
		return nil, err
	}

	id, err := uc.encounters.NextID()
	if err != nil {
		return nil, fmt.Errorf("generate encounter ID: %w", err)
	}

	enc := domain.NewEncounter(id, in.Name, in.CampaignID, uc.clock.Now())
	if err := uc.encounters.Save(enc); err != nil {
		return nil, fmt.Errorf("save encounter: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(id, "encounter", fmt.Sprintf("created: %q", in.Name))
	}

	return &NewEncounterOutput{Encounter: enc}, nil
}
