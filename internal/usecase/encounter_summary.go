package usecase

import (
	"context"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// EncounterSummaryInput contains the parameters for summarizing an encounter.
type EncounterSummaryInput struct {
	EncounterID int
}

// EncounterSummaryOutput contains the summary view.
type EncounterSummaryOutput struct {
	Encounter *domain.Encounter
	Summary   domain.Summary
}

// EncounterSummary is the use case for the read-only summary view.
type EncounterSummary struct {
	encounters domain.EncounterRepository
	clock      domain.Clock
}

// NewEncounterSummary creates a new EncounterSummary use case.
func NewEncounterSummary(encounters domain.EncounterRepository, clock domain.Clock) *EncounterSummary {
	return &EncounterSummary{
		encounters: encounters,
		clock:      clock,
	}
}

// Execute computes the summary at the current time.
func (uc *EncounterSummary) Execute(_ context.Context, in EncounterSummaryInput) (*EncounterSummaryOutput, error) {
	enc, err := shared.GetEncounter(uc.encounters, in.EncounterID)
	if err != nil {
		return nil, err
	}

	return &EncounterSummaryOutput{
		Encounter: enc,
		Summary:   enc.Summary(uc.clock.Now()),
	}, nil
}
