package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// ListEncountersInput contains the parameters for listing encounters.
type ListEncountersInput struct {
	CampaignID string          // "" = all campaigns
	Statuses   []domain.Status `validate:"dive,oneof=preparing active paused completed"` // empty = any status
}

// ListEncountersOutput contains the result of listing encounters.
type ListEncountersOutput struct {
	Encounters []*domain.Encounter
}

// ListEncounters is the use case for listing encounters.
type ListEncounters struct {
	encounters domain.EncounterRepository
}

// NewListEncounters creates a new ListEncounters use case.
func NewListEncounters(encounters domain.EncounterRepository) *ListEncounters {
	return &ListEncounters{encounters: encounters}
}

// Execute returns the encounters matching the input filter, ordered by ID.
func (uc *ListEncounters) Execute(_ context.Context, in ListEncountersInput) (*ListEncountersOutput, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}

	encs, err := uc.encounters.List(domain.EncounterFilter{
		CampaignID: in.CampaignID,
		Statuses:   in.Statuses,
	})
	if err != nil {
		return nil, fmt.Errorf("list encounters: %w", err)
	}

	return &ListEncountersOutput{Encounters: encs}, nil
}
