package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// EndEncounterInput contains the parameters for ending an encounter.
type EndEncounterInput struct {
	EncounterID int
}

// EndEncounterOutput contains the completed encounter.
type EndEncounterOutput struct {
	Encounter      *domain.Encounter
	AlreadyEnded   bool // True if the encounter was completed before this call
	ElapsedMinutes int  // Minutes between start and end (0 if never started)
}

// EndEncounter is the use case for finishing combat.
type EndEncounter struct {
	encounters domain.EncounterRepository
	clock      domain.Clock
	logger     domain.Logger
}

// NewEndEncounter creates a new EndEncounter use case.
func NewEndEncounter(encounters domain.EncounterRepository, clock domain.Clock, logger domain.Logger) *EndEncounter {
	return &EndEncounter{
		encounters: encounters,
		clock:      clock,
		logger:     logger,
	}
}

// Execute completes the encounter. Ending a completed encounter is a no-op
// and does not write a new snapshot.
func (uc *EndEncounter) Execute(_ context.Context, in EndEncounterInput) (*EndEncounterOutput, error) {
	enc, err := shared.GetEncounter(uc.encounters, in.EncounterID)
	if err != nil {
		return nil, err
	}
	if enc.Status.IsTerminal() {
		return uc.output(enc, true), nil
	}

	now := uc.clock.Now()
	enc, err = shared.MutateEncounter(uc.encounters, in.EncounterID, func(enc *domain.Encounter) error {
		enc.End(now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := uc.output(enc, false)
	if uc.logger != nil {
		uc.logger.Info(enc.ID, "lifecycle", fmt.Sprintf("ended after %d rounds (%d min)", enc.CurrentRound, out.ElapsedMinutes))
	}
	return out, nil
}

func (uc *EndEncounter) output(enc *domain.Encounter, already bool) *EndEncounterOutput {
	out := &EndEncounterOutput{Encounter: enc, AlreadyEnded: already}
	if s := enc.Summary(enc.EndedAt); s.ElapsedMinutes != nil {
		out.ElapsedMinutes = *s.ElapsedMinutes
	}
	return out
}
