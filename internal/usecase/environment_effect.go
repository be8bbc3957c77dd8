package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// EnvironmentEffectInput contains the parameters for adding or removing an
// encounter-wide effect tag.
type EnvironmentEffectInput struct {
	Tag         string `validate:"required,max=64"`
	EncounterID int
}

// EnvironmentEffectOutput contains the encounter's tags after the change.
type EnvironmentEffectOutput struct {
	Effects []string
	Changed bool // False if the tag was already present (add) or absent (remove)
}

// AddEnvironmentEffect is the use case for adding an environment effect tag.
type AddEnvironmentEffect struct {
	encounters domain.EncounterRepository
	logger     domain.Logger
}

// NewAddEnvironmentEffect creates a new AddEnvironmentEffect use case.
func NewAddEnvironmentEffect(encounters domain.EncounterRepository, logger domain.Logger) *AddEnvironmentEffect {
	return &AddEnvironmentEffect{encounters: encounters, logger: logger}
}

// Execute adds the tag. Duplicates are ignored.
func (uc *AddEnvironmentEffect) Execute(_ context.Context, in EnvironmentEffectInput) (*EnvironmentEffectOutput, error) {
	return changeEnvironment(uc.encounters, uc.logger, in, "added", (*domain.Encounter).AddEnvironmentEffect)
}

// RemoveEnvironmentEffect is the use case for removing an environment effect tag.
type RemoveEnvironmentEffect struct {
	encounters domain.EncounterRepository
	logger     domain.Logger
}

// NewRemoveEnvironmentEffect creates a new RemoveEnvironmentEffect use case.
func NewRemoveEnvironmentEffect(encounters domain.EncounterRepository, logger domain.Logger) *RemoveEnvironmentEffect {
	return &RemoveEnvironmentEffect{encounters: encounters, logger: logger}
}

// Execute removes the tag. Removing an absent tag is not an error.
func (uc *RemoveEnvironmentEffect) Execute(_ context.Context, in EnvironmentEffectInput) (*EnvironmentEffectOutput, error) {
	return changeEnvironment(uc.encounters, uc.logger, in, "removed", (*domain.Encounter).RemoveEnvironmentEffect)
}

func changeEnvironment(
	repo domain.EncounterRepository,
	logger domain.Logger,
	in EnvironmentEffectInput,
	verb string,
	apply func(*domain.Encounter, string) bool,
) (*EnvironmentEffectOutput, error) {
	in.Tag = strings.TrimSpace(in.Tag)
	if err := shared.Validate(in); err != nil {
		return nil, err
	}

	enc, err := shared.GetEncounter(repo, in.EncounterID)
	if err != nil {
		return nil, err
	}
	if err := shared.RequireEditable(enc); err != nil {
		return nil, err
	}
	// Probe on a copy so unchanged encounters are not rewritten.
	if !apply(enc.Clone(), in.Tag) {
		return &EnvironmentEffectOutput{Effects: enc.EnvironmentEffects}, nil
	}

	changed := false
	enc, err = shared.MutateEncounter(repo, in.EncounterID, func(enc *domain.Encounter) error {
		if err := shared.RequireEditable(enc); err != nil {
			return err
		}
		changed = apply(enc, in.Tag)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed && logger != nil {
		logger.Info(enc.ID, "environment", fmt.Sprintf("%s %q", verb, in.Tag))
	}
	return &EnvironmentEffectOutput{Effects: enc.EnvironmentEffects, Changed: changed}, nil
}
