package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// HPChangeInput contains the parameters for damaging or healing a combatant.
type HPChangeInput struct {
	Ref         string // Combatant id, unique id prefix or unique name
	EncounterID int
	Amount      int `validate:"gte=0"`
}

// HPChangeOutput contains the combatant after the hp change.
type HPChangeOutput struct {
	Combatant *domain.Combatant
	Encounter *domain.Encounter
	Before    int // HP before the change
}

// ApplyDamage is the use case for reducing a combatant's hp (floored at 0).
type ApplyDamage struct {
	encounters domain.EncounterRepository
	logger     domain.Logger
}

// NewApplyDamage creates a new ApplyDamage use case.
func NewApplyDamage(encounters domain.EncounterRepository, logger domain.Logger) *ApplyDamage {
	return &ApplyDamage{
		encounters: encounters,
		logger:     logger,
	}
}

// Execute applies the damage.
func (uc *ApplyDamage) Execute(_ context.Context, in HPChangeInput) (*HPChangeOutput, error) {
	out, err := changeHP(uc.encounters, in, (*domain.Encounter).ApplyDamage)
	if err != nil {
		return nil, err
	}

	if uc.logger != nil {
		c := out.Combatant
		uc.logger.Info(out.Encounter.ID, "hp", fmt.Sprintf("%q takes %d damage (%d -> %d)", c.Name, in.Amount, out.Before, c.HP))
		if c.IsDown() && out.Before > 0 {
			uc.logger.Info(out.Encounter.ID, "hp", fmt.Sprintf("%q is down", c.Name))
		}
	}
	return out, nil
}

// changeHP resolves the combatant and applies an hp mutation.
func changeHP(repo domain.EncounterRepository, in HPChangeInput, apply func(*domain.Encounter, string, int) bool) (*HPChangeOutput, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}

	var id string
	var before int
	enc, err := shared.MutateEncounter(repo, in.EncounterID, func(enc *domain.Encounter) error {
		if err := shared.RequireEditable(enc); err != nil {
			return err
		}
		c, err := enc.FindCombatant(in.Ref)
		if err != nil {
			return err
		}
		id, before = c.ID, c.HP
		apply(enc, id, in.Amount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c, _ := enc.Combatant(id)
	return &HPChangeOutput{Combatant: c, Encounter: enc, Before: before}, nil
}
