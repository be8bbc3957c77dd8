package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/initiative/internal/domain"
)

// ApplyHealing is the use case for restoring a combatant's hp (capped at max hp).
type ApplyHealing struct {
	encounters domain.EncounterRepository
	logger     domain.Logger
}

// NewApplyHealing creates a new ApplyHealing use case.
func NewApplyHealing(encounters domain.EncounterRepository, logger domain.Logger) *ApplyHealing {
	return &ApplyHealing{
		encounters: encounters,
		logger:     logger,
	}
}

// Execute applies the healing.
func (uc *ApplyHealing) Execute(_ context.Context, in HPChangeInput) (*HPChangeOutput, error) {
	out, err := changeHP(uc.encounters, in, (*domain.Encounter).ApplyHealing)
	if err != nil {
		return nil, err
	}

	if uc.logger != nil {
		c := out.Combatant
		uc.logger.Info(out.Encounter.ID, "hp", fmt.Sprintf("%q heals %d (%d -> %d)", c.Name, in.Amount, out.Before, c.HP))
	}
	return out, nil
}
