package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// AddStatusEffectInput contains the parameters for attaching a status effect.
// Fields are ordered to minimize memory padding.
type AddStatusEffectInput struct {
	Duration    *int              `validate:"omitnil,eq=-1|gt=0"` // Rounds; nil or -1 = permanent
	Ref         string            // Combatant id, unique id prefix or unique name
	Name        string            `validate:"required,max=64"`
	Description string            `validate:"max=500"`
	Type        domain.EffectType `validate:"omitempty,oneof=buff debuff neutral"` // "" = neutral
	EncounterID int
}

// AddStatusEffectOutput contains the new effect.
type AddStatusEffectOutput struct {
	Combatant *domain.Combatant
	Effect    domain.StatusEffect
}

// AddStatusEffect is the use case for attaching a status effect to a combatant.
type AddStatusEffect struct {
	encounters domain.EncounterRepository
	ids        domain.IDGenerator
	logger     domain.Logger
}

// NewAddStatusEffect creates a new AddStatusEffect use case.
func NewAddStatusEffect(encounters domain.EncounterRepository, ids domain.IDGenerator, logger domain.Logger) *AddStatusEffect {
	return &AddStatusEffect{
		encounters: encounters,
		ids:        ids,
		logger:     logger,
	}
}

// Execute appends the effect to the combatant's effect list.
func (uc *AddStatusEffect) Execute(_ context.Context, in AddStatusEffectInput) (*AddStatusEffectOutput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = domain.EffectType(strings.ToLower(strings.TrimSpace(string(in.Type))))
	if err := shared.Validate(in); err != nil {
		return nil, err
	}

	var cid string
	var se domain.StatusEffect
	enc, err := shared.MutateEncounter(uc.encounters, in.EncounterID, func(enc *domain.Encounter) error {
		if err := shared.RequireEditable(enc); err != nil {
			return err
		}
		c, err := enc.FindCombatant(in.Ref)
		if err != nil {
			return err
		}
		cid = c.ID
		se, _ = enc.AddStatusEffect(uc.ids, cid, domain.StatusEffectInput{
			Duration:    in.Duration,
			Name:        in.Name,
			Description: in.Description,
			Type:        in.Type,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	c, _ := enc.Combatant(cid)
	if uc.logger != nil {
		uc.logger.Info(enc.ID, "effect", fmt.Sprintf("%q gains %s %q (%s)", c.Name, se.Type, se.Name, durationText(se)))
	}

	return &AddStatusEffectOutput{Combatant: c, Effect: se}, nil
}

func durationText(se domain.StatusEffect) string {
	if se.IsPermanent() {
		return "permanent"
	}
	if se.Duration == 1 {
		return "1 round"
	}
	return fmt.Sprintf("%d rounds", se.Duration)
}
