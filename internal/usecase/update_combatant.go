package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// UpdateCombatantInput contains the parameters for editing a combatant.
// Nil fields are left unchanged.
// Fields are ordered to minimize memory padding.
type UpdateCombatantInput struct {
	Name        *string `validate:"omitnil,min=1,max=64"`
	Notes       *string
	CharacterID *string
	Initiative  *int
	HP          *int  `validate:"omitnil,gte=0"`
	MaxHP       *int  `validate:"omitnil,gte=0"`
	AC          *int  `validate:"omitnil,gte=0"`
	IsPlayer    *bool
	Ref         string // Combatant id, unique id prefix or unique name
	EncounterID int
}

// UpdateCombatantOutput contains the edited combatant.
type UpdateCombatantOutput struct {
	Combatant *domain.Combatant
	Encounter *domain.Encounter
}

// UpdateCombatant is the use case for editing combatant fields.
type UpdateCombatant struct {
	encounters domain.EncounterRepository
	logger     domain.Logger
}

// NewUpdateCombatant creates a new UpdateCombatant use case.
func NewUpdateCombatant(encounters domain.EncounterRepository, logger domain.Logger) *UpdateCombatant {
	return &UpdateCombatant{
		encounters: encounters,
		logger:     logger,
	}
}

// Execute applies the patch. HP is re-clamped and the roster re-sorted when
// initiative or name change.
func (uc *UpdateCombatant) Execute(_ context.Context, in UpdateCombatantInput) (*UpdateCombatantOutput, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	if err := shared.Validate(in); err != nil {
		return nil, err
	}

	patch := domain.CombatantPatch{
		Name:        in.Name,
		Notes:       in.Notes,
		CharacterID: in.CharacterID,
		Initiative:  in.Initiative,
		HP:          in.HP,
		MaxHP:       in.MaxHP,
		AC:          in.AC,
		IsPlayer:    in.IsPlayer,
	}
	if patch.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}

	var id string
	enc, err := shared.MutateEncounter(uc.encounters, in.EncounterID, func(enc *domain.Encounter) error {
		if err := shared.RequireEditable(enc); err != nil {
			return err
		}
		c, err := enc.FindCombatant(in.Ref)
		if err != nil {
			return err
		}
		id = c.ID
		enc.UpdateCombatant(id, patch)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c, _ := enc.Combatant(id)
	if uc.logger != nil {
		uc.logger.Info(enc.ID, "roster", fmt.Sprintf("updated %q (init %d, hp %d/%d, ac %d)", c.Name, c.Initiative, c.HP, c.MaxHP, c.AC))
	}

	return &UpdateCombatantOutput{Combatant: c, Encounter: enc}, nil
}
