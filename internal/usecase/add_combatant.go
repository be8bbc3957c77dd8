package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// AddCombatantInput contains the parameters for adding a combatant.
// Values left nil are copied from the character record when CharacterID is
// set; otherwise MaxHP defaults to HP and AC to the configured default.
// Fields are ordered to minimize memory padding.
type AddCombatantInput struct {
	HP          *int   `validate:"omitnil,gte=0"`
	MaxHP       *int   `validate:"omitnil,gte=0"`
	AC          *int   `validate:"omitnil,gte=0"`
	IsPlayer    *bool
	Name        string `validate:"required_without=CharacterID,max=64"`
	CharacterID string
	Notes       string
	EncounterID int
	Initiative  int
}

// AddCombatantOutput contains the added combatant.
type AddCombatantOutput struct {
	Combatant *domain.Combatant
	Encounter *domain.Encounter
}

// combatantStats are the numbers a combatant starts with once explicit
// values, the character record and defaults have been merged.
type combatantStats struct {
	HP    int `validate:"gte=0"`
	MaxHP int `validate:"gte=0"`
	AC    int `validate:"gte=0"`
}

// AddCombatant is the use case for adding a combatant to the roster.
// Fields are ordered to minimize memory padding.
type AddCombatant struct {
	encounters domain.EncounterRepository
	characters domain.CharacterSource
	ids        domain.IDGenerator
	logger     domain.Logger
	defaultAC  int
}

// NewAddCombatant creates a new AddCombatant use case.
// characters may be nil when no character file is available.
func NewAddCombatant(
	encounters domain.EncounterRepository,
	characters domain.CharacterSource,
	ids domain.IDGenerator,
	logger domain.Logger,
	defaultAC int,
) *AddCombatant {
	return &AddCombatant{
		encounters: encounters,
		characters: characters,
		ids:        ids,
		logger:     logger,
		defaultAC:  defaultAC,
	}
}

// Execute adds the combatant and re-sorts the initiative order.
func (uc *AddCombatant) Execute(_ context.Context, in AddCombatantInput) (*AddCombatantOutput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.CharacterID = strings.TrimSpace(in.CharacterID)
	if err := shared.Validate(in); err != nil {
		return nil, err
	}

	ci, err := uc.resolveInput(in)
	if err != nil {
		return nil, err
	}

	var added domain.Combatant
	enc, err := shared.MutateEncounter(uc.encounters, in.EncounterID, func(enc *domain.Encounter) error {
		if err := shared.RequireEditable(enc); err != nil {
			return err
		}
		added = *enc.AddCombatant(uc.ids, ci)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c, _ := enc.Combatant(added.ID)
	if uc.logger != nil {
		uc.logger.Info(enc.ID, "roster", fmt.Sprintf("added %q (init %d, hp %d/%d, ac %d)", c.Name, c.Initiative, c.HP, c.MaxHP, c.AC))
	}

	return &AddCombatantOutput{Combatant: c, Encounter: enc}, nil
}

// resolveInput merges explicit values over the character record and defaults.
func (uc *AddCombatant) resolveInput(in AddCombatantInput) (domain.CombatantInput, error) {
	ci := domain.CombatantInput{
		Name:        in.Name,
		CharacterID: in.CharacterID,
		Notes:       in.Notes,
		Initiative:  in.Initiative,
	}
	ac := uc.defaultAC

	if in.CharacterID != "" {
		rec, err := uc.character(in.CharacterID)
		if err != nil {
			return ci, err
		}
		if ci.Name == "" {
			ci.Name = rec.Name
		}
		if ci.Notes == "" {
			ci.Notes = rec.Notes
		}
		ci.HP = rec.HP
		ci.MaxHP = rec.MaxHP
		ci.IsPlayer = rec.IsPlayer
		if rec.AC != nil {
			ac = *rec.AC
		}
	}

	if in.HP != nil {
		ci.HP = *in.HP
		if in.CharacterID == "" {
			ci.MaxHP = *in.HP
		}
	}
	if in.MaxHP != nil {
		ci.MaxHP = *in.MaxHP
	}
	if in.AC != nil {
		ac = *in.AC
	}
	if in.IsPlayer != nil {
		ci.IsPlayer = *in.IsPlayer
	}
	ci.AC = &ac

	if ci.Name == "" {
		return ci, domain.ErrEmptyName
	}
	if err := shared.Validate(combatantStats{HP: ci.HP, MaxHP: ci.MaxHP, AC: ac}); err != nil {
		if in.CharacterID != "" {
			return ci, fmt.Errorf("character %q: %w", in.CharacterID, err)
		}
		return ci, err
	}
	return ci, nil
}

func (uc *AddCombatant) character(id string) (*domain.CharacterRecord, error) {
	if uc.characters == nil {
		return nil, fmt.Errorf("character %q: %w", id, domain.ErrCharacterNotFound)
	}
	rec, err := uc.characters.GetCharacter(id)
	if err != nil {
		return nil, fmt.Errorf("get character: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("character %q: %w", id, domain.ErrCharacterNotFound)
	}
	return rec, nil
}
