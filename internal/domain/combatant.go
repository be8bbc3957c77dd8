package domain

import (
	"slices"
	"strings"
)

// DefaultAC is the armor class given to combatants added without one.
const DefaultAC = 10

// Combatant is one participant (player character, NPC or monster) in an encounter.
// Fields are ordered to minimize memory padding.
type Combatant struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"` // Tie-break key for initiative
	CharacterID   string         `json:"characterID,omitempty" yaml:"characterID,omitempty"`
	Notes         string         `json:"notes,omitempty" yaml:"notes,omitempty"`
	StatusEffects []StatusEffect `json:"statusEffects" yaml:"statusEffects"` // Insertion order
	Initiative    int            `json:"initiative" yaml:"initiative"`
	HP            int            `json:"hp" yaml:"hp"`
	MaxHP         int            `json:"maxHP" yaml:"maxHP"`
	AC            int            `json:"ac" yaml:"ac"`
	IsPlayer      bool           `json:"isPlayer" yaml:"isPlayer"`
}

// IsDown returns true when the combatant has no hit points left.
func (c *Combatant) IsDown() bool {
	return c.HP <= 0
}

// Effect returns the status effect with the given ID.
func (c *Combatant) Effect(effectID string) (StatusEffect, bool) {
	for _, se := range c.StatusEffects {
		if se.ID == effectID {
			return se, true
		}
	}
	return StatusEffect{}, false
}

// clampHP keeps 0 <= HP <= MaxHP.
func (c *Combatant) clampHP() {
	if c.MaxHP < 0 {
		c.MaxHP = 0
	}
	c.HP = max(0, min(c.HP, c.MaxHP))
}

// CombatantInput contains the values for a new combatant.
// Fields are ordered to minimize memory padding.
type CombatantInput struct {
	AC          *int   // nil = DefaultAC
	Name        string // Display name
	CharacterID string // Optional link to a character record
	Notes       string
	Initiative  int
	HP          int
	MaxHP       int
	IsPlayer    bool
}

// CombatantPatch lists the combatant fields to change. Nil fields are left as is.
// Fields are ordered to minimize memory padding.
type CombatantPatch struct {
	Name        *string
	Notes       *string
	CharacterID *string
	Initiative  *int
	HP          *int
	MaxHP       *int
	AC          *int
	IsPlayer    *bool
}

// IsEmpty returns true if the patch changes nothing.
func (p CombatantPatch) IsEmpty() bool {
	return p.Name == nil && p.Notes == nil && p.CharacterID == nil && p.Initiative == nil &&
		p.HP == nil && p.MaxHP == nil && p.AC == nil && p.IsPlayer == nil
}

// Combatant returns the combatant with the given ID.
func (e *Encounter) Combatant(id string) (*Combatant, bool) {
	if i := e.indexOf(id); i >= 0 {
		return e.Combatants[i], true
	}
	return nil, false
}

// AddCombatant appends a new combatant and re-sorts the roster.
func (e *Encounter) AddCombatant(ids IDGenerator, in CombatantInput) *Combatant {
	ac := DefaultAC
	if in.AC != nil {
		ac = *in.AC
	}
	c := &Combatant{
		ID:            ids.NewID(),
		Name:          in.Name,
		Initiative:    in.Initiative,
		HP:            in.HP,
		MaxHP:         in.MaxHP,
		AC:            ac,
		IsPlayer:      in.IsPlayer,
		CharacterID:   in.CharacterID,
		Notes:         in.Notes,
		StatusEffects: []StatusEffect{},
	}
	c.clampHP()

	anchor := e.turnAnchor()
	e.Combatants = append(e.Combatants, c)
	e.resort(anchor)
	return c
}

// UpdateCombatant merges patch into the combatant with the given ID.
// The roster is re-sorted when a sort key (initiative or name) changes.
func (e *Encounter) UpdateCombatant(id string, patch CombatantPatch) bool {
	c, ok := e.Combatant(id)
	if !ok {
		return false
	}
	anchor := e.turnAnchor()

	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Notes != nil {
		c.Notes = *patch.Notes
	}
	if patch.CharacterID != nil {
		c.CharacterID = *patch.CharacterID
	}
	if patch.AC != nil {
		c.AC = *patch.AC
	}
	if patch.IsPlayer != nil {
		c.IsPlayer = *patch.IsPlayer
	}
	if patch.MaxHP != nil {
		c.MaxHP = *patch.MaxHP
	}
	if patch.HP != nil {
		c.HP = *patch.HP
	}
	if patch.HP != nil || patch.MaxHP != nil {
		c.clampHP()
	}
	if patch.Initiative != nil {
		c.Initiative = *patch.Initiative
	}

	if patch.Initiative != nil || patch.Name != nil {
		e.resort(anchor)
	}
	return true
}

// RemoveCombatant removes the combatant with the given ID.
// Removing someone who acts before the current combatant shifts the turn
// index back so the same combatant keeps the turn.
func (e *Encounter) RemoveCombatant(id string) bool {
	idx := e.indexOf(id)
	if idx < 0 {
		return false
	}
	e.Combatants = slices.Delete(e.Combatants, idx, idx+1)
	if idx < e.CurrentTurn {
		e.CurrentTurn--
	}
	e.resort("")
	return true
}

// ApplyDamage lowers hp, never below zero. Negative amounts are ignored.
func (e *Encounter) ApplyDamage(id string, amount int) bool {
	c, ok := e.Combatant(id)
	if !ok {
		return false
	}
	c.HP = max(0, c.HP-max(0, amount))
	return true
}

// ApplyHealing raises hp, never above max hp. Negative amounts are ignored.
func (e *Encounter) ApplyHealing(id string, amount int) bool {
	c, ok := e.Combatant(id)
	if !ok {
		return false
	}
	c.HP = min(c.MaxHP, c.HP+max(0, amount))
	return true
}

// Players returns the number of player combatants.
func (e *Encounter) Players() int {
	n := 0
	for _, c := range e.Combatants {
		if c.IsPlayer {
			n++
		}
	}
	return n
}

func (e *Encounter) indexOf(id string) int {
	return slices.IndexFunc(e.Combatants, func(c *Combatant) bool { return c.ID == id })
}

// FindCombatant resolves a user-supplied reference: an exact ID, a unique ID
// prefix, or a unique case-insensitive name.
func (e *Encounter) FindCombatant(ref string) (*Combatant, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrCombatantNotFound
	}
	if c, ok := e.Combatant(ref); ok {
		return c, nil
	}

	var byPrefix, byName []*Combatant
	for _, c := range e.Combatants {
		if strings.HasPrefix(c.ID, ref) {
			byPrefix = append(byPrefix, c)
		}
		if strings.EqualFold(c.Name, ref) {
			byName = append(byName, c)
		}
	}
	for _, matches := range [][]*Combatant{byPrefix, byName} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return nil, ErrAmbiguousCombatant
		}
	}
	return nil, ErrCombatantNotFound
}
