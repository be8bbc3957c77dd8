package domain

import "strings"

// EffectType classifies a status effect for display. It has no mechanical meaning.
type EffectType string

const (
	EffectBuff    EffectType = "buff"
	EffectDebuff  EffectType = "debuff"
	EffectNeutral EffectType = "neutral"
)

// IsValid returns true if the effect type is a known value.
func (t EffectType) IsValid() bool {
	switch t {
	case EffectBuff, EffectDebuff, EffectNeutral:
		return true
	default:
		return false
	}
}

// PermanentDuration marks an effect that never expires.
const PermanentDuration = -1

// StatusEffect is a named, optionally time-limited tag attached to a combatant.
// Fields are ordered to minimize memory padding.
type StatusEffect struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Type        EffectType `json:"type" yaml:"type"`
	Duration    int        `json:"duration" yaml:"duration"` // -1 = permanent, >0 = rounds remaining
}

// IsPermanent returns true if the effect is never decremented.
func (s StatusEffect) IsPermanent() bool {
	return s.Duration == PermanentDuration
}

// StatusEffectInput contains the values for a new status effect.
type StatusEffectInput struct {
	Duration    *int       // nil = permanent
	Name        string
	Description string
	Type        EffectType // "" = neutral
}

// ExpiredEffect records an effect removed by the round-rollover sweep.
type ExpiredEffect struct {
	CombatantID   string
	CombatantName string
	Effect        StatusEffect
}

// AddStatusEffect appends a new effect to the combatant's list.
// Returns false if the combatant does not exist.
func (e *Encounter) AddStatusEffect(ids IDGenerator, combatantID string, in StatusEffectInput) (StatusEffect, bool) {
	c, ok := e.Combatant(combatantID)
	if !ok {
		return StatusEffect{}, false
	}
	se := StatusEffect{
		ID:          ids.NewID(),
		Name:        in.Name,
		Description: in.Description,
		Duration:    PermanentDuration,
		Type:        EffectNeutral,
	}
	if in.Duration != nil {
		se.Duration = *in.Duration
	}
	if in.Type != "" {
		se.Type = in.Type
	}
	c.StatusEffects = append(c.StatusEffects, se)
	return se, true
}

// RemoveStatusEffect removes an effect from a combatant.
// Returns whether a removal occurred.
func (e *Encounter) RemoveStatusEffect(combatantID, effectID string) bool {
	c, ok := e.Combatant(combatantID)
	if !ok {
		return false
	}
	for i, se := range c.StatusEffects {
		if se.ID == effectID {
			c.StatusEffects = append(c.StatusEffects[:i], c.StatusEffects[i+1:]...)
			return true
		}
	}
	return false
}

// sweepEffects decrements every timed effect by one round and removes the
// ones that reach zero. Permanent effects are untouched.
func (e *Encounter) sweepEffects() []ExpiredEffect {
	var expired []ExpiredEffect
	for _, c := range e.Combatants {
		kept := c.StatusEffects[:0]
		for _, se := range c.StatusEffects {
			if se.Duration > 0 {
				se.Duration--
				if se.Duration == 0 {
					expired = append(expired, ExpiredEffect{
						CombatantID:   c.ID,
						CombatantName: c.Name,
						Effect:        se,
					})
					continue
				}
			}
			kept = append(kept, se)
		}
		c.StatusEffects = kept
	}
	return expired
}

// FindEffect resolves an effect reference on a combatant: an exact ID, a
// unique ID prefix, or a unique case-insensitive name.
func (c *Combatant) FindEffect(ref string) (StatusEffect, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return StatusEffect{}, ErrEffectNotFound
	}
	if se, ok := c.Effect(ref); ok {
		return se, nil
	}

	var byPrefix, byName []StatusEffect
	for _, se := range c.StatusEffects {
		if strings.HasPrefix(se.ID, ref) {
			byPrefix = append(byPrefix, se)
		}
		if strings.EqualFold(se.Name, ref) {
			byName = append(byName, se)
		}
	}
	for _, matches := range [][]StatusEffect{byPrefix, byName} {
		if len(matches) == 1 {
			return matches[0], nil
		}
		if len(matches) > 1 {
			return StatusEffect{}, ErrAmbiguousEffect
		}
	}
	return StatusEffect{}, ErrEffectNotFound
}
