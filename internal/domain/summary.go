package domain

import (
	"math"
	"time"
)

// Summary is a read-only projection of an encounter.
// Fields are ordered to minimize memory padding.
type Summary struct {
	ElapsedMinutes   *int   // nil if the encounter never started
	CurrentCombatant string // "" when nobody holds the turn
	Status           Status
	HealthPercent    float64 // 100 * Σhp / Σmaxhp, one decimal
	Total            int
	Players          int
	Enemies          int
	Round            int
}

// Summary computes the summary view at the given time.
// Elapsed time stops counting once the encounter has ended.
func (e *Encounter) Summary(now time.Time) Summary {
	players := e.Players()
	s := Summary{
		Status:        e.Status,
		Total:         len(e.Combatants),
		Players:       players,
		Enemies:       len(e.Combatants) - players,
		Round:         e.CurrentRound,
		HealthPercent: healthPercent(e.Combatants),
	}

	if e.IsStarted() {
		until := now
		if !e.EndedAt.IsZero() {
			until = e.EndedAt
		}
		minutes := int(until.Sub(e.StartedAt) / time.Minute)
		minutes = max(0, minutes)
		s.ElapsedMinutes = &minutes
	}

	if e.Status.IsRunning() {
		if c, ok := e.CurrentCombatant(); ok {
			s.CurrentCombatant = c.Name
		}
	}
	return s
}

func healthPercent(cs []*Combatant) float64 {
	var hp, maxHP int
	for _, c := range cs {
		hp += c.HP
		maxHP += c.MaxHP
	}
	if maxHP == 0 {
		return 0
	}
	return math.Round(1000*float64(hp)/float64(maxHP)) / 10
}
