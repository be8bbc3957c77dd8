package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// TurnResult describes the encounter position after a turn change.
// Fields are ordered to minimize memory padding.
type TurnResult struct {
	Current  *Combatant      // nil when the roster is empty
	Expired  []ExpiredEffect // Effects removed by the round-rollover sweep
	Round    int
	Turn     int
	NewRound bool // True when the turn wrapped into a new round
}

// CompareInitiative orders combatants by initiative descending, then name
// ascending. The ID breaks any remaining tie so the order is total.
func CompareInitiative(a, b *Combatant) int {
	if a.Initiative != b.Initiative {
		return cmp.Compare(b.Initiative, a.Initiative)
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// SortCombatants sorts combatants in place into initiative order.
func SortCombatants(cs []*Combatant) {
	slices.SortStableFunc(cs, CompareInitiative)
}

// InitiativeOrder returns combatant IDs in turn order.
func (e *Encounter) InitiativeOrder() []string {
	ids := make([]string, len(e.Combatants))
	for i, c := range e.Combatants {
		ids[i] = c.ID
	}
	return ids
}

// CurrentCombatant returns the combatant whose turn it is.
func (e *Encounter) CurrentCombatant() (*Combatant, bool) {
	if e.CurrentTurn < 0 || e.CurrentTurn >= len(e.Combatants) {
		return nil, false
	}
	return e.Combatants[e.CurrentTurn], true
}

// NextTurn advances to the next combatant. Wrapping past the last combatant
// starts a new round and runs the status effect sweep once.
func (e *Encounter) NextTurn() (TurnResult, error) {
	if e.Status != StatusActive {
		return TurnResult{}, fmt.Errorf("cannot advance turn in %s status: %w", e.Status, ErrInvalidTransition)
	}
	if len(e.Combatants) == 0 {
		return e.turnResult(), nil
	}

	e.clampTurn()
	e.CurrentTurn = (e.CurrentTurn + 1) % len(e.Combatants)

	var expired []ExpiredEffect
	newRound := false
	if e.CurrentTurn == 0 {
		e.CurrentRound++
		expired = e.sweepEffects()
		newRound = true
	}

	res := e.turnResult()
	res.Expired = expired
	res.NewRound = newRound
	return res, nil
}

// PreviousTurn steps back one combatant. Wrapping back moves to the
// previous round (never below 1). Expired effects are not restored.
func (e *Encounter) PreviousTurn() (TurnResult, error) {
	if e.Status != StatusActive {
		return TurnResult{}, fmt.Errorf("cannot rewind turn in %s status: %w", e.Status, ErrInvalidTransition)
	}
	if len(e.Combatants) == 0 {
		return e.turnResult(), nil
	}

	e.clampTurn()
	if e.CurrentTurn == 0 {
		e.CurrentTurn = len(e.Combatants) - 1
		e.CurrentRound = max(1, e.CurrentRound-1)
	} else {
		e.CurrentTurn--
	}
	return e.turnResult(), nil
}

func (e *Encounter) turnResult() TurnResult {
	cur, _ := e.CurrentCombatant()
	return TurnResult{
		Round:   e.CurrentRound,
		Turn:    e.CurrentTurn,
		Current: cur,
	}
}

// turnAnchor returns the ID of the combatant holding the turn while the
// encounter is running, or "" when there is nobody to anchor to.
func (e *Encounter) turnAnchor() string {
	if !e.Status.IsRunning() {
		return ""
	}
	if c, ok := e.CurrentCombatant(); ok {
		return c.ID
	}
	return ""
}

// resort re-sorts the roster. If anchorID is still present the turn follows
// that combatant, otherwise the turn index is clamped into range.
func (e *Encounter) resort(anchorID string) {
	SortCombatants(e.Combatants)
	if anchorID != "" {
		if i := e.indexOf(anchorID); i >= 0 {
			e.CurrentTurn = i
			return
		}
	}
	e.clampTurn()
}

func (e *Encounter) clampTurn() {
	if e.CurrentTurn < 0 || e.CurrentTurn >= len(e.Combatants) {
		e.CurrentTurn = 0
	}
}
