// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Encounter is one combat session and all of its combat-specific state.
// It exclusively owns its combatants and their status effects.
// Fields are ordered to minimize memory padding.
type Encounter struct {
	Created            time.Time    `json:"created" yaml:"created"`
	StartedAt          time.Time    `json:"startedAt,omitempty" yaml:"startedAt,omitempty"` // Set once on start
	EndedAt            time.Time    `json:"endedAt,omitempty" yaml:"endedAt,omitempty"`     // Set once on end
	Name               string       `json:"name" yaml:"name"`
	CampaignID         string       `json:"campaignID,omitempty" yaml:"campaignID,omitempty"` // Owning campaign (not validated)
	Status             Status       `json:"status" yaml:"status"`
	Combatants         []*Combatant `json:"combatants" yaml:"combatants"` // Cached initiative order
	EnvironmentEffects []string     `json:"environmentEffects,omitempty" yaml:"environmentEffects,omitempty"`
	ID                 int          `json:"-" yaml:"-"` // Stored as map key / ref name, not in value
	CurrentRound       int          `json:"currentRound" yaml:"currentRound"`
	CurrentTurn        int          `json:"currentTurn" yaml:"currentTurn"`
	Version            int          `json:"version" yaml:"version"` // Incremented by the repository on every save
}

// NewEncounter creates an encounter in the preparing state.
func NewEncounter(id int, name, campaignID string, now time.Time) *Encounter {
	return &Encounter{
		ID:         id,
		Name:       name,
		CampaignID: campaignID,
		Status:     StatusPreparing,
		Combatants: []*Combatant{},
		Created:    now,
	}
}

// Start begins the encounter: round 1, first combatant in initiative order.
func (e *Encounter) Start(now time.Time) error {
	if len(e.Combatants) == 0 && e.Status == StatusPreparing {
		return fmt.Errorf("cannot start encounter without combatants: %w", ErrInvalidTransition)
	}
	if err := e.transition(StatusPreparing, StatusActive, "start"); err != nil {
		return err
	}
	e.CurrentRound = 1
	e.CurrentTurn = 0
	e.StartedAt = now
	e.resort("")
	return nil
}

// Pause halts an active encounter.
func (e *Encounter) Pause() error {
	return e.transition(StatusActive, StatusPaused, "pause")
}

// Resume continues a paused encounter.
func (e *Encounter) Resume() error {
	return e.transition(StatusPaused, StatusActive, "resume")
}

// End completes the encounter. Ending a completed encounter is a no-op and
// keeps the original EndedAt.
func (e *Encounter) End(now time.Time) {
	if !e.Status.CanTransitionTo(StatusCompleted) {
		return
	}
	e.Status = StatusCompleted
	e.EndedAt = now
}

// transition moves the encounter from one status to another. Start and
// resume both lead to active, so the expected source status is explicit.
func (e *Encounter) transition(from, to Status, action string) error {
	if e.Status != from || !e.Status.CanTransitionTo(to) {
		return fmt.Errorf("cannot %s encounter in %s status: %w", action, e.Status, ErrInvalidTransition)
	}
	e.Status = to
	return nil
}

// IsStarted returns true if the encounter has ever been started.
func (e *Encounter) IsStarted() bool {
	return !e.StartedAt.IsZero()
}

// AddEnvironmentEffect adds an encounter-wide effect tag.
// Blank and duplicate tags are ignored and reported as false.
func (e *Encounter) AddEnvironmentEffect(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	for _, t := range e.EnvironmentEffects {
		if t == tag {
			return false
		}
	}
	e.EnvironmentEffects = append(e.EnvironmentEffects, tag)
	return true
}

// RemoveEnvironmentEffect removes an encounter-wide effect tag.
func (e *Encounter) RemoveEnvironmentEffect(tag string) bool {
	tag = strings.TrimSpace(tag)
	for i, t := range e.EnvironmentEffects {
		if t == tag {
			e.EnvironmentEffects = append(e.EnvironmentEffects[:i], e.EnvironmentEffects[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the encounter.
// Stores hand out clones so callers never alias persisted state.
func (e *Encounter) Clone() *Encounter {
	c := *e
	c.Combatants = make([]*Combatant, len(e.Combatants))
	for i, cb := range e.Combatants {
		cp := *cb
		cp.StatusEffects = append([]StatusEffect(nil), cb.StatusEffects...)
		c.Combatants[i] = &cp
	}
	c.EnvironmentEffects = append([]string(nil), e.EnvironmentEffects...)
	return &c
}
