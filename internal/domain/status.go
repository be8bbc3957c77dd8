package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Status represents the lifecycle state of an encounter.
type Status string

const (
	StatusPreparing Status = "preparing" // Created, roster being set up
	StatusActive    Status = "active"    // Turns are running
	StatusPaused    Status = "paused"    // Temporarily halted, roster still editable
	StatusCompleted Status = "completed" // Ended (terminal)
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{
		StatusPreparing,
		StatusActive,
		StatusPaused,
		StatusCompleted,
	}
}

// transitions defines the allowed status transitions.
// Flow: preparing → active ⇄ paused → completed
//
//	└────────────────────────────┘ (end from any non-terminal state)
var transitions = map[Status][]Status{
	StatusPreparing: {StatusActive, StatusCompleted},
	StatusActive:    {StatusPaused, StatusCompleted},
	StatusPaused:    {StatusActive, StatusCompleted},
	StatusCompleted: {},
}

// CanTransitionTo returns true if the status can transition to the target status.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(transitions[s], target)
}

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

// IsRunning returns true once the encounter has started and before it ends.
func (s Status) IsRunning() bool {
	return s == StatusActive || s == StatusPaused
}

// AllowsRosterChanges returns true if combatants and effects may be edited.
func (s Status) AllowsRosterChanges() bool {
	return s == StatusPreparing || s.IsRunning()
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusPreparing:
		return "Preparing"
	case StatusActive:
		return "Active"
	case StatusPaused:
		return "Paused"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	return slices.Contains(AllStatuses(), s)
}

// ParseStatus converts user input into a Status.
func ParseStatus(v string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(v)))
	if !s.IsValid() {
		names := make([]string, 0, len(AllStatuses()))
		for _, st := range AllStatuses() {
			names = append(names, string(st))
		}
		return "", fmt.Errorf("%q (want one of %s): %w", v, strings.Join(names, ", "), ErrInvalidStatus)
	}
	return s, nil
}
