package tui

import "github.com/runoshun/initiative/internal/domain"

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgEncounterLoaded is sent when the encounter snapshot is (re)loaded.
type MsgEncounterLoaded struct {
	Encounter *domain.Encounter
}

func (MsgEncounterLoaded) sealed() {}

// MsgTurnAdvanced is sent after next or prev succeeds.
type MsgTurnAdvanced struct {
	Encounter *domain.Encounter
	Result    domain.TurnResult
}

func (MsgTurnAdvanced) sealed() {}

// MsgActionDone is sent after any other mutation succeeds.
// Notice is shown in the footer until the next action.
type MsgActionDone struct {
	Encounter *domain.Encounter
	Notice    string
}

func (MsgActionDone) sealed() {}

// MsgError is sent when an error occurs.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgClearError is sent to clear the current error.
type MsgClearError struct{}

func (MsgClearError) sealed() {}

// MsgTick is sent periodically to pick up changes made by other processes.
type MsgTick struct{}

func (MsgTick) sealed() {}
