package domain

import "errors"

// Domain errors.
var (
	ErrEncounterNotFound  = errors.New("encounter not found")
	ErrCombatantNotFound  = errors.New("combatant not found")
	ErrEffectNotFound     = errors.New("status effect not found")
	ErrCharacterNotFound  = errors.New("character not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrEncounterCompleted = errors.New("encounter already completed")
	ErrVersionConflict    = errors.New("encounter was modified concurrently")
	ErrAmbiguousCombatant = errors.New("combatant reference matches more than one combatant")
	ErrAmbiguousEffect    = errors.New("effect reference matches more than one effect")
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrNameTooLong        = errors.New("name is too long")
	ErrInvalidHP          = errors.New("hp and max hp cannot be negative")
	ErrInvalidAC          = errors.New("armor class cannot be negative")
	ErrInvalidAmount      = errors.New("amount cannot be negative")
	ErrInvalidDuration    = errors.New("duration must be -1 (permanent) or a positive number of rounds")
	ErrInvalidEffectType  = errors.New("effect type must be buff, debuff or neutral")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrAlreadyInitialized = errors.New("initiative already initialized")
	ErrNotInitialized     = errors.New("initiative not initialized (run 'initiative init' first)")
	ErrConfigExists       = errors.New("config file already exists")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrNotGitRepository   = errors.New("not a git repository")
	ErrHistoryUnsupported = errors.New("store backend does not keep encounter history")
	ErrSyncUnsupported    = errors.New("store backend does not support remote sync")
	ErrInvalidDirection   = errors.New("invalid direction")
)
