// Package tui provides the interactive encounter tracker for initiative.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal  Mode = iota // Default roster navigation mode
	ModeInput               // Amount or effect name input
	ModeConfirm             // Confirmation dialog mode
	ModeHelp                // Help overlay mode
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInput:
		return "input"
	case ModeConfirm:
		return "confirm"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode captures text input.
func (m Mode) IsInputMode() bool {
	return m == ModeInput
}

// InputAction represents what the text input is collecting.
type InputAction int

const (
	InputNone   InputAction = iota
	InputDamage             // Damage amount for the selected combatant
	InputHeal               // Healing amount for the selected combatant
	InputEffect             // Status effect name with optional rounds
	InputEnv                // Environment effect to toggle
)

// String returns the prompt label for the input action.
func (a InputAction) String() string {
	switch a {
	case InputDamage:
		return "damage"
	case InputHeal:
		return "heal"
	case InputEffect:
		return "effect"
	case InputEnv:
		return "environment"
	default:
		return "none"
	}
}

// ConfirmAction represents the type of action requiring confirmation.
type ConfirmAction int

const (
	ConfirmNone ConfirmAction = iota
	ConfirmEnd                // End the encounter
	ConfirmKick               // Remove the selected combatant
)

// String returns the string representation of the confirm action.
func (a ConfirmAction) String() string {
	switch a {
	case ConfirmEnd:
		return "end"
	case ConfirmKick:
		return "kick"
	default:
		return "none"
	}
}
