package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the tracker.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Turn order
	Next  key.Binding // Advance to the next turn
	Prev  key.Binding // Step back one turn
	Start key.Binding // Start combat
	Pause key.Binding // Pause or resume
	End   key.Binding // End the encounter

	// Combatant actions
	Damage key.Binding
	Heal   key.Binding
	Effect key.Binding // Add a status effect
	Clear  key.Binding // Remove the newest status effect
	Kick   key.Binding // Remove the combatant
	Env    key.Binding // Toggle an environment effect

	// View
	Refresh key.Binding
	Help    key.Binding

	// General
	Quit    key.Binding
	Escape  key.Binding
	Submit  key.Binding
	Confirm key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "tab"),
			key.WithHelp("n", "next turn"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "shift+tab"),
			key.WithHelp("p", "prev turn"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		End: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "end"),
		),
		Damage: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "damage"),
		),
		Heal: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "heal"),
		),
		Effect: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "add effect"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear effect"),
		),
		Kick: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "kick"),
		),
		Env: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "environment"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
	}
}

// ShortHelp returns keybindings to show in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Damage, k.Heal, k.Effect, k.Pause, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},                                // Navigation
		{k.Next, k.Prev, k.Start, k.Pause, k.End},     // Turn order
		{k.Damage, k.Heal, k.Effect, k.Clear, k.Kick}, // Combatant
		{k.Env, k.Refresh, k.Help, k.Quit},            // Encounter & general
	}
}
