package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/initiative/internal/domain"
)

// Colors defines the color palette for the tracker.
var Colors = struct {
	// Base colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color

	// Row text
	TextNormal   lipgloss.Color
	TextSelected lipgloss.Color

	// Encounter status
	Preparing lipgloss.Color
	Active    lipgloss.Color
	Paused    lipgloss.Color
	Completed lipgloss.Color

	// Sides
	Player lipgloss.Color
	Enemy  lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray

	TextNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TextSelected: lipgloss.Color("#FFEAA7"), // Yellow

	Preparing: lipgloss.Color("#74B9FF"), // Light blue
	Active:    lipgloss.Color("#00B894"), // Green
	Paused:    lipgloss.Color("#FDCB6E"), // Yellow
	Completed: lipgloss.Color("#636E72"), // Gray

	Player: lipgloss.Color("#74B9FF"), // Light blue
	Enemy:  lipgloss.Color("#FF7675"), // Salmon
}

// Styles contains all the lipgloss styles for the tracker.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header     lipgloss.Style
	HeaderMeta lipgloss.Style

	// Roster
	ColumnHeader lipgloss.Style
	RowNormal    lipgloss.Style
	RowSelected  lipgloss.Style
	TurnMarker   lipgloss.Style
	Player       lipgloss.Style
	Enemy        lipgloss.Style
	Notes        lipgloss.Style

	// HP bands
	HPHealthy  lipgloss.Style
	HPWounded  lipgloss.Style
	HPCritical lipgloss.Style
	HPDown     lipgloss.Style

	// Status effects
	EffectBuff    lipgloss.Style
	EffectDebuff  lipgloss.Style
	EffectNeutral lipgloss.Style

	// Status badges
	StatusPreparing lipgloss.Style
	StatusActive    lipgloss.Style
	StatusPaused    lipgloss.Style
	StatusCompleted lipgloss.Style

	// Help
	Help lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	FooterKey lipgloss.Style
	Notice    lipgloss.Style

	// Dialog
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogPrompt lipgloss.Style

	// Input
	InputPrompt lipgloss.Style

	// Error
	ErrorMsg lipgloss.Style
}

// DefaultStyles returns the default styles for the tracker.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		HeaderMeta: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		ColumnHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Secondary),

		RowNormal: lipgloss.NewStyle().
			Foreground(Colors.TextNormal),

		RowSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.TextSelected),

		TurnMarker: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Warning),

		Player: lipgloss.NewStyle().
			Foreground(Colors.Player),

		Enemy: lipgloss.NewStyle().
			Foreground(Colors.Enemy),

		Notes: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		HPHealthy: lipgloss.NewStyle().
			Foreground(Colors.Success),

		HPWounded: lipgloss.NewStyle().
			Foreground(Colors.Warning),

		HPCritical: lipgloss.NewStyle().
			Foreground(Colors.Error),

		HPDown: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Strikethrough(true),

		EffectBuff: lipgloss.NewStyle().
			Foreground(Colors.Success),

		EffectDebuff: lipgloss.NewStyle().
			Foreground(Colors.Error),

		EffectNeutral: lipgloss.NewStyle().
			Foreground(Colors.Secondary),

		StatusPreparing: lipgloss.NewStyle().
			Foreground(Colors.Preparing).
			Bold(true),

		StatusActive: lipgloss.NewStyle().
			Foreground(Colors.Active).
			Bold(true),

		StatusPaused: lipgloss.NewStyle().
			Foreground(Colors.Paused).
			Bold(true),

		StatusCompleted: lipgloss.NewStyle().
			Foreground(Colors.Completed).
			Bold(true),

		Help: lipgloss.NewStyle().
			Padding(1, 2),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			PaddingLeft(1),

		FooterKey: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Bold(true),

		Notice: lipgloss.NewStyle().
			Foreground(Colors.Success),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary).
			Padding(1, 2),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Warning),

		DialogPrompt: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),
	}
}

// StatusStyle returns the badge style for an encounter status.
func (s Styles) StatusStyle(status domain.Status) lipgloss.Style {
	switch status {
	case domain.StatusPreparing:
		return s.StatusPreparing
	case domain.StatusActive:
		return s.StatusActive
	case domain.StatusPaused:
		return s.StatusPaused
	case domain.StatusCompleted:
		return s.StatusCompleted
	default:
		return s.StatusPreparing
	}
}

// HPStyle returns the style for a combatant's hp by band:
// above half is healthy, above a quarter is wounded, then critical.
func (s Styles) HPStyle(c *domain.Combatant) lipgloss.Style {
	switch {
	case c.IsDown():
		return s.HPDown
	case c.MaxHP == 0 || c.HP*2 > c.MaxHP:
		return s.HPHealthy
	case c.HP*4 > c.MaxHP:
		return s.HPWounded
	default:
		return s.HPCritical
	}
}

// EffectStyle returns the style for a status effect type.
func (s Styles) EffectStyle(t domain.EffectType) lipgloss.Style {
	switch t {
	case domain.EffectBuff:
		return s.EffectBuff
	case domain.EffectDebuff:
		return s.EffectDebuff
	default:
		return s.EffectNeutral
	}
}

// StatusIcon returns an icon for an encounter status.
func StatusIcon(status domain.Status) string {
	switch status {
	case domain.StatusPreparing:
		return "○"
	case domain.StatusActive:
		return "●"
	case domain.StatusPaused:
		return "◐"
	case domain.StatusCompleted:
		return "✓"
	default:
		return "?"
	}
}
