package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusLineInfo contains information for rendering the status line.
// Fields are ordered to minimize memory padding.
type StatusLineInfo struct {
	Position string // Optional turn position (e.g., "round 2 · turn 3/5")
	KeyHints []KeyHint
	Mode     Mode
}

// KeyHint represents a key and its description.
type KeyHint struct {
	Key  string
	Desc string
}

// StatusLine renders a unified status line at the bottom of the screen.
// Fields are ordered to minimize memory padding.
type StatusLine struct {
	styles *Styles
	width  int
}

// NewStatusLine creates a new StatusLine with the given width and styles.
func NewStatusLine(width int, styles *Styles) *StatusLine {
	return &StatusLine{
		width:  width,
		styles: styles,
	}
}

// Render renders the status line with the given info.
func (s *StatusLine) Render(info StatusLineInfo) string {
	keyStyle := s.styles.FooterKey
	mutedStyle := lipgloss.NewStyle().Foreground(Colors.Muted)

	hints := make([]string, 0, len(info.KeyHints))
	for _, h := range info.KeyHints {
		hints = append(hints, keyStyle.Render(h.Key)+" "+h.Desc)
	}
	content := strings.Join(hints, "  ")

	rightContent := mutedStyle.Render("mode:" + info.Mode.String())
	if info.Position != "" {
		rightContent = info.Position + "  " + rightContent
	}
	rightLen := lipgloss.Width(rightContent)
	contentLen := lipgloss.Width(content)

	// Account for padding
	contentWidth := s.width - 2

	maxContentWidth := contentWidth - rightLen - 2
	if contentLen > maxContentWidth {
		if maxContentWidth <= 3 {
			content = "..."
		} else {
			truncateStyle := lipgloss.NewStyle().MaxWidth(maxContentWidth - 3)
			content = truncateStyle.Render(content) + "..."
		}
		contentLen = lipgloss.Width(content)
	}

	spacing := contentWidth - contentLen - rightLen
	if spacing < 1 {
		spacing = 1
	}

	fullContent := content + strings.Repeat(" ", spacing) + rightContent
	return s.styles.Footer.Width(s.width).Render(fullContent)
}

// GetStatusInfo returns status line info for the tracker.
func (m *Model) GetStatusInfo() StatusLineInfo {
	info := StatusLineInfo{Mode: m.mode}
	if enc := m.encounter; enc != nil && enc.IsStarted() && len(enc.Combatants) > 0 {
		info.Position = fmt.Sprintf("round %d · turn %d/%d", enc.CurrentRound, enc.CurrentTurn+1, len(enc.Combatants))
	}

	switch m.mode {
	case ModeNormal:
		info.KeyHints = []KeyHint{
			{Key: "j/k", Desc: "nav"},
			{Key: "n/p", Desc: "turn"},
			{Key: "d/h", Desc: "dmg/heal"},
			{Key: "e", Desc: "effect"},
			{Key: "space", Desc: "pause"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		}
	case ModeInput:
		info.KeyHints = []KeyHint{
			{Key: "enter", Desc: "submit"},
			{Key: "esc", Desc: "cancel"},
		}
	case ModeConfirm:
		info.KeyHints = []KeyHint{
			{Key: "y", Desc: "confirm"},
			{Key: "any", Desc: "cancel"},
		}
	case ModeHelp:
		info.KeyHints = []KeyHint{
			{Key: "?/esc", Desc: "close"},
		}
	}
	return info
}
