package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/initiative/internal/domain"
)

// Roster column widths.
const (
	colMarker = 2
	colInit   = 5
	colName   = 22
	colHP     = 10
	colAC     = 4
	colSide   = 7
	colNotes  = 24
)

// View renders the tracker.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	case ModeNormal, ModeInput, ModeConfirm:
		content = m.viewMain()
	}

	return m.styles.App.Render(content)
}

// viewMain renders the roster with any open dialog.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.ErrorMsg.Render("Error: "+m.err.Error()) + "\n\n")
	}

	if m.encounter == nil {
		b.WriteString(m.styles.HeaderMeta.Render("Loading encounter..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.viewRoster())
	}

	switch m.mode {
	case ModeNormal, ModeHelp:
	case ModeConfirm:
		b.WriteString("\n")
		b.WriteString(m.viewConfirmDialog())
	case ModeInput:
		b.WriteString("\n")
		b.WriteString(m.viewInput())
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render(m.notice))
	}

	b.WriteString("\n")
	b.WriteString(NewStatusLine(m.width, &m.styles).Render(m.GetStatusInfo()))

	return b.String()
}

// viewHeader renders the encounter title, status badge and environment.
func (m *Model) viewHeader() string {
	enc := m.encounter
	if enc == nil {
		return m.styles.Header.Render(fmt.Sprintf("Encounter #%d", m.encounterID))
	}

	status := m.styles.StatusStyle(enc.Status).Render(StatusIcon(enc.Status) + " " + enc.Status.Display())
	title := m.styles.Header.Render(fmt.Sprintf("#%d %s", enc.ID, enc.Name))

	meta := make([]string, 0, 3)
	if enc.CampaignID != "" {
		meta = append(meta, "campaign "+enc.CampaignID)
	}
	if len(enc.EnvironmentEffects) > 0 {
		meta = append(meta, "env: "+strings.Join(enc.EnvironmentEffects, ", "))
	}
	s := enc.Summary(m.container.Clock.Now())
	meta = append(meta, fmt.Sprintf("health %.1f%%", s.HealthPercent))
	if s.ElapsedMinutes != nil {
		meta = append(meta, fmt.Sprintf("%d min", *s.ElapsedMinutes))
	}

	return title + "  " + status + "\n" + m.styles.HeaderMeta.Render(strings.Join(meta, " · "))
}

// viewRoster renders the combatants in initiative order.
func (m *Model) viewRoster() string {
	enc := m.encounter
	if len(enc.Combatants) == 0 {
		return m.styles.HeaderMeta.Render("No combatants. Add some with `initiative add`.") + "\n"
	}

	cfg := m.tuiConfig()
	var b strings.Builder

	header := cell(m.styles.ColumnHeader, 2*colMarker, "") +
		cell(m.styles.ColumnHeader, colInit, "INIT") +
		cell(m.styles.ColumnHeader, colName, "NAME") +
		cell(m.styles.ColumnHeader, colHP, "HP") +
		cell(m.styles.ColumnHeader, colAC, "AC") +
		cell(m.styles.ColumnHeader, colSide, "SIDE")
	if !cfg.HideEffects {
		header += m.styles.ColumnHeader.Render("EFFECTS")
	}
	b.WriteString(header + "\n")

	currentID := ""
	if cur, ok := enc.CurrentCombatant(); ok && enc.Status.IsRunning() {
		currentID = cur.ID
	}
	for i, c := range enc.Combatants {
		b.WriteString(m.renderCombatant(c, i == m.cursor, c.ID == currentID, cfg))
		b.WriteString("\n")
	}
	return b.String()
}

// renderCombatant renders one roster row.
func (m *Model) renderCombatant(c *domain.Combatant, selected, current bool, cfg domain.TUIConfig) string {
	rowStyle := m.styles.RowNormal
	if selected {
		rowStyle = m.styles.RowSelected
	}

	cursor, marker := "", ""
	if selected {
		cursor = "›"
	}
	if current {
		marker = "▶"
	}
	sideStyle, side := m.styles.Enemy, "enemy"
	if c.IsPlayer {
		sideStyle, side = m.styles.Player, "player"
	}

	row := cell(m.styles.RowSelected, colMarker, cursor) +
		cell(m.styles.TurnMarker, colMarker, marker) +
		cell(rowStyle, colInit, fmt.Sprintf("%d", c.Initiative)) +
		cell(rowStyle, colName, c.Name) +
		cell(m.styles.HPStyle(c), colHP, fmt.Sprintf("%d/%d", c.HP, c.MaxHP)) +
		cell(rowStyle, colAC, fmt.Sprintf("%d", c.AC)) +
		cell(sideStyle, colSide, side)

	if !cfg.HideEffects {
		row += m.renderEffects(c.StatusEffects)
	}
	if cfg.ShowNotes && c.Notes != "" {
		row += "  " + m.styles.Notes.Render(truncate(c.Notes, colNotes))
	}
	return row
}

// renderEffects renders status effects as "Bless(3) Prone".
func (m *Model) renderEffects(effects []domain.StatusEffect) string {
	if len(effects) == 0 {
		return m.styles.HeaderMeta.Render("-")
	}
	parts := make([]string, 0, len(effects))
	for _, e := range effects {
		label := e.Name
		if !e.IsPermanent() {
			label = fmt.Sprintf("%s(%d)", e.Name, e.Duration)
		}
		parts = append(parts, m.styles.EffectStyle(e.Type).Render(label))
	}
	return strings.Join(parts, " ")
}

// viewConfirmDialog renders the confirmation dialog.
func (m *Model) viewConfirmDialog() string {
	var title string
	switch m.confirmAction {
	case ConfirmEnd:
		title = "End this encounter?"
	case ConfirmKick:
		title = fmt.Sprintf("Remove %s from the encounter?", m.targetName)
	case ConfirmNone:
		return ""
	}
	return m.styles.Dialog.Render(
		m.styles.DialogTitle.Render(title) + "\n\n" +
			m.styles.DialogPrompt.Render("y confirm · any other key cancels"),
	)
}

// viewInput renders the prompt for the pending input action.
func (m *Model) viewInput() string {
	label := m.inputAction.String()
	if m.targetName != "" {
		label += " " + m.targetName
	}
	return m.styles.InputPrompt.Render(label+": ") + m.input.View()
}

// viewHelp renders the help overlay.
func (m *Model) viewHelp() string {
	title := m.styles.Header.Render("KEYBOARD SHORTCUTS")
	m.help.ShowAll = true
	return m.styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.help.View(m.keys)))
}

// tuiConfig returns the tracker display settings.
func (m *Model) tuiConfig() domain.TUIConfig {
	if m.container == nil || m.container.AppConfig == nil {
		return domain.TUIConfig{}
	}
	return m.container.AppConfig.TUI
}

// cell renders text left-aligned in a fixed-width column.
func cell(style lipgloss.Style, width int, text string) string {
	return style.Width(width).Render(truncate(text, width-1))
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
