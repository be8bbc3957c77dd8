package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case MsgEncounterLoaded:
		first := m.encounter == nil
		m.setEncounter(msg.Encounter)
		if first {
			m.followTurn()
		}
		return m, nil

	case MsgTurnAdvanced:
		m.setEncounter(msg.Encounter)
		m.followTurn()
		m.notice = turnNotice(msg.Result)
		return m, nil

	case MsgActionDone:
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		m.notice = msg.Notice
		if msg.Encounter == nil {
			return m, m.loadEncounter()
		}
		m.setEncounter(msg.Encounter)
		return m, nil

	case MsgError:
		m.err = msg.Err
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		return m, nil

	case MsgClearError:
		m.err = nil
		return m, nil

	case MsgTick:
		// Skip the reload while a dialog is open so the target stays put
		if !m.autoRefresh {
			return m, nil
		}
		if m.mode != ModeNormal {
			return m, m.tick()
		}
		return m, tea.Batch(m.loadEncounter(), m.tick())
	}

	if m.mode.IsInputMode() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyMsg dispatches a key press to the handler for the current mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeInput:
		return m.handleInputMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	case ModeNormal:
		return m.handleNormalMode(msg)
	}
	return m, nil
}

// handleNormalMode handles keys while the roster is focused.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.notice = ""
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.encounter != nil && m.cursor < len(m.encounter.Combatants)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		return m, m.advanceTurn(usecase.TurnNext)

	case key.Matches(msg, m.keys.Prev):
		return m, m.advanceTurn(usecase.TurnPrevious)

	case key.Matches(msg, m.keys.Start):
		return m, m.startEncounter()

	case key.Matches(msg, m.keys.Pause):
		return m, m.togglePause()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadEncounter()

	case key.Matches(msg, m.keys.End):
		if m.encounter == nil || m.encounter.Status == domain.StatusCompleted {
			return m, nil
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmEnd
		return m, nil

	case key.Matches(msg, m.keys.Env):
		return m, m.startInput(InputEnv, nil)
	}

	// The remaining keys act on the selected combatant
	c := m.SelectedCombatant()
	if c == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Damage):
		return m, m.startInput(InputDamage, c)

	case key.Matches(msg, m.keys.Heal):
		return m, m.startInput(InputHeal, c)

	case key.Matches(msg, m.keys.Effect):
		return m, m.startInput(InputEffect, c)

	case key.Matches(msg, m.keys.Clear):
		return m, m.clearEffect(c)

	case key.Matches(msg, m.keys.Kick):
		m.mode = ModeConfirm
		m.confirmAction = ConfirmKick
		m.targetID = c.ID
		m.targetName = c.Name
		return m, nil
	}

	return m, nil
}

// startInput opens the text input for the given action.
func (m *Model) startInput(action InputAction, c *domain.Combatant) tea.Cmd {
	m.mode = ModeInput
	m.inputAction = action
	m.targetID, m.targetName = "", ""
	if c != nil {
		m.targetID, m.targetName = c.ID, c.Name
	}

	m.input.Reset()
	switch action {
	case InputDamage, InputHeal:
		m.input.Placeholder = "amount"
	case InputEffect:
		m.input.Placeholder = "name [rounds]"
	case InputEnv:
		m.input.Placeholder = "tag"
	case InputNone:
	}
	return m.input.Focus()
}

// handleInputMode handles keys while the text input is focused.
func (m *Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.cancelInput()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m, m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput runs the pending action with the entered value.
// An empty value cancels.
func (m *Model) submitInput() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())
	action, target := m.inputAction, m.targetID
	m.cancelInput()
	if value == "" {
		return nil
	}

	switch action {
	case InputDamage, InputHeal:
		amount, err := strconv.Atoi(value)
		if err != nil {
			m.err = fmt.Errorf("%q is not a number: %w", value, domain.ErrInvalidAmount)
			return nil
		}
		return m.changeHP(action, target, amount)
	case InputEffect:
		return m.addEffect(target, value)
	case InputEnv:
		return m.toggleEnvironment(value)
	case InputNone:
	}
	return nil
}

// cancelInput leaves input mode.
func (m *Model) cancelInput() {
	m.input.Blur()
	m.input.Reset()
	m.mode = ModeNormal
	m.inputAction = InputNone
}

// handleConfirmMode handles keys in the confirmation dialog.
// Any key other than confirm cancels.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, target := m.confirmAction, m.targetID
	m.mode = ModeNormal
	m.confirmAction = ConfirmNone

	if !key.Matches(msg, m.keys.Confirm) {
		return m, nil
	}

	switch action {
	case ConfirmEnd:
		return m, m.endEncounter()
	case ConfirmKick:
		return m, m.kickCombatant(target)
	case ConfirmNone:
	}
	return m, nil
}

// handleHelpMode closes the help overlay.
func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Quit) {
		m.mode = ModeNormal
	}
	return m, nil
}

// turnNotice describes a turn change for the footer.
func turnNotice(r domain.TurnResult) string {
	var parts []string
	if r.NewRound {
		parts = append(parts, fmt.Sprintf("Round %d begins", r.Round))
	}
	for _, x := range r.Expired {
		parts = append(parts, fmt.Sprintf("%s on %s expired", x.Effect.Name, x.CombatantName))
	}
	if r.Current != nil {
		parts = append(parts, r.Current.Name+"'s turn")
	}
	return strings.Join(parts, "; ")
}
