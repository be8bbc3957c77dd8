package tui

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/initiative/internal/app"
	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase"
)

// refreshInterval is how often the tracker reloads the encounter so that
// changes made from another terminal show up.
const refreshInterval = 5 * time.Second

// Model is the bubbletea model for the encounter tracker.
// It holds only the last loaded snapshot; every change goes through a use case.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	encounter *domain.Encounter
	err       error

	// State
	notice     string
	targetID   string // Combatant the pending input or confirmation applies to
	targetName string

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model
	input  textinput.Model

	// Numeric state (smaller types last)
	encounterID   int
	cursor        int
	width         int
	height        int
	mode          Mode
	inputAction   InputAction
	confirmAction ConfirmAction
	autoRefresh   bool
}

// New creates a tracker Model for one encounter.
func New(c *app.Container, encounterID int) *Model {
	ti := textinput.New()
	ti.CharLimit = 64

	return &Model{
		container:   c,
		encounterID: encounterID,
		mode:        ModeNormal,
		keys:        DefaultKeyMap(),
		styles:      DefaultStyles(),
		help:        help.New(),
		input:       ti,
		autoRefresh: true,
	}
}

// Init loads the encounter and starts the refresh timer.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadEncounter(),
		m.tick(),
	)
}

// tick schedules the next refresh.
func (m *Model) tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return MsgTick{}
	})
}

// loadEncounter returns a command that loads the encounter snapshot.
func (m *Model) loadEncounter() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ShowEncounterUseCase().Execute(context.Background(), usecase.ShowEncounterInput{
			EncounterID: m.encounterID,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgEncounterLoaded{Encounter: out.Encounter}
	}
}

// advanceTurn returns a command that moves the turn pointer.
func (m *Model) advanceTurn(dir usecase.TurnDirection) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.AdvanceTurnUseCase().Execute(context.Background(), usecase.AdvanceTurnInput{
			EncounterID: m.encounterID,
			Direction:   dir,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTurnAdvanced{Encounter: out.Encounter, Result: out.Result}
	}
}

// startEncounter returns a command that starts combat.
func (m *Model) startEncounter() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.StartEncounterUseCase().Execute(context.Background(), usecase.StartEncounterInput{
			EncounterID: m.encounterID,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgActionDone{Encounter: out.Encounter, Notice: fmt.Sprintf("Round 1: %s acts first", out.Current.Name)}
	}
}

// togglePause returns a command that pauses an active encounter or resumes a paused one.
func (m *Model) togglePause() tea.Cmd {
	paused := m.encounter != nil && m.encounter.Status == domain.StatusPaused
	return func() tea.Msg {
		ctx := context.Background()
		if paused {
			out, err := m.container.ResumeEncounterUseCase().Execute(ctx, usecase.ResumeEncounterInput{EncounterID: m.encounterID})
			if err != nil {
				return MsgError{Err: err}
			}
			return MsgActionDone{Encounter: out.Encounter, Notice: "Resumed"}
		}
		out, err := m.container.PauseEncounterUseCase().Execute(ctx, usecase.PauseEncounterInput{EncounterID: m.encounterID})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgActionDone{Encounter: out.Encounter, Notice: "Paused"}
	}
}

// endEncounter returns a command that ends the encounter.
func (m *Model) endEncounter() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.EndEncounterUseCase().Execute(context.Background(), usecase.EndEncounterInput{
			EncounterID: m.encounterID,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgActionDone{
			Encounter: out.Encounter,
			Notice:    fmt.Sprintf("Ended after %d rounds (%d min)", out.Encounter.CurrentRound, out.ElapsedMinutes),
		}
	}
}

// kickCombatant returns a command that removes a combatant.
func (m *Model) kickCombatant(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.RemoveCombatantUseCase().Execute(context.Background(), usecase.RemoveCombatantInput{
			EncounterID: m.encounterID,
			Ref:         id,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgActionDone{Encounter: out.Encounter, Notice: "Removed " + out.Removed.Name}
	}
}

// changeHP returns a command that applies damage or healing.
func (m *Model) changeHP(action InputAction, id string, amount int) tea.Cmd {
	return func() tea.Msg {
		in := usecase.HPChangeInput{EncounterID: m.encounterID, Ref: id, Amount: amount}
		var out *usecase.HPChangeOutput
		var err error
		if action == InputHeal {
			out, err = m.container.ApplyHealingUseCase().Execute(context.Background(), in)
		} else {
			out, err = m.container.ApplyDamageUseCase().Execute(context.Background(), in)
		}
		if err != nil {
			return MsgError{Err: err}
		}
		c := out.Combatant
		notice := fmt.Sprintf("%s %d -> %d/%d", c.Name, out.Before, c.HP, c.MaxHP)
		if c.IsDown() && out.Before > 0 {
			notice += ", down"
		}
		return MsgActionDone{Encounter: out.Encounter, Notice: notice}
	}
}

// addEffect returns a command that attaches a status effect.
// The input is an effect name with an optional trailing round count ("Bless 10").
func (m *Model) addEffect(id, text string) tea.Cmd {
	name, rounds := parseEffectInput(text)
	return func() tea.Msg {
		out, err := m.container.AddStatusEffectUseCase().Execute(context.Background(), usecase.AddStatusEffectInput{
			EncounterID: m.encounterID,
			Ref:         id,
			Name:        name,
			Duration:    rounds,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgActionDone{Notice: fmt.Sprintf("%s gains %s", out.Combatant.Name, out.Effect.Name)}
	}
}

// clearEffect returns a command that removes the combatant's newest status effect.
func (m *Model) clearEffect(c *domain.Combatant) tea.Cmd {
	if len(c.StatusEffects) == 0 {
		return nil
	}
	id, effectID := c.ID, c.StatusEffects[len(c.StatusEffects)-1].ID
	return func() tea.Msg {
		out, err := m.container.RemoveStatusEffectUseCase().Execute(context.Background(), usecase.RemoveStatusEffectInput{
			EncounterID: m.encounterID,
			Ref:         id,
			EffectRef:   effectID,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgActionDone{Notice: fmt.Sprintf("%s loses %s", out.Combatant.Name, out.Removed.Name)}
	}
}

// toggleEnvironment returns a command that adds the tag, or removes it if already present.
func (m *Model) toggleEnvironment(tag string) tea.Cmd {
	tag = strings.TrimSpace(tag)
	present := m.encounter != nil && slices.Contains(m.encounter.EnvironmentEffects, tag)
	return func() tea.Msg {
		in := usecase.EnvironmentEffectInput{EncounterID: m.encounterID, Tag: tag}
		var out *usecase.EnvironmentEffectOutput
		var err error
		if present {
			out, err = m.container.RemoveEnvironmentEffectUseCase().Execute(context.Background(), in)
		} else {
			out, err = m.container.AddEnvironmentEffectUseCase().Execute(context.Background(), in)
		}
		if err != nil {
			return MsgError{Err: err}
		}
		env := "none"
		if len(out.Effects) > 0 {
			env = strings.Join(out.Effects, ", ")
		}
		return MsgActionDone{Notice: "Environment: " + env}
	}
}

// parseEffectInput splits "Name [rounds]". A non-numeric last word is part of the name.
func parseEffectInput(text string) (string, *int) {
	text = strings.TrimSpace(text)
	i := strings.LastIndexByte(text, ' ')
	if i < 0 {
		return text, nil
	}
	n, err := strconv.Atoi(text[i+1:])
	if err != nil {
		return text, nil
	}
	return strings.TrimSpace(text[:i]), &n
}

// SelectedCombatant returns the combatant under the cursor, or nil if none.
func (m *Model) SelectedCombatant() *domain.Combatant {
	if m.encounter == nil || m.cursor < 0 || m.cursor >= len(m.encounter.Combatants) {
		return nil
	}
	return m.encounter.Combatants[m.cursor]
}

// setEncounter replaces the snapshot and keeps the cursor in range.
func (m *Model) setEncounter(enc *domain.Encounter) {
	m.encounter = enc
	if enc == nil || len(enc.Combatants) == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= len(enc.Combatants) {
		m.cursor = len(enc.Combatants) - 1
	}
}

// followTurn moves the cursor to the combatant holding the turn.
func (m *Model) followTurn() {
	if m.encounter != nil && m.encounter.Status.IsRunning() {
		m.cursor = m.encounter.CurrentTurn
	}
}
