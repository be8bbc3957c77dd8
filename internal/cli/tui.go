package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/initiative/internal/app"
	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/tui"
	"github.com/runoshun/initiative/internal/usecase"
)

// launchTrackerFunc is a function variable for launching the tracker, allowing it to be mocked in tests.
var launchTrackerFunc = launchTracker

// newTUICommand creates the tui command for launching the interactive tracker.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [encounter]",
		Short: "Launch the interactive tracker",
		Long: `Launch the interactive terminal tracker for an encounter.

Without an encounter ID, the most recently created running encounter
is opened.

Keys: n/p turn order, d damage, h heal, e add effect, c clear effect,
v environment, s start, space pause/resume, E end, x kick, ? help, q quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int
			var err error
			if len(args) == 1 {
				id, err = parseEncounterID(args[0])
			} else {
				id, err = latestRunningEncounter(cmd, c)
			}
			if err != nil {
				return err
			}
			if id == 0 {
				return fmt.Errorf("no running encounter; pass an encounter ID: %w", domain.ErrEncounterNotFound)
			}
			return launchTrackerFunc(c, id)
		},
	}
}

// latestRunningEncounter returns the highest ID among active and paused
// encounters, or 0 if there is none.
func latestRunningEncounter(cmd *cobra.Command, c *app.Container) (int, error) {
	if c == nil || c.Encounters == nil {
		return 0, nil
	}
	out, err := c.ListEncountersUseCase().Execute(cmd.Context(), usecase.ListEncountersInput{
		Statuses: []domain.Status{domain.StatusActive, domain.StatusPaused},
	})
	if err != nil {
		return 0, err
	}
	if len(out.Encounters) == 0 {
		return 0, nil
	}
	return out.Encounters[len(out.Encounters)-1].ID, nil
}

// launchTracker runs the tracker for one encounter in the alternate screen.
func launchTracker(c *app.Container, encounterID int) error {
	model := tui.New(c, encounterID)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
