package cli

import (
	"encoding/json"
	"fmt"

	"github.com/runoshun/initiative/internal/app"
	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase"
	"github.com/spf13/cobra"
)

// newNewCommand creates the new command for creating encounters.
func newNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Campaign string
	}

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new encounter",
		Long: `Create a new encounter in the preparing state.

Add combatants with "initiative add" and begin combat with "initiative start".

Examples:
  # Create an encounter
  initiative new "Goblin ambush"

  # Create an encounter for a campaign
  initiative new "Bridge troll" --campaign curse-of-strahd`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.NewEncounterUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.NewEncounterInput{
				Name:       args[0],
				CampaignID: opts.Campaign,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created encounter #%d: %s\n", out.Encounter.ID, out.Encounter.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Campaign, "campaign", "", "Campaign the encounter belongs to")

	return cmd
}

// newListCommand creates the list command for listing encounters.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Campaign string
		Status   []string
		All      bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List encounters",
		Long: `List encounters in a table format.

Completed encounters are hidden unless --all or --status is given.

Examples:
  # List open encounters
  initiative list

  # List every encounter, including completed ones
  initiative list --all

  # List paused encounters of one campaign
  initiative list --campaign curse-of-strahd --status paused`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses := make([]domain.Status, 0, len(opts.Status))
			for _, s := range opts.Status {
				st, err := domain.ParseStatus(s)
				if err != nil {
					return err
				}
				statuses = append(statuses, st)
			}
			if len(statuses) == 0 && !opts.All {
				statuses = []domain.Status{domain.StatusPreparing, domain.StatusActive, domain.StatusPaused}
			}

			uc := c.ListEncountersUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListEncountersInput{
				CampaignID: opts.Campaign,
				Statuses:   statuses,
			})
			if err != nil {
				return err
			}

			if len(out.Encounters) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No encounters.")
				return nil
			}
			printEncounterList(cmd.OutOrStdout(), out.Encounters)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Campaign, "campaign", "", "Filter by campaign")
	cmd.Flags().StringSliceVar(&opts.Status, "status", nil, "Filter by status (preparing, active, paused, completed)")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Include completed encounters")

	return cmd
}

// newShowCommand creates the show command for displaying an encounter.
func newShowCommand(c *app.Container) *cobra.Command {
	var opts struct {
		JSON bool
	}

	cmd := &cobra.Command{
		Use:   "show <encounter>",
		Short: "Display encounter details",
		Long: `Display an encounter and its combatants in initiative order.

The combatant holding the turn is marked with ">".

Examples:
  # Show encounter by ID
  initiative show 1

  # Output in JSON format
  initiative show 1 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEncounterID(args[0])
			if err != nil {
				return err
			}

			uc := c.ShowEncounterUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowEncounterInput{EncounterID: id})
			if err != nil {
				return err
			}

			if opts.JSON {
				type jsonEncounter struct {
					*domain.Encounter
					Current string `json:"current,omitempty"`
					ID      int    `json:"id"`
				}
				je := jsonEncounter{Encounter: out.Encounter, ID: out.Encounter.ID}
				if out.Current != nil {
					je.Current = out.Current.ID
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(je)
			}

			printEncounterDetails(cmd.OutOrStdout(), out.Encounter)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")

	return cmd
}

// newRmCommand creates the rm command for deleting encounters.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <encounter>",
		Short: "Delete an encounter",
		Long: `Delete an encounter and its combatants.

Examples:
  initiative rm 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEncounterID(args[0])
			if err != nil {
				return err
			}

			uc := c.DeleteEncounterUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.DeleteEncounterInput{EncounterID: id})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted encounter #%d: %s\n", id, out.Name)
			return nil
		},
	}
}

// newStartCommand creates the start command.
func newStartCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "start <encounter>",
		Short: "Start combat",
		Long: `Start combat: round 1 begins with the highest initiative.

Preconditions:
- The encounter is preparing
- The encounter has at least one combatant`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEncounterID(args[0])
			if err != nil {
				return err
			}

			uc := c.StartEncounterUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.StartEncounterInput{EncounterID: id})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Started encounter #%d: round 1, %s acts first\n", id, out.Current.Name)
			return nil
		},
	}
}

// newPauseCommand creates the pause command.
func newPauseCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "pause <encounter>",
		Short: "Pause combat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEncounterID(args[0])
			if err != nil {
				return err
			}

			uc := c.PauseEncounterUseCase()
			if _, err := uc.Execute(cmd.Context(), usecase.PauseEncounterInput{EncounterID: id}); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Paused encounter #%d\n", id)
			return nil
		},
	}
}

// newResumeCommand creates the resume command.
func newResumeCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "resume <encounter>",
		Short: "Resume paused combat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEncounterID(args[0])
			if err != nil {
				return err
			}

			uc := c.ResumeEncounterUseCase()
			if _, err := uc.Execute(cmd.Context(), usecase.ResumeEncounterInput{EncounterID: id}); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Resumed encounter #%d\n", id)
			return nil
		},
	}
}

// newEndCommand creates the end command.
func newEndCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "end <encounter>",
		Short: "End combat",
		Long: `End an encounter. A completed encounter can no longer be changed.

Ending an encounter that is already completed does nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEncounterID(args[0])
			if err != nil {
				return err
			}

			uc := c.EndEncounterUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.EndEncounterInput{EncounterID: id})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.AlreadyEnded {
				_, _ = fmt.Fprintf(w, "Encounter #%d already ended\n", id)
				return nil
			}
			_, _ = fmt.Fprintf(w, "Ended encounter #%d after %d rounds (%d min)\n",
				id, out.Encounter.CurrentRound, out.ElapsedMinutes)
			return nil
		},
	}
}

// newSummaryCommand creates the summary command.
func newSummaryCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <encounter>",
		Short: "Display an encounter summary",
		Long: `Display status, round, current combatant, side counts, overall
health and elapsed time of an encounter.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEncounterID(args[0])
			if err != nil {
				return err
			}

			uc := c.EncounterSummaryUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.EncounterSummaryInput{EncounterID: id})
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), out.Encounter, out.Summary)
			return nil
		},
	}
}

// newHistoryCommand creates the history command.
func newHistoryCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Version int
	}

	cmd := &cobra.Command{
		Use:   "history <encounter>",
		Short: "Inspect saved versions of an encounter",
		Long: `List the saved versions of an encounter, or print one of them.

Only the git and memory store backends keep history.

Examples:
  # List versions
  initiative history 1

  # Print the encounter as it was at version 3
  initiative history 1 --version 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEncounterID(args[0])
			if err != nil {
				return err
			}

			uc := c.EncounterHistoryUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.EncounterHistoryInput{
				EncounterID: id,
				Version:     opts.Version,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Snapshot != nil {
				_, _ = fmt.Fprintf(w, "Version %d\n", opts.Version)
				printEncounterDetails(w, out.Snapshot)
				return nil
			}

			printHistory(w, out.Versions)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Version, "version", 0, "Print the given version")

	return cmd
}
