// Package cli provides the command-line interface for initiative.
package cli

import (
	"fmt"

	"github.com/runoshun/initiative/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupSetup     = "setup"
	groupEncounter = "encounter"
	groupCombat    = "combat"
)

// NewRootCommand creates the root command for initiative.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "initiative",
		Short: "Tabletop combat encounter tracker",
		Long: `initiative tracks tabletop RPG combat encounters: who is fighting,
whose turn it is, hit points and timed status effects.

Encounters are stored under .git/initiative inside a git repository,
or under .initiative in the current directory otherwise.

Running initiative without a command opens the tracker for the most
recently created running encounter.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "init" {
				return nil
			}

			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return nil
			}

			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := latestRunningEncounter(cmd, c)
			if err != nil {
				return err
			}
			if id == 0 {
				return cmd.Help()
			}
			return launchTrackerFunc(c, id)
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupEncounter, Title: "Encounter Management:"},
		&cobra.Group{ID: groupCombat, Title: "Combat Commands:"},
	)

	// Setup commands
	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	charsCmd := newCharsCommand(c)
	charsCmd.GroupID = groupSetup

	syncCmd := newSyncCommand(c)
	syncCmd.GroupID = groupSetup

	// Encounter management commands
	newCmd := newNewCommand(c)
	newCmd.GroupID = groupEncounter

	listCmd := newListCommand(c)
	listCmd.GroupID = groupEncounter

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupEncounter

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupEncounter

	startCmd := newStartCommand(c)
	startCmd.GroupID = groupEncounter

	pauseCmd := newPauseCommand(c)
	pauseCmd.GroupID = groupEncounter

	resumeCmd := newResumeCommand(c)
	resumeCmd.GroupID = groupEncounter

	endCmd := newEndCommand(c)
	endCmd.GroupID = groupEncounter

	summaryCmd := newSummaryCommand(c)
	summaryCmd.GroupID = groupEncounter

	historyCmd := newHistoryCommand(c)
	historyCmd.GroupID = groupEncounter

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupEncounter

	// Combat commands
	addCmd := newAddCommand(c)
	addCmd.GroupID = groupCombat

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupCombat

	kickCmd := newKickCommand(c)
	kickCmd.GroupID = groupCombat

	damageCmd := newDamageCommand(c)
	damageCmd.GroupID = groupCombat

	healCmd := newHealCommand(c)
	healCmd.GroupID = groupCombat

	effectCmd := newEffectCommand(c)
	effectCmd.GroupID = groupCombat

	envCmd := newEnvCommand(c)
	envCmd.GroupID = groupCombat

	nextCmd := newNextCommand(c)
	nextCmd.GroupID = groupCombat

	prevCmd := newPrevCommand(c)
	prevCmd.GroupID = groupCombat

	root.AddCommand(
		initCmd,
		configCmd,
		charsCmd,
		syncCmd,
		newCmd,
		listCmd,
		showCmd,
		rmCmd,
		startCmd,
		pauseCmd,
		resumeCmd,
		endCmd,
		summaryCmd,
		historyCmd,
		tuiCmd,
		addCmd,
		editCmd,
		kickCmd,
		damageCmd,
		healCmd,
		effectCmd,
		envCmd,
		nextCmd,
		prevCmd,
	)

	return root
}
