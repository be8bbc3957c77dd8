package cli

import (
	"github.com/runoshun/initiative/internal/app"
	"github.com/runoshun/initiative/internal/usecase"
	"github.com/spf13/cobra"
)

// newNextCommand creates the next command.
func newNextCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "next <encounter>",
		Short: "Advance to the next turn",
		Long: `Advance to the next combatant in initiative order.

When the order wraps, a new round begins: timed status effects lose one
round and expired effects are removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return advanceTurn(cmd, c, args[0], usecase.TurnNext)
		},
	}
}

// newPrevCommand creates the prev command.
func newPrevCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "prev <encounter>",
		Short: "Go back to the previous turn",
		Long: `Step back to the previous combatant in initiative order.

Stepping back never restores expired effects and never goes before round 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return advanceTurn(cmd, c, args[0], usecase.TurnPrevious)
		},
	}
}

func advanceTurn(cmd *cobra.Command, c *app.Container, arg string, dir usecase.TurnDirection) error {
	id, err := parseEncounterID(arg)
	if err != nil {
		return err
	}

	uc := c.AdvanceTurnUseCase()
	out, err := uc.Execute(cmd.Context(), usecase.AdvanceTurnInput{
		EncounterID: id,
		Direction:   dir,
	})
	if err != nil {
		return err
	}

	printTurnResult(cmd.OutOrStdout(), out.Result)
	return nil
}
