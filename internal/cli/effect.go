package cli

import (
	"fmt"
	"strings"

	"github.com/runoshun/initiative/internal/app"
	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase"
	"github.com/spf13/cobra"
)

// newEffectCommand creates the effect command.
func newEffectCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "effect",
		Short: "Manage status effects on combatants",
		Long: `Manage status effects on combatants.

Timed effects lose one round each time the turn order wraps into a new
round and are removed when they run out. Permanent effects stay until
removed.`,
	}

	cmd.AddCommand(newEffectAddCommand(c))
	cmd.AddCommand(newEffectRmCommand(c))

	return cmd
}

// newEffectAddCommand creates the effect add subcommand.
func newEffectAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Type        string
		Description string
		Rounds      int
	}

	cmd := &cobra.Command{
		Use:   "add <encounter> <combatant> <name>",
		Short: "Attach a status effect",
		Long: `Attach a status effect to a combatant.

Without --rounds the effect is permanent.

Examples:
  # Bless for 10 rounds
  initiative effect add 1 aria Bless --rounds 10 --type buff

  # Permanent condition
  initiative effect add 1 goblin Prone --type debuff`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEncounterID(args[0])
			if err != nil {
				return err
			}

			in := usecase.AddStatusEffectInput{
				EncounterID: id,
				Ref:         args[1],
				Name:        args[2],
				Description: opts.Description,
				Type:        domain.EffectType(opts.Type),
			}
			if cmd.Flags().Changed("rounds") {
				in.Duration = &opts.Rounds
			}

			uc := c.AddStatusEffectUseCase()
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			duration := "permanent"
			if !out.Effect.IsPermanent() {
				duration = fmt.Sprintf("%d rounds", out.Effect.Duration)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s gains %s [%s] (%s, %s)\n",
				out.Combatant.Name, out.Effect.Name, domain.ShortID(out.Effect.ID), out.Effect.Type, duration)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Rounds, "rounds", "r", 0, "Duration in rounds (-1 = permanent)")
	cmd.Flags().StringVarP(&opts.Type, "type", "t", "", "Effect type: buff, debuff or neutral (default: neutral)")
	cmd.Flags().StringVarP(&opts.Description, "desc", "d", "", "Description")

	return cmd
}

// newEffectRmCommand creates the effect rm subcommand.
func newEffectRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <encounter> <combatant> <effect>",
		Short: "Remove a status effect",
		Long: `Remove a status effect from a combatant.

The effect may be given by ID, unique ID prefix or unique name.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEncounterID(args[0])
			if err != nil {
				return err
			}

			uc := c.RemoveStatusEffectUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.RemoveStatusEffectInput{
				EncounterID: id,
				Ref:         args[1],
				EffectRef:   args[2],
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s loses %s\n", out.Combatant.Name, out.Removed.Name)
			return nil
		},
	}
}

// newEnvCommand creates the env command for environment effects.
func newEnvCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage environment effects",
		Long: `Manage encounter-wide environment tags such as "fog" or "difficult terrain".

Environment effects have no duration.`,
	}

	cmd.AddCommand(newEnvChangeCommand(c, "add", "Add an environment effect"))
	cmd.AddCommand(newEnvChangeCommand(c, "rm", "Remove an environment effect"))

	return cmd
}

// newEnvChangeCommand creates the env add and env rm subcommands.
func newEnvChangeCommand(c *app.Container, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <encounter> <tag>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEncounterID(args[0])
			if err != nil {
				return err
			}
			in := usecase.EnvironmentEffectInput{EncounterID: id, Tag: args[1]}

			var out *usecase.EnvironmentEffectOutput
			if action == "add" {
				out, err = c.AddEnvironmentEffectUseCase().Execute(cmd.Context(), in)
			} else {
				out, err = c.RemoveEnvironmentEffectUseCase().Execute(cmd.Context(), in)
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !out.Changed {
				_, _ = fmt.Fprintln(w, "No change.")
			}
			env := "none"
			if len(out.Effects) > 0 {
				env = strings.Join(out.Effects, ", ")
			}
			_, _ = fmt.Fprintf(w, "Environment: %s\n", env)
			return nil
		},
	}
}
