package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/runoshun/initiative/internal/app"
	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase"
	"github.com/spf13/cobra"
)

// newAddCommand creates the add command for adding combatants.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Character  string
		Notes      string
		Initiative int
		HP         int
		MaxHP      int
		AC         int
		Player     bool
	}

	cmd := &cobra.Command{
		Use:   "add <encounter> [name]",
		Short: "Add a combatant",
		Long: `Add a combatant to an encounter.

With --character the combatant starts from a record in characters.yaml;
explicit flags override the copied values. Without --max-hp the maximum
defaults to --hp.

Combatants can join at any time before the encounter ends. The combatant
holding the turn keeps it.

Examples:
  # Add a monster
  initiative add 1 Goblin --init 12 --hp 7 --ac 15

  # Add a player character from characters.yaml
  initiative add 1 --character aria --init 18`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEncounterID(args[0])
			if err != nil {
				return err
			}

			in := usecase.AddCombatantInput{
				EncounterID: id,
				CharacterID: opts.Character,
				Notes:       opts.Notes,
				Initiative:  opts.Initiative,
			}
			if len(args) > 1 {
				in.Name = args[1]
			}
			flags := cmd.Flags()
			if flags.Changed("hp") {
				in.HP = &opts.HP
			}
			if flags.Changed("max-hp") {
				in.MaxHP = &opts.MaxHP
			}
			if flags.Changed("ac") {
				in.AC = &opts.AC
			}
			if flags.Changed("player") {
				in.IsPlayer = &opts.Player
			}

			uc := c.AddCombatantUseCase()
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			cb := out.Combatant
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s [%s] to encounter #%d (init %d, hp %d/%d, ac %d)\n",
				cb.Name, domain.ShortID(cb.ID), id, cb.Initiative, cb.HP, cb.MaxHP, cb.AC)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Initiative, "init", "i", 0, "Initiative score")
	cmd.Flags().IntVar(&opts.HP, "hp", 0, "Current hit points")
	cmd.Flags().IntVar(&opts.MaxHP, "max-hp", 0, "Maximum hit points (default: --hp)")
	cmd.Flags().IntVar(&opts.AC, "ac", 0, "Armor class (default: [combat] default_ac)")
	cmd.Flags().BoolVarP(&opts.Player, "player", "p", false, "Mark as a player character")
	cmd.Flags().StringVarP(&opts.Character, "character", "c", "", "Copy defaults from a character record")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "Free-form notes")

	return cmd
}

// newEditCommand creates the edit command for updating combatants.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Name       string
		Notes      string
		Character  string
		Initiative int
		HP         int
		MaxHP      int
		AC         int
		Player     bool
	}

	cmd := &cobra.Command{
		Use:   "edit <encounter> <combatant>",
		Short: "Edit a combatant",
		Long: `Edit fields of a combatant. Only the given flags are changed.

The combatant may be given by ID, unique ID prefix or unique name.
Changing initiative or name reorders the roster; the combatant holding
the turn keeps it.

Examples:
  # Fix an initiative roll
  initiative edit 1 goblin --init 14

  # Rename and set hit points
  initiative edit 1 3f2a --name "Goblin boss" --hp 20 --max-hp 20`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEncounterID(args[0])
			if err != nil {
				return err
			}

			in := usecase.UpdateCombatantInput{
				EncounterID: id,
				Ref:         args[1],
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				in.Name = &opts.Name
			}
			if flags.Changed("notes") {
				in.Notes = &opts.Notes
			}
			if flags.Changed("character") {
				in.CharacterID = &opts.Character
			}
			if flags.Changed("init") {
				in.Initiative = &opts.Initiative
			}
			if flags.Changed("hp") {
				in.HP = &opts.HP
			}
			if flags.Changed("max-hp") {
				in.MaxHP = &opts.MaxHP
			}
			if flags.Changed("ac") {
				in.AC = &opts.AC
			}
			if flags.Changed("player") {
				in.IsPlayer = &opts.Player
			}

			uc := c.UpdateCombatantUseCase()
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			cb := out.Combatant
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s [%s] (init %d, hp %d/%d, ac %d)\n",
				cb.Name, domain.ShortID(cb.ID), cb.Initiative, cb.HP, cb.MaxHP, cb.AC)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "New name")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "New notes")
	cmd.Flags().StringVar(&opts.Character, "character", "", "New character record ID")
	cmd.Flags().IntVarP(&opts.Initiative, "init", "i", 0, "New initiative score")
	cmd.Flags().IntVar(&opts.HP, "hp", 0, "New current hit points")
	cmd.Flags().IntVar(&opts.MaxHP, "max-hp", 0, "New maximum hit points")
	cmd.Flags().IntVar(&opts.AC, "ac", 0, "New armor class")
	cmd.Flags().BoolVarP(&opts.Player, "player", "p", false, "Player character (use --player=false for an enemy)")

	return cmd
}

// newKickCommand creates the kick command for removing combatants.
func newKickCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "kick <encounter> <combatant>",
		Aliases: []string{"remove"},
		Short:   "Remove a combatant",
		Long: `Remove a combatant from an encounter.

If the removed combatant held the turn, the next combatant in order takes it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEncounterID(args[0])
			if err != nil {
				return err
			}

			uc := c.RemoveCombatantUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.RemoveCombatantInput{
				EncounterID: id,
				Ref:         args[1],
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from encounter #%d\n", out.Removed.Name, id)
			return nil
		},
	}
}

// newDamageCommand creates the damage command.
func newDamageCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "damage <encounter> <combatant> <amount>",
		Aliases: []string{"dmg"},
		Short:   "Deal damage to a combatant",
		Long: `Subtract hit points from a combatant. HP never drops below 0.

Examples:
  initiative damage 1 goblin 5`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := hpChangeInput(args)
			if err != nil {
				return err
			}

			uc := c.ApplyDamageUseCase()
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			cb := out.Combatant
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s takes %d damage (%d -> %d/%d)\n", cb.Name, in.Amount, out.Before, cb.HP, cb.MaxHP)
			if cb.IsDown() && out.Before > 0 {
				_, _ = fmt.Fprintf(w, "%s is down\n", cb.Name)
			}
			return nil
		},
	}
}

// newHealCommand creates the heal command.
func newHealCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "heal <encounter> <combatant> <amount>",
		Short: "Heal a combatant",
		Long: `Add hit points to a combatant. HP never exceeds the maximum.

Examples:
  initiative heal 1 aria 8`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := hpChangeInput(args)
			if err != nil {
				return err
			}

			uc := c.ApplyHealingUseCase()
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			cb := out.Combatant
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s heals %d (%d -> %d/%d)\n", cb.Name, in.Amount, out.Before, cb.HP, cb.MaxHP)
			return nil
		},
	}
}

// hpChangeInput parses "<encounter> <combatant> <amount>".
func hpChangeInput(args []string) (usecase.HPChangeInput, error) {
	id, err := parseEncounterID(args[0])
	if err != nil {
		return usecase.HPChangeInput{}, err
	}
	amount, err := parseAmount(args[2])
	if err != nil {
		return usecase.HPChangeInput{}, err
	}
	return usecase.HPChangeInput{
		EncounterID: id,
		Ref:         args[1],
		Amount:      amount,
	}, nil
}

// newCharsCommand creates the chars command for listing character records.
func newCharsCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "chars",
		Short: "List character records",
		Long: `List the character records in characters.yaml.

Records are used by "initiative add --character <id>".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ListCharactersUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListCharactersInput{})
			if err != nil {
				return err
			}

			if len(out.Characters) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No characters in %s\n", c.Config.CharactersPath)
				return nil
			}
			printCharacters(cmd.OutOrStdout(), out.Characters)
			return nil
		},
	}
}

func printCharacters(w io.Writer, chars []domain.CharacterRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tNAME\tHP\tAC\tSIDE")
	for _, ch := range chars {
		sideStr := "enemy"
		if ch.IsPlayer {
			sideStr = "player"
		}
		acStr := "-"
		if ch.AC != nil {
			acStr = strconv.Itoa(*ch.AC)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\t%s\n", ch.ID, ch.Name, ch.HP, ch.MaxHP, acStr, sideStr)
	}
}
