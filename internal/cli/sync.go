package cli

import (
	"fmt"

	"github.com/runoshun/initiative/internal/app"
	"github.com/runoshun/initiative/internal/usecase"
	"github.com/spf13/cobra"
)

func newSyncCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Share encounters through the git remote",
		Long: `Share encounters through the "origin" remote.

Requires the git store backend ([store] backend = "git").`,
	}

	cmd.AddCommand(newSyncDirectionCommand(c, usecase.SyncPush, "Push encounter refs to origin"))
	cmd.AddCommand(newSyncDirectionCommand(c, usecase.SyncFetch, "Fetch encounter refs from origin, replacing local ones"))

	return cmd
}

func newSyncDirectionCommand(c *app.Container, dir usecase.SyncDirection, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(dir),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.SyncEncountersUseCase()
			if _, err := uc.Execute(cmd.Context(), usecase.SyncEncountersInput{Direction: dir}); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sync %s complete\n", dir)
			return nil
		},
	}
}
