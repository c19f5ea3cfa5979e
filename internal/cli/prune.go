package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Drop worktree entries whose directories no longer exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(nil)
			if err != nil {
				return err
			}

			if err := a.repo.Prune(); err != nil {
				return err
			}

			worktrees, err := a.repo.ListWorktrees()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned. %d worktrees remain.\n", len(worktrees))
			return nil
		},
	}
}
