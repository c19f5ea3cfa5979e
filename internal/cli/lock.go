package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLockCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "lock <branch|path>",
		Short: "Lock a worktree so git will not prune or move it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(nil)
			if err != nil {
				return err
			}

			wt, found, err := a.orchestrator.Resolve(args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no worktree matches %q", args[0])
			}

			if err := a.orchestrator.Lock(wt.Path, reason); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Locked %s\n", wt.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "reason recorded with the lock")

	return cmd
}

func newUnlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <branch|path>",
		Short: "Unlock a locked worktree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(nil)
			if err != nil {
				return err
			}

			wt, found, err := a.orchestrator.Resolve(args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no worktree matches %q", args[0])
			}

			if err := a.orchestrator.Unlock(wt.Path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unlocked %s\n", wt.Path)
			return nil
		},
	}
}
