package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newBanishCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "banish <branch|path|issue>",
		Short: "Close a worktree's terminal and remove it",
		Long: `Close the worktree's terminal window, force-remove the worktree, and
delete its branch if the branch is already merged. Unmerged branches are
left behind.`,
		Args: cobra.ExactArgs(1),
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
			if wt.IsMain() {
				return fmt.Errorf("refusing to banish the main worktree")
			}

			if !force {
				dirty, err := a.repo.HasUncommittedChanges(wt.Path)
				if err == nil && dirty {
					fmt.Fprintf(cmd.OutOrStdout(),
						"%s has uncommitted changes that will be discarded. Continue? [y/N] ", wt.Path)
					reader := bufio.NewReader(cmd.InOrStdin())
					answer, _ := reader.ReadString('\n')
					if !strings.EqualFold(strings.TrimSpace(answer), "y") {
						fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
						return nil
					}
				}
			}

			report, err := a.orchestrator.Banish(wt)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.Outcome.String())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the uncommitted-changes confirmation")

	return cmd
}
