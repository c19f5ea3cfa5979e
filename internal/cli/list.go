package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all worktrees of the current repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(nil)
			if err != nil {
				return err
			}

			worktrees, err := a.repo.ListWorktrees()
			if err != nil {
				return err
			}

			for _, wt := range worktrees {
				var parts []string

				if wt.IsMain() {
					parts = append(parts, mainBranchStyle.Render("* "+wt.Branch))
				} else {
					parts = append(parts, branchStyle.Render("  "+wt.Branch))
				}

				if n, ok := wt.IssueNumber(); ok {
					parts = append(parts, issueStyle.Render(fmt.Sprintf("#%d", n)))
				}
				if wt.IsLocked {
					label := "locked"
					if wt.LockReason != "" {
						label = "locked: " + wt.LockReason
					}
					parts = append(parts, lockedStyle.Render("["+label+"]"))
				}
				if wt.IsPrunable {
					parts = append(parts, prunableStyle.Render("[prunable]"))
				}

				parts = append(parts, pathStyle.Render(wt.Path))
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " "))
			}

			return nil
		},
	}
}
