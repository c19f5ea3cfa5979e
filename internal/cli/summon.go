package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mikanfactory/kodama/internal/workflow"
)

func newSummonCmd() *cobra.Command {
	var issueNumber int
	var branch string

	cmd := &cobra.Command{
		Use:   "summon",
		Short: "Create a worktree and open a terminal for it",
		Long: `Create a worktree for a GitHub issue (--issue) or a free-form branch
(--branch), run the configured setup commands inside it, and open a
terminal window scoped to it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (issueNumber == 0) == (branch == "") {
				return fmt.Errorf("exactly one of --issue or --branch is required")
			}
			if issueNumber < 0 {
				return fmt.Errorf("issue number must be positive, got %d", issueNumber)
			}

			out := func(format string, args ...any) {
				fmt.Fprintf(cmd.OutOrStdout(), format, args...)
			}
			a, err := buildApp(out)
			if err != nil {
				return err
			}

			var result workflow.SummonResult
			if issueNumber != 0 {
				result, err = a.orchestrator.SummonIssue(issueNumber)
			} else {
				result, err = a.orchestrator.SummonBranch(branch)
			}
			if err != nil {
				return err
			}

			out("Summoned %s at %s\n",
				branchStyle.Render(result.Branch), pathStyle.Render(result.Path))
			return nil
		},
	}

	cmd.Flags().IntVarP(&issueNumber, "issue", "i", 0, "GitHub issue number to work on")
	cmd.Flags().StringVarP(&branch, "branch", "b", "", "custom branch name")

	return cmd
}
