package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mikanfactory/kodama/internal/config"
	"github.com/mikanfactory/kodama/internal/git"
	"github.com/mikanfactory/kodama/internal/proc"
	"github.com/mikanfactory/kodama/internal/terminal"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Verify that the external tools kodama needs are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			required := []string{"git"}
			if cfg.GitHubIssues {
				required = append(required, "gh")
			}
			switch terminal.Type(cfg.Terminal) {
			case terminal.TypeTmux:
				required = append(required, "tmux")
			default:
				required = append(required, "osascript")
			}

			available, missing := proc.CheckAvailability(required)
			for _, name := range available {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("ok"), name)
			}
			for _, name := range missing {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", missingStyle.Render("missing"), name)
			}

			if git.IsRepository(proc.OSRunner{}, ".") {
				fmt.Fprintf(cmd.OutOrStdout(), "%s inside a git repository\n", okStyle.Render("ok"))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s not inside a git repository\n", missingStyle.Render("!"))
			}

			var terminals []string
			for _, adapter := range terminal.DetectAvailable(proc.OSRunner{}) {
				terminals = append(terminals, string(adapter.Name()))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "terminals available: %v\n", terminals)

			if len(missing) > 0 {
				return errors.New("doctor checks failed")
			}
			return nil
		},
	}
}
