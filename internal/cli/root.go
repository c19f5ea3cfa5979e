// Package cli implements the kodama command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mikanfactory/kodama/internal/config"
	"github.com/mikanfactory/kodama/internal/git"
	"github.com/mikanfactory/kodama/internal/github"
	"github.com/mikanfactory/kodama/internal/logger"
	"github.com/mikanfactory/kodama/internal/model"
	"github.com/mikanfactory/kodama/internal/proc"
	"github.com/mikanfactory/kodama/internal/setup"
	"github.com/mikanfactory/kodama/internal/terminal"
	"github.com/mikanfactory/kodama/internal/workflow"
)

var configPath string

// NewRootCmd builds the kodama command tree.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kodama",
		Short:         "kodama — summon and banish git worktrees",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if path, err := logger.DefaultLogPath(); err == nil {
				_ = logger.Init(path)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newSummonCmd())
	cmd.AddCommand(newBanishCmd())
	cmd.AddCommand(newLockCmd())
	cmd.AddCommand(newUnlockCmd())
	cmd.AddCommand(newPruneCmd())
	cmd.AddCommand(newDoctorCmd())

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.SetVersionTemplate("{{.Version}}\n")
	if version != "" {
		cmd.Version = version
	} else {
		cmd.Version = "dev"
	}

	return cmd
}

// Execute runs the command tree, printing failures without a stack trace.
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "kodama: %v\n", err)
		os.Exit(1)
	}
}

// app bundles everything a command needs, built once per invocation.
type app struct {
	cfg          model.Config
	repo         *git.Repository
	orchestrator *workflow.Orchestrator
}

func buildApp(out func(format string, args ...any)) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	runner := proc.OSRunner{}

	root, err := git.DetectRoot(runner)
	if err != nil {
		return nil, err
	}

	repo := git.New(runner, root)
	repo.WorktreeBase = cfg.WorktreeBasePath

	adapter, err := terminal.New(terminal.Type(cfg.Terminal), runner)
	if err != nil {
		return nil, err
	}

	var issues *github.Provider
	if cfg.GitHubIssues {
		issues = &github.Provider{Runner: runner, Dir: root}
	}

	orchestrator := &workflow.Orchestrator{
		Repo:     repo,
		Issues:   issues,
		Setup:    setup.Runner{Proc: runner},
		Terminal: adapter,
		Config:   cfg,
	}
	if out != nil {
		orchestrator.OnSetupProgress = func(p setup.Progress) {
			out("%s\n", stepStyle.Render(fmt.Sprintf("[%d/%d] %s", p.Current, p.Total, p.Step)))
		}
	}

	return &app{cfg: cfg, repo: repo, orchestrator: orchestrator}, nil
}
