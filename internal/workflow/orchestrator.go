// Package workflow orchestrates the summon and banish lifecycles. It is the
// only layer that decides which failures abort a workflow and which are
// logged and absorbed.
package workflow

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mikanfactory/kodama/internal/git"
	"github.com/mikanfactory/kodama/internal/github"
	"github.com/mikanfactory/kodama/internal/logger"
	"github.com/mikanfactory/kodama/internal/model"
	"github.com/mikanfactory/kodama/internal/setup"
	"github.com/mikanfactory/kodama/internal/terminal"
)

// titleWidth caps how much of an issue title lands in a window title.
const titleWidth = 40

// Orchestrator wires the worktree repository, issue provider, setup runner,
// and terminal adapter into complete workflows.
type Orchestrator struct {
	Repo     *git.Repository
	Issues   *github.Provider // nil when GitHub issues are disabled
	Setup    setup.Runner
	Terminal terminal.Adapter
	Config   model.Config

	// OnSetupProgress, when set, receives each setup step before it runs.
	OnSetupProgress func(setup.Progress)
}

// SummonResult reports a completed summon.
type SummonResult struct {
	Path        string
	Branch      string
	WindowTitle string
}

// SummonIssue creates a worktree for the given issue, best-effort assigns
// the issue to the current user, runs setup, and opens a terminal window.
// The worktree is never rolled back: a failure after creation leaves it in
// place and reports which step failed.
func (o *Orchestrator) SummonIssue(number int) (SummonResult, error) {
	if o.Issues == nil {
		return SummonResult{}, fmt.Errorf("GitHub issues are disabled in the config")
	}

	issue, err := o.Issues.Issue(number)
	if err != nil {
		return SummonResult{}, fmt.Errorf("fetching issue #%d: %w", number, err)
	}
	if issue == nil {
		return SummonResult{}, fmt.Errorf("issue #%d not found", number)
	}

	path, branch, err := o.Repo.CreateForIssue(issue.Number, issue.Title, o.baseBranch())
	if err != nil {
		return SummonResult{}, err
	}

	if err := o.Issues.AssignToSelf(issue.Number); err != nil {
		// Assignment is best-effort; summon continues.
		logger.Warn("assigning issue #%d failed: %v", issue.Number, err)
	}

	title := issueWindowTitle(*issue)
	if err := o.finishSummon(path, title, issue); err != nil {
		return SummonResult{}, err
	}

	return SummonResult{Path: path, Branch: branch, WindowTitle: title}, nil
}

// SummonBranch creates a worktree on a new branch with the given name and
// opens a terminal window for it. No issue is linked.
func (o *Orchestrator) SummonBranch(branch string) (SummonResult, error) {
	path, branch, err := o.Repo.CreateCustom(branch, o.baseBranch())
	if err != nil {
		return SummonResult{}, err
	}

	if err := o.finishSummon(path, branch, nil); err != nil {
		return SummonResult{}, err
	}

	return SummonResult{Path: path, Branch: branch, WindowTitle: branch}, nil
}

func (o *Orchestrator) finishSummon(path, title string, issue *model.Issue) error {
	if len(o.Config.SetupCommands) > 0 {
		if err := o.Setup.Run(path, o.Config.SetupCommands, o.OnSetupProgress); err != nil {
			return fmt.Errorf("worktree created at %s, but setup failed: %w", path, err)
		}
	}

	spec := terminal.WindowSpec{Title: title, Frames: o.frames(path, issue)}
	if !o.Terminal.OpenWindow(spec) {
		return fmt.Errorf("worktree created at %s, but opening the terminal window failed", path)
	}

	return nil
}

// frames composes the window's panes from config. For an issue summon the
// second frame's command is overridden to hand the issue context to the
// configured AI command.
func (o *Orchestrator) frames(path string, issue *model.Issue) []model.Frame {
	var frames []model.Frame

	if o.Config.LeftFrame.Enabled {
		frames = append(frames, model.Frame{Directory: path, Command: o.Config.LeftFrame.Command})
	}

	if o.Config.RightFrame.Enabled {
		command := o.Config.RightFrame.Command
		if issue != nil && o.Config.DefaultAICommand != "" {
			prompt := fmt.Sprintf("Take a look at GitHub issue #%d (%s) and get started.", issue.Number, issue.Title)
			command = o.Config.DefaultAICommand + " " + terminal.ShellQuote(prompt)
		}
		frames = append(frames, model.Frame{Directory: path, Command: command})
	}

	return frames
}

// BanishOutcome labels how a banish resolved the worktree's branch. All
// variants are success states, not errors.
type BanishOutcome int

const (
	// OutcomeWorktreeRemoved: removed; there was no branch to clean up.
	OutcomeWorktreeRemoved BanishOutcome = iota
	// OutcomeBranchDeleted: removed, and the merged branch was deleted.
	OutcomeBranchDeleted
	// OutcomeBranchKeptUnmerged: removed; the unmerged branch was kept.
	OutcomeBranchKeptUnmerged
	// OutcomeBranchKeptDeleteFailed: removed; the branch was merged but
	// deleting it failed, so it was left behind.
	OutcomeBranchKeptDeleteFailed
)

func (b BanishOutcome) String() string {
	switch b {
	case OutcomeWorktreeRemoved:
		return "worktree removed"
	case OutcomeBranchDeleted:
		return "worktree removed, branch deleted"
	case OutcomeBranchKeptUnmerged:
		return "worktree removed, branch kept (not merged)"
	case OutcomeBranchKeptDeleteFailed:
		return "worktree removed, branch kept (delete failed)"
	default:
		return "unknown"
	}
}

// BanishReport describes everything a banish did.
type BanishReport struct {
	Path                  string
	Branch                string
	HadUncommittedChanges bool
	WindowClosed          bool
	Outcome               BanishOutcome
}

// Banish closes the worktree's terminal window, force-removes the worktree,
// and cleans up its branch when merged. The uncommitted-changes check is
// advisory only; callers wanting confirmation must ask before invoking this.
func (o *Orchestrator) Banish(wt model.Worktree) (BanishReport, error) {
	report := BanishReport{Path: wt.Path, Branch: wt.Branch}

	dirty, err := o.Repo.HasUncommittedChanges(wt.Path)
	if err != nil {
		logger.Warn("checking uncommitted changes in %s failed: %v", wt.Path, err)
	}
	report.HadUncommittedChanges = dirty

	report.WindowClosed = o.Terminal.CloseByTitle(windowTitleFor(wt))
	if !report.WindowClosed {
		logger.Debug("no terminal window found for %s", wt.Path)
	}

	if err := o.Repo.Remove(wt.Path); err != nil {
		return report, err
	}

	if wt.IsDetached() {
		report.Outcome = OutcomeWorktreeRemoved
		return report, nil
	}

	if o.Repo.IsBranchMerged(wt.Branch, o.baseBranch()) {
		if err := o.Repo.DeleteBranch(wt.Branch); err != nil {
			// Branch deletion is best-effort; the branch is left behind.
			logger.Warn("deleting branch %s failed: %v", wt.Branch, err)
			report.Outcome = OutcomeBranchKeptDeleteFailed
		} else {
			report.Outcome = OutcomeBranchDeleted
		}
	} else {
		report.Outcome = OutcomeBranchKeptUnmerged
	}

	return report, nil
}

// Lock locks the worktree at path.
func (o *Orchestrator) Lock(path, reason string) error {
	return o.Repo.Lock(path, reason)
}

// Unlock unlocks the worktree at path.
func (o *Orchestrator) Unlock(path string) error {
	return o.Repo.Unlock(path)
}

// Resolve finds a worktree by path, branch name, or issue number.
func (o *Orchestrator) Resolve(target string) (model.Worktree, bool, error) {
	worktrees, err := o.Repo.ListWorktrees()
	if err != nil {
		return model.Worktree{}, false, err
	}

	for _, wt := range worktrees {
		if wt.Path == target || wt.Branch == target {
			return wt, true, nil
		}
	}

	if n, err := strconv.Atoi(strings.TrimPrefix(target, "#")); err == nil {
		for _, wt := range worktrees {
			if num, ok := wt.IssueNumber(); ok && num == n {
				return wt, true, nil
			}
		}
	}

	return model.Worktree{}, false, nil
}

func (o *Orchestrator) baseBranch() string {
	if o.Config.BaseBranch != "" {
		return o.Config.BaseBranch
	}
	return o.Repo.DefaultBranch()
}

// issueWindowTitle builds "#<n> <truncated title>".
func issueWindowTitle(issue model.Issue) string {
	return fmt.Sprintf("#%d %s", issue.Number, truncate(issue.Title, titleWidth))
}

// windowTitleFor derives the title a summon would have used, so banish can
// locate the window. Issue windows are matched by their "#<n> " prefix; the
// trailing space is load-bearing, since adapters match by substring and
// "#4" alone would also hit "#42 ...".
func windowTitleFor(wt model.Worktree) string {
	if n, ok := wt.IssueNumber(); ok {
		return fmt.Sprintf("#%d ", n)
	}
	return wt.Branch
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width]) + "..."
}
