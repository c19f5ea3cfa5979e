package model

import "github.com/mikanfactory/kodama/internal/branchname"

// DetachedBranch is the sentinel branch value for a worktree not on a branch.
const DetachedBranch = "detached"

// Worktree represents a single linked working directory of the repository.
// Values are rebuilt from `git worktree list` on every listing; nothing here
// is mutated in place.
type Worktree struct {
	Path        string
	Branch      string
	Commit      string
	IsLocked    bool
	LockReason  string
	IsPrunable  bool
	PruneReason string
}

// IsMain reports whether this worktree holds the repository's primary branch.
func (w Worktree) IsMain() bool {
	return w.Branch == "main" || w.Branch == "master"
}

// IsDetached reports whether the worktree is checked out to a detached HEAD.
func (w Worktree) IsDetached() bool {
	return w.Branch == DetachedBranch
}

// IssueNumber derives the linked issue number from the branch name.
// Returns false for main, detached, and non-issue branches.
func (w Worktree) IssueNumber() (int, bool) {
	return branchname.IssueNumber(w.Branch)
}

// Label is an issue label as reported by the tracker.
type Label struct {
	Name  string
	Color string
}

// Issue is an external work item. The core treats it as read-only data;
// the only side effect ever applied is assigning it to the current user.
type Issue struct {
	Number    int
	Title     string
	Body      string
	Labels    []Label
	Assignees []string
	State     string
	URL       string
}

// Frame is a terminal pane specification: a working directory plus an
// optional command to run after changing into it.
type Frame struct {
	Directory string
	Command   string
}

// FrameConfig is the configured template for one terminal frame.
type FrameConfig struct {
	Enabled bool   `yaml:"enabled"`
	Command string `yaml:"command"`
}

// Config is the application configuration. It is loaded once at startup and
// passed around as an immutable value.
type Config struct {
	Terminal         string      `yaml:"terminal"`
	LeftFrame        FrameConfig `yaml:"left_frame"`
	RightFrame       FrameConfig `yaml:"right_frame"`
	DefaultAICommand string      `yaml:"default_ai_command"`
	SetupCommands    []string    `yaml:"setup_commands"`
	GitHubIssues     bool        `yaml:"github_issues"`
	WorktreeBasePath string      `yaml:"worktree_base_path"`
	BaseBranch       string      `yaml:"base_branch"`
}
