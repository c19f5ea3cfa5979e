package git

import (
	"fmt"
	"strings"

	"github.com/mikanfactory/kodama/internal/branchname"
	"github.com/mikanfactory/kodama/internal/model"
	"github.com/mikanfactory/kodama/internal/proc"
)

// ListWorktrees runs `git worktree list --porcelain` and parses the output.
func (r *Repository) ListWorktrees() ([]model.Worktree, error) {
	out, err := r.gitStrict("worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("listing worktrees: %w", err)
	}
	return parsePorcelain(out), nil
}

// parsePorcelain is a line-oriented state machine over the porcelain format.
// Field lines accumulate into a pending record; a blank line (or end of
// input) closes it. Records missing a path or branch are parse artifacts and
// are dropped.
func parsePorcelain(out string) []model.Worktree {
	var (
		worktrees []model.Worktree
		pending   model.Worktree
		open      bool
	)

	flush := func() {
		if open && pending.Path != "" && pending.Branch != "" {
			worktrees = append(worktrees, pending)
		}
		pending = model.Worktree{}
		open = false
	}

	for _, line := range strings.Split(out, "\n") {
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "worktree "):
			open = true
			pending.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "HEAD "):
			pending.Commit = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			ref := strings.TrimPrefix(line, "branch ")
			pending.Branch = strings.TrimPrefix(ref, "refs/heads/")
		case line == "detached":
			pending.Branch = model.DetachedBranch
		case line == "locked":
			pending.IsLocked = true
		case strings.HasPrefix(line, "locked "):
			pending.IsLocked = true
			pending.LockReason = strings.TrimPrefix(line, "locked ")
		case line == "prunable":
			pending.IsPrunable = true
		case strings.HasPrefix(line, "prunable "):
			pending.IsPrunable = true
			pending.PruneReason = strings.TrimPrefix(line, "prunable ")
		}
	}
	flush()

	return worktrees
}

// CreateForIssue creates a worktree on a new issue branch cut from
// baseBranch, returning the worktree path and branch name.
func (r *Repository) CreateForIssue(issueNumber int, issueTitle, baseBranch string) (string, string, error) {
	branch := branchname.ForIssue(issueNumber, issueTitle)
	path, err := r.create(branch, baseBranch)
	return path, branch, err
}

// CreateCustom creates a worktree on a new branch with the given name.
func (r *Repository) CreateCustom(branch, baseBranch string) (string, string, error) {
	path, err := r.create(branch, baseBranch)
	return path, branch, err
}

func (r *Repository) create(branch, baseBranch string) (string, error) {
	if baseBranch == "" {
		baseBranch = "main"
	}
	path := r.WorktreePath(branch)
	if _, err := r.gitStrict("worktree", "add", "-b", branch, path, baseBranch); err != nil {
		return "", fmt.Errorf("creating worktree for %s: %w", branch, err)
	}
	return path, nil
}

// Remove force-removes the worktree at path, discarding any uncommitted
// changes it holds. Callers are responsible for warning the user first.
func (r *Repository) Remove(path string) error {
	if _, err := r.gitStrict("worktree", "remove", path, "--force"); err != nil {
		return fmt.Errorf("removing worktree %s: %w", path, err)
	}
	return nil
}

// Lock marks the worktree at path as locked, with an optional reason.
func (r *Repository) Lock(path, reason string) error {
	args := []string{"worktree", "lock", path}
	if reason != "" {
		args = append(args, "--reason", reason)
	}
	if res := r.git(args...); res.ExitCode != 0 {
		return fmt.Errorf("%s", CleanGitError(res.Stderr))
	}
	return nil
}

// Unlock removes the lock on the worktree at path.
func (r *Repository) Unlock(path string) error {
	if res := r.git("worktree", "unlock", path); res.ExitCode != 0 {
		return fmt.Errorf("%s", CleanGitError(res.Stderr))
	}
	return nil
}

// Move relocates a worktree to a new path.
func (r *Repository) Move(path, newPath string) error {
	_, err := r.gitStrict("worktree", "move", path, newPath)
	return err
}

// Repair fixes worktree administrative files. An empty path repairs all
// worktrees.
func (r *Repository) Repair(path string) error {
	args := []string{"worktree", "repair"}
	if path != "" {
		args = append(args, path)
	}
	_, err := r.gitStrict(args...)
	return err
}

// Prune drops worktree entries whose directories no longer exist.
func (r *Repository) Prune() error {
	_, err := r.gitStrict("worktree", "prune")
	return err
}

// HasUncommittedChanges reports whether the worktree at path has any staged,
// unstaged, or untracked changes.
func (r *Repository) HasUncommittedChanges(path string) (bool, error) {
	out, err := proc.RunStrict(r.Runner, proc.RunOpts{
		Dir:  path,
		Name: "git",
		Args: []string{"status", "--porcelain"},
	})
	if err != nil {
		return false, fmt.Errorf("checking status of %s: %w", path, err)
	}
	return strings.TrimSpace(out) != "", nil
}
