package git

import (
	"fmt"
	"strings"

	"github.com/mikanfactory/kodama/internal/logger"
)

// CurrentBranch returns the branch checked out at the repository root.
func (r *Repository) CurrentBranch() (string, error) {
	out, err := r.gitStrict("branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("getting current branch: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// DefaultBranch determines the repository's default branch. It tries the
// remote's symbolic HEAD, then probes for a local main and master, and
// finally falls back to "main" with a logged warning. It never fails.
func (r *Repository) DefaultBranch() string {
	if out, err := r.gitStrict("symbolic-ref", "refs/remotes/origin/HEAD"); err == nil {
		ref := strings.TrimSpace(out)
		if name := strings.TrimPrefix(ref, "refs/remotes/origin/"); name != "" && name != ref {
			return name
		}
	}

	for _, name := range []string{"main", "master"} {
		if r.BranchExists(name) {
			return name
		}
	}

	logger.Warn("could not determine default branch for %s, assuming main", r.Root)
	return "main"
}

// BranchExists reports whether a local branch reference resolves.
func (r *Repository) BranchExists(name string) bool {
	return r.git("rev-parse", "--verify", name).ExitCode == 0
}

// MergedBranches lists the branches already merged into baseBranch, with the
// current-branch marker stripped.
func (r *Repository) MergedBranches(baseBranch string) ([]string, error) {
	out, err := r.gitStrict("branch", "--merged", baseBranch)
	if err != nil {
		return nil, fmt.Errorf("listing branches merged into %s: %w", baseBranch, err)
	}

	var branches []string
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "* "))
		name = strings.TrimPrefix(name, "+ ")
		if name != "" {
			branches = append(branches, name)
		}
	}
	return branches, nil
}

// IsBranchMerged reports whether branch is fully merged into baseBranch.
// A branch that does not exist, and a failure to enumerate merged branches,
// both report "not merged" rather than an error, so this must not be used as
// an existence check.
func (r *Repository) IsBranchMerged(branch, baseBranch string) bool {
	if baseBranch == "" {
		baseBranch = "main"
	}
	if !r.BranchExists(branch) {
		return false
	}

	merged, err := r.MergedBranches(baseBranch)
	if err != nil {
		return false
	}
	for _, name := range merged {
		if name == branch {
			return true
		}
	}
	return false
}

// DeleteBranch deletes a branch, failing if it is unmerged.
func (r *Repository) DeleteBranch(name string) error {
	if _, err := r.gitStrict("branch", "-d", name); err != nil {
		return fmt.Errorf("deleting branch %s: %w", name, err)
	}
	return nil
}

// ForceDeleteBranch deletes a branch regardless of merge state.
func (r *Repository) ForceDeleteBranch(name string) error {
	if _, err := r.gitStrict("branch", "-D", name); err != nil {
		return fmt.Errorf("force-deleting branch %s: %w", name, err)
	}
	return nil
}
