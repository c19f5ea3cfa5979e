// Package git wraps the git subcommands kodama needs: worktree lifecycle,
// branch cleanup, and repository introspection.
package git

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mikanfactory/kodama/internal/proc"
)

// Repository is a handle to one git repository. The root is resolved once at
// startup and threaded through explicitly; nothing here is cached.
type Repository struct {
	Runner proc.Runner
	Root   string
	Name   string

	// WorktreeBase, when set, is the directory new worktrees are created
	// under. Empty means "sibling of the repository root".
	WorktreeBase string
}

// New returns a Repository rooted at the given path.
func New(runner proc.Runner, root string) *Repository {
	return &Repository{
		Runner: runner,
		Root:   root,
		Name:   filepath.Base(root),
	}
}

// DetectRoot resolves the repository root for the current directory.
func DetectRoot(runner proc.Runner) (string, error) {
	out, err := proc.RunStrict(runner, proc.RunOpts{
		Name: "git",
		Args: []string{"rev-parse", "--show-toplevel"},
	})
	if err != nil {
		return "", fmt.Errorf("not inside a git repository: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// IsRepository reports whether the given path is inside a git directory.
func IsRepository(runner proc.Runner, path string) bool {
	res := runner.Run(proc.RunOpts{
		Name: "git",
		Args: []string{"-C", path, "rev-parse", "--git-dir"},
	})
	return res.ExitCode == 0
}

// git runs a git subcommand at the repository root.
func (r *Repository) git(args ...string) proc.Result {
	return r.Runner.Run(proc.RunOpts{Dir: r.Root, Name: "git", Args: args})
}

// gitStrict runs a git subcommand and fails on non-zero exit.
func (r *Repository) gitStrict(args ...string) (string, error) {
	return proc.RunStrict(r.Runner, proc.RunOpts{Dir: r.Root, Name: "git", Args: args})
}

// WorktreePath derives the on-disk location for a worktree of the given
// branch: "<repoName>-<branch>" under the configured base directory, or next
// to the repository root when no base is configured. Path separators in the
// branch name are flattened so the directory stays a single level deep.
func (r *Repository) WorktreePath(branch string) string {
	dirName := r.Name + "-" + strings.ReplaceAll(branch, "/", "-")
	base := r.WorktreeBase
	if base == "" {
		base = filepath.Dir(r.Root)
	}
	return filepath.Join(base, dirName)
}
