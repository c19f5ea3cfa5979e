// Package setup runs a repository's configured post-create commands inside
// a fresh worktree.
package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mikanfactory/kodama/internal/proc"
)

// commandTimeout allows for dependency installs, which routinely outlast the
// default subprocess timeout.
const commandTimeout = 10 * time.Minute

// Progress describes the command about to run. Current is 1-based.
type Progress struct {
	Step    string
	Current int
	Total   int
}

// Runner executes setup commands sequentially through a shell.
type Runner struct {
	Proc proc.Runner
}

// Run executes each command with the worktree as the working directory,
// calling onProgress before each one. Execution stops at the first failing
// command; earlier commands' effects stay in place. A nil or empty command
// list is a successful no-op.
func (r Runner) Run(worktreePath string, commands []string, onProgress func(Progress)) error {
	if len(commands) == 0 {
		return nil
	}

	for i, command := range commands {
		if onProgress != nil {
			onProgress(Progress{Step: command, Current: i + 1, Total: len(commands)})
		}

		res := r.Proc.Run(proc.RunOpts{
			Dir:     worktreePath,
			Name:    "sh",
			Args:    []string{"-c", command},
			Timeout: commandTimeout,
		})
		if res.ExitCode != 0 {
			return fmt.Errorf("setup command %q failed: %s", command, strings.TrimSpace(res.Stderr))
		}
	}

	return nil
}

// IsSetUp is a heuristic probe for whether setup already ran: it checks for
// a node_modules entry, then a vendor entry, directly under the path.
func IsSetUp(worktreePath string) bool {
	if _, err := os.Stat(filepath.Join(worktreePath, "node_modules")); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(worktreePath, "vendor")); err == nil {
		return true
	}
	return false
}
