// Package proc executes external commands with timeouts and captured output.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout applies when RunOpts.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// TimeoutExitCode is reported when a command exceeds its timeout.
const TimeoutExitCode = 124

// RunOpts describes a single command invocation.
type RunOpts struct {
	Dir     string
	Name    string
	Args    []string
	Timeout time.Duration
}

func (o RunOpts) commandLine() string {
	if len(o.Args) == 0 {
		return o.Name
	}
	return o.Name + " " + strings.Join(o.Args, " ")
}

// Result is the captured outcome of a command. A failed spawn or a non-zero
// exit is folded into the result; Run never returns an error.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner abstracts command execution for testability.
type Runner interface {
	Run(opts RunOpts) Result
}

// OSRunner executes real commands via os/exec.
type OSRunner struct{}

func (OSRunner) Run(opts RunOpts) Result {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, opts.Name, opts.Args...)
	cmd.Dir = opts.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return Result{
			Stdout:   stdout.String(),
			Stderr:   fmt.Sprintf("command timed out after %s: %s", timeout, opts.commandLine()),
			ExitCode: TimeoutExitCode,
		}
	}

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			// Spawn failure: no process ran, so there is no exit code.
			res.ExitCode = 1
			if res.Stderr == "" {
				res.Stderr = err.Error()
			}
		}
	}

	return res
}

// ExitError is the typed failure produced by RunStrict for a non-zero exit.
type ExitError struct {
	Command string
	Result  Result
}

func (e *ExitError) Error() string {
	if msg := strings.TrimSpace(e.Result.Stderr); msg != "" {
		return msg
	}
	return "Command failed: " + e.Command
}

// RunStrict runs a command and converts a non-zero exit into an *ExitError
// carrying the captured stderr.
func RunStrict(r Runner, opts RunOpts) (string, error) {
	res := r.Run(opts)
	if res.ExitCode != 0 {
		return res.Stdout, &ExitError{Command: opts.commandLine(), Result: res}
	}
	return res.Stdout, nil
}

// CommandExists reports whether a command can be found on the search path.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// CheckAvailability partitions the given command names into those found on
// the search path and those missing.
func CheckAvailability(names []string) (available, missing []string) {
	for _, name := range names {
		if CommandExists(name) {
			available = append(available, name)
		} else {
			missing = append(missing, name)
		}
	}
	return available, missing
}
