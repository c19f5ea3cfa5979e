package terminal

import (
	"strings"

	"github.com/mikanfactory/kodama/internal/logger"
	"github.com/mikanfactory/kodama/internal/proc"
)

// TmuxAdapter composes windows from tmux subcommands. A two-frame window is
// a horizontal split. Windows are named with the spec title so CloseByTitle
// can find them with list-windows.
type TmuxAdapter struct {
	Runner proc.Runner
}

func (a *TmuxAdapter) Name() Type { return TypeTmux }

func (a *TmuxAdapter) IsAvailable() bool {
	return proc.CommandExists("tmux")
}

func (a *TmuxAdapter) run(args ...string) proc.Result {
	return a.Runner.Run(proc.RunOpts{Name: "tmux", Args: args})
}

func (a *TmuxAdapter) OpenWindow(spec WindowSpec) bool {
	if len(spec.Frames) == 0 {
		return true
	}

	first := spec.Frames[0]
	paneID, ok := a.newWindow(spec.Title, first.Directory)
	if !ok {
		return false
	}

	if first.Command != "" && !a.sendKeys(paneID, first.Command) {
		return false
	}

	if len(spec.Frames) > 1 {
		second := spec.Frames[1]
		res := a.run("split-window", "-h", "-t", paneID, "-c", second.Directory, "-P", "-F", "#{pane_id}")
		if res.ExitCode != 0 {
			logger.Error("tmux: splitting window %q failed: %s", spec.Title, strings.TrimSpace(res.Stderr))
			return false
		}
		secondPane := strings.TrimSpace(res.Stdout)
		if second.Command != "" && !a.sendKeys(secondPane, second.Command) {
			return false
		}
	}

	return true
}

// newWindow opens a named window in the running server, starting a detached
// session first when no server is up. Returns the new pane's ID.
func (a *TmuxAdapter) newWindow(title, dir string) (string, bool) {
	res := a.run("new-window", "-n", title, "-c", dir, "-P", "-F", "#{pane_id}")
	if res.ExitCode == 0 {
		return strings.TrimSpace(res.Stdout), true
	}

	res = a.run("new-session", "-d", "-n", title, "-c", dir, "-P", "-F", "#{pane_id}")
	if res.ExitCode == 0 {
		return strings.TrimSpace(res.Stdout), true
	}

	logger.Error("tmux: opening window %q failed: %s", title, strings.TrimSpace(res.Stderr))
	return "", false
}

func (a *TmuxAdapter) sendKeys(paneID, command string) bool {
	res := a.run("send-keys", "-t", paneID, command, "Enter")
	if res.ExitCode != 0 {
		logger.Error("tmux: sending keys to %s failed: %s", paneID, strings.TrimSpace(res.Stderr))
		return false
	}
	return true
}

func (a *TmuxAdapter) CloseByTitle(title string) bool {
	res := a.run("list-windows", "-a", "-F", "#{window_id}\t#{window_name}")
	if res.ExitCode != 0 {
		return false
	}

	for _, line := range strings.Split(strings.TrimSpace(res.Stdout), "\n") {
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 || !strings.Contains(parts[1], title) {
			continue
		}
		kill := a.run("kill-window", "-t", parts[0])
		if kill.ExitCode != 0 {
			logger.Error("tmux: killing window %s failed: %s", parts[0], strings.TrimSpace(kill.Stderr))
			return false
		}
		return true
	}

	return false
}
