package terminal

import (
	"fmt"
	"strings"

	"github.com/mikanfactory/kodama/internal/logger"
	"github.com/mikanfactory/kodama/internal/proc"
)

// AppleTerminalAdapter drives Terminal.app through osascript. Terminal.app
// has no splits, so a two-frame window is composed as two titled tabs.
type AppleTerminalAdapter struct {
	Runner proc.Runner
}

func (a *AppleTerminalAdapter) Name() Type { return TypeAppleTerminal }

func (a *AppleTerminalAdapter) IsAvailable() bool {
	return a.Runner.Run(proc.RunOpts{Name: "open", Args: []string{"-Ra", "Terminal"}}).ExitCode == 0
}

func (a *AppleTerminalAdapter) OpenWindow(spec WindowSpec) bool {
	if len(spec.Frames) == 0 {
		return true
	}

	res := a.Runner.Run(proc.RunOpts{Name: "osascript", Args: []string{"-e", buildTerminalOpenScript(spec)}})
	if res.ExitCode != 0 {
		logger.Error("terminal: opening window %q failed: %s", spec.Title, strings.TrimSpace(res.Stderr))
		return false
	}
	return true
}

func (a *AppleTerminalAdapter) CloseByTitle(title string) bool {
	res := a.Runner.Run(proc.RunOpts{Name: "osascript", Args: []string{"-e", buildTerminalCloseScript(title)}})
	if res.ExitCode != 0 {
		logger.Error("terminal: closing window %q failed: %s", title, strings.TrimSpace(res.Stderr))
		return false
	}
	return strings.TrimSpace(res.Stdout) == "closed"
}

func buildTerminalOpenScript(spec WindowSpec) string {
	title := EscapeAppleScript(spec.Title)

	var b strings.Builder
	b.WriteString("tell application \"Terminal\"\n")
	b.WriteString("\tactivate\n")
	fmt.Fprintf(&b, "\tset firstTab to do script \"%s\"\n", EscapeAppleScript(frameCommand(spec.Frames[0])))
	fmt.Fprintf(&b, "\tset custom title of firstTab to \"%s\"\n", title)
	if len(spec.Frames) > 1 {
		fmt.Fprintf(&b, "\tset secondTab to do script \"%s\"\n", EscapeAppleScript(frameCommand(spec.Frames[1])))
		fmt.Fprintf(&b, "\tset custom title of secondTab to \"%s\"\n", title)
	}
	b.WriteString("end tell")
	return b.String()
}

func buildTerminalCloseScript(title string) string {
	return fmt.Sprintf(`tell application "Terminal"
	repeat with w in windows
		repeat with t in tabs of w
			if custom title of t contains "%s" then
				close w saving no
				return "closed"
			end if
		end repeat
	end repeat
	return "none"
end tell`, EscapeAppleScript(title))
}
