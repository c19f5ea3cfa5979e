package terminal

import (
	"fmt"
	"strings"

	"github.com/mikanfactory/kodama/internal/logger"
	"github.com/mikanfactory/kodama/internal/proc"
)

// ITermAdapter drives iTerm2 through osascript-generated AppleScript.
type ITermAdapter struct {
	Runner proc.Runner
}

func (a *ITermAdapter) Name() Type { return TypeITerm }

func (a *ITermAdapter) IsAvailable() bool {
	return a.Runner.Run(proc.RunOpts{Name: "open", Args: []string{"-Ra", "iTerm"}}).ExitCode == 0
}

func (a *ITermAdapter) OpenWindow(spec WindowSpec) bool {
	if len(spec.Frames) == 0 {
		return true
	}

	res := a.Runner.Run(proc.RunOpts{Name: "osascript", Args: []string{"-e", buildITermOpenScript(spec)}})
	if res.ExitCode != 0 {
		logger.Error("iterm: opening window %q failed: %s", spec.Title, strings.TrimSpace(res.Stderr))
		return false
	}
	return true
}

func (a *ITermAdapter) CloseByTitle(title string) bool {
	res := a.Runner.Run(proc.RunOpts{Name: "osascript", Args: []string{"-e", buildITermCloseScript(title)}})
	if res.ExitCode != 0 {
		logger.Error("iterm: closing window %q failed: %s", title, strings.TrimSpace(res.Stderr))
		return false
	}
	return strings.TrimSpace(res.Stdout) == "closed"
}

// buildITermOpenScript produces the AppleScript for a 1- or 2-frame window.
// The session name carries the window title so CloseByTitle can find it.
func buildITermOpenScript(spec WindowSpec) string {
	title := EscapeAppleScript(spec.Title)

	var b strings.Builder
	b.WriteString("tell application \"iTerm2\"\n")
	b.WriteString("\tset newWindow to (create window with default profile)\n")
	b.WriteString("\ttell current session of newWindow\n")
	fmt.Fprintf(&b, "\t\tset name to \"%s\"\n", title)
	fmt.Fprintf(&b, "\t\twrite text \"%s\"\n", EscapeAppleScript(frameCommand(spec.Frames[0])))
	if len(spec.Frames) > 1 {
		b.WriteString("\t\tset secondSession to (split vertically with default profile)\n")
	}
	b.WriteString("\tend tell\n")
	if len(spec.Frames) > 1 {
		b.WriteString("\ttell secondSession\n")
		fmt.Fprintf(&b, "\t\tset name to \"%s\"\n", title)
		fmt.Fprintf(&b, "\t\twrite text \"%s\"\n", EscapeAppleScript(frameCommand(spec.Frames[1])))
		b.WriteString("\tend tell\n")
	}
	b.WriteString("end tell")
	return b.String()
}

func buildITermCloseScript(title string) string {
	return fmt.Sprintf(`tell application "iTerm2"
	repeat with w in windows
		repeat with t in tabs of w
			repeat with s in sessions of t
				if name of s contains "%s" then
					close w
					return "closed"
				end if
			end repeat
		end repeat
	end repeat
	return "none"
end tell`, EscapeAppleScript(title))
}
