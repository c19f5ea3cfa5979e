package terminal

import (
	"strings"

	"github.com/mikanfactory/kodama/internal/model"
)

// EscapeAppleScript escapes text for interpolation into an AppleScript
// double-quoted string literal: backslashes and double quotes are
// backslash-escaped. Nothing else needs escaping in that syntax.
func EscapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// ShellQuote wraps text in single quotes for a POSIX shell, escaping any
// embedded single quotes. This is a separate pass from EscapeAppleScript:
// a path crosses two quoting contexts, first the automation script, then
// the shell running inside the pane.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// frameCommand builds the shell command for one frame: cd into its
// directory, then run its optional command.
func frameCommand(f model.Frame) string {
	cmd := "cd " + ShellQuote(f.Directory)
	if f.Command != "" {
		cmd += " && " + f.Command
	}
	return cmd
}
