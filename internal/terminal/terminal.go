// Package terminal opens and closes titled terminal windows scoped to a
// worktree, through one of several emulator-specific adapters.
package terminal

import (
	"fmt"

	"github.com/mikanfactory/kodama/internal/model"
	"github.com/mikanfactory/kodama/internal/proc"
)

// Type identifies a supported terminal emulator.
type Type string

const (
	TypeITerm         Type = "iterm"
	TypeAppleTerminal Type = "terminal"
	TypeTmux          Type = "tmux"
)

// KnownTypes returns every supported terminal type.
func KnownTypes() []Type {
	return []Type{TypeITerm, TypeAppleTerminal, TypeTmux}
}

// WindowSpec describes one window to open: a title used later for lookup,
// plus one or two frames.
type WindowSpec struct {
	Title  string
	Frames []model.Frame
}

// Adapter drives one terminal emulator. OpenWindow and CloseByTitle never
// return errors; failures surface as false plus a logged diagnostic.
type Adapter interface {
	// Name returns the adapter's type key.
	Name() Type
	// IsAvailable probes whether the emulator is installed on this host.
	IsAvailable() bool
	// OpenWindow opens a titled window composed of the spec's frames.
	// Zero frames is a successful no-op.
	OpenWindow(spec WindowSpec) bool
	// CloseByTitle closes the first window whose title contains the given
	// string, reporting whether a match was found and closed.
	CloseByTitle(title string) bool
}

// UnsupportedTypeError is returned by New for an unrecognized terminal type.
type UnsupportedTypeError struct {
	Type Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported terminal type %q (known: iterm, terminal, tmux)", string(e.Type))
}

// New returns the adapter for the given terminal type.
func New(t Type, runner proc.Runner) (Adapter, error) {
	switch t {
	case TypeITerm:
		return &ITermAdapter{Runner: runner}, nil
	case TypeAppleTerminal:
		return &AppleTerminalAdapter{Runner: runner}, nil
	case TypeTmux:
		return &TmuxAdapter{Runner: runner}, nil
	default:
		return nil, &UnsupportedTypeError{Type: t}
	}
}

// DetectAvailable returns the adapters that report themselves installed.
func DetectAvailable(runner proc.Runner) []Adapter {
	var available []Adapter
	for _, t := range KnownTypes() {
		adapter, err := New(t, runner)
		if err != nil {
			continue
		}
		if adapter.IsAvailable() {
			available = append(available, adapter)
		}
	}
	return available
}
