package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorFg     = lipgloss.Color("#cdd6f4")
	colorFgDim  = lipgloss.Color("#6c7086")
	colorAccent = lipgloss.Color("#89b4fa")
	colorGreen  = lipgloss.Color("#a6e3a1")
	colorRed    = lipgloss.Color("#f38ba8")
	colorYellow = lipgloss.Color("#f9e2af")

	branchStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	mainBranchStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	pathStyle = lipgloss.NewStyle().
			Foreground(colorFgDim)

	issueStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	lockedStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	prunableStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	okStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	missingStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	stepStyle = lipgloss.NewStyle().
			Foreground(colorFgDim)
)
