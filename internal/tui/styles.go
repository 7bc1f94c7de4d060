package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorFg     = lipgloss.Color("#cdd6f4")
	colorFgDim  = lipgloss.Color("#6c7086")
	colorAccent = lipgloss.Color("#89b4fa")
	colorGreen  = lipgloss.Color("#a6e3a1")
	colorRed    = lipgloss.Color("#f38ba8")
	colorYellow = lipgloss.Color("#f9e2af")
	colorBorder = lipgloss.Color("#45475a")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg).
			PaddingLeft(1).
			PaddingBottom(1)

	repoStyle = lipgloss.NewStyle().
			Foreground(colorFgDim)

	branchStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			PaddingLeft(3)

	branchSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true).
				PaddingLeft(1)

	currentMarkStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				Bold(true)

	issueKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	listPaneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(colorBorder)

	detailPaneStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	detailBranchStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	detailTitleStyle = lipgloss.NewStyle().
				Foreground(colorFg).
				Bold(true)

	detailDimStyle = lipgloss.NewStyle().
			Foreground(colorFgDim)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorRed).
			Padding(1, 2)

	overlayTitleStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingTop(1)
)
