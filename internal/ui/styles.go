package ui

import "github.com/charmbracelet/lipgloss"

// Palette keyed by what a line shows, not where it sits.
var (
	inkDim   = lipgloss.AdaptiveColor{Light: "#7A7F87", Dark: "#8A909A"}
	inkSoft  = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#C3C8D0"}
	inkTeal  = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#5EEAD4"}
	inkBrass = lipgloss.AdaptiveColor{Light: "#92620A", Dark: "#F2C46D"}
	inkRed   = lipgloss.AdaptiveColor{Light: "#B42318", Dark: "#F97066"}
)

var (
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(inkTeal)
	profileStyle = lipgloss.NewStyle().Italic(true).Foreground(inkSoft)
	paramsStyle  = lipgloss.NewStyle().Foreground(inkDim)
	simStyle     = lipgloss.NewStyle().Foreground(inkSoft)
	clockStyle   = lipgloss.NewStyle().Foreground(inkDim)
	lagStyle     = lipgloss.NewStyle().Bold(true).Foreground(inkBrass)
	faultStyle   = lipgloss.NewStyle().Foreground(inkRed)
)
