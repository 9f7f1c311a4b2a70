package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the lipgloss styles for the simulator.
type Styles struct {
	// Layout
	App   lipgloss.Style
	Title lipgloss.Style

	// Watch face
	Bezel           lipgloss.Style
	BezelFullscreen lipgloss.Style
	Pixels          lipgloss.Style

	// Footer
	StatusBar lipgloss.Style
	Muted     lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75")), // Soft blue

		Bezel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		BezelFullscreen: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("178")), // Amber while fullscreen
		Pixels: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("0")),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
	}
}
