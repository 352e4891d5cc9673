package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	endStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	cancelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle    = lipgloss.NewStyle().Background(lipgloss.Color("1"))
	warnStyle    = lipgloss.NewStyle().Background(lipgloss.Color("3"))
	confirmStyle = lipgloss.NewStyle().Background(lipgloss.Color("4"))
	mottoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
)

// ConfigureColor drops all styling when output is not an interactive terminal.
func ConfigureColor(interactive bool) {
	if !interactive {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// ColorMotto highlights a line of the zen text
func ColorMotto(text string) string {
	return mottoStyle.Render(text)
}
