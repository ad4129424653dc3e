package output

import "github.com/charmbracelet/lipgloss"

// Color constants
const (
	colorGreen  = "#04B575"
	colorRed    = "#FF0000"
	colorYellow = "#FFD700"
	colorCyan   = "#00D4FF"
	colorGray6  = "#666666"
)

var (
	repoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorCyan)).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray6))
)
