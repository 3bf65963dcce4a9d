package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan  = lipgloss.Color("36")  // Teal - headings, selection
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - table headers
	colorDim   = lipgloss.Color("240") // Dim gray - borders, help
)

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleSelected = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleCell     = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess  = lipgloss.NewStyle().Foreground(colorGreen)
	styleError    = lipgloss.NewStyle().Foreground(colorRed)

	stylePane        = lipgloss.NewStyle().Padding(1, 2)
	styleFocusedPane = stylePane.Border(lipgloss.RoundedBorder()).BorderForeground(colorCyan)
	styleBlurredPane = stylePane.Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)
