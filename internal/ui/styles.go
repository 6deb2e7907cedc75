package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - single lime accent over grays.
const (
	ColorLime     = "154" // Primary accent - selection, header
	ColorLimeDim  = "106" // Dimmed lime - scores
	ColorWhite    = "255" // Titles
	ColorGray     = "245" // Creators, years
	ColorDarkGray = "238" // Separators, hints
	ColorRed      = "196" // Errors
)

// Styles holds all UI styles for the picker.
type Styles struct {
	Header     lipgloss.Style
	Title      lipgloss.Style
	Selected   lipgloss.Style
	Meta       lipgloss.Style
	Score      lipgloss.Style
	Attachment lipgloss.Style
	Dim        lipgloss.Style
	Error      lipgloss.Style
}

// DefaultStyles returns styled components for interactive mode.
func DefaultStyles() Styles {
	return Styles{
		Header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Title:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWhite)),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Meta:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Score:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLimeDim)),
		Attachment: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
	}
}

// NoColorStyles returns unstyled components for plain terminals.
func NoColorStyles() Styles {
	return Styles{
		Header:     lipgloss.NewStyle(),
		Title:      lipgloss.NewStyle(),
		Selected:   lipgloss.NewStyle().Bold(true),
		Meta:       lipgloss.NewStyle(),
		Score:      lipgloss.NewStyle(),
		Attachment: lipgloss.NewStyle(),
		Dim:        lipgloss.NewStyle(),
		Error:      lipgloss.NewStyle(),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
