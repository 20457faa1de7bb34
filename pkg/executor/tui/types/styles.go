package types

import "github.com/charmbracelet/lipgloss"

// Shared color palette for overlay rendering.
// These mirror the TUI package palette so overlays stay visually consistent.
var (
	SalmonPink  = lipgloss.Color("#FFB3BA") // Primary accent
	CoralPink   = lipgloss.Color("#FFCCCB") // Secondary accent
	MintGreen   = lipgloss.Color("#A8E6CF") // Success/accept states
	MutedGray   = lipgloss.Color("#6B7280") // Secondary text
	BrightWhite = lipgloss.Color("#F9FAFB") // Primary text
	DarkBg      = lipgloss.Color("#1F2937") // Input field background
)

// Common overlay styles
var (
	// OverlayTitleStyle is used for main overlay titles
	OverlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(SalmonPink)

	// OverlaySubtitleStyle is used for overlay subtitles and secondary text
	OverlaySubtitleStyle = lipgloss.NewStyle().
				Foreground(MutedGray)

	// OverlayHelpStyle is used for help text and hints
	OverlayHelpStyle = lipgloss.NewStyle().
				Foreground(MutedGray).
				Italic(true)
)

// CreateOverlayContainerStyle returns the standard bordered container for
// overlay content at the given content width.
func CreateOverlayContainerStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SalmonPink).
		Padding(1, 2).
		Width(width + 6)
}
