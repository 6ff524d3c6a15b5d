// Package tui renders the pronunciation map in the terminal: the full
// syllable table and an interactive lookup screen.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - titles, errors
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - subtitles, finals
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - characters
	ColorMuted     = lipgloss.Color("#666666") // Gray - help text, empty cells
	ColorSuccess   = lipgloss.Color("#a8e6cf") // Green - tones, copied
	ColorText      = lipgloss.Color("#f1faee") // Light text
	ColorLabel     = lipgloss.Color("#a8dadc") // Label color
	ColorBg        = lipgloss.Color("#1a1a2e") // Dark background, text on cell colours
	ColorBgAlt     = lipgloss.Color("#2d3436") // Alt background
	ColorBorder    = lipgloss.Color("#3d5a80") // Border color
)

// Title styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorBg).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)

// Character display styles
var (
	CharacterLargeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				Background(ColorBgAlt).
				Padding(1, 4).
				Margin(1, 0).
				Align(lipgloss.Center)

	CharTabStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 2).
			Margin(0, 1)

	CharTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				Background(ColorBgAlt).
				Padding(0, 2).
				Margin(0, 1)

	CharTabJyutpingStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Italic(true)

	WordNavStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true).
			Padding(0, 1)

	WordDisplayStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorAccent).
				Padding(0, 2).
				Margin(1, 0)
)

// Breakdown styles
var (
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorLabel).
			Bold(true).
			Width(14)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	InitialStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	FinalStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	ToneStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)
)

// Table styles
var (
	HeaderCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorLabel)

	EmptyCellStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	MarkedCellStyle = lipgloss.NewStyle().
			Bold(true).
			Reverse(true)
)

// Status styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	CopiedStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)
)

// cellStyle colours a table cell with its consonant group colour.
func cellStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ColorBg).
		Background(lipgloss.Color(hex))
}
