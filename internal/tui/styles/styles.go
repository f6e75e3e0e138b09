// Package styles holds the lipgloss styles shared by the board, the setup
// form and the plain-text game report.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors, replaced by ApplyTheme
	PrimaryColor   = DefaultPalette().Primary
	SecondaryColor = DefaultPalette().Secondary
	WinnerColor    = DefaultPalette().Winner
	WarningColor   = DefaultPalette().Warning
	MutedColor     = DefaultPalette().Muted
	TextColor      = DefaultPalette().Text
	BorderColor    = DefaultPalette().Border

	// Convenience styles for colors
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Warning   lipgloss.Style
	Muted     lipgloss.Style
	Text      lipgloss.Style

	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Announcement lipgloss.Style // the latest number on the board
	Matched      lipgloss.Style // a ticket slot that has matched
	Unmatched    lipgloss.Style // a ticket slot still waiting
	Winner       lipgloss.Style
	PlayerBox    lipgloss.Style
	HelpText     lipgloss.Style
)

func init() {
	build()
}

// ApplyTheme switches every style to the named theme's palette.
// It is not safe to call while a program is rendering.
func ApplyTheme(name ThemeName) {
	p := GetPalette(name)
	PrimaryColor = p.Primary
	SecondaryColor = p.Secondary
	WinnerColor = p.Winner
	WarningColor = p.Warning
	MutedColor = p.Muted
	TextColor = p.Text
	BorderColor = p.Border
	build()
}

func build() {
	Primary = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning = lipgloss.NewStyle().Foreground(WarningColor)
	Muted = lipgloss.NewStyle().Foreground(MutedColor)
	Text = lipgloss.NewStyle().Foreground(TextColor)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	Announcement = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextColor).
		Background(PrimaryColor).
		Padding(0, 1)

	Matched = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	Unmatched = lipgloss.NewStyle().
		Foreground(MutedColor)

	Winner = lipgloss.NewStyle().
		Bold(true).
		Foreground(WinnerColor)

	PlayerBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	HelpText = lipgloss.NewStyle().
		Foreground(MutedColor)
}
