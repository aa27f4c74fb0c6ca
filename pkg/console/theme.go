package console

import (
	"charm.land/lipgloss/v2"
)

// Color palette, ANSI 256.
var (
	ColorAccent    = lipgloss.Color("141")
	ColorText      = lipgloss.Color("252")
	ColorTextMuted = lipgloss.Color("245")
	ColorBright    = lipgloss.Color("15")
	ColorError     = lipgloss.Color("196")
	ColorWarning   = lipgloss.Color("214")
	ColorSuccess   = lipgloss.Color("42")
	ColorBorder    = lipgloss.Color("141")
)

var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	TextMutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorBright).
			Background(ColorAccent).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	UserStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	AssistantStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)
