package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent    = lipgloss.Color("#2E86DE")
	highlight = lipgloss.Color("#54A0FF")
	muted     = lipgloss.Color("#6B7280")
	warn      = lipgloss.Color("#FFB84D")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginTop(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(muted).
			MarginBottom(1)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(warn)

	CheckedStyle = lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4757")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2ED573")).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(muted).
			Width(16)

	HelpStyle = lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1)

	HelpInlineStyle = lipgloss.NewStyle().
			Foreground(muted)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2)
)
