package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aegismedical/eresus/internal/domain"
)

// Main UI styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)
)

// Timer styles
var (
	CprTimerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCprNormal)

	CprPausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCprPaused)

	CprWarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCprWarning)

	TotalTimeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)
)

// Counter styles
var (
	CounterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorSubtle)

	CounterValueStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Bold(true)
)

// Checklist styles
var (
	CheckedStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	UncheckedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Dialog header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Help screen styles
var (
	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	HelpGroupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHelpGroup).
			MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Width(25)
)

// Tip styles
var (
	TipKeyStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	TipTextStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)
)

// Hint styles
var (
	HintKeyStyle = lipgloss.NewStyle().
			Foreground(ColorHintKey).
			Bold(true)

	HintLabelStyle = lipgloss.NewStyle().
			Foreground(ColorHintLabel)
)

// Status line styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)
)

// PhaseStyle returns the badge style for an arrest phase
func PhaseStyle(phase domain.ArrestPhase) lipgloss.Style {
	color := ColorPending
	switch phase {
	case domain.PhaseActive:
		color = ColorActive
	case domain.PhaseRosc:
		color = ColorRosc
	case domain.PhaseEnded:
		color = ColorEnded
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}

// EventStyle returns the style for an event log line of the given category
func EventStyle(category domain.EventCategory) lipgloss.Style {
	color := ColorEventStatus
	switch category {
	case domain.CategoryAirway:
		color = ColorEventAirway
	case domain.CategoryAnalysis:
		color = ColorEventAnalysis
	case domain.CategoryCause:
		color = ColorEventCause
	case domain.CategoryCpr:
		color = ColorEventCpr
	case domain.CategoryDrug:
		color = ColorEventDrug
	case domain.CategoryEtco2:
		color = ColorEventEtco2
	case domain.CategoryRhythm:
		color = ColorEventRhythm
	case domain.CategoryShock:
		color = ColorEventShock
	}
	return lipgloss.NewStyle().Foreground(color)
}
