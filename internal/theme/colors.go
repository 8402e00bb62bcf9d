package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "196" // Red - app name, start arrest
	ColorSecondary Color = "86"  // Cyan - subtitles
)

// Arrest phase colors
const (
	ColorActive  Color = "1"   // Red - arrest in progress
	ColorEnded   Color = "8"   // Gray - resuscitation ended
	ColorPending Color = "245" // Light gray - not started
	ColorRosc    Color = "2"   // Green - spontaneous circulation
)

// CPR timer colors
const (
	ColorCprNormal  Color = "255" // White
	ColorCprPaused  Color = "214" // Orange - analysing rhythm
	ColorCprWarning Color = "196" // Bright red - 10 seconds or less
)

// Event category colors
const (
	ColorEventAirway   Color = "33"  // Blue
	ColorEventAnalysis Color = "214" // Orange
	ColorEventCause    Color = "141" // Purple
	ColorEventCpr      Color = "86"  // Cyan
	ColorEventDrug     Color = "205" // Magenta
	ColorEventEtco2    Color = "39"  // Light blue
	ColorEventRhythm   Color = "226" // Yellow
	ColorEventShock    Color = "208" // Dark orange
	ColorEventStatus   Color = "250" // Default text
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorSuccess   Color = "46"  // Bright green
	ColorVersion   Color = "240" // Dark gray
	ColorWarning   Color = "226" // Yellow
)

// Accent colors
const (
	ColorHelpGroup Color = "141" // Purple
	ColorHintKey   Color = "226" // Yellow - hint keys
	ColorHintLabel Color = "178" // Gold - hint labels
)
