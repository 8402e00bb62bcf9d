package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// dimStyle greys out the dashboard behind an open dialog
var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// compositeOverlay renders overlay centered on top of a dimmed background.
// The running timers stay visible, dimmed, while a dialog is open.
func compositeOverlay(background, overlay string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	overlayLines := strings.Split(overlay, "\n")

	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	for i := range bgLines {
		line := dimStyle.Render(stripAnsi(bgLines[i]))
		if w := lipgloss.Width(line); w < width {
			line += strings.Repeat(" ", width-w)
		}
		bgLines[i] = line
	}

	overlayWidth := 0
	for _, line := range overlayLines {
		if w := lipgloss.Width(line); w > overlayWidth {
			overlayWidth = w
		}
	}

	startX := max((width-overlayWidth)/2, 0)
	startY := max((height-len(overlayLines))/2, 0)

	for i, overlayLine := range overlayLines {
		y := startY + i
		if y >= len(bgLines) {
			break
		}
		rightPad := max(width-startX-lipgloss.Width(overlayLine), 0)
		bgLines[y] = dimStyle.Render(strings.Repeat(" ", startX)) +
			overlayLine +
			dimStyle.Render(strings.Repeat(" ", rightPad))
	}

	return strings.Join(bgLines, "\n")
}

// stripAnsi removes ANSI escape codes from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false

	for i := 0; i < len(s); i++ {
		if s[i] == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (s[i] >= 'A' && s[i] <= 'Z') || (s[i] >= 'a' && s[i] <= 'z') {
				inEscape = false
			}
			continue
		}
		result.WriteByte(s[i])
	}

	return result.String()
}
