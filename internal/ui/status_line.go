package ui

import (
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aegismedical/eresus/internal/theme"
)

const (
	maxStatusLines = 2
	errorPrefix    = "Error: "
	truncationMark = "..."
)

// clearStatusMsg is sent after the clear delay. Only the message matching the
// latest status clears it, so a newer status survives an older timer.
type clearStatusMsg struct {
	seq int
}

// StatusLine shows the latest error or notice under the dashboard and clears it after a delay
type StatusLine struct {
	clearDelay time.Duration
	err        error
	notice     string
	seq        int
}

// NewStatusLine creates a status line with the given auto-clear delay
func NewStatusLine(clearDelay time.Duration) *StatusLine {
	return &StatusLine{clearDelay: clearDelay}
}

// SetError replaces the status with err and schedules its removal
func (s *StatusLine) SetError(err error) tea.Cmd {
	s.err = err
	s.notice = ""
	return s.clearAfterDelay()
}

// SetNotice replaces the status with an informational message and schedules its removal
func (s *StatusLine) SetNotice(notice string) tea.Cmd {
	s.err = nil
	s.notice = notice
	return s.clearAfterDelay()
}

// Err returns the error currently displayed
func (s *StatusLine) Err() error {
	return s.err
}

// Notice returns the notice currently displayed
func (s *StatusLine) Notice() string {
	return s.notice
}

// Update clears the status when its timer fires
func (s *StatusLine) Update(msg clearStatusMsg) {
	if msg.seq != s.seq {
		return
	}
	s.err = nil
	s.notice = ""
}

// View renders the status wrapped to width
func (s *StatusLine) View(width int) string {
	switch {
	case s.err != nil:
		return theme.ErrorStyle.Render(formatErrorForDisplay(s.err, width))
	case s.notice != "":
		return theme.NoticeStyle.Render(wrapStatus("", s.notice, width))
	default:
		return ""
	}
}

func (s *StatusLine) clearAfterDelay() tea.Cmd {
	s.seq++
	seq := s.seq
	return tea.Tick(s.clearDelay, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// formatErrorForDisplay limits an error to maxStatusLines lines of width,
// accounting for the "Error: " prefix and truncating with "..." when needed.
func formatErrorForDisplay(err error, maxWidth int) string {
	if err == nil {
		return ""
	}
	message := err.Error()
	if message == "" {
		return errorPrefix + "unknown error"
	}
	return wrapStatus(errorPrefix, message, maxWidth)
}

// wrapStatus word-wraps prefix+message into at most maxStatusLines lines
func wrapStatus(prefix, message string, maxWidth int) string {
	width := maxWidth
	if width < 10 {
		width = 10
	}

	words := strings.Fields(message)
	if len(words) == 0 {
		return prefix + message
	}

	var (
		lines     []string
		current   strings.Builder
		truncated bool
	)
	lineWidth := width - utf8.RuneCountInString(prefix)
	if lineWidth < 10 {
		lineWidth = 10
	}

	for i, word := range words {
		currentLen := utf8.RuneCountInString(current.String())
		if currentLen > 0 && currentLen+1+utf8.RuneCountInString(word) > lineWidth {
			lines = append(lines, current.String())
			current.Reset()
			if len(lines) >= maxStatusLines {
				truncated = i < len(words)
				break
			}
			lineWidth = width
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 && len(lines) < maxStatusLines {
		lines = append(lines, current.String())
	}

	if truncated {
		last := []rune(lines[len(lines)-1])
		keep := width - utf8.RuneCountInString(truncationMark)
		if len(last) > keep && keep > 0 {
			last = last[:keep]
		}
		lines[len(lines)-1] = string(last) + truncationMark
	}

	return prefix + strings.Join(lines, "\n")
}
