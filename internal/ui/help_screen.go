package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aegismedical/eresus/internal/theme"
)

// helpGroupTitles names the groups returned by KeyMap.FullHelp, in order
var helpGroupTitles = []string{"Arrest", "Treatment", "Timing & Feedback", "Application"}

// HelpScreen displays keyboard shortcuts organized by category
type HelpScreen struct {
	Completed   bool
	content     string
	initialized bool
	keys        *KeyMap
	viewport    viewport.Model
}

// renderShortcut renders a single shortcut line with key and description
func renderShortcut(key, description string) string {
	return theme.HelpKeyStyle.Render(key) + theme.HelpDescStyle.Render(description) + "\n"
}

// renderBinding renders a single shortcut line from a key binding
func renderBinding(binding key.Binding) string {
	help := binding.Help()
	return renderShortcut(help.Key, help.Desc)
}

// buildHelpContent builds the complete help text content using key bindings
func buildHelpContent(keys *KeyMap) string {
	var content strings.Builder

	for i, group := range keys.FullHelp() {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(theme.HelpGroupStyle.Render(helpGroupTitles[i]) + "\n")
		for _, binding := range group {
			content.WriteString(renderBinding(binding))
		}
	}

	content.WriteString("\n" + theme.HelpGroupStyle.Render("CPR Timer (read-only)") + "\n")
	content.WriteString(renderShortcut("white", "cycle running"))
	content.WriteString(renderShortcut("red", "10 seconds or less left in the cycle"))
	content.WriteString(renderShortcut("orange", "paused for rhythm analysis"))

	if len(GetTips()) > 0 {
		content.WriteString("\n" + theme.HelpGroupStyle.Render("Tips") + "\n")
		for _, tip := range GetTips() {
			content.WriteString(RenderTip(tip) + "\n")
		}
	}

	return content.String()
}

// NewHelpScreen creates a new help screen component
func NewHelpScreen(keys *KeyMap) *HelpScreen {
	return &HelpScreen{
		content:  buildHelpContent(keys),
		keys:     keys,
		viewport: viewport.New(0, 0),
	}
}

// Init implements tea.Model
func (h *HelpScreen) Init() tea.Cmd {
	h.viewport.KeyMap.Up.SetKeys("up", "k")
	h.viewport.KeyMap.Down.SetKeys("down", "j")
	return nil
}

// Update implements tea.Model
func (h *HelpScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Dialog header: 5 lines, footer: 3 lines
		h.viewport.Width = msg.Width
		h.viewport.Height = max(msg.Height-8, 5)
		h.viewport.SetContent(h.content)
		h.initialized = true
		return h, nil

	case tea.KeyMsg:
		if msg.String() == "esc" || key.Matches(msg, h.keys.Application.Quit.Binding, h.keys.Application.Help.Binding) {
			h.Completed = true
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

// View implements tea.Model
func (h *HelpScreen) View() string {
	if !h.initialized {
		return "Loading help..."
	}

	footer := theme.HelpStyle.Render("Press esc, q, h, or ? to close • ↑↓/jk/PgUp/PgDn to scroll")
	return h.viewport.View() + "\n" + footer
}

// Done implements completable
func (h *HelpScreen) Done() bool {
	return h.Completed
}
