package ui

import tea "github.com/charmbracelet/bubbletea"

// completable is implemented by dialog contents that finish on their own
type completable interface {
	tea.Model
	Done() bool
}

// Dialog wraps a form and prepends the application header with the dialog title.
// Every modal in the dashboard goes through it so headers stay consistent.
type Dialog struct {
	content completable
	devMode bool
	title   string
}

// NewDialog creates a new dialog wrapper around content
func NewDialog(title string, content completable, devMode bool) *Dialog {
	return &Dialog{
		content: content,
		devMode: devMode,
		title:   title,
	}
}

// Init delegates to wrapped content's Init method.
func (d *Dialog) Init() tea.Cmd {
	return d.content.Init()
}

// Update delegates to wrapped content's Update method.
func (d *Dialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := d.content.Update(msg)
	if c, ok := updated.(completable); ok {
		d.content = c
	}
	return d, cmd
}

// View prepends the dialog header to the wrapped content's view.
func (d *Dialog) View() string {
	return renderDialogHeader(d.devMode, d.title) + "\n" + d.content.View()
}

// Done reports whether the wrapped content has finished
func (d *Dialog) Done() bool {
	return d.content.Done()
}

// Content returns the wrapped content for type assertion after completion.
func (d *Dialog) Content() tea.Model {
	return d.content
}
