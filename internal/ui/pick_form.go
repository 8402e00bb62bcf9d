package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// PickOption is one entry of a PickForm
type PickOption struct {
	Label string
	Value string
}

// PickForm lets the user choose one value from a list (other drugs, reversible causes, age)
type PickForm struct {
	Completed bool
	cancelled bool
	form      *huh.Form
	value     string
}

// NewPickForm creates a selection dialog. selected preselects a value when non-empty.
func NewPickForm(title string, options []PickOption, selected string) *PickForm {
	pf := &PickForm{value: selected}

	huhOptions := make([]huh.Option[string], len(options))
	for i, o := range options {
		huhOptions[i] = huh.NewOption(o.Label, o.Value)
	}

	pf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(huhOptions...).
				Height(min(len(options)+2, 12)).
				Value(&pf.value),
		),
	)

	return pf
}

func (pf *PickForm) Init() tea.Cmd {
	return pf.form.Init()
}

func (pf *PickForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			pf.cancelled = true
			pf.Completed = true
			return pf, nil
		}
	}

	form, cmd := pf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		pf.form = f
	}

	if pf.form.State == huh.StateCompleted {
		pf.Completed = true
		return pf, nil
	}

	return pf, cmd
}

func (pf *PickForm) View() string {
	return pf.form.View()
}

// Done implements completable
func (pf *PickForm) Done() bool {
	return pf.Completed
}

// Result returns the chosen value, or ok=false when the dialog was cancelled
func (pf *PickForm) Result() (string, bool) {
	return pf.value, !pf.cancelled
}
