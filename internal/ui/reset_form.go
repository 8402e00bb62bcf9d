package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/aegismedical/eresus/internal/services"
)

type resetChoice int

const (
	resetCopySave resetChoice = iota
	resetSave
	resetDiscard
	resetCancel
)

// ResetFormResult contains the choice made in the reset dialog
type ResetFormResult struct {
	Cancelled bool
	Options   services.ResetOptions
}

// ResetForm asks how the current arrest log should be handled before a reset
type ResetForm struct {
	Completed bool
	choice    resetChoice
	form      *huh.Form
	result    ResetFormResult
}

// NewResetForm creates a new reset dialog. started reports whether there is a log to save.
func NewResetForm(started bool) *ResetForm {
	rf := &ResetForm{}

	options := []huh.Option[resetChoice]{
		huh.NewOption("Copy summary, save & reset", resetCopySave),
		huh.NewOption("Save & reset", resetSave),
		huh.NewOption("Reset without saving", resetDiscard),
		huh.NewOption("Cancel", resetCancel),
	}
	description := "The current log is saved to history. This cannot be undone."
	if !started {
		options = []huh.Option[resetChoice]{
			huh.NewOption("Reset", resetDiscard),
			huh.NewOption("Cancel", resetCancel),
		}
		description = "No arrest has been started."
	}

	rf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[resetChoice]().
				Title("Reset arrest log?").
				Description(description).
				Options(options...).
				Value(&rf.choice),
		),
	)

	return rf
}

func (rf *ResetForm) Init() tea.Cmd {
	return rf.form.Init()
}

func (rf *ResetForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			rf.result.Cancelled = true
			rf.Completed = true
			return rf, nil
		}
	}

	form, cmd := rf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		rf.form = f
	}

	if rf.form.State == huh.StateCompleted {
		rf.Completed = true
		switch rf.choice {
		case resetCopySave:
			rf.result.Options = services.ResetOptions{ExportSummary: true, Save: true}
		case resetSave:
			rf.result.Options = services.ResetOptions{Save: true}
		case resetDiscard:
			rf.result.Options = services.ResetOptions{}
		default:
			rf.result.Cancelled = true
		}
		return rf, nil
	}

	return rf, cmd
}

func (rf *ResetForm) View() string {
	return rf.form.View()
}

// Done implements completable
func (rf *ResetForm) Done() bool {
	return rf.Completed
}

// Result returns the form result
func (rf *ResetForm) Result() ResetFormResult {
	return rf.result
}
