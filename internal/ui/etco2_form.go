package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// maxEtco2 is the highest plausible end-tidal CO2 reading in mmHg
const maxEtco2 = 150

// Etco2Form asks for an end-tidal CO2 reading
type Etco2Form struct {
	Completed bool
	cancelled bool
	form      *huh.Form
	input     string
}

// NewEtco2Form creates a new ETCO2 reading dialog
func NewEtco2Form() *Etco2Form {
	ef := &Etco2Form{}

	ef.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("ETCO2 reading (mmHg)").
				Placeholder("35").
				Value(&ef.input).
				Validate(validateEtco2),
		),
	)

	return ef
}

func validateEtco2(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if v < 0 || v > maxEtco2 {
		return fmt.Errorf("reading must be between 0 and %d", maxEtco2)
	}
	return nil
}

func (ef *Etco2Form) Init() tea.Cmd {
	return ef.form.Init()
}

func (ef *Etco2Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			ef.cancelled = true
			ef.Completed = true
			return ef, nil
		}
	}

	form, cmd := ef.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		ef.form = f
	}

	if ef.form.State == huh.StateCompleted {
		ef.Completed = true
		return ef, nil
	}

	return ef, cmd
}

func (ef *Etco2Form) View() string {
	return ef.form.View()
}

// Done implements completable
func (ef *Etco2Form) Done() bool {
	return ef.Completed
}

// Result returns the reading, or ok=false when the dialog was cancelled
func (ef *Etco2Form) Result() (int, bool) {
	if ef.cancelled {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(ef.input))
	if err != nil {
		return 0, false
	}
	return v, true
}
