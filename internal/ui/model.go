package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aegismedical/eresus/internal/config"
	"github.com/aegismedical/eresus/internal/domain"
	"github.com/aegismedical/eresus/internal/dosage"
	"github.com/aegismedical/eresus/internal/logging"
	"github.com/aegismedical/eresus/internal/services"
	"github.com/aegismedical/eresus/internal/theme"
)

type uiState int

const (
	stateDashboard uiState = iota
	stateDialog
)

// dialogKind says what to do with a dialog's result once it completes
type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogAgeCategory
	dialogCauses
	dialogEtco2
	dialogHelp
	dialogOtherDrug
	dialogReset
	dialogResetAndQuit
)

// tipRotationSeconds is how long each tip stays on the footer
const tipRotationSeconds = 30

// Options configures the dashboard
type Options struct {
	DevMode          bool
	StatusClearDelay time.Duration
}

// Model is the arrest dashboard. It renders published snapshots and forwards
// key presses to the arrest service; it never mutates arrest state itself.
type Model struct {
	arrest        *services.ArrestService
	cancelSub     func()
	devMode       bool
	dialog        *Dialog
	dialogKind    dialogKind
	eventLog      viewport.Model
	height        int
	help          help.Model
	keys          KeyMap
	metronome     *services.Metronome
	notifications *services.NotificationService
	quitting      bool
	snapshot      services.Snapshot
	snapshots     <-chan services.Snapshot
	state         uiState
	status        *StatusLine
	width         int
}

// NewModel creates the dashboard and subscribes it to the arrest service
func NewModel(
	opts Options,
	keysConfig config.KeyBindingsConfig,
	arrest *services.ArrestService,
	metronome *services.Metronome,
	notifications *services.NotificationService,
) *Model {
	if opts.StatusClearDelay <= 0 {
		opts.StatusClearDelay = 10 * time.Second
	}

	snapshots, cancel := arrest.Subscribe()

	return &Model{
		arrest:        arrest,
		cancelSub:     cancel,
		devMode:       opts.DevMode,
		eventLog:      viewport.New(0, 0),
		help:          help.New(),
		keys:          NewKeyMap(keysConfig),
		metronome:     metronome,
		notifications: notifications,
		snapshot:      arrest.Snapshot(),
		snapshots:     snapshots,
		state:         stateDashboard,
		status:        NewStatusLine(opts.StatusClearDelay),
	}
}

func (m *Model) Init() tea.Cmd {
	return waitForSnapshot(m.snapshots)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.eventLog.Width = msg.Width
		if m.dialog != nil {
			_, cmd := m.dialog.Update(m.dialogSize())
			return m, cmd
		}
		return m, nil

	case snapshotMsg:
		m.snapshot = msg.snapshot
		m.eventLog.SetContent(renderEventLog(m.snapshot.Events))
		return m, waitForSnapshot(m.snapshots)

	case subscriptionClosedMsg:
		return m, nil

	case clearStatusMsg:
		m.status.Update(msg)
		return m, nil

	case resetDoneMsg:
		return m.handleResetDone(msg)

	case retryDoneMsg:
		if msg.err != nil {
			return m, m.status.SetError(fmt.Errorf("logs still unsaved: %w", msg.err))
		}
		return m, m.status.SetNotice("All unsaved logs stored")
	}

	switch m.state {
	case stateDialog:
		return m.updateDialog(msg)
	default:
		return m.updateDashboard(msg)
	}
}

func (m *Model) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	app := m.keys.Application
	arrest := m.keys.Arrest
	treatment := m.keys.Treatment
	timing := m.keys.Timing

	switch {
	case key.Matches(keyMsg, app.ForceQuit.Binding):
		return m.quit()
	case key.Matches(keyMsg, app.Quit.Binding):
		if m.snapshot.Phase.Started() {
			return m.openDialog(dialogResetAndQuit, "Save before quitting?", NewResetForm(true))
		}
		if m.snapshot.UnsavedLogs > 0 {
			return m, m.status.SetError(fmt.Errorf("%d arrest log(s) not saved: press %s to retry or %s to quit anyway",
				m.snapshot.UnsavedLogs, app.RetrySave.Binding.Help().Key, app.ForceQuit.Binding.Help().Key))
		}
		return m.quit()
	case key.Matches(keyMsg, app.Help.Binding):
		return m.openDialog(dialogHelp, "Help", NewHelpScreen(&m.keys))
	case key.Matches(keyMsg, app.Reset.Binding):
		return m.openDialog(dialogReset, "Reset", NewResetForm(m.snapshot.Phase.Started()))
	case key.Matches(keyMsg, app.RetrySave.Binding):
		return m, m.retryCmd()

	case key.Matches(keyMsg, arrest.StartArrest.Binding):
		return m, m.report(m.arrest.StartArrest())
	case key.Matches(keyMsg, arrest.Analyse.Binding):
		return m, m.report(m.arrest.AnalyseRhythm())
	case key.Matches(keyMsg, arrest.RhythmVF.Binding):
		return m, m.report(m.arrest.LogRhythm("VF", true))
	case key.Matches(keyMsg, arrest.RhythmPVT.Binding):
		return m, m.report(m.arrest.LogRhythm("pVT", true))
	case key.Matches(keyMsg, arrest.RhythmPEA.Binding):
		return m, m.report(m.arrest.LogRhythm("PEA", false))
	case key.Matches(keyMsg, arrest.RhythmAsystole.Binding):
		return m, m.report(m.arrest.LogRhythm("Asystole", false))
	case key.Matches(keyMsg, arrest.Shock.Binding):
		return m, m.report(m.arrest.DeliverShock())
	case key.Matches(keyMsg, arrest.Rosc.Binding):
		err := m.arrest.AchieveRosc()
		if err == nil {
			m.metronome.Stop()
		}
		return m, m.report(err)
	case key.Matches(keyMsg, arrest.ReArrest.Binding):
		return m, m.report(m.arrest.ReArrest())
	case key.Matches(keyMsg, arrest.EndArrest.Binding):
		err := m.arrest.EndArrest()
		if err == nil {
			m.metronome.Stop()
		}
		return m, m.report(err)

	case key.Matches(keyMsg, treatment.Adrenaline.Binding):
		dose, err := m.arrest.LogAdrenaline()
		return m, m.reportDose("Adrenaline", dose, err)
	case key.Matches(keyMsg, treatment.Amiodarone.Binding):
		dose, err := m.arrest.LogAmiodarone()
		return m, m.reportDose("Amiodarone", dose, err)
	case key.Matches(keyMsg, treatment.Lidocaine.Binding):
		dose, err := m.arrest.LogLidocaine()
		return m, m.reportDose("Lidocaine", dose, err)
	case key.Matches(keyMsg, treatment.OtherDrug.Binding):
		options := make([]PickOption, 0, len(domain.OtherDrugs()))
		for _, d := range domain.OtherDrugs() {
			options = append(options, PickOption{Label: d, Value: d})
		}
		return m.openDialog(dialogOtherDrug, "Other Drug", NewPickForm("Drug given", options, ""))
	case key.Matches(keyMsg, treatment.Airway.Binding):
		return m, m.report(m.arrest.LogAirway())
	case key.Matches(keyMsg, treatment.Etco2.Binding):
		return m.openDialog(dialogEtco2, "ETCO2", NewEtco2Form())
	case key.Matches(keyMsg, treatment.Causes.Binding):
		form := NewPickForm("Toggle a reversible cause", causeOptions(m.snapshot.Causes), "")
		return m.openDialog(dialogCauses, "Reversible Causes", form)

	case key.Matches(keyMsg, timing.AgeCategory.Binding):
		options := []PickOption{{Label: "Not set", Value: ""}}
		for _, c := range dosage.Categories {
			options = append(options, PickOption{Label: c.Description(), Value: string(c)})
		}
		form := NewPickForm("Patient age", options, string(m.snapshot.AgeCategory))
		return m.openDialog(dialogAgeCategory, "Patient Age", form)
	case key.Matches(keyMsg, timing.Metronome.Binding):
		if m.metronome.Toggle() {
			return m, m.status.SetNotice(fmt.Sprintf("Metronome on (%d bpm)", m.arrest.Config().MetronomeBPM))
		}
		return m, m.status.SetNotice("Metronome off")
	case key.Matches(keyMsg, timing.Mute.Binding):
		if m.notifications.ToggleMute() {
			return m, m.status.SetNotice("Alerts muted")
		}
		return m, m.status.SetNotice("Alerts unmuted")
	case key.Matches(keyMsg, timing.OffsetAdd.Binding):
		return m, m.report(m.arrest.AddTimeOffset(time.Minute))
	case key.Matches(keyMsg, timing.OffsetSubtract.Binding):
		return m, m.report(m.arrest.AddTimeOffset(-time.Minute))
	}

	// Anything else scrolls the event log
	var cmd tea.Cmd
	m.eventLog, cmd = m.eventLog.Update(msg)
	return m, cmd
}

func (m *Model) openDialog(kind dialogKind, title string, content completable) (tea.Model, tea.Cmd) {
	m.dialog = NewDialog(title, content, m.devMode)
	m.dialogKind = kind
	m.state = stateDialog

	initCmd := m.dialog.Init()
	_, sizeCmd := m.dialog.Update(m.dialogSize())
	return m, tea.Batch(initCmd, sizeCmd)
}

func (m *Model) dialogSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.width, Height: m.height}
}

func (m *Model) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.dialog.Update(msg)
	if !m.dialog.Done() {
		return m, cmd
	}

	dialog, kind := m.dialog, m.dialogKind
	m.dialog = nil
	m.dialogKind = dialogNone
	m.state = stateDashboard

	switch content := dialog.Content().(type) {
	case *ResetForm:
		result := content.Result()
		if result.Cancelled {
			return m, nil
		}
		return m, m.resetCmd(result.Options, kind == dialogResetAndQuit)

	case *PickForm:
		value, ok := content.Result()
		if !ok {
			return m, nil
		}
		switch kind {
		case dialogOtherDrug:
			return m, m.report(m.arrest.LogOtherDrug(value))
		case dialogCauses:
			return m, m.report(m.arrest.ToggleCause(value))
		case dialogAgeCategory:
			return m, m.report(m.arrest.SetPatientAgeCategory(dosage.AgeCategory(value)))
		}

	case *Etco2Form:
		if reading, ok := content.Result(); ok {
			return m, m.report(m.arrest.LogEtco2(reading))
		}
	}

	return m, nil
}

// report shows err on the status line; a nil error leaves the status untouched
func (m *Model) report(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	var transition *domain.TransitionError
	if errors.As(err, &transition) {
		logging.Logger.Debug("Action not available", "operation", transition.Operation, "phase", transition.Phase)
	} else {
		logging.Logger.Warn("Action failed", "error", err)
	}
	return m.status.SetError(err)
}

// reportDose shows the dose prompt for a logged drug
func (m *Model) reportDose(drug string, dose dosage.Dose, err error) tea.Cmd {
	if err != nil {
		return m.report(err)
	}
	switch dose.Status {
	case dosage.Resolved:
		return m.status.SetNotice(fmt.Sprintf("%s dose: %s", drug, dose.Text))
	case dosage.NotApplicable:
		return m.status.SetNotice(fmt.Sprintf("%s is not given at this age", drug))
	default:
		return nil
	}
}

func (m *Model) resetCmd(opts services.ResetOptions, quit bool) tea.Cmd {
	arrest := m.arrest
	metronome := m.metronome
	return func() tea.Msg {
		metronome.Stop()
		return resetDoneMsg{
			quit:   quit,
			result: arrest.PerformReset(context.Background(), opts),
			saved:  opts.Save,
		}
	}
}

func (m *Model) handleResetDone(msg resetDoneMsg) (tea.Model, tea.Cmd) {
	if err := msg.result.Err(); err != nil {
		if msg.quit && msg.result.SaveErr != nil {
			// The log is only queued in memory; stay so it can be retried
			return m, m.status.SetError(fmt.Errorf("%w (press %s to retry before quitting)",
				err, m.keys.Application.RetrySave.Binding.Help().Key))
		}
		if !msg.quit {
			return m, m.status.SetError(err)
		}
	}

	if msg.quit {
		return m.quit()
	}
	if msg.result.Log != nil && msg.saved {
		return m, m.status.SetNotice(fmt.Sprintf("Arrest log %s saved (%s)", shortID(msg.result.Log.ID), msg.result.Log.Outcome))
	}
	return m, m.status.SetNotice("Arrest reset")
}

func (m *Model) retryCmd() tea.Cmd {
	arrest := m.arrest
	return func() tea.Msg {
		return retryDoneMsg{err: arrest.RetryUnsaved(context.Background())}
	}
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.metronome.Stop()
	m.cancelSub()
	return m, tea.Quit
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	dashboard := m.renderDashboard()
	if m.state == stateDialog && m.dialog != nil {
		if _, isHelp := m.dialog.Content().(*HelpScreen); isHelp {
			return m.dialog.View()
		}
		return compositeOverlay(dashboard, theme.PanelStyle.Render(m.dialog.View()), m.width, m.height)
	}
	return dashboard
}

func (m *Model) renderDashboard() string {
	snap := m.snapshot
	cycle := m.arrest.Config().CycleDuration.Seconds()

	var top strings.Builder
	top.WriteString(renderStatusBar(snap, m.metronome.Running(), m.notifications.Muted()) + "\n\n")
	top.WriteString(renderMainPanel(snap, cycle, &m.keys) + "\n\n")
	if snap.Phase.Started() {
		top.WriteString(renderCounters(snap.Counters) + "\n")
		if due := renderAdrenalineDue(snap); due != "" {
			top.WriteString(due + "\n")
		}
		top.WriteString(renderCauses(snap.Causes) + "\n")
	}
	if snap.UnsavedLogs > 0 {
		top.WriteString(theme.WarningStyle.Render(fmt.Sprintf("%d arrest log(s) not saved - press %s to retry",
			snap.UnsavedLogs, m.keys.Application.RetrySave.Binding.Help().Key)) + "\n")
	}
	top.WriteString(theme.SubtitleStyle.Render("Event Log"))

	var bottom strings.Builder
	if status := m.status.View(m.width); status != "" {
		bottom.WriteString(status + "\n")
	} else if tip := m.currentTip(); tip != "" {
		bottom.WriteString(tip + "\n")
	}
	bottom.WriteString(m.help.ShortHelpView(m.keys.ShortHelp(snap.Phase, snap.Mode)))

	topView := top.String()
	bottomView := bottom.String()
	m.eventLog.Height = max(m.height-lipgloss.Height(topView)-lipgloss.Height(bottomView)-2, 3)

	return topView + "\n" + m.eventLog.View() + "\n" + bottomView
}

// currentTip rotates through the registered tips while the arrest is not running
func (m *Model) currentTip() string {
	all := GetTips()
	if len(all) == 0 || m.snapshot.Phase == domain.PhaseActive {
		return ""
	}
	idx := int(time.Now().Unix()/tipRotationSeconds) % len(all)
	return RenderTip(all[idx])
}
