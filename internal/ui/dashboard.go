package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aegismedical/eresus/internal/domain"
	"github.com/aegismedical/eresus/internal/services"
	"github.com/aegismedical/eresus/internal/theme"
)

const (
	cprBarWidth       = 40
	cprWarningSeconds = 10
)

// counterLabels are the dashboard captions for each session counter
var counterLabels = map[string]string{
	domain.CounterAdrenaline: "Adrenaline",
	domain.CounterAirway:     "Airway",
	domain.CounterAmiodarone: "Amiodarone",
	domain.CounterLidocaine:  "Lidocaine",
	domain.CounterOtherDrug:  "Other drugs",
	domain.CounterShock:      "Shocks",
}

// renderStatusBar shows the phase, the arrest clock and feedback indicators
func renderStatusBar(snap services.Snapshot, metronomeOn, muted bool) string {
	parts := []string{
		theme.AppNameStyle.Render("eResus"),
		theme.PhaseStyle(snap.Phase).Render(strings.ToUpper(phaseLabel(snap.Phase))),
		theme.LabelStyle.Render("Arrest time ") + theme.TotalTimeStyle.Render(domain.FormatDuration(snap.TotalArrestTime)),
	}
	if snap.TimeOffsetSeconds != 0 {
		parts = append(parts, theme.LabelStyle.Render(fmt.Sprintf("(offset +%s)", domain.FormatDuration(snap.TimeOffsetSeconds))))
	}
	if snap.AgeCategory != "" {
		parts = append(parts, theme.LabelStyle.Render("Age ")+theme.NormalStyle.Render(snap.AgeCategory.Description()))
	}
	if metronomeOn {
		parts = append(parts, theme.HintLabelStyle.Render("♪ metronome"))
	}
	if muted {
		parts = append(parts, theme.LabelStyle.Render("alerts muted"))
	}
	return strings.Join(parts, "  ")
}

func phaseLabel(phase domain.ArrestPhase) string {
	switch phase {
	case domain.PhaseActive:
		return "Arrest in progress"
	case domain.PhaseRosc:
		return "ROSC"
	case domain.PhaseEnded:
		return "Ended"
	default:
		return "Ready"
	}
}

// renderMainPanel renders the part of the dashboard that depends on the phase
func renderMainPanel(snap services.Snapshot, cycle float64, keys *KeyMap) string {
	switch snap.Phase {
	case domain.PhasePending:
		hint := keys.Arrest.StartArrest.Binding.Help().Key
		return theme.HintLabelStyle.Render("Press ") + theme.HintKeyStyle.Render(hint) +
			theme.HintLabelStyle.Render(" to start the arrest timer")
	case domain.PhaseActive:
		return renderCprTimer(snap, cycle, keys)
	case domain.PhaseRosc:
		return renderChecklist("Post-ROSC care", domain.PostRoscTasks, nil)
	default:
		return theme.PhaseStyle(domain.PhaseEnded).Render(
			"Resuscitation ended at " + domain.FormatDuration(snap.TotalArrestTime))
	}
}

// renderCprTimer draws the CPR countdown with a progress bar
func renderCprTimer(snap services.Snapshot, cycle float64, keys *KeyMap) string {
	remaining := snap.CprRemainingSeconds

	switch snap.Mode {
	case domain.ModeAnalyzing:
		return theme.CprPausedStyle.Render("ANALYSING RHYTHM - CPR PAUSED") + "\n" +
			theme.LabelStyle.Render("Select the rhythm: ") + rhythmHints(keys)
	case domain.ModeShockAdvised:
		return theme.CprWarningStyle.Render("SHOCK ADVISED") + "\n" +
			theme.LabelStyle.Render("Press ") + theme.HintKeyStyle.Render(keys.Arrest.Shock.Binding.Help().Key) +
			theme.LabelStyle.Render(" once the shock is delivered")
	}

	style := theme.CprTimerStyle
	if remaining <= cprWarningSeconds {
		style = theme.CprWarningStyle
	}

	return style.Render("CPR CYCLE "+domain.FormatDuration(remaining)) + "\n" +
		style.Render(progressBar(remaining, cycle, cprBarWidth))
}

func rhythmHints(keys *KeyMap) string {
	bindings := []KeyWithTip{keys.Arrest.RhythmVF, keys.Arrest.RhythmPVT, keys.Arrest.RhythmPEA, keys.Arrest.RhythmAsystole}
	hints := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Binding.Help()
		hints[i] = theme.HintKeyStyle.Render(h.Key) + " " + theme.HintLabelStyle.Render(strings.TrimPrefix(h.Desc, "rhythm: "))
	}
	return strings.Join(hints, "  ")
}

// progressBar renders the fraction remaining/total as a bar of the given width
func progressBar(remaining, total float64, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}
	filled := int(remaining / total * float64(width))
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// renderCounters renders one caption/value pair per counter in display order
func renderCounters(counters map[string]int) string {
	cells := make([]string, 0, len(domain.CounterNames))
	for _, name := range domain.CounterNames {
		cells = append(cells, lipgloss.JoinVertical(lipgloss.Center,
			theme.CounterValueStyle.Render(fmt.Sprintf("%d", counters[name])),
			theme.CounterLabelStyle.Render(counterLabels[name]),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, intersperse(cells, "   ")...)
}

func intersperse(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2)
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}

// renderAdrenalineDue shows the countdown to the next adrenaline dose
func renderAdrenalineDue(snap services.Snapshot) string {
	if snap.NextAdrenalineDue == nil || snap.Phase != domain.PhaseActive {
		return ""
	}
	left := *snap.NextAdrenalineDue - snap.TotalArrestTime
	if left <= 0 {
		return theme.WarningStyle.Render("Adrenaline due now")
	}
	return theme.LabelStyle.Render("Next adrenaline due in ") + theme.NormalStyle.Render(domain.FormatDuration(left))
}

// renderCauses summarises the reversible causes checklist
func renderCauses(causes map[string]bool) string {
	addressed := 0
	for _, done := range causes {
		if done {
			addressed++
		}
	}
	return theme.LabelStyle.Render(fmt.Sprintf("Reversible causes addressed: %d/%d", addressed, len(domain.ReversibleCauses)))
}

// renderChecklist renders items with a tick for the checked ones
func renderChecklist(title string, items []string, checked map[string]bool) string {
	var b strings.Builder
	b.WriteString(theme.SubtitleStyle.Render(title) + "\n")
	for _, item := range items {
		if checked[item] {
			b.WriteString(theme.CheckedStyle.Render("[x] "+item) + "\n")
		} else {
			b.WriteString(theme.UncheckedStyle.Render("[ ] "+item) + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// renderEventLog renders events newest first, one line each
func renderEventLog(events []domain.Event) string {
	if len(events) == 0 {
		return theme.LabelStyle.Render("No events logged yet")
	}
	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = theme.LabelStyle.Render("["+domain.FormatDuration(e.TimestampSeconds)+"] ") +
			theme.EventStyle(e.Category).Render(e.Message)
	}
	return strings.Join(lines, "\n")
}

// causeOptions lists the reversible causes with their current state in the label
func causeOptions(causes map[string]bool) []PickOption {
	options := make([]PickOption, len(domain.ReversibleCauses))
	for i, c := range domain.ReversibleCauses {
		mark := "[ ] "
		if causes[c] {
			mark = "[x] "
		}
		options[i] = PickOption{Label: mark + c, Value: c}
	}
	return options
}
