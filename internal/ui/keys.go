package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/aegismedical/eresus/internal/config"
	"github.com/aegismedical/eresus/internal/domain"
)

// KeyMap contains all keyboard shortcuts organized by context
type KeyMap struct {
	Application ApplicationKeys
	Arrest      ArrestKeys
	Timing      TimingKeys
	Treatment   TreatmentKeys
}

// NewKeyMap creates a new KeyMap with all key bindings initialized
// Pass nil for keysConfig to use default bindings
func NewKeyMap(keysConfig config.KeyBindingsConfig) KeyMap {
	defaults := GetDefaultKeyBindings()
	return KeyMap{
		Application: newApplicationKeys(defaults, keysConfig),
		Arrest:      newArrestKeys(defaults, keysConfig),
		Timing:      newTimingKeys(defaults, keysConfig),
		Treatment:   newTreatmentKeys(defaults, keysConfig),
	}
}

// ShortHelp returns the bindings for the bottom bar that apply in the current state
func (k KeyMap) ShortHelp(phase domain.ArrestPhase, mode domain.InteractionMode) []key.Binding {
	var bindings []key.Binding

	switch phase {
	case domain.PhasePending:
		bindings = append(bindings,
			k.Arrest.StartArrest.Binding,
			k.Timing.OffsetAdd.Binding,
			k.Timing.AgeCategory.Binding,
		)
	case domain.PhaseActive:
		switch mode {
		case domain.ModeAnalyzing:
			bindings = append(bindings,
				k.Arrest.RhythmVF.Binding,
				k.Arrest.RhythmPVT.Binding,
				k.Arrest.RhythmPEA.Binding,
				k.Arrest.RhythmAsystole.Binding,
			)
		case domain.ModeShockAdvised:
			bindings = append(bindings, k.Arrest.Shock.Binding)
		default:
			bindings = append(bindings, k.Arrest.Analyse.Binding)
		}
		bindings = append(bindings,
			k.Treatment.Adrenaline.Binding,
			k.Treatment.Amiodarone.Binding,
			k.Arrest.Rosc.Binding,
			k.Arrest.EndArrest.Binding,
			k.Timing.Metronome.Binding,
		)
	case domain.PhaseRosc:
		bindings = append(bindings,
			k.Arrest.ReArrest.Binding,
			k.Treatment.Adrenaline.Binding,
			k.Treatment.OtherDrug.Binding,
			k.Arrest.EndArrest.Binding,
		)
	}

	return append(bindings,
		k.Application.Reset.Binding,
		k.Application.Help.Binding,
		k.Application.Quit.Binding,
	)
}

// FullHelp returns all bindings grouped the way the help screen shows them
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			k.Arrest.StartArrest.Binding,
			k.Arrest.Analyse.Binding,
			k.Arrest.RhythmVF.Binding,
			k.Arrest.RhythmPVT.Binding,
			k.Arrest.RhythmPEA.Binding,
			k.Arrest.RhythmAsystole.Binding,
			k.Arrest.Shock.Binding,
			k.Arrest.Rosc.Binding,
			k.Arrest.ReArrest.Binding,
			k.Arrest.EndArrest.Binding,
		},
		{
			k.Treatment.Adrenaline.Binding,
			k.Treatment.Amiodarone.Binding,
			k.Treatment.Lidocaine.Binding,
			k.Treatment.OtherDrug.Binding,
			k.Treatment.Airway.Binding,
			k.Treatment.Etco2.Binding,
			k.Treatment.Causes.Binding,
		},
		{
			k.Timing.OffsetAdd.Binding,
			k.Timing.OffsetSubtract.Binding,
			k.Timing.AgeCategory.Binding,
			k.Timing.Metronome.Binding,
			k.Timing.Mute.Binding,
		},
		{
			k.Application.Reset.Binding,
			k.Application.RetrySave.Binding,
			k.Application.Help.Binding,
			k.Application.Quit.Binding,
			k.Application.ForceQuit.Binding,
		},
	}
}
