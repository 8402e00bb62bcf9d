package ui

import (
	"github.com/aegismedical/eresus/internal/config"
)

// ArrestKeys defines key bindings for the arrest workflow
type ArrestKeys struct {
	Analyse        KeyWithTip
	EndArrest      KeyWithTip
	ReArrest       KeyWithTip
	RhythmAsystole KeyWithTip
	RhythmPEA      KeyWithTip
	RhythmPVT      KeyWithTip
	RhythmVF       KeyWithTip
	Rosc           KeyWithTip
	Shock          KeyWithTip
	StartArrest    KeyWithTip
}

// newArrestKeys creates arrest workflow key bindings
func newArrestKeys(defaults map[string][]string, customKeys config.KeyBindingsConfig) ArrestKeys {
	return ArrestKeys{
		Analyse:        buildBinding("analyse", defaults, customKeys),
		EndArrest:      buildBinding("end_arrest", defaults, customKeys),
		ReArrest:       buildBinding("re_arrest", defaults, customKeys),
		RhythmAsystole: buildBinding("rhythm_asystole", defaults, customKeys),
		RhythmPEA:      buildBinding("rhythm_pea", defaults, customKeys),
		RhythmPVT:      buildBinding("rhythm_pvt", defaults, customKeys),
		RhythmVF:       buildBinding("rhythm_vf", defaults, customKeys),
		Rosc:           buildBinding("rosc", defaults, customKeys),
		Shock:          buildBinding("shock", defaults, customKeys),
		StartArrest:    buildBinding("start_arrest", defaults, customKeys),
	}
}

// TreatmentKeys defines key bindings for drugs and interventions
type TreatmentKeys struct {
	Adrenaline KeyWithTip
	Airway     KeyWithTip
	Amiodarone KeyWithTip
	Causes     KeyWithTip
	Etco2      KeyWithTip
	Lidocaine  KeyWithTip
	OtherDrug  KeyWithTip
}

// newTreatmentKeys creates treatment key bindings
func newTreatmentKeys(defaults map[string][]string, customKeys config.KeyBindingsConfig) TreatmentKeys {
	return TreatmentKeys{
		Adrenaline: buildBinding("adrenaline", defaults, customKeys),
		Airway:     buildBinding("airway", defaults, customKeys),
		Amiodarone: buildBinding("amiodarone", defaults, customKeys),
		Causes:     buildBinding("causes", defaults, customKeys),
		Etco2:      buildBinding("etco2", defaults, customKeys),
		Lidocaine:  buildBinding("lidocaine", defaults, customKeys),
		OtherDrug:  buildBinding("other_drug", defaults, customKeys),
	}
}

// TimingKeys defines key bindings for clock adjustments and feedback
type TimingKeys struct {
	AgeCategory    KeyWithTip
	Metronome      KeyWithTip
	Mute           KeyWithTip
	OffsetAdd      KeyWithTip
	OffsetSubtract KeyWithTip
}

// newTimingKeys creates timing key bindings
func newTimingKeys(defaults map[string][]string, customKeys config.KeyBindingsConfig) TimingKeys {
	return TimingKeys{
		AgeCategory:    buildBinding("age_category", defaults, customKeys),
		Metronome:      buildBinding("metronome", defaults, customKeys),
		Mute:           buildBinding("mute", defaults, customKeys),
		OffsetAdd:      buildBinding("offset_add", defaults, customKeys),
		OffsetSubtract: buildBinding("offset_subtract", defaults, customKeys),
	}
}
