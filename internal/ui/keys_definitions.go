package ui

import (
	"sort"
	"sync"
)

// KeyDefinition defines the metadata for a configurable key binding.
// All key bindings are defined here as the single source of truth.
type KeyDefinition struct {
	Defaults  []string
	Help      string
	Name      string
	TipFormat string
}

// AllKeyDefinitions contains all configurable key bindings.
// This is the single source of truth for key names, defaults, help text, and tips.
var AllKeyDefinitions = []KeyDefinition{
	// Application keys
	{Name: "force_quit", Defaults: []string{"ctrl+c"}, Help: "force quit"},
	{Name: "help", Defaults: []string{"h", "?"}, Help: "show keyboard shortcuts", TipFormat: "press %s to see all shortcuts"},
	{Name: "quit", Defaults: []string{"q"}, Help: "exit application"},
	{Name: "reset", Defaults: []string{"X"}, Help: "save and reset the arrest log", TipFormat: "press %s to save the log and start over"},
	{Name: "retry_save", Defaults: []string{"W"}, Help: "retry saving unsaved logs"},

	// Arrest workflow keys
	{Name: "analyse", Defaults: []string{"a"}, Help: "analyse rhythm (pauses CPR)"},
	{Name: "end_arrest", Defaults: []string{"E"}, Help: "end resuscitation"},
	{Name: "re_arrest", Defaults: []string{"b"}, Help: "patient re-arrested"},
	{Name: "rhythm_asystole", Defaults: []string{"4"}, Help: "rhythm: asystole"},
	{Name: "rhythm_pea", Defaults: []string{"3"}, Help: "rhythm: PEA"},
	{Name: "rhythm_pvt", Defaults: []string{"2"}, Help: "rhythm: pVT (shockable)"},
	{Name: "rhythm_vf", Defaults: []string{"1"}, Help: "rhythm: VF (shockable)"},
	{Name: "rosc", Defaults: []string{"r"}, Help: "return of spontaneous circulation"},
	{Name: "shock", Defaults: []string{"s"}, Help: "deliver shock"},
	{Name: "start_arrest", Defaults: []string{"enter"}, Help: "start arrest", TipFormat: "press %s to start the arrest timer"},

	// Treatment keys
	{Name: "adrenaline", Defaults: []string{"d"}, Help: "log adrenaline", TipFormat: "press %s to log adrenaline and track the next dose"},
	{Name: "airway", Defaults: []string{"w"}, Help: "advanced airway placed"},
	{Name: "amiodarone", Defaults: []string{"i"}, Help: "log amiodarone"},
	{Name: "causes", Defaults: []string{"c"}, Help: "reversible causes (4 Hs / 4 Ts)", TipFormat: "press %s to tick off reversible causes"},
	{Name: "etco2", Defaults: []string{"e"}, Help: "log ETCO2 reading"},
	{Name: "lidocaine", Defaults: []string{"l"}, Help: "log lidocaine"},
	{Name: "other_drug", Defaults: []string{"o"}, Help: "log other drug"},

	// Timing keys
	{Name: "age_category", Defaults: []string{"g"}, Help: "set patient age for dose prompts", TipFormat: "press %s to set the patient age for dose prompts"},
	{Name: "metronome", Defaults: []string{"t"}, Help: "toggle CPR metronome", TipFormat: "press %s to toggle the compression metronome"},
	{Name: "mute", Defaults: []string{"n"}, Help: "mute/unmute alerts"},
	{Name: "offset_add", Defaults: []string{"+", "="}, Help: "add 1 minute to arrest time", TipFormat: "press %s if the arrest began before the timer was started"},
	{Name: "offset_subtract", Defaults: []string{"-"}, Help: "subtract 1 minute from arrest time"},
}

var (
	defaultBindingsCache map[string][]string
	defaultBindingsOnce  sync.Once

	keyDefinitionsMap     map[string]KeyDefinition
	keyDefinitionsMapOnce sync.Once

	validKeyNames     []string
	validKeyNamesOnce sync.Once
)

// GetDefaultKeyBindings returns the default key bindings as a map.
// The result is cached after the first call.
func GetDefaultKeyBindings() map[string][]string {
	defaultBindingsOnce.Do(func() {
		defaultBindingsCache = make(map[string][]string, len(AllKeyDefinitions))
		for _, def := range AllKeyDefinitions {
			defaultBindingsCache[def.Name] = def.Defaults
		}
	})
	return defaultBindingsCache
}

// GetKeyDefinition returns the definition for a key by name.
// Returns nil if not found.
func GetKeyDefinition(name string) *KeyDefinition {
	keyDefinitionsMapOnce.Do(func() {
		keyDefinitionsMap = make(map[string]KeyDefinition, len(AllKeyDefinitions))
		for _, def := range AllKeyDefinitions {
			keyDefinitionsMap[def.Name] = def
		}
	})
	if def, ok := keyDefinitionsMap[name]; ok {
		return &def
	}
	return nil
}

// GetValidKeyNames returns all valid key binding names in sorted order.
// The result is cached after the first call.
func GetValidKeyNames() []string {
	validKeyNamesOnce.Do(func() {
		validKeyNames = make([]string, len(AllKeyDefinitions))
		for i, def := range AllKeyDefinitions {
			validKeyNames[i] = def.Name
		}
		sort.Strings(validKeyNames)
	})
	return validKeyNames
}

// IsValidKeyName checks if a name is a valid key binding name.
func IsValidKeyName(name string) bool {
	return GetKeyDefinition(name) != nil
}
