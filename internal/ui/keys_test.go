package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegismedical/eresus/internal/config"
	"github.com/aegismedical/eresus/internal/domain"
)

func TestGetValidKeyNames(t *testing.T) {
	names := GetValidKeyNames()

	require.Len(t, names, len(AllKeyDefinitions))
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "start_arrest")
	assert.Contains(t, names, "offset_subtract")
}

func TestIsValidKeyName(t *testing.T) {
	assert.True(t, IsValidKeyName("shock"))
	assert.False(t, IsValidKeyName("defibrillate"))
}

func TestKeyDefinitions_NoDuplicateDefaults(t *testing.T) {
	seen := make(map[string]string)
	for _, def := range AllKeyDefinitions {
		for _, k := range def.Defaults {
			if other, ok := seen[k]; ok {
				t.Errorf("key %q bound to both %s and %s", k, other, def.Name)
			}
			seen[k] = def.Name
		}
	}
}

func TestNewKeyMap_CustomBindingOverridesDefault(t *testing.T) {
	keys := NewKeyMap(config.KeyBindingsConfig{"shock": {"S", "x"}})

	assert.Equal(t, []string{"S", "x"}, keys.Arrest.Shock.Binding.Keys())
	assert.Equal(t, "S/x", keys.Arrest.Shock.Binding.Help().Key)
	assert.Equal(t, []string{"a"}, keys.Arrest.Analyse.Binding.Keys())
}

func TestNewKeyMap_EmptyCustomBindingKeepsDefault(t *testing.T) {
	keys := NewKeyMap(config.KeyBindingsConfig{"rosc": {}})

	assert.Equal(t, []string{"r"}, keys.Arrest.Rosc.Binding.Keys())
}

func TestNewKeyMap_OffsetAddMatchesBothKeys(t *testing.T) {
	keys := NewKeyMap(nil)

	for _, r := range []string{"+", "="} {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
		assert.True(t, key.Matches(msg, keys.Timing.OffsetAdd.Binding), r)
	}
}

func TestKeyMap_ShortHelp(t *testing.T) {
	keys := NewKeyMap(nil)

	tests := []struct {
		name     string
		phase    domain.ArrestPhase
		mode     domain.InteractionMode
		contains []string
		excludes []string
	}{
		{
			name:     "pending offers start",
			phase:    domain.PhasePending,
			mode:     domain.ModeDefault,
			contains: []string{"start arrest"},
			excludes: []string{"deliver shock"},
		},
		{
			name:     "analysing offers rhythms",
			phase:    domain.PhaseActive,
			mode:     domain.ModeAnalyzing,
			contains: []string{"rhythm: VF (shockable)", "rhythm: asystole"},
			excludes: []string{"analyse rhythm (pauses CPR)"},
		},
		{
			name:     "shock advised offers shock",
			phase:    domain.PhaseActive,
			mode:     domain.ModeShockAdvised,
			contains: []string{"deliver shock", "log adrenaline"},
		},
		{
			name:     "rosc offers re-arrest",
			phase:    domain.PhaseRosc,
			mode:     domain.ModeDefault,
			contains: []string{"patient re-arrested"},
			excludes: []string{"start arrest"},
		},
		{
			name:     "ended offers only application keys",
			phase:    domain.PhaseEnded,
			mode:     domain.ModeDefault,
			contains: []string{"save and reset the arrest log", "exit application"},
			excludes: []string{"log adrenaline"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var descs []string
			for _, b := range keys.ShortHelp(tt.phase, tt.mode) {
				descs = append(descs, b.Help().Desc)
			}
			for _, want := range tt.contains {
				assert.Contains(t, descs, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, descs, unwanted)
			}
		})
	}
}

func TestKeyMap_FullHelpCoversEveryDefinition(t *testing.T) {
	keys := NewKeyMap(nil)

	count := 0
	for _, group := range keys.FullHelp() {
		count += len(group)
	}

	assert.Equal(t, len(AllKeyDefinitions), count)
	assert.Len(t, keys.FullHelp(), len(helpGroupTitles))
}
