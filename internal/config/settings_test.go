package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_MissingFileIsEmpty(t *testing.T) {
	t.Setenv("ERESUS_HOME", t.TempDir())

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, &Settings{}, s)
}

func TestLoadSettings_JSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ERESUS_HOME", home)
	content := `{
		"cycle_duration_seconds": 90,
		"show_dosage_prompts": true,
		"age_category": "18m",
		"db_path": "~/arrests.db",
		"keys": {"shock": "S", "help": ["h", "?"]}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(home, "settings.json"), []byte(content), 0644))

	s, err := LoadSettings()
	require.NoError(t, err)

	require.NotNil(t, s.CycleDurationSeconds)
	assert.Equal(t, 90, *s.CycleDurationSeconds)
	require.NotNil(t, s.ShowDosagePrompts)
	assert.True(t, *s.ShowDosagePrompts)
	assert.Equal(t, "18m", s.AgeCategory)
	assert.Equal(t, KeyBindingValue{"S"}, s.Keys["shock"])
	assert.Equal(t, KeyBindingValue{"h", "?"}, s.Keys["help"])

	homeDir, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(homeDir, "arrests.db"), s.DBPath)
}

func TestLoadSettings_YAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ERESUS_HOME", home)
	content := `
metronome_bpm: 100
muted: true
keys:
  shock: S
  help: [h, "?"]
`
	require.NoError(t, os.WriteFile(filepath.Join(home, "settings.yaml"), []byte(content), 0644))

	assert.Equal(t, filepath.Join(home, "settings.yaml"), GetSettingsPath())

	s, err := LoadSettings()
	require.NoError(t, err)
	require.NotNil(t, s.MetronomeBPM)
	assert.Equal(t, 100, *s.MetronomeBPM)
	require.NotNil(t, s.Muted)
	assert.True(t, *s.Muted)
	assert.Equal(t, KeyBindingValue{"S"}, s.Keys["shock"])
	assert.Equal(t, KeyBindingValue{"h", "?"}, s.Keys["help"])
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errMsg  string
	}{
		{"malformed json", "settings.json", `{"debug": `, "invalid settings.json"},
		{"malformed yaml", "settings.yaml", "keys: [", "invalid settings.yaml"},
		{"zero cycle", "settings.json", `{"cycle_duration_seconds": 0}`, "cycle_duration_seconds must be positive"},
		{"negative log files", "settings.json", `{"max_log_files": -1}`, "max_log_files must not be negative"},
		{"unknown age", "settings.json", `{"age_category": "toddler"}`, "unknown age category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadSettingsFrom(path)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestSaveSettings_RoundTripsBothFormats(t *testing.T) {
	for _, name := range []string{"settings.json", "settings.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			example := ExampleSettings()
			example.Keys = KeyBindingsConfig{"shock": {"S"}}

			require.NoError(t, SaveSettings(path, example))

			loaded, err := LoadSettingsFrom(path)
			require.NoError(t, err)
			assert.Equal(t, example, loaded)
		})
	}
}

func TestKeyBindingsConfig_Validate(t *testing.T) {
	valid := []string{"shock", "help", "quit"}

	assert.NoError(t, KeyBindingsConfig(nil).Validate(valid))
	assert.NoError(t, KeyBindingsConfig{"shock": {"S"}}.Validate(valid))
	assert.ErrorContains(t, KeyBindingsConfig{"fly": {"f"}}.Validate(valid), "unknown key binding 'fly'")
	assert.ErrorContains(t, KeyBindingsConfig{"shock": {""}}.Validate(valid), "empty value")
	assert.ErrorContains(t,
		KeyBindingsConfig{"shock": {"x"}, "quit": {"x"}}.Validate(valid),
		"key 'x' is assigned to both")
}

func TestGetSettingsExample_CoversEveryField(t *testing.T) {
	example := GetSettingsExample()

	assert.Equal(t, 120, example["cycle_duration_seconds"])
	assert.Equal(t, 110, example["metronome_bpm"])
	assert.Equal(t, true, example["show_dosage_prompts"])
	assert.Equal(t, "adult", example["age_category"])
	assert.Contains(t, example, "keys")
	assert.Len(t, example, 12)
}

func TestPaths(t *testing.T) {
	t.Setenv("ERESUS_HOME", "/tmp/eresus-test")

	assert.Equal(t, "/tmp/eresus-test", GetEresusHome())
	assert.Equal(t, "/tmp/eresus-test/eresus.db", GetDBPath())
	assert.Equal(t, "/tmp/eresus-test/exports", GetExportDir())
	assert.Equal(t, "/tmp/eresus-test/settings.json", GetSettingsPath())

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, homeDir, ExpandPath("~"))
	assert.Equal(t, filepath.Join(homeDir, "x"), ExpandPath("~/x"))
	assert.Equal(t, "/abs", ExpandPath("/abs"))
}
