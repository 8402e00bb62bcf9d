package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aegismedical/eresus/internal/dosage"
)

// KeyBindingValue supports "a" or ["up", "k"] in JSON and YAML
type KeyBindingValue []string

// UnmarshalJSON implements custom unmarshaling for KeyBindingValue
func (kv *KeyBindingValue) UnmarshalJSON(data []byte) error {
	// Try array format first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*kv = arr
		return nil
	}

	// Fall back to single string
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str != "" {
		*kv = []string{str}
	}
	return nil
}

// MarshalJSON implements custom marshaling for KeyBindingValue
func (kv KeyBindingValue) MarshalJSON() ([]byte, error) {
	if len(kv) == 1 {
		return json.Marshal(kv[0])
	}
	return json.Marshal([]string(kv))
}

// UnmarshalYAML implements custom unmarshaling for KeyBindingValue
func (kv *KeyBindingValue) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var arr []string
		if err := value.Decode(&arr); err != nil {
			return err
		}
		*kv = arr
		return nil
	}

	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}
	if str != "" {
		*kv = []string{str}
	}
	return nil
}

// MarshalYAML implements custom marshaling for KeyBindingValue
func (kv KeyBindingValue) MarshalYAML() (any, error) {
	if len(kv) == 1 {
		return kv[0], nil
	}
	return []string(kv), nil
}

// KeyBindingsConfig holds custom key binding overrides as a map.
// Keys are binding names (e.g., "shock", "help"), values are the key sequences.
type KeyBindingsConfig map[string]KeyBindingValue

// Validate checks for configuration errors in key bindings.
// The validNames parameter should come from ui.GetValidKeyNames().
func (k KeyBindingsConfig) Validate(validNames []string) error {
	if k == nil {
		return nil
	}

	validSet := make(map[string]bool, len(validNames))
	for _, name := range validNames {
		validSet[name] = true
	}

	// Track all keys to detect duplicates
	keyToAction := make(map[string]string)

	for name, keys := range k {
		if !validSet[name] {
			return fmt.Errorf("unknown key binding '%s'", name)
		}

		for _, key := range keys {
			if key == "" {
				return fmt.Errorf("key binding for '%s' contains empty value", name)
			}
			if existing, found := keyToAction[key]; found {
				return fmt.Errorf("key '%s' is assigned to both '%s' and '%s'", key, existing, name)
			}
			keyToAction[key] = name
		}
	}

	return nil
}

// Settings represents the structure of ~/.eresus/settings.json (or settings.yaml)
type Settings struct {
	AdrenalineIntervalSeconds *int              `json:"adrenaline_interval_seconds,omitempty" yaml:"adrenaline_interval_seconds,omitempty"`
	AgeCategory               string            `json:"age_category,omitempty" yaml:"age_category,omitempty"`
	CycleDurationSeconds      *int              `json:"cycle_duration_seconds,omitempty" yaml:"cycle_duration_seconds,omitempty"`
	DBPath                    string            `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	Debug                     *bool             `json:"debug,omitempty" yaml:"debug,omitempty"`
	ExportDir                 string            `json:"export_dir,omitempty" yaml:"export_dir,omitempty"`
	Keys                      KeyBindingsConfig `json:"keys,omitempty" yaml:"keys,omitempty"`
	MaxLogFiles               *int              `json:"max_log_files,omitempty" yaml:"max_log_files,omitempty"`
	MetronomeBPM              *int              `json:"metronome_bpm,omitempty" yaml:"metronome_bpm,omitempty"`
	Muted                     *bool             `json:"muted,omitempty" yaml:"muted,omitempty"`
	ShowDosagePrompts         *bool             `json:"show_dosage_prompts,omitempty" yaml:"show_dosage_prompts,omitempty"`
	TickIntervalMillis        *int              `json:"tick_interval_ms,omitempty" yaml:"tick_interval_ms,omitempty"`
}

// Validate checks value ranges. Key bindings are validated by the UI, which owns their names.
func (s *Settings) Validate() error {
	positive := []struct {
		name  string
		value *int
	}{
		{"adrenaline_interval_seconds", s.AdrenalineIntervalSeconds},
		{"cycle_duration_seconds", s.CycleDurationSeconds},
		{"metronome_bpm", s.MetronomeBPM},
		{"tick_interval_ms", s.TickIntervalMillis},
	}
	for _, p := range positive {
		if p.value != nil && *p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.name, *p.value)
		}
	}

	if s.MaxLogFiles != nil && *s.MaxLogFiles < 0 {
		return fmt.Errorf("max_log_files must not be negative, got %d", *s.MaxLogFiles)
	}

	if s.AgeCategory != "" {
		if _, err := dosage.ParseAgeCategory(s.AgeCategory); err != nil {
			return fmt.Errorf("age_category: %w", err)
		}
	}

	return nil
}

// LoadSettings loads settings from $ERESUS_HOME (or ~/.eresus if not set).
// Returns empty Settings if no file exists (not an error).
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from path, decoding YAML or JSON by extension
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := json.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
		}
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}

	if settings.DBPath != "" {
		settings.DBPath = ExpandPath(settings.DBPath)
	}
	if settings.ExportDir != "" {
		settings.ExportDir = ExpandPath(settings.ExportDir)
	}

	return &settings, nil
}

// SaveSettings writes settings to path, encoding YAML or JSON by extension
func SaveSettings(path string, settings *Settings) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(settings)
	} else {
		data, err = json.MarshalIndent(settings, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
