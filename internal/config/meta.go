package config

import (
	"reflect"
	"strings"
)

// GetSettingsExample uses reflection to generate example settings.
// This automatically stays in sync when new fields are added to Settings.
func GetSettingsExample() map[string]any {
	var s Settings
	t := reflect.TypeOf(s)
	example := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			continue
		}

		// Extract the JSON field name (before comma)
		jsonName := strings.Split(jsonTag, ",")[0]

		example[jsonName] = generateExampleValue(field.Type, jsonName)
	}

	return example
}

// generateExampleValue creates appropriate example values based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	if t.Name() == "KeyBindingsConfig" {
		return map[string]any{
			"shock": "S",
			"help":  []string{"h", "?"},
		}
	}

	// Handle pointer types
	if t.Kind() == reflect.Ptr {
		switch t.Elem().Kind() {
		case reflect.Bool:
			return fieldName == "show_dosage_prompts"
		case reflect.Int:
			switch fieldName {
			case "adrenaline_interval_seconds":
				return 240
			case "cycle_duration_seconds":
				return 120
			case "max_log_files":
				return 200
			case "metronome_bpm":
				return 110
			case "tick_interval_ms":
				return 1000
			default:
				return 10
			}
		}
	}

	if t.Kind() == reflect.String {
		switch fieldName {
		case "age_category":
			return "adult"
		case "db_path":
			return "~/.eresus/eresus.db"
		case "export_dir":
			return "~/.eresus/exports"
		default:
			return "example"
		}
	}

	return nil
}

// ExampleSettings returns the example as typed Settings, suitable for writing a starter file
func ExampleSettings() *Settings {
	intPtr := func(v int) *int { return &v }
	boolPtr := func(v bool) *bool { return &v }

	return &Settings{
		AdrenalineIntervalSeconds: intPtr(240),
		AgeCategory:               "adult",
		CycleDurationSeconds:      intPtr(120),
		MetronomeBPM:              intPtr(110),
		Muted:                     boolPtr(false),
		ShowDosagePrompts:         boolPtr(true),
		TickIntervalMillis:        intPtr(1000),
	}
}
