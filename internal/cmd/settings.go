package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/aegismedical/eresus/internal/config"
	"github.com/aegismedical/eresus/internal/logging"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Example SettingsExampleCmd `cmd:"example" help:"Print a complete example settings file"`
	Init    SettingsInitCmd    `cmd:"init" help:"Write a starter settings file"`
	Meta    SettingsMetaCmd    `cmd:"meta" help:"Show settings file location and available options" default:"1"`
	Show    SettingsShowCmd    `cmd:"show" help:"Show the settings currently loaded"`
}

// SettingsMetaCmd displays settings metadata
type SettingsMetaCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the meta command
func (s *SettingsMetaCmd) Run(cli *CLI) error {
	settingsFile := config.GetSettingsPath()
	example := config.GetSettingsExample()

	if s.Format == "json" {
		return printJSON(map[string]any{
			"settings_file": settingsFile,
			"format":        example,
		})
	}

	fmt.Printf("Settings file: %s\n\n", settingsFile)
	fmt.Println("Available options:")
	fmt.Println()

	keys := make([]string, 0, len(example))
	for key := range example {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, key := range keys {
		var valueStr string
		switch v := example[key].(type) {
		case map[string]any, []string:
			data, _ := json.Marshal(v)
			valueStr = string(data)
		case string:
			valueStr = v
		default:
			valueStr = fmt.Sprintf("%v", v)
		}
		fmt.Fprintf(w, "%s\t%s\n", key, valueStr)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Create or edit this file to configure eresus (JSON, or YAML with a .yaml extension).")
	fmt.Println("All settings are optional and have sensible defaults.")

	return nil
}

// SettingsShowCmd prints the loaded settings
type SettingsShowCmd struct {
	Format string `help:"Output format: json or yaml" enum:"json,yaml" default:"json"`
}

// Run executes the show command
func (s *SettingsShowCmd) Run(cli *CLI) error {
	settings := cli.settings
	if settings == nil {
		settings = &config.Settings{}
	}
	return printSettings(settings, s.Format)
}

// SettingsExampleCmd prints an example settings file
type SettingsExampleCmd struct {
	Format string `help:"Output format: json or yaml" enum:"json,yaml" default:"json"`
}

// Run executes the example command
func (s *SettingsExampleCmd) Run(cli *CLI) error {
	return printSettings(config.ExampleSettings(), s.Format)
}

// SettingsInitCmd writes a starter settings file
type SettingsInitCmd struct {
	Force bool   `help:"Overwrite an existing settings file" short:"f"`
	Path  string `help:"Where to write the file (.json or .yaml); defaults to the standard location"`
}

// Run executes the init command
func (s *SettingsInitCmd) Run(cli *CLI) error {
	path := config.GetSettingsPath()
	if s.Path != "" {
		path = config.ExpandPath(s.Path)
	}

	if _, err := os.Stat(path); err == nil && !s.Force {
		return fmt.Errorf("settings file already exists at %s (use --force to overwrite)", path)
	}

	if err := config.SaveSettings(path, config.ExampleSettings()); err != nil {
		return err
	}
	logging.Logger.Info("Settings file written", "path", path)
	fmt.Printf("Wrote settings to %s\n", path)
	return nil
}

func printSettings(settings *config.Settings, format string) error {
	if format == "yaml" {
		data, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		fmt.Print(string(data))
		return nil
	}
	return printJSON(settings)
}
