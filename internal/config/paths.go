package config

import (
	"os"
	"path/filepath"
)

// settingsFileNames are looked up in order inside the eresus home
var settingsFileNames = []string{"settings.json", "settings.yaml", "settings.yml"}

// GetEresusHome returns ERESUS_HOME or ~/.eresus default
func GetEresusHome() string {
	eresusHome := os.Getenv("ERESUS_HOME")
	if eresusHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".eresus"
		}
		return filepath.Join(homeDir, ".eresus")
	}
	return ExpandPath(eresusHome)
}

// GetDBPath returns $ERESUS_HOME/eresus.db
func GetDBPath() string {
	return filepath.Join(GetEresusHome(), "eresus.db")
}

// GetExportDir returns $ERESUS_HOME/exports
func GetExportDir() string {
	return filepath.Join(GetEresusHome(), "exports")
}

// GetSettingsPath returns the first settings file that exists in $ERESUS_HOME,
// or $ERESUS_HOME/settings.json when there is none
func GetSettingsPath() string {
	home := GetEresusHome()
	for _, name := range settingsFileNames {
		path := filepath.Join(home, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(home, settingsFileNames[0])
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
