package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/aegismedical/eresus/internal/config"
	"github.com/aegismedical/eresus/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"200"`

	Run       RunCmd       `cmd:"" help:"Start the arrest timer TUI (default)" default:"1"`
	Dose      DoseCmd      `cmd:"dose" help:"Look up a drug dose for an age category"`
	History   HistoryCmd   `cmd:"history" help:"Browse saved arrest logs (list, view, delete, export)"`
	PlaySound PlaySoundCmd `cmd:"play-sound" help:"Play a notification sound (cross-platform)" hidden:""`
	Settings  SettingsCmd  `cmd:"settings" help:"Manage settings (show, example, init, meta)"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Precedence: CLI flags > env vars > settings file > defaults.
	// A settings value only applies while the flag is at its default and no env var is set.
	if c.settings != nil {
		if c.MaxLogFiles == logging.DefaultMaxLogFiles {
			if _, hasEnv := os.LookupEnv("ERESUS_MAX_LOG_FILES"); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv("ERESUS_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}
	}

	logFilePath, err := logging.Initialize(logging.Options{
		Debug:       c.Debug,
		DebugFile:   c.DebugFile,
		MaxLogFiles: c.MaxLogFiles,
	})
	if err != nil {
		return err
	}

	// The database's GORM logger reads ERESUS_DEBUG when the container opens it
	if logFilePath != "" {
		os.Setenv("ERESUS_DEBUG", "1")
	}

	// The container opens the database, whose GORM logger needs logging initialized first
	container, err := NewContainer(c.settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
