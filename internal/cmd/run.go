package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aegismedical/eresus/internal/config"
	"github.com/aegismedical/eresus/internal/lock"
	"github.com/aegismedical/eresus/internal/logging"
	"github.com/aegismedical/eresus/internal/ui"
)

// RunCmd starts the TUI application
type RunCmd struct {
	Dev             bool `help:"Enable development mode (shows version info in dialogs)"`
	ErrorClearDelay int  `help:"Seconds before status messages auto-clear" default:"10"`
	Muted           bool `help:"Start with alerts muted (the metronome still sounds)" env:"ERESUS_MUTED"`
}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	logging.Logger.Info("Starting eresus TUI")

	// One live dashboard per eresus home
	instance, err := lock.Acquire(config.GetEresusHome())
	if err != nil {
		if errors.Is(err, lock.ErrAlreadyLocked) {
			return fmt.Errorf("eresus is already running in another terminal")
		}
		return fmt.Errorf("failed to acquire instance lock: %w", err)
	}
	defer func() {
		if err := instance.Release(); err != nil {
			logging.Logger.Warn("Failed to release instance lock", "error", err)
		}
	}()

	// Validate key bindings if configured
	var keysConfig config.KeyBindingsConfig
	if cli.settings != nil && cli.settings.Keys != nil {
		if err := cli.settings.Keys.Validate(ui.GetValidKeyNames()); err != nil {
			return fmt.Errorf("invalid key bindings in settings: %w", err)
		}
		keysConfig = cli.settings.Keys
		logging.Logger.Debug("Custom key bindings loaded and validated")
	}

	if r.Muted && !cli.Container.NotificationService.Muted() {
		cli.Container.NotificationService.ToggleMute()
	}

	// Logs left over from a run whose database was unavailable
	if err := cli.Container.ArrestService.RetryUnsaved(context.Background()); err != nil {
		logging.Logger.Warn("Unsaved arrest logs remain", "error", err)
	}

	logging.Logger.Debug("Initializing Bubble Tea program")
	p := tea.NewProgram(
		ui.NewModel(
			ui.Options{
				DevMode:          r.Dev,
				StatusClearDelay: time.Duration(r.ErrorClearDelay) * time.Second,
			},
			keysConfig,
			cli.Container.ArrestService,
			cli.Container.Metronome,
			cli.Container.NotificationService,
		),
		tea.WithAltScreen(),
	)

	logging.Logger.Info("Starting TUI program")
	if _, err := p.Run(); err != nil {
		logging.Logger.Error("TUI program error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}

	logging.Logger.Info("TUI program exited normally")
	return nil
}
