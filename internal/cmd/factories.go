package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aegismedical/eresus/internal/adapters/clock"
	"github.com/aegismedical/eresus/internal/adapters/export"
	adaptersound "github.com/aegismedical/eresus/internal/adapters/sound"
	adapterstorage "github.com/aegismedical/eresus/internal/adapters/storage"
	"github.com/aegismedical/eresus/internal/config"
	"github.com/aegismedical/eresus/internal/dosage"
	"github.com/aegismedical/eresus/internal/logging"
	"github.com/aegismedical/eresus/internal/ports"
	"github.com/aegismedical/eresus/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	// Services
	ArrestService       *services.ArrestService
	HistoryService      *services.HistoryService
	Metronome           *services.Metronome
	NotificationService *services.NotificationService

	// Resolved settings
	AgeCategory dosage.AgeCategory
	ExportDir   string

	// Internal - for cleanup only
	logRepo ports.ArrestLogRepository
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(settings *config.Settings) (*Container, error) {
	if settings == nil {
		settings = &config.Settings{}
	}

	arrestConfig, err := ArrestConfigFromSettings(settings)
	if err != nil {
		return nil, err
	}

	dbPath := config.GetDBPath()
	if settings.DBPath != "" {
		dbPath = settings.DBPath
	}
	exportDir := config.GetExportDir()
	if settings.ExportDir != "" {
		exportDir = settings.ExportDir
	}

	var age dosage.AgeCategory
	if settings.AgeCategory != "" {
		if age, err = dosage.ParseAgeCategory(settings.AgeCategory); err != nil {
			return nil, err
		}
	}

	// Create adapters
	logRepo, err := adapterstorage.NewSQLiteRepository(dbPath)
	if err != nil {
		return nil, err
	}

	muted := settings.Muted != nil && *settings.Muted
	soundPlayer := adaptersound.NewPlayer()
	exporter := export.Multi{
		export.NewClipboardExporter(),
		export.NewFileExporter(exportDir),
	}

	// Create services
	notificationService := services.NewNotificationService(soundPlayer, muted)
	schedulers := services.NewTickSchedulerFactory()

	arrestService, err := services.NewArrestService(
		clock.Real{},
		notificationService,
		logRepo,
		exporter,
		schedulers,
		arrestConfig,
	)
	if err != nil {
		_ = logRepo.Close()
		return nil, err
	}
	if age != "" {
		if err := arrestService.SetPatientAgeCategory(age); err != nil {
			_ = logRepo.Close()
			return nil, err
		}
	}

	metronome, err := services.NewMetronome(notificationService, schedulers, arrestConfig.MetronomeBPM)
	if err != nil {
		_ = logRepo.Close()
		return nil, err
	}

	logging.Logger.Debug("Container initialized", "db", dbPath, "exportDir", exportDir, "muted", muted)

	return &Container{
		AgeCategory:         age,
		ArrestService:       arrestService,
		ExportDir:           exportDir,
		HistoryService:      services.NewHistoryService(logRepo),
		Metronome:           metronome,
		NotificationService: notificationService,
		logRepo:             logRepo,
	}, nil
}

// ArrestConfigFromSettings overlays the settings file on the default arrest timing
func ArrestConfigFromSettings(settings *config.Settings) (services.ArrestConfig, error) {
	cfg := services.DefaultArrestConfig()
	if settings == nil {
		return cfg, nil
	}

	if settings.AdrenalineIntervalSeconds != nil {
		cfg.AdrenalineInterval = time.Duration(*settings.AdrenalineIntervalSeconds) * time.Second
	}
	if settings.CycleDurationSeconds != nil {
		cfg.CycleDuration = time.Duration(*settings.CycleDurationSeconds) * time.Second
	}
	if settings.MetronomeBPM != nil {
		cfg.MetronomeBPM = *settings.MetronomeBPM
	}
	if settings.ShowDosagePrompts != nil {
		cfg.ShowDosagePrompts = *settings.ShowDosagePrompts
	}
	if settings.TickIntervalMillis != nil {
		cfg.TickInterval = time.Duration(*settings.TickIntervalMillis) * time.Millisecond
	}

	if err := cfg.Validate(); err != nil {
		return services.ArrestConfig{}, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// Close stops background work and closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.Metronome != nil {
		c.Metronome.Stop()
	}
	if c.ArrestService != nil {
		ctx := context.Background()
		// Stops the tick scheduler and saves a session that was started
		result := c.ArrestService.PerformReset(ctx, services.ResetOptions{Save: true})
		if result.ExportErr != nil {
			errs = append(errs, result.ExportErr)
		}
		// Failed saves are only queued in memory; this is the last chance to store them
		if c.ArrestService.Snapshot().UnsavedLogs > 0 {
			retryErr := c.ArrestService.RetryUnsaved(ctx)
			if n := c.ArrestService.Snapshot().UnsavedLogs; n > 0 {
				errs = append(errs, fmt.Errorf("%d arrest log(s) could not be saved: %w", n, retryErr))
			}
		}
	}
	if c.logRepo != nil {
		if err := c.logRepo.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
