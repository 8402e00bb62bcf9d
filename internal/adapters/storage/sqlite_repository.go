package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aegismedical/eresus/internal/domain"
	"github.com/aegismedical/eresus/internal/logging"
	"github.com/aegismedical/eresus/internal/ports"
)

const defaultRetries = 3

// SQLiteRepository implements ports.ArrestLogRepository using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.ArrestLogRepository = (*SQLiteRepository)(nil)

// gormLogger wraps the eresus logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		logging.Logger.Error("gorm query error", "error", err, "duration", elapsed, "sql", sql, "rows", rows)
	case elapsed > 200*time.Millisecond:
		logging.Logger.Warn("slow query", "duration", elapsed, "sql", sql, "rows", rows)
	default:
		logging.Logger.Debug("gorm query", "duration", elapsed, "sql", sql, "rows", rows)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("ERESUS_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository opens (creating if needed) the arrest log database at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:      newGormLogger(),
		NowFunc:     func() time.Time { return time.Now().UTC() },
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets the history command read while a live session writes
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&ArrestLogModel{}, &ArrestEventModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate arrest log schema: %w", err)
	}

	logging.Logger.Debug("Arrest log database opened", "path", dbPath)

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save implements ArrestLogWriter.Save. Saving an existing ID replaces it.
func (r *SQLiteRepository) Save(ctx context.Context, log domain.SavedLog) error {
	if log.ID == "" {
		return fmt.Errorf("%w: arrest log has no ID", domain.ErrInvalidValue)
	}

	model := domainToArrestLogModel(log)
	events := model.Events
	model.Events = nil

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("log_id = ?", model.ID).Delete(&ArrestEventModel{}).Error; err != nil {
				return fmt.Errorf("failed to clear events: %w", err)
			}
			if err := tx.Save(&model).Error; err != nil {
				return fmt.Errorf("failed to save arrest log: %w", err)
			}
			if len(events) > 0 {
				if err := tx.CreateInBatches(events, 100).Error; err != nil {
					return fmt.Errorf("failed to save events: %w", err)
				}
			}
			return nil
		})
	}, defaultRetries)
	if err != nil {
		return err
	}

	logging.Logger.Debug("Arrest log stored", "id", log.ID, "events", len(events))
	return nil
}

// Get implements ArrestLogReader.Get
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*domain.SavedLog, error) {
	var model ArrestLogModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Preload("Events", orderByPosition).
			Where("id = ?", id).
			First(&model).Error
	}, defaultRetries)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrLogNotFound, id)
		}
		return nil, err
	}

	result := arrestLogModelToDomain(model)
	return &result, nil
}

// List implements ArrestLogReader.List. Logs are returned newest first.
func (r *SQLiteRepository) List(ctx context.Context) ([]domain.SavedLog, error) {
	var models []ArrestLogModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Preload("Events", orderByPosition).
			Order("started_at DESC, id ASC").
			Find(&models).Error
	}, defaultRetries)
	if err != nil {
		return nil, err
	}

	logs := make([]domain.SavedLog, len(models))
	for i, m := range models {
		logs[i] = arrestLogModelToDomain(m)
	}
	return logs, nil
}

// Delete removes a log and its events
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("log_id = ?", id).Delete(&ArrestEventModel{}).Error; err != nil {
				return fmt.Errorf("failed to delete events: %w", err)
			}
			result := tx.Where("id = ?", id).Delete(&ArrestLogModel{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", domain.ErrLogNotFound, id)
			}
			return nil
		})
	}, defaultRetries)
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// withRetry retries fn while SQLite reports the database as busy or locked
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			logging.Logger.Debug("Database busy, retrying", "attempt", i+1)
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
