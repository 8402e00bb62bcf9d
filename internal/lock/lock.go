// Package lock guards the eresus home directory so only one live arrest session runs at a time.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aegismedical/eresus/internal/logging"
)

// ErrAlreadyLocked is returned when another process holds the lock
var ErrAlreadyLocked = errors.New("another eresus session is already running")

// FileName is the lock file created inside the guarded directory
const FileName = "session.lock"

// Lock is an exclusive advisory lock held on a file
type Lock struct {
	file *os.File
	path string
}

// Acquire takes the lock in dir without blocking
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	path := filepath.Join(dir, FileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := tryLockFile(file); err != nil {
		file.Close()
		return nil, err
	}

	// Record the holder for diagnostics; the lock itself is the flock
	if err := file.Truncate(0); err == nil {
		_, _ = file.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0)
	}

	logging.Logger.Debug("Session lock acquired", "path", path)
	return &Lock{file: file, path: path}, nil
}

// Path returns the lock file path
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock. Releasing twice is a no-op.
func (l *Lock) Release() error {
	if l.file == nil {
		return nil
	}

	unlockErr := unlockFile(l.file)
	closeErr := l.file.Close()
	l.file = nil

	if unlockErr != nil {
		return fmt.Errorf("failed to unlock: %w", unlockErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close lock file: %w", closeErr)
	}
	logging.Logger.Debug("Session lock released", "path", l.path)
	return nil
}
