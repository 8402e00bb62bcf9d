// Package export delivers arrest summaries to the clipboard, files or a writer.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"

	"github.com/aegismedical/eresus/internal/logging"
	"github.com/aegismedical/eresus/internal/ports"
)

// ErrClipboardUnavailable is returned when no clipboard utility is installed
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// ClipboardExporter copies summaries to the system clipboard
type ClipboardExporter struct {
	write func(string) error
}

var _ ports.SummaryExporter = (*ClipboardExporter)(nil)

// NewClipboardExporter creates a new ClipboardExporter
func NewClipboardExporter() *ClipboardExporter {
	return &ClipboardExporter{write: clipboard.WriteAll}
}

// Export implements ports.SummaryExporter
func (e *ClipboardExporter) Export(ctx context.Context, logID string, summary string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := e.write(summary); err != nil {
		return fmt.Errorf("failed to copy summary to clipboard: %w", err)
	}
	logging.Logger.Debug("Summary copied to clipboard", "id", logID, "bytes", len(summary))
	return nil
}

// FileExporter writes each summary to its own file in a directory.
// Files are named after the export time and the log ID.
type FileExporter struct {
	dir string
	now func() time.Time
}

var _ ports.SummaryExporter = (*FileExporter)(nil)

// NewFileExporter creates a new FileExporter writing into dir
func NewFileExporter(dir string) *FileExporter {
	return &FileExporter{dir: dir, now: time.Now}
}

// Export implements ports.SummaryExporter
func (e *FileExporter) Export(ctx context.Context, logID string, summary string) error {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(e.dir, fmt.Sprintf("arrest-summary-%s-%s.txt", e.now().Format("20060102-150405"), logID))
	if err := os.WriteFile(path, []byte(summary), 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	logging.Logger.Info("Summary written", "id", logID, "path", path)
	return nil
}

// WriterExporter prints summaries to a writer such as stdout
type WriterExporter struct {
	w io.Writer
}

var _ ports.SummaryExporter = (*WriterExporter)(nil)

// NewWriterExporter creates a new WriterExporter
func NewWriterExporter(w io.Writer) *WriterExporter {
	return &WriterExporter{w: w}
}

// Export implements ports.SummaryExporter
func (e *WriterExporter) Export(ctx context.Context, logID string, summary string) error {
	if _, err := io.WriteString(e.w, summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// Multi fans a summary out to several exporters, continuing past failures
type Multi []ports.SummaryExporter

var _ ports.SummaryExporter = Multi(nil)

// Export implements ports.SummaryExporter
func (m Multi) Export(ctx context.Context, logID string, summary string) error {
	var errs []error
	for _, e := range m {
		if err := e.Export(ctx, logID, summary); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
