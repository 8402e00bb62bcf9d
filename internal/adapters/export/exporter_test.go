package export

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atotto/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	portsmocks "github.com/aegismedical/eresus/internal/ports/mocks"
)

func TestClipboardExporter(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("no clipboard utility on this machine")
	}

	var copied string
	e := &ClipboardExporter{write: func(s string) error { copied = s; return nil }}

	require.NoError(t, e.Export(context.Background(), "log-1", "summary"))
	assert.Equal(t, "summary", copied)

	e.write = func(string) error { return errors.New("xclip crashed") }
	assert.ErrorContains(t, e.Export(context.Background(), "log-1", "summary"), "xclip crashed")
}

func TestFileExporter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "summaries")
	e := NewFileExporter(dir)
	e.now = func() time.Time { return time.Date(2026, 7, 8, 9, 10, 11, 0, time.UTC) }

	require.NoError(t, e.Export(context.Background(), "log-1", "hello"))

	data, err := os.ReadFile(filepath.Join(dir, "arrest-summary-20260708-091011-log-1.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestFileExporter_SameSecondKeepsBothSummaries(t *testing.T) {
	dir := t.TempDir()
	e := NewFileExporter(dir)
	e.now = func() time.Time { return time.Date(2026, 7, 8, 9, 10, 11, 0, time.UTC) }

	require.NoError(t, e.Export(context.Background(), "first-id", "first"))
	require.NoError(t, e.Export(context.Background(), "second-id", "second"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	first, err := os.ReadFile(filepath.Join(dir, "arrest-summary-20260708-091011-first-id.txt"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(first))
	second, err := os.ReadFile(filepath.Join(dir, "arrest-summary-20260708-091011-second-id.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(second))
}

func TestWriterExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriterExporter(&buf).Export(context.Background(), "log-1", "hello"))
	assert.Equal(t, "hello", buf.String())
}

func TestMulti_ContinuesPastFailures(t *testing.T) {
	failing := portsmocks.NewMockSummaryExporter(t)
	failing.EXPECT().Export(mock.Anything, "log-1", "text").Return(errors.New("boom")).Once()
	var buf bytes.Buffer

	err := Multi{failing, NewWriterExporter(&buf)}.Export(context.Background(), "log-1", "text")

	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, "text", buf.String())
}
