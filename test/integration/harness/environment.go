package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnvironment provides an isolated test environment with its own ERESUS_HOME.
type TestEnvironment struct {
	EresusHome string
	extraEnv   map[string]string
	tb         testing.TB
}

// NewTestEnvironment creates an isolated test environment with a temp ERESUS_HOME.
// The temp directory is automatically cleaned up when the test completes.
func NewTestEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()

	return &TestEnvironment{
		EresusHome: tb.TempDir(),
		extraEnv:   make(map[string]string),
		tb:         tb,
	}
}

// Environ returns environment variables configured for test isolation.
// It filters out ERESUS_* variables and sets:
//   - ERESUS_HOME to the temp directory
//   - ERESUS_DEBUG to empty string (disables debug logging)
//   - ERESUS_MUTED to "true"
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+3+len(e.extraEnv))

	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "ERESUS_") {
			continue
		}
		if _, overridden := e.extraEnv[key]; overridden {
			continue
		}
		env = append(env, kv)
	}

	env = append(env,
		"ERESUS_HOME="+e.EresusHome,
		"ERESUS_DEBUG=",
		"ERESUS_MUTED=true",
	)

	for k, v := range e.extraEnv {
		env = append(env, k+"="+v)
	}

	return env
}

// DBPath returns the path to the test database.
func (e *TestEnvironment) DBPath() string {
	return filepath.Join(e.EresusHome, "eresus.db")
}

// ExportDir returns the default summary export directory.
func (e *TestEnvironment) ExportDir() string {
	return filepath.Join(e.EresusHome, "exports")
}

// SettingsPath returns the default settings file location.
func (e *TestEnvironment) SettingsPath() string {
	return filepath.Join(e.EresusHome, "settings.json")
}

// WriteSettings writes a settings file into ERESUS_HOME.
func (e *TestEnvironment) WriteSettings(name, content string) string {
	e.tb.Helper()
	path := filepath.Join(e.EresusHome, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.tb.Fatalf("Failed to write settings file: %v", err)
	}
	return path
}

// SetEnv sets an additional environment variable for this test environment.
func (e *TestEnvironment) SetEnv(key, value string) {
	if e.extraEnv == nil {
		e.extraEnv = make(map[string]string)
	}
	e.extraEnv[key] = value
}
