package integration_test

import (
	"testing"

	"github.com/aegismedical/eresus/test/integration/harness"
)

func TestPlaySound(t *testing.T) {
	// In a headless environment (container, CI) there is no audio device,
	// so the command may succeed silently or fail depending on the backend.

	tests := []struct {
		name         string
		args         []string
		wantExitCode int
	}{
		{
			name: "default kind runs without crashing",
			args: []string{"play-sound"},
		},
		{
			name: "explicit kind runs without crashing",
			args: []string{"play-sound", "--kind", "metronome-beat"},
		},
		{
			name:         "unknown kind is rejected",
			args:         []string{"play-sound", "--kind", "siren"},
			wantExitCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := harness.NewTestEnvironment(t)

			result := harness.RunCommand(t, env, tt.args...)

			if tt.wantExitCode != 0 {
				harness.AssertFailure(t, result)
				return
			}
			if result.ExitCode != 0 {
				t.Logf("play-sound exited with code %d (expected in headless env)", result.ExitCode)
				t.Logf("stderr: %s", result.Stderr)
			}
		})
	}
}
