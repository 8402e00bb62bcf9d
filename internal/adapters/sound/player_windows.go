//go:build windows

package sound

import "github.com/aegismedical/eresus/internal/ports"

// commandsFor plays sounds on Windows using PowerShell
func commandsFor(kind ports.NotificationKind) []command {
	var script string

	switch kind {
	case ports.NotifyArrestStarted:
		script = "[System.Media.SystemSounds]::Hand.Play()"
	case ports.NotifyCycleComplete:
		script = "[System.Media.SystemSounds]::Exclamation.Play()"
	case ports.NotifyMetronomeBeat:
		script = "[console]::beep(880,40)"
	default:
		script = "[System.Media.SystemSounds]::Asterisk.Play()"
	}

	return []command{{name: "powershell", args: []string{"-NoProfile", "-c", script}}}
}
