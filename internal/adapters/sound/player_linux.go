//go:build linux

package sound

import "github.com/aegismedical/eresus/internal/ports"

const freedesktopSounds = "/usr/share/sounds/freedesktop/stereo/"

// commandsFor plays sounds on Linux using paplay (PulseAudio) or aplay (ALSA)
func commandsFor(kind ports.NotificationKind) []command {
	var name string

	switch kind {
	case ports.NotifyArrestStarted:
		name = "alarm-clock-elapsed"
	case ports.NotifyCycleComplete:
		name = "complete"
	case ports.NotifyMetronomeBeat:
		name = "audio-volume-change"
	default:
		name = "bell"
	}

	return []command{
		{name: "paplay", args: []string{freedesktopSounds + name + ".oga"}},
		{name: "aplay", args: []string{"-q", freedesktopSounds + name + ".wav"}},
	}
}
