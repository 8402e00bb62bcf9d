//go:build darwin

package sound

import "github.com/aegismedical/eresus/internal/ports"

// commandsFor plays sounds on macOS using afplay
func commandsFor(kind ports.NotificationKind) []command {
	var soundFiles []string

	switch kind {
	case ports.NotifyArrestStarted:
		soundFiles = []string{"/System/Library/Sounds/Sosumi.aiff", "/System/Library/Sounds/Basso.aiff"}
	case ports.NotifyCycleComplete:
		soundFiles = []string{"/System/Library/Sounds/Glass.aiff", "/System/Library/Sounds/Hero.aiff"}
	case ports.NotifyMetronomeBeat:
		soundFiles = []string{"/System/Library/Sounds/Tink.aiff"}
	default:
		soundFiles = []string{"/System/Library/Sounds/Pop.aiff", "/System/Library/Sounds/Tink.aiff"}
	}

	commands := make([]command, len(soundFiles))
	for i, f := range soundFiles {
		commands[i] = command{name: "afplay", args: []string{f}}
	}
	return commands
}
