//go:build !darwin && !linux && !windows

package sound

import "github.com/aegismedical/eresus/internal/ports"

// commandsFor has nothing to offer on unsupported platforms, so the terminal bell is used
func commandsFor(kind ports.NotificationKind) []command {
	return nil
}
