package sound

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/aegismedical/eresus/internal/logging"
	"github.com/aegismedical/eresus/internal/ports"
)

// command is one way of playing a sound on the current platform
type command struct {
	name string
	args []string
}

// startFunc launches a process without waiting for it to finish
type startFunc func(name string, args ...string) error

// Player implements ports.Notifier with system sounds.
// Sounds are started asynchronously so a notification never blocks the caller.
type Player struct {
	bell  io.Writer
	start startFunc
}

var _ ports.Notifier = (*Player)(nil)

// NewPlayer creates a new sound player. Muting is handled by the notification service.
func NewPlayer() *Player {
	return &Player{
		bell:  os.Stdout,
		start: startProcess,
	}
}

// Notify plays the sound for kind, falling back to the terminal bell
func (p *Player) Notify(kind ports.NotificationKind) error {
	for _, c := range commandsFor(kind) {
		if err := p.start(c.name, c.args...); err == nil {
			return nil
		}
	}

	logging.Logger.Debug("No sound command available, using terminal bell", "kind", kind)
	return p.terminalBell()
}

// terminalBell outputs a terminal bell character as fallback
func (p *Player) terminalBell() error {
	if _, err := fmt.Fprint(p.bell, "\a"); err != nil {
		return fmt.Errorf("failed to ring terminal bell: %w", err)
	}
	return nil
}

func startProcess(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
