package cmd

import (
	"fmt"

	"github.com/aegismedical/eresus/internal/services"
)

// PlaySoundCmd plays a notification sound
type PlaySoundCmd struct {
	Kind string `help:"Which alert to play" enum:"arrest-started,cycle-complete,event-logged,metronome-beat" default:"cycle-complete"`
}

// Run executes the sound playing logic
func (p *PlaySoundCmd) Run(cli *CLI) error {
	kind, err := services.ParseNotificationKind(p.Kind)
	if err != nil {
		return fmt.Errorf("invalid sound kind: %w", err)
	}
	return cli.Container.NotificationService.Play(kind)
}
