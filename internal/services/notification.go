package services

import (
	"fmt"
	"sync"

	"github.com/aegismedical/eresus/internal/logging"
	"github.com/aegismedical/eresus/internal/ports"
)

// NotificationKinds lists every kind the core can emit, in display order
var NotificationKinds = []ports.NotificationKind{
	ports.NotifyArrestStarted,
	ports.NotifyCycleComplete,
	ports.NotifyEventLogged,
	ports.NotifyMetronomeBeat,
}

// NotificationService routes state machine notifications to the feedback device.
// It implements ports.Notifier so the state machine and metronome can use it directly.
type NotificationService struct {
	player ports.Notifier

	mu    sync.RWMutex
	muted bool
}

var _ ports.Notifier = (*NotificationService)(nil)

// NewNotificationService creates a new NotificationService
func NewNotificationService(player ports.Notifier, muted bool) *NotificationService {
	return &NotificationService{
		muted:  muted,
		player: player,
	}
}

// ParseNotificationKind validates a kind given on the command line
func ParseNotificationKind(s string) (ports.NotificationKind, error) {
	for _, kind := range NotificationKinds {
		if string(kind) == s {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown notification kind %q", s)
}

// ShouldPlay determines if a kind produces feedback.
// Metronome beats keep playing when muted, since the team explicitly switched them on.
func (s *NotificationService) ShouldPlay(kind ports.NotificationKind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch kind {
	case ports.NotifyMetronomeBeat:
		return true
	case ports.NotifyArrestStarted, ports.NotifyCycleComplete, ports.NotifyEventLogged:
		return !s.muted
	default:
		return false
	}
}

// Notify implements ports.Notifier. Failures are logged and returned; callers ignore them.
func (s *NotificationService) Notify(kind ports.NotificationKind) error {
	if !s.ShouldPlay(kind) {
		logging.Logger.Debug("Notification suppressed", "kind", kind)
		return nil
	}

	if err := s.player.Notify(kind); err != nil {
		logging.Logger.Warn("Failed to play notification", "kind", kind, "error", err)
		return err
	}
	return nil
}

// Play plays kind regardless of the mute setting
func (s *NotificationService) Play(kind ports.NotificationKind) error {
	logging.Logger.Debug("Playing notification", "kind", kind)
	return s.player.Notify(kind)
}

// Muted reports whether transition feedback is suppressed
func (s *NotificationService) Muted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.muted
}

// ToggleMute flips the mute setting and returns the new value
func (s *NotificationService) ToggleMute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = !s.muted
	logging.Logger.Info("Notification mute toggled", "muted", s.muted)
	return s.muted
}
