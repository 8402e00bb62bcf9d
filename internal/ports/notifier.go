package ports

// NotificationKind identifies the transition a notification is keyed to
type NotificationKind string

const (
	NotifyArrestStarted NotificationKind = "arrest-started"
	NotifyCycleComplete NotificationKind = "cycle-complete"
	NotifyEventLogged   NotificationKind = "event-logged"
	NotifyMetronomeBeat NotificationKind = "metronome-beat"
)

// Notifier plays haptic or audio feedback. Calls are fire-and-forget:
// callers log returned errors and carry on.
type Notifier interface {
	Notify(kind NotificationKind) error
}
