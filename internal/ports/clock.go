package ports

import "time"

// Clock supplies wall-clock time to the arrest state machine
type Clock interface {
	Now() time.Time
}
