package clock

import (
	"sync"
	"time"

	"github.com/aegismedical/eresus/internal/ports"
)

// Real implements ports.Clock using the system clock
type Real struct{}

var _ ports.Clock = Real{}

// Now returns the current time. The value carries a monotonic reading,
// so differences between two calls are unaffected by wall-clock jumps.
func (Real) Now() time.Time {
	return time.Now()
}

// Fake is a manually advanced clock for deterministic tests
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

var _ ports.Clock = (*Fake)(nil)

// NewFake creates a fake clock starting at the given time
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake current time
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the fake clock forward
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Set moves the fake clock to an absolute time
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}
