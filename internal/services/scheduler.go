package services

import (
	"sync"
	"time"
)

// Scheduler drives a periodic callback
type Scheduler interface {
	Start()
	Stop()
}

// SchedulerFactory builds a scheduler for the given period and callback
type SchedulerFactory func(interval time.Duration, tick func()) Scheduler

// TickScheduler calls a function at a fixed period on its own goroutine
type TickScheduler struct {
	interval time.Duration
	tick     func()

	mu     sync.Mutex
	done   chan struct{}
	stopCh chan struct{}
}

var _ Scheduler = (*TickScheduler)(nil)

// NewTickScheduler creates a stopped scheduler
func NewTickScheduler(interval time.Duration, tick func()) *TickScheduler {
	return &TickScheduler{
		interval: interval,
		tick:     tick,
	}
}

// NewTickSchedulerFactory adapts NewTickScheduler to SchedulerFactory
func NewTickSchedulerFactory() SchedulerFactory {
	return func(interval time.Duration, tick func()) Scheduler {
		return NewTickScheduler(interval, tick)
	}
}

// Start begins ticking. Starting a running scheduler is a programming error.
func (t *TickScheduler) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopCh != nil {
		panic("tick scheduler already running")
	}

	t.stopCh = make(chan struct{})
	t.done = make(chan struct{})
	go t.loop(t.stopCh, t.done)
}

// Stop halts ticking and waits for the goroutine to exit.
// Stopping a stopped scheduler is a programming error.
func (t *TickScheduler) Stop() {
	t.mu.Lock()
	if t.stopCh == nil {
		t.mu.Unlock()
		panic("tick scheduler not running")
	}
	close(t.stopCh)
	done := t.done
	t.stopCh = nil
	t.done = nil
	t.mu.Unlock()

	<-done
}

// Running reports whether the scheduler goroutine is active
func (t *TickScheduler) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopCh != nil
}

func (t *TickScheduler) loop(stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Prefer stop when both are ready
			select {
			case <-stopCh:
				return
			default:
			}
			t.tick()
		}
	}
}
