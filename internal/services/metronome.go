package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/aegismedical/eresus/internal/domain"
	"github.com/aegismedical/eresus/internal/logging"
	"github.com/aegismedical/eresus/internal/ports"
)

// Metronome beats at the CPR compression rate through the notifier
type Metronome struct {
	newScheduler SchedulerFactory
	notifier     ports.Notifier

	mu        sync.Mutex
	bpm       int
	scheduler Scheduler
}

// NewMetronome creates a stopped metronome
func NewMetronome(notifier ports.Notifier, newScheduler SchedulerFactory, bpm int) (*Metronome, error) {
	if bpm <= 0 {
		return nil, fmt.Errorf("%w: metronome BPM must be positive, got %d", domain.ErrInvalidValue, bpm)
	}
	if newScheduler == nil {
		newScheduler = NewTickSchedulerFactory()
	}
	return &Metronome{
		bpm:          bpm,
		newScheduler: newScheduler,
		notifier:     notifier,
	}, nil
}

// Interval is the time between beats
func (m *Metronome) Interval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return beatInterval(m.bpm)
}

// Running reports whether the metronome is beating
func (m *Metronome) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scheduler != nil
}

// Toggle starts a stopped metronome or stops a running one and returns the new state
func (m *Metronome) Toggle() bool {
	if m.Running() {
		m.Stop()
		return false
	}
	m.Start()
	return true
}

// Start begins beating. It does nothing if already running.
func (m *Metronome) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.scheduler != nil {
		return
	}
	m.scheduler = m.newScheduler(beatInterval(m.bpm), m.beat)
	m.scheduler.Start()
	logging.Logger.Debug("Metronome started", "bpm", m.bpm)
}

// Stop halts beating. It does nothing if already stopped.
func (m *Metronome) Stop() {
	m.mu.Lock()
	scheduler := m.scheduler
	m.scheduler = nil
	m.mu.Unlock()

	if scheduler != nil {
		scheduler.Stop()
		logging.Logger.Debug("Metronome stopped")
	}
}

// SetBPM changes the rate, restarting the beat if the metronome is running
func (m *Metronome) SetBPM(bpm int) error {
	if bpm <= 0 {
		return fmt.Errorf("%w: metronome BPM must be positive, got %d", domain.ErrInvalidValue, bpm)
	}

	running := m.Running()
	if running {
		m.Stop()
	}

	m.mu.Lock()
	m.bpm = bpm
	m.mu.Unlock()

	if running {
		m.Start()
	}
	return nil
}

func (m *Metronome) beat() {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.Notify(ports.NotifyMetronomeBeat); err != nil {
		logging.Logger.Warn("Metronome beat failed", "error", err)
	}
}

func beatInterval(bpm int) time.Duration {
	return time.Minute / time.Duration(bpm)
}
