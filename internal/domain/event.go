package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventCategory classifies an event for display and filtering
type EventCategory string

const (
	CategoryStatus   EventCategory = "status"
	CategoryCpr      EventCategory = "cpr"
	CategoryShock    EventCategory = "shock"
	CategoryAnalysis EventCategory = "analysis"
	CategoryRhythm   EventCategory = "rhythm"
	CategoryDrug     EventCategory = "drug"
	CategoryAirway   EventCategory = "airway"
	CategoryEtco2    EventCategory = "etco2"
	CategoryCause    EventCategory = "cause"
)

// Event is a single entry of the clinical event log. Events are immutable once created.
type Event struct {
	Category         EventCategory
	ID               string
	Message          string
	SessionStartedAt time.Time
	TimestampSeconds float64
}

// NewEvent creates an event with a fresh ID
func NewEvent(sessionStartedAt time.Time, timestamp float64, message string, category EventCategory) Event {
	return Event{
		Category:         category,
		ID:               uuid.New().String(),
		Message:          message,
		SessionStartedAt: sessionStartedAt,
		TimestampSeconds: timestamp,
	}
}

// EventLog is an append-only sequence of events stored oldest first
type EventLog struct {
	events []Event
}

// NewEventLog creates an empty event log
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Append adds an event at the end of the log
func (l *EventLog) Append(event Event) {
	l.events = append(l.events, event)
}

// Len returns the number of events
func (l *EventLog) Len() int {
	return len(l.events)
}

// Last returns the most recent event
func (l *EventLog) Last() (Event, bool) {
	if len(l.events) == 0 {
		return Event{}, false
	}
	return l.events[len(l.events)-1], true
}

// Chronological returns a copy of the events, oldest first
func (l *EventLog) Chronological() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// NewestFirst returns a copy of the events, most recent first
func (l *EventLog) NewestFirst() []Event {
	out := make([]Event, len(l.events))
	for i, e := range l.events {
		out[len(l.events)-1-i] = e
	}
	return out
}

// Snapshot returns an immutable copy of the log for handoff across a component boundary
func (l *EventLog) Snapshot() *EventLog {
	return &EventLog{events: l.Chronological()}
}

// Clear removes all events. Only a full session reset may call it.
func (l *EventLog) Clear() {
	l.events = nil
}
