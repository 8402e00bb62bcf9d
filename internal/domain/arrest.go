package domain

import "time"

// ArrestPhase represents the lifecycle phase of a resuscitation attempt
type ArrestPhase string

const (
	PhasePending ArrestPhase = "pending"
	PhaseActive  ArrestPhase = "active"
	PhaseRosc    ArrestPhase = "rosc"
	PhaseEnded   ArrestPhase = "ended"
)

// Started reports whether the phase belongs to a started arrest
func (p ArrestPhase) Started() bool {
	return p == PhaseActive || p == PhaseRosc || p == PhaseEnded
}

// OutcomeLabel returns the outcome recorded in saved logs for the phase
func (p ArrestPhase) OutcomeLabel() string {
	switch p {
	case PhaseRosc:
		return "ROSC"
	case PhaseEnded:
		return "Deceased"
	case PhaseActive:
		return "Incomplete"
	default:
		return ""
	}
}

// InteractionMode is the sub-state of an active arrest.
// The CPR cycle timer only runs in ModeDefault.
type InteractionMode string

const (
	ModeDefault      InteractionMode = "default"
	ModeAnalyzing    InteractionMode = "analyzing"
	ModeShockAdvised InteractionMode = "shock_advised"
)

// Counter names
const (
	CounterAdrenaline = "adrenaline"
	CounterAirway     = "airway"
	CounterAmiodarone = "amiodarone"
	CounterLidocaine  = "lidocaine"
	CounterOtherDrug  = "other_drug"
	CounterShock      = "shock"
)

// CounterNames lists the counters every session starts with, in display order
var CounterNames = []string{
	CounterShock,
	CounterAdrenaline,
	CounterAmiodarone,
	CounterLidocaine,
	CounterOtherDrug,
	CounterAirway,
}

// NewCounters returns a zeroed counter map
func NewCounters() map[string]int {
	counters := make(map[string]int, len(CounterNames))
	for _, name := range CounterNames {
		counters[name] = 0
	}
	return counters
}

// ArrestSession is the live state of one resuscitation attempt.
// It is owned by a single state machine and never shared without copying.
type ArrestSession struct {
	AgeCategory          string
	Causes               map[string]bool
	Counters             map[string]int
	CprCycleStartSeconds float64
	CprRemainingSeconds  float64
	CyclingStarted       bool
	Events               *EventLog
	LastAdrenalineAt     *float64
	MasterElapsedSeconds float64
	Mode                 InteractionMode
	Phase                ArrestPhase
	StartedAt            *time.Time
	TimeOffsetSeconds    float64
}

// NewArrestSession creates a pending session with all fields zeroed
func NewArrestSession(cycleDuration float64) *ArrestSession {
	return &ArrestSession{
		Causes:              NewCauseChecklist(),
		Counters:            NewCounters(),
		CprRemainingSeconds: cycleDuration,
		Events:              NewEventLog(),
		Mode:                ModeDefault,
		Phase:               PhasePending,
	}
}

// TotalArrestTime is the authoritative arrest clock: elapsed time plus the manual offset
func (s *ArrestSession) TotalArrestTime() float64 {
	return s.MasterElapsedSeconds + s.TimeOffsetSeconds
}

// CprTimerRunning reports whether the CPR cycle countdown advances on tick
func (s *ArrestSession) CprTimerRunning() bool {
	return s.Phase == PhaseActive && s.Mode == ModeDefault
}
