package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aegismedical/eresus/internal/domain"
	"github.com/aegismedical/eresus/internal/dosage"
	"github.com/aegismedical/eresus/internal/logging"
	"github.com/aegismedical/eresus/internal/ports"
)

// Operation names used in transition errors
const (
	OpAchieveRosc   = "achieve_rosc"
	OpAddTimeOffset = "add_time_offset"
	OpAnalyseRhythm = "analyse_rhythm"
	OpDeliverShock  = "deliver_shock"
	OpEndArrest     = "end_arrest"
	OpLogAdrenaline = "log_adrenaline"
	OpLogAirway     = "log_airway"
	OpLogAmiodarone = "log_amiodarone"
	OpLogEtco2      = "log_etco2"
	OpLogLidocaine  = "log_lidocaine"
	OpLogOtherDrug  = "log_other_drug"
	OpLogRhythm     = "log_rhythm"
	OpReArrest      = "re_arrest"
	OpStartArrest   = "start_arrest"
	OpToggleCause   = "toggle_cause"
)

const overrunGraceRatio = 0.9

// ArrestConfig holds the timing and prompting parameters of the state machine
type ArrestConfig struct {
	AdrenalineInterval time.Duration
	CycleDuration      time.Duration
	MetronomeBPM       int
	ShowDosagePrompts  bool
	TickInterval       time.Duration
}

// DefaultArrestConfig returns the resuscitation guideline defaults
func DefaultArrestConfig() ArrestConfig {
	return ArrestConfig{
		AdrenalineInterval: 4 * time.Minute,
		CycleDuration:      2 * time.Minute,
		MetronomeBPM:       110,
		ShowDosagePrompts:  false,
		TickInterval:       time.Second,
	}
}

// Validate checks that every duration is positive
func (c ArrestConfig) Validate() error {
	if c.CycleDuration <= 0 {
		return fmt.Errorf("%w: cycle duration must be positive", domain.ErrInvalidValue)
	}
	if c.AdrenalineInterval <= 0 {
		return fmt.Errorf("%w: adrenaline interval must be positive", domain.ErrInvalidValue)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval must be positive", domain.ErrInvalidValue)
	}
	if c.MetronomeBPM <= 0 {
		return fmt.Errorf("%w: metronome BPM must be positive", domain.ErrInvalidValue)
	}
	return nil
}

// OverrunGrace is how far past zero the CPR countdown may go before it restarts on its own
func (c ArrestConfig) OverrunGrace() time.Duration {
	return time.Duration(float64(c.TickInterval) * overrunGraceRatio)
}

// Snapshot is an immutable view of the arrest published to observers
type Snapshot struct {
	AgeCategory          dosage.AgeCategory
	Causes               map[string]bool
	Counters             map[string]int
	CprRemainingSeconds  float64
	Events               []domain.Event // newest first
	LastAdrenalineAt     *float64
	MasterElapsedSeconds float64
	Mode                 domain.InteractionMode
	NextAdrenalineDue    *float64
	Phase                domain.ArrestPhase
	StartedAt            *time.Time
	TimeOffsetSeconds    float64
	TotalArrestTime      float64
	UnsavedLogs          int
}

// ResetOptions selects what happens to the outgoing session on reset
type ResetOptions struct {
	ExportSummary bool
	Save          bool
}

// ResetResult describes a completed reset. The session is always reset;
// SaveErr and ExportErr are warnings about the outgoing session.
type ResetResult struct {
	ExportErr error
	Log       *domain.SavedLog
	SaveErr   error
}

// Err joins the warnings, or returns nil when there are none
func (r ResetResult) Err() error {
	return errors.Join(r.SaveErr, r.ExportErr)
}

// effects collects work that must run after the session lock is released
type effects struct {
	changed       bool
	notifications []ports.NotificationKind
	stop          Scheduler
}

func (fx *effects) notify(kind ports.NotificationKind) {
	fx.notifications = append(fx.notifications, kind)
}

// ArrestService is the resuscitation state machine. All methods are safe for concurrent use.
type ArrestService struct {
	clock        ports.Clock
	exporter     ports.SummaryExporter
	logWriter    ports.ArrestLogWriter
	newScheduler SchedulerFactory
	notifier     ports.Notifier

	mu          sync.Mutex
	config      ArrestConfig
	generation  uint64
	nextSubID   int
	scheduler   Scheduler
	session     *domain.ArrestSession
	subscribers map[int]chan Snapshot
	unsaved     []domain.SavedLog
}

// NewArrestService creates a state machine holding a fresh pending session.
// exporter and logWriter may be nil when the caller never saves or exports.
func NewArrestService(
	clock ports.Clock,
	notifier ports.Notifier,
	logWriter ports.ArrestLogWriter,
	exporter ports.SummaryExporter,
	newScheduler SchedulerFactory,
	config ArrestConfig,
) (*ArrestService, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid arrest config: %w", err)
	}
	if newScheduler == nil {
		newScheduler = NewTickSchedulerFactory()
	}

	return &ArrestService{
		clock:        clock,
		config:       config,
		exporter:     exporter,
		logWriter:    logWriter,
		newScheduler: newScheduler,
		notifier:     notifier,
		session:      domain.NewArrestSession(config.CycleDuration.Seconds()),
		subscribers:  make(map[int]chan Snapshot),
	}, nil
}

// Config returns the active configuration
func (s *ArrestService) Config() ArrestConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// SetConfig replaces the configuration. A new tick interval applies from the next scheduler start.
func (s *ArrestService) SetConfig(config ArrestConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid arrest config: %w", err)
	}

	return s.apply(func(fx *effects) error {
		s.config = config
		if s.session.Phase == domain.PhasePending {
			s.session.CprRemainingSeconds = config.CycleDuration.Seconds()
		}
		fx.changed = true
		return nil
	})
}

// Snapshot returns the current published state
func (s *ArrestService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel that always holds the latest snapshot.
// The current state is delivered immediately; cancel closes the channel.
func (s *ArrestService) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Snapshot, 1)
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	ch <- s.snapshotLocked()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
			close(ch)
		})
	}
	return ch, cancel
}

// StartArrest begins a new arrest and the tick scheduler
func (s *ArrestService) StartArrest() error {
	return s.apply(func(fx *effects) error {
		sess := s.session
		if sess.Phase != domain.PhasePending {
			return s.transitionError(OpStartArrest)
		}

		now := s.clock.Now()
		sess.StartedAt = &now
		sess.Phase = domain.PhaseActive
		sess.Mode = domain.ModeDefault
		sess.MasterElapsedSeconds = 0
		sess.CprCycleStartSeconds = sess.TotalArrestTime()
		sess.CprRemainingSeconds = s.config.CycleDuration.Seconds()

		s.logEventLocked(fx, "Arrest Started", domain.CategoryStatus)
		fx.notify(ports.NotifyArrestStarted)
		s.startSchedulerLocked()

		logging.Logger.Info("Arrest started",
			"offset_seconds", sess.TimeOffsetSeconds,
			"cycle_seconds", sess.CprRemainingSeconds)
		return nil
	})
}

// Tick advances the arrest clock. It is a no-op before the arrest starts and after it ends.
func (s *ArrestService) Tick() {
	s.mu.Lock()
	generation := s.generation
	s.mu.Unlock()
	s.tickFor(generation)
}

// tickFor runs one tick unless the session it was scheduled for has been replaced
func (s *ArrestService) tickFor(generation uint64) {
	_ = s.apply(func(fx *effects) error {
		if generation != s.generation {
			logging.Logger.Debug("Discarding stale tick", "generation", generation)
			return nil
		}

		sess := s.session
		if sess.Phase == domain.PhasePending || sess.Phase == domain.PhaseEnded {
			return nil
		}

		s.refreshElapsedLocked()
		fx.changed = true

		if !sess.CprTimerRunning() {
			return nil
		}

		cycle := s.config.CycleDuration.Seconds()
		previous := sess.CprRemainingSeconds
		remaining := cycle - (sess.TotalArrestTime() - sess.CprCycleStartSeconds)
		sess.CprRemainingSeconds = remaining

		if previous > 0 && remaining <= 0 {
			fx.notify(ports.NotifyCycleComplete)
			logging.Logger.Debug("CPR cycle complete", "total_seconds", sess.TotalArrestTime())
		}

		if remaining < -s.config.OverrunGrace().Seconds() {
			sess.CprCycleStartSeconds = sess.TotalArrestTime()
			sess.CprRemainingSeconds = cycle
			sess.CyclingStarted = true
			logging.Logger.Debug("CPR cycle restarted automatically", "total_seconds", sess.TotalArrestTime())
		}
		return nil
	})
}

// AnalyseRhythm pauses CPR for rhythm analysis
func (s *ArrestService) AnalyseRhythm() error {
	return s.apply(func(fx *effects) error {
		sess := s.session
		if sess.Phase != domain.PhaseActive || sess.Mode != domain.ModeDefault {
			return s.transitionError(OpAnalyseRhythm)
		}

		s.refreshElapsedLocked()
		sess.Mode = domain.ModeAnalyzing
		sess.CyclingStarted = true
		s.logEventLocked(fx, "Rhythm analysis. Pausing CPR.", domain.CategoryAnalysis)
		return nil
	})
}

// LogRhythm records the analysed rhythm. A shockable rhythm waits for a shock,
// any other rhythm resumes CPR straight away.
func (s *ArrestService) LogRhythm(name string, shockable bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: rhythm name is empty", domain.ErrInvalidValue)
	}

	return s.apply(func(fx *effects) error {
		sess := s.session
		if sess.Phase != domain.PhaseActive || sess.Mode != domain.ModeAnalyzing {
			return s.transitionError(OpLogRhythm)
		}

		s.refreshElapsedLocked()
		s.logEventLocked(fx, fmt.Sprintf("Rhythm is %s", name), domain.CategoryRhythm)
		if shockable {
			sess.Mode = domain.ModeShockAdvised
			return nil
		}
		s.resumeCprLocked(fx)
		return nil
	})
}

// DeliverShock records a shock and resumes CPR
func (s *ArrestService) DeliverShock() error {
	return s.apply(func(fx *effects) error {
		sess := s.session
		if sess.Phase != domain.PhaseActive || sess.Mode != domain.ModeShockAdvised {
			return s.transitionError(OpDeliverShock)
		}

		s.refreshElapsedLocked()
		sess.Counters[domain.CounterShock]++
		s.logEventLocked(fx, fmt.Sprintf("Shock %d Delivered", sess.Counters[domain.CounterShock]), domain.CategoryShock)
		s.resumeCprLocked(fx)
		return nil
	})
}

// LogAdrenaline records an adrenaline dose and returns the suggested dose for the patient
func (s *ArrestService) LogAdrenaline() (dosage.Dose, error) {
	var dose dosage.Dose
	err := s.apply(func(fx *effects) error {
		if !s.drugPhaseLocked() {
			return s.transitionError(OpLogAdrenaline)
		}

		sess := s.session
		s.refreshElapsedLocked()
		sess.Counters[domain.CounterAdrenaline]++
		n := sess.Counters[domain.CounterAdrenaline]
		at := sess.TotalArrestTime()
		sess.LastAdrenalineAt = &at

		dose = s.doseLocked(dosage.Adrenaline, n)
		s.logEventLocked(fx, drugMessage("Adrenaline", dose, n), domain.CategoryDrug)
		return nil
	})
	return dose, err
}

// LogAmiodarone records an amiodarone dose. The dose ordinal is the number of doses given so far.
func (s *ArrestService) LogAmiodarone() (dosage.Dose, error) {
	var dose dosage.Dose
	err := s.apply(func(fx *effects) error {
		if !s.drugPhaseLocked() {
			return s.transitionError(OpLogAmiodarone)
		}

		sess := s.session
		s.refreshElapsedLocked()
		sess.Counters[domain.CounterAmiodarone]++
		n := sess.Counters[domain.CounterAmiodarone]

		dose = s.doseLocked(dosage.Amiodarone, n)
		s.logEventLocked(fx, drugMessage("Amiodarone", dose, n), domain.CategoryDrug)
		return nil
	})
	return dose, err
}

// LogLidocaine records a lidocaine dose. No table exists so the dose is always Unknown.
func (s *ArrestService) LogLidocaine() (dosage.Dose, error) {
	var dose dosage.Dose
	err := s.apply(func(fx *effects) error {
		if !s.drugPhaseLocked() {
			return s.transitionError(OpLogLidocaine)
		}

		sess := s.session
		s.refreshElapsedLocked()
		sess.Counters[domain.CounterLidocaine]++
		n := sess.Counters[domain.CounterLidocaine]

		dose = s.doseLocked(dosage.Lidocaine, n)
		s.logEventLocked(fx, drugMessage("Lidocaine", dose, n), domain.CategoryDrug)
		return nil
	})
	return dose, err
}

// LogOtherDrug records a drug given outside the dosage tables
func (s *ArrestService) LogOtherDrug(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: drug name is empty", domain.ErrInvalidValue)
	}

	return s.apply(func(fx *effects) error {
		if !s.drugPhaseLocked() {
			return s.transitionError(OpLogOtherDrug)
		}

		s.refreshElapsedLocked()
		s.session.Counters[domain.CounterOtherDrug]++
		s.logEventLocked(fx, fmt.Sprintf("%s Given", name), domain.CategoryDrug)
		return nil
	})
}

// LogAirway records placement of an advanced airway
func (s *ArrestService) LogAirway() error {
	return s.apply(func(fx *effects) error {
		if !s.drugPhaseLocked() {
			return s.transitionError(OpLogAirway)
		}

		s.refreshElapsedLocked()
		s.session.Counters[domain.CounterAirway]++
		s.logEventLocked(fx, "Advanced Airway Placed", domain.CategoryAirway)
		return nil
	})
}

// LogEtco2 records an end-tidal CO2 reading in mmHg
func (s *ArrestService) LogEtco2(mmHg int) error {
	if mmHg < 0 {
		return fmt.Errorf("%w: ETCO2 must not be negative, got %d", domain.ErrInvalidValue, mmHg)
	}

	return s.apply(func(fx *effects) error {
		if !s.drugPhaseLocked() {
			return s.transitionError(OpLogEtco2)
		}

		s.refreshElapsedLocked()
		s.logEventLocked(fx, fmt.Sprintf("ETCO2: %d mmHg", mmHg), domain.CategoryEtco2)
		return nil
	})
}

// ToggleCause flips a reversible cause between addressed and not addressed
func (s *ArrestService) ToggleCause(name string) error {
	if !domain.IsReversibleCause(name) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCause, name)
	}

	return s.apply(func(fx *effects) error {
		if !s.drugPhaseLocked() {
			return s.transitionError(OpToggleCause)
		}

		sess := s.session
		s.refreshElapsedLocked()
		sess.Causes[name] = !sess.Causes[name]
		if sess.Causes[name] {
			s.logEventLocked(fx, fmt.Sprintf("Reversible cause addressed: %s", name), domain.CategoryCause)
		} else {
			s.logEventLocked(fx, fmt.Sprintf("Reversible cause unchecked: %s", name), domain.CategoryCause)
		}
		return nil
	})
}

// AchieveRosc records return of spontaneous circulation
func (s *ArrestService) AchieveRosc() error {
	return s.apply(func(fx *effects) error {
		sess := s.session
		if sess.Phase != domain.PhaseActive {
			return s.transitionError(OpAchieveRosc)
		}

		s.refreshElapsedLocked()
		sess.Phase = domain.PhaseRosc
		sess.Mode = domain.ModeDefault
		s.logEventLocked(fx, "Return of Spontaneous Circulation (ROSC)", domain.CategoryStatus)
		logging.Logger.Info("ROSC achieved", "total_seconds", sess.TotalArrestTime())
		return nil
	})
}

// ReArrest returns a ROSC patient to an active arrest with a fresh CPR cycle
func (s *ArrestService) ReArrest() error {
	return s.apply(func(fx *effects) error {
		sess := s.session
		if sess.Phase != domain.PhaseRosc {
			return s.transitionError(OpReArrest)
		}

		s.refreshElapsedLocked()
		sess.Phase = domain.PhaseActive
		sess.Mode = domain.ModeDefault
		sess.CprCycleStartSeconds = sess.TotalArrestTime()
		sess.CprRemainingSeconds = s.config.CycleDuration.Seconds()
		s.logEventLocked(fx, "Patient re-arrested. Resuming CPR.", domain.CategoryStatus)
		if s.scheduler == nil {
			s.startSchedulerLocked()
		}
		logging.Logger.Info("Patient re-arrested", "total_seconds", sess.TotalArrestTime())
		return nil
	})
}

// EndArrest records the end of resuscitation and freezes the arrest clock
func (s *ArrestService) EndArrest() error {
	return s.apply(func(fx *effects) error {
		sess := s.session
		if sess.Phase != domain.PhaseActive && sess.Phase != domain.PhaseRosc {
			return s.transitionError(OpEndArrest)
		}

		s.refreshElapsedLocked()
		sess.Phase = domain.PhaseEnded
		sess.Mode = domain.ModeDefault
		s.logEventLocked(fx, "Resuscitation Ended", domain.CategoryStatus)
		fx.stop = s.detachSchedulerLocked()
		logging.Logger.Info("Arrest ended", "total_seconds", sess.TotalArrestTime())
		return nil
	})
}

// AddTimeOffset adjusts the arrest clock for time elapsed before the arrest was started here.
// It is allowed until CPR cycling begins; the running cycle shifts with the offset.
func (s *ArrestService) AddTimeOffset(delta time.Duration) error {
	return s.apply(func(fx *effects) error {
		sess := s.session
		allowed := sess.Phase == domain.PhasePending ||
			(sess.Phase == domain.PhaseActive && !sess.CyclingStarted)
		if !allowed {
			return s.transitionError(OpAddTimeOffset)
		}

		d := delta.Seconds()
		offset := sess.TimeOffsetSeconds + d
		if offset < 0 {
			return fmt.Errorf("%w: offset would become %.0fs", domain.ErrInvalidOffset, offset)
		}

		if sess.Phase == domain.PhaseActive {
			s.refreshElapsedLocked()
			if last, ok := sess.Events.Last(); ok && sess.MasterElapsedSeconds+offset < last.TimestampSeconds {
				return fmt.Errorf("%w: arrest time would precede logged events", domain.ErrInvalidOffset)
			}
			sess.CprCycleStartSeconds += d
		}

		sess.TimeOffsetSeconds = offset
		fx.changed = true
		logging.Logger.Info("Time offset adjusted", "delta_seconds", d, "offset_seconds", offset)
		return nil
	})
}

// SetPatientAgeCategory stores the patient's age band for dose lookups. An empty category clears it.
func (s *ArrestService) SetPatientAgeCategory(age dosage.AgeCategory) error {
	if age != "" {
		if _, err := dosage.ParseAgeCategory(string(age)); err != nil {
			return err
		}
	}

	return s.apply(func(fx *effects) error {
		s.session.AgeCategory = string(age)
		fx.changed = true
		return nil
	})
}

// PerformReset replaces the session with a fresh pending one. The outgoing session is
// optionally saved and its summary exported after the replacement is published.
func (s *ArrestService) PerformReset(ctx context.Context, opts ResetOptions) ResetResult {
	var (
		result  ResetResult
		summary string
	)

	_ = s.apply(func(fx *effects) error {
		sess := s.session
		if sess.Phase.Started() {
			s.refreshElapsedLocked()
			saved := buildSavedLog(sess)
			result.Log = &saved
			if opts.ExportSummary {
				summary = FormatSummary(saved)
			}
		}

		fx.stop = s.detachSchedulerLocked()
		s.session = domain.NewArrestSession(s.config.CycleDuration.Seconds())
		fx.changed = true
		return nil
	})

	logging.Logger.Info("Arrest session reset", "save", opts.Save, "export", opts.ExportSummary)

	if result.Log == nil {
		return result
	}

	if opts.Save {
		result.SaveErr = s.save(ctx, *result.Log)
	}

	if summary != "" {
		result.ExportErr = s.export(ctx, result.Log.ID, summary)
	}

	return result
}

// RetryUnsaved attempts to persist logs whose save failed earlier.
// Logs that fail again stay queued.
func (s *ArrestService) RetryUnsaved(ctx context.Context) error {
	s.mu.Lock()
	pending := s.unsaved
	s.unsaved = nil
	s.publishLocked()
	s.mu.Unlock()

	var errs []error
	for _, log := range pending {
		if err := s.save(ctx, log); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *ArrestService) save(ctx context.Context, log domain.SavedLog) error {
	if s.logWriter == nil {
		return s.queueUnsaved(log, errors.New("no arrest log store configured"))
	}
	if err := s.logWriter.Save(ctx, log); err != nil {
		return s.queueUnsaved(log, err)
	}
	logging.Logger.Info("Arrest log saved", "id", log.ID, "outcome", log.Outcome)
	return nil
}

func (s *ArrestService) queueUnsaved(log domain.SavedLog, cause error) error {
	logging.Logger.Warn("Failed to save arrest log, keeping it for retry", "id", log.ID, "error", cause)

	s.mu.Lock()
	s.unsaved = append(s.unsaved, log)
	s.publishLocked()
	s.mu.Unlock()

	return &domain.PersistenceError{Err: cause, LogID: log.ID}
}

func (s *ArrestService) export(ctx context.Context, logID, summary string) error {
	if s.exporter == nil {
		return errors.New("no summary exporter configured")
	}
	if err := s.exporter.Export(ctx, logID, summary); err != nil {
		logging.Logger.Warn("Failed to export arrest summary", "error", err)
		return fmt.Errorf("failed to export summary: %w", err)
	}
	return nil
}

// apply runs fn under the session lock, publishes on change, then runs deferred effects
func (s *ArrestService) apply(fn func(fx *effects) error) error {
	fx := &effects{}

	s.mu.Lock()
	err := fn(fx)
	if err == nil && (fx.changed || len(fx.notifications) > 0) {
		s.publishLocked()
	}
	s.mu.Unlock()

	if fx.stop != nil {
		fx.stop.Stop()
	}

	for _, kind := range fx.notifications {
		if s.notifier == nil {
			break
		}
		if nerr := s.notifier.Notify(kind); nerr != nil {
			logging.Logger.Warn("Notifier failed", "kind", kind, "error", nerr)
		}
	}

	if err != nil {
		logging.Logger.Debug("Arrest operation rejected", "error", err)
	}
	return err
}

func (s *ArrestService) transitionError(op string) error {
	return &domain.TransitionError{
		Mode:      s.session.Mode,
		Operation: op,
		Phase:     s.session.Phase,
	}
}

func (s *ArrestService) drugPhaseLocked() bool {
	return s.session.Phase == domain.PhaseActive || s.session.Phase == domain.PhaseRosc
}

// refreshElapsedLocked brings master elapsed up to the clock. It never moves backwards.
func (s *ArrestService) refreshElapsedLocked() {
	sess := s.session
	if sess.StartedAt == nil || sess.Phase == domain.PhaseEnded {
		return
	}
	elapsed := s.clock.Now().Sub(*sess.StartedAt).Seconds()
	if elapsed > sess.MasterElapsedSeconds {
		sess.MasterElapsedSeconds = elapsed
	}
}

func (s *ArrestService) resumeCprLocked(fx *effects) {
	sess := s.session
	sess.Mode = domain.ModeDefault
	sess.CprCycleStartSeconds = sess.TotalArrestTime()
	sess.CprRemainingSeconds = s.config.CycleDuration.Seconds()
	s.logEventLocked(fx, "Resuming CPR.", domain.CategoryCpr)
}

func (s *ArrestService) logEventLocked(fx *effects, message string, category domain.EventCategory) {
	sess := s.session
	sess.Events.Append(domain.NewEvent(*sess.StartedAt, sess.TotalArrestTime(), message, category))
	fx.changed = true
	fx.notify(ports.NotifyEventLogged)
	logging.Logger.Debug("Event logged", "message", message, "category", category)
}

func (s *ArrestService) doseLocked(drug dosage.Drug, doseNumber int) dosage.Dose {
	if !s.config.ShowDosagePrompts || s.session.AgeCategory == "" {
		return dosage.Dose{Status: dosage.Unknown}
	}
	return dosage.Lookup(dosage.AgeCategory(s.session.AgeCategory), drug, doseNumber)
}

func drugMessage(drug string, dose dosage.Dose, doseNumber int) string {
	if dose.Resolved() {
		return fmt.Sprintf("%s (%s) Given - Dose %d", drug, dose.Text, doseNumber)
	}
	return fmt.Sprintf("%s Given - Dose %d", drug, doseNumber)
}

func (s *ArrestService) startSchedulerLocked() {
	s.generation++
	generation := s.generation
	scheduler := s.newScheduler(s.config.TickInterval, func() { s.tickFor(generation) })
	scheduler.Start()
	s.scheduler = scheduler
}

// detachSchedulerLocked invalidates in-flight ticks and hands the scheduler back for stopping
// once the lock is released
func (s *ArrestService) detachSchedulerLocked() Scheduler {
	s.generation++
	scheduler := s.scheduler
	s.scheduler = nil
	return scheduler
}

func (s *ArrestService) publishLocked() {
	snap := s.snapshotLocked()
	for _, ch := range s.subscribers {
		// Drop the stale value so the latest always wins
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (s *ArrestService) snapshotLocked() Snapshot {
	sess := s.session

	counters := make(map[string]int, len(sess.Counters))
	for k, v := range sess.Counters {
		counters[k] = v
	}
	causes := make(map[string]bool, len(sess.Causes))
	for k, v := range sess.Causes {
		causes[k] = v
	}

	snap := Snapshot{
		AgeCategory:          dosage.AgeCategory(sess.AgeCategory),
		Causes:               causes,
		Counters:             counters,
		CprRemainingSeconds:  sess.CprRemainingSeconds,
		Events:               sess.Events.NewestFirst(),
		MasterElapsedSeconds: sess.MasterElapsedSeconds,
		Mode:                 sess.Mode,
		Phase:                sess.Phase,
		TimeOffsetSeconds:    sess.TimeOffsetSeconds,
		TotalArrestTime:      sess.TotalArrestTime(),
		UnsavedLogs:          len(s.unsaved),
	}
	if sess.StartedAt != nil {
		started := *sess.StartedAt
		snap.StartedAt = &started
	}
	if sess.LastAdrenalineAt != nil {
		last := *sess.LastAdrenalineAt
		due := last + s.config.AdrenalineInterval.Seconds()
		snap.LastAdrenalineAt = &last
		snap.NextAdrenalineDue = &due
	}
	return snap
}

func buildSavedLog(sess *domain.ArrestSession) domain.SavedLog {
	counters := make(map[string]int, len(sess.Counters))
	for k, v := range sess.Counters {
		counters[k] = v
	}
	return domain.SavedLog{
		Counters:             counters,
		Events:               sess.Events.Chronological(),
		ID:                   uuid.New().String(),
		Outcome:              sess.Phase.OutcomeLabel(),
		StartedAt:            *sess.StartedAt,
		TotalDurationSeconds: sess.TotalArrestTime(),
	}
}
