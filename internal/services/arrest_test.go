package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aegismedical/eresus/internal/adapters/clock"
	"github.com/aegismedical/eresus/internal/domain"
	"github.com/aegismedical/eresus/internal/dosage"
	"github.com/aegismedical/eresus/internal/ports"
	portsmocks "github.com/aegismedical/eresus/internal/ports/mocks"
)

type fakeScheduler struct {
	interval time.Duration
	started  int
	stopped  int
	tick     func()
}

func (f *fakeScheduler) Start() { f.started++ }
func (f *fakeScheduler) Stop()  { f.stopped++ }

type schedulerRecorder struct {
	mu         sync.Mutex
	schedulers []*fakeScheduler
}

func (r *schedulerRecorder) factory() SchedulerFactory {
	return func(interval time.Duration, tick func()) Scheduler {
		r.mu.Lock()
		defer r.mu.Unlock()
		s := &fakeScheduler{interval: interval, tick: tick}
		r.schedulers = append(r.schedulers, s)
		return s
	}
}

func (r *schedulerRecorder) all() []*fakeScheduler {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*fakeScheduler(nil), r.schedulers...)
}

type notificationCounter struct {
	mu     sync.Mutex
	counts map[ports.NotificationKind]int
}

func (c *notificationCounter) get(kind ports.NotificationKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[kind]
}

type testHarness struct {
	clock      *clock.Fake
	exporter   *portsmocks.MockSummaryExporter
	notified   *notificationCounter
	repo       *portsmocks.MockArrestLogRepository
	schedulers *schedulerRecorder
	svc        *ArrestService
}

func newHarness(t *testing.T, cfg ArrestConfig) *testHarness {
	t.Helper()

	h := &testHarness{
		clock:      clock.NewFake(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)),
		exporter:   portsmocks.NewMockSummaryExporter(t),
		notified:   &notificationCounter{counts: map[ports.NotificationKind]int{}},
		repo:       portsmocks.NewMockArrestLogRepository(t),
		schedulers: &schedulerRecorder{},
	}

	notifier := portsmocks.NewMockNotifier(t)
	notifier.EXPECT().Notify(mock.Anything).
		Run(func(kind ports.NotificationKind) {
			h.notified.mu.Lock()
			h.notified.counts[kind]++
			h.notified.mu.Unlock()
		}).
		Return(nil).
		Maybe()

	svc, err := NewArrestService(h.clock, notifier, h.repo, h.exporter, h.schedulers.factory(), cfg)
	require.NoError(t, err)
	h.svc = svc
	return h
}

func (h *testHarness) advance(seconds float64) {
	h.clock.Advance(time.Duration(seconds * float64(time.Second)))
}

func categories(events []domain.Event) []domain.EventCategory {
	out := make([]domain.EventCategory, len(events))
	for i, e := range events {
		out[len(events)-1-i] = e.Category
	}
	return out
}

func TestNewArrestService_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultArrestConfig()
	cfg.CycleDuration = 0

	_, err := NewArrestService(clock.Real{}, nil, nil, nil, nil, cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestStartArrest(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())

	require.NoError(t, h.svc.StartArrest())

	snap := h.svc.Snapshot()
	assert.Equal(t, domain.PhaseActive, snap.Phase)
	assert.Equal(t, domain.ModeDefault, snap.Mode)
	require.NotNil(t, snap.StartedAt)
	assert.Equal(t, h.clock.Now(), *snap.StartedAt)
	assert.Equal(t, 120.0, snap.CprRemainingSeconds)
	require.Len(t, snap.Events, 1)
	assert.Equal(t, "Arrest Started", snap.Events[0].Message)
	assert.Equal(t, 1, h.notified.get(ports.NotifyArrestStarted))

	scheds := h.schedulers.all()
	require.Len(t, scheds, 1)
	assert.Equal(t, 1, scheds[0].started)
	assert.Equal(t, time.Second, scheds[0].interval)

	err := h.svc.StartArrest()
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Len(t, h.svc.Snapshot().Events, 1)
}

func TestShockableRhythmScenario(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())

	require.NoError(t, h.svc.StartArrest())
	h.advance(100)
	h.svc.Tick()
	require.NoError(t, h.svc.AnalyseRhythm())
	assert.Equal(t, domain.ModeAnalyzing, h.svc.Snapshot().Mode)
	require.NoError(t, h.svc.LogRhythm("VF", true))
	assert.Equal(t, domain.ModeShockAdvised, h.svc.Snapshot().Mode)
	h.advance(5)
	require.NoError(t, h.svc.DeliverShock())

	snap := h.svc.Snapshot()
	assert.Equal(t, []domain.EventCategory{
		domain.CategoryStatus,
		domain.CategoryAnalysis,
		domain.CategoryRhythm,
		domain.CategoryShock,
		domain.CategoryCpr,
	}, categories(snap.Events))
	assert.Equal(t, "Shock 1 Delivered", snap.Events[1].Message)
	assert.Equal(t, "Rhythm is VF", snap.Events[2].Message)
	assert.Equal(t, 1, snap.Counters[domain.CounterShock])
	assert.Equal(t, domain.ModeDefault, snap.Mode)
	assert.Equal(t, 120.0, snap.CprRemainingSeconds)

	// Cycle restarted at the shock
	h.advance(30)
	h.svc.Tick()
	assert.Equal(t, 90.0, h.svc.Snapshot().CprRemainingSeconds)
}

func TestNonShockableRhythmResumesCpr(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())

	require.NoError(t, h.svc.StartArrest())
	require.NoError(t, h.svc.AnalyseRhythm())
	require.NoError(t, h.svc.LogRhythm("PEA", false))

	snap := h.svc.Snapshot()
	assert.Equal(t, domain.ModeDefault, snap.Mode)
	assert.Equal(t, "Resuming CPR.", snap.Events[0].Message)
	assert.Equal(t, "Rhythm is PEA", snap.Events[1].Message)
	assert.Equal(t, 0, snap.Counters[domain.CounterShock])

	err := h.svc.DeliverShock()
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestLogRhythm_RejectsEmptyName(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())
	require.NoError(t, h.svc.StartArrest())
	require.NoError(t, h.svc.AnalyseRhythm())

	err := h.svc.LogRhythm("  ", true)
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
	assert.Equal(t, domain.ModeAnalyzing, h.svc.Snapshot().Mode)
}

func TestDoubleAdrenalineScenario(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())

	require.NoError(t, h.svc.StartArrest())
	h.advance(10)
	_, err := h.svc.LogAdrenaline()
	require.NoError(t, err)
	h.advance(30)
	_, err = h.svc.LogAdrenaline()
	require.NoError(t, err)

	snap := h.svc.Snapshot()
	assert.Equal(t, 2, snap.Counters[domain.CounterAdrenaline])
	require.NotNil(t, snap.LastAdrenalineAt)
	assert.Equal(t, snap.TotalArrestTime, *snap.LastAdrenalineAt)
	assert.Equal(t, 40.0, *snap.LastAdrenalineAt)
	require.NotNil(t, snap.NextAdrenalineDue)
	assert.Equal(t, 280.0, *snap.NextAdrenalineDue)
	assert.Equal(t, "Adrenaline Given - Dose 2", snap.Events[0].Message)
	assert.Equal(t, "Adrenaline Given - Dose 1", snap.Events[1].Message)
}

func TestTick_IdempotentForSameClockReading(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())
	require.NoError(t, h.svc.StartArrest())
	h.advance(42)

	h.svc.Tick()
	first := h.svc.Snapshot()
	h.svc.Tick()
	second := h.svc.Snapshot()

	assert.Equal(t, first.CprRemainingSeconds, second.CprRemainingSeconds)
	assert.Equal(t, first.MasterElapsedSeconds, second.MasterElapsedSeconds)
	assert.Equal(t, 78.0, second.CprRemainingSeconds)
}

func TestTick_NoOpWhilePending(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())
	h.advance(30)

	h.svc.Tick()

	snap := h.svc.Snapshot()
	assert.Equal(t, domain.PhasePending, snap.Phase)
	assert.Equal(t, 0.0, snap.MasterElapsedSeconds)
	assert.Equal(t, 120.0, snap.CprRemainingSeconds)
}

func TestTick_MasterElapsedNeverDecreases(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())
	require.NoError(t, h.svc.StartArrest())
	h.advance(50)
	h.svc.Tick()

	h.clock.Set(h.clock.Now().Add(-20 * time.Second))
	h.svc.Tick()

	assert.Equal(t, 50.0, h.svc.Snapshot().MasterElapsedSeconds)
}

func TestTick_CycleCompleteAndAutoRestart(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())
	require.NoError(t, h.svc.StartArrest())

	h.advance(119)
	h.svc.Tick()
	assert.Equal(t, 1.0, h.svc.Snapshot().CprRemainingSeconds)
	assert.Equal(t, 0, h.notified.get(ports.NotifyCycleComplete))

	h.advance(1)
	h.svc.Tick()
	assert.Equal(t, 0.0, h.svc.Snapshot().CprRemainingSeconds)
	assert.Equal(t, 1, h.notified.get(ports.NotifyCycleComplete))

	h.advance(0.5)
	h.svc.Tick()
	assert.Equal(t, -0.5, h.svc.Snapshot().CprRemainingSeconds)
	assert.Equal(t, 1, h.notified.get(ports.NotifyCycleComplete))

	h.advance(0.5)
	h.svc.Tick()
	snap := h.svc.Snapshot()
	assert.Equal(t, 120.0, snap.CprRemainingSeconds)
	assert.Equal(t, 1, h.notified.get(ports.NotifyCycleComplete))
	// Auto restart is silent
	assert.Len(t, snap.Events, 1)

	h.advance(120)
	h.svc.Tick()
	assert.Equal(t, 2, h.notified.get(ports.NotifyCycleComplete))
}

func TestTick_OverrunGraceScalesWithTickInterval(t *testing.T) {
	cfg := DefaultArrestConfig()
	cfg.TickInterval = 2 * time.Second
	h := newHarness(t, cfg)
	require.NoError(t, h.svc.StartArrest())

	h.advance(121.5)
	h.svc.Tick()
	assert.Equal(t, -1.5, h.svc.Snapshot().CprRemainingSeconds)

	h.advance(0.5)
	h.svc.Tick()
	assert.Equal(t, 120.0, h.svc.Snapshot().CprRemainingSeconds)
}

func TestTick_CprPausedDuringAnalysis(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())
	require.NoError(t, h.svc.StartArrest())
	h.advance(20)
	h.svc.Tick()
	require.NoError(t, h.svc.AnalyseRhythm())

	h.advance(200)
	h.svc.Tick()

	snap := h.svc.Snapshot()
	assert.Equal(t, 100.0, snap.CprRemainingSeconds)
	assert.Equal(t, 220.0, snap.MasterElapsedSeconds)
	assert.Equal(t, 0, h.notified.get(ports.NotifyCycleComplete))
}

func TestInvalidTransitions_LeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		setup func(h *testHarness)
		op    func(svc *ArrestService) error
	}{
		{"analyse while pending", nil, func(s *ArrestService) error { return s.AnalyseRhythm() }},
		{"shock while pending", nil, func(s *ArrestService) error { return s.DeliverShock() }},
		{"adrenaline while pending", nil, func(s *ArrestService) error { _, err := s.LogAdrenaline(); return err }},
		{"rosc while pending", nil, func(s *ArrestService) error { return s.AchieveRosc() }},
		{"end while pending", nil, func(s *ArrestService) error { return s.EndArrest() }},
		{
			"shock without advice",
			func(h *testHarness) { _ = h.svc.StartArrest() },
			func(s *ArrestService) error { return s.DeliverShock() },
		},
		{
			"rhythm without analysis",
			func(h *testHarness) { _ = h.svc.StartArrest() },
			func(s *ArrestService) error { return s.LogRhythm("VF", true) },
		},
		{
			"re-arrest while active",
			func(h *testHarness) { _ = h.svc.StartArrest() },
			func(s *ArrestService) error { return s.ReArrest() },
		},
		{
			"analyse twice",
			func(h *testHarness) { _ = h.svc.StartArrest(); _ = h.svc.AnalyseRhythm() },
			func(s *ArrestService) error { return s.AnalyseRhythm() },
		},
		{
			"rosc from rosc",
			func(h *testHarness) { _ = h.svc.StartArrest(); _ = h.svc.AchieveRosc() },
			func(s *ArrestService) error { return s.AchieveRosc() },
		},
		{
			"drug after end",
			func(h *testHarness) { _ = h.svc.StartArrest(); _ = h.svc.EndArrest() },
			func(s *ArrestService) error { return s.LogAirway() },
		},
		{
			"analyse during rosc",
			func(h *testHarness) { _ = h.svc.StartArrest(); _ = h.svc.AchieveRosc() },
			func(s *ArrestService) error { return s.AnalyseRhythm() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, DefaultArrestConfig())
			if tt.setup != nil {
				tt.setup(h)
			}
			before := h.svc.Snapshot()

			err := tt.op(h.svc)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			var terr *domain.TransitionError
			require.True(t, errors.As(err, &terr))
			assert.Equal(t, before.Phase, terr.Phase)
			assert.Equal(t, before, h.svc.Snapshot())
		})
	}
}

func TestRoscAndReArrest(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())
	require.NoError(t, h.svc.StartArrest())
	h.advance(60)
	h.svc.Tick()
	require.NoError(t, h.svc.AchieveRosc())

	h.advance(100)
	h.svc.Tick()
	snap := h.svc.Snapshot()
	assert.Equal(t, domain.PhaseRosc, snap.Phase)
	assert.Equal(t, 160.0, snap.MasterElapsedSeconds)
	assert.Equal(t, 60.0, snap.CprRemainingSeconds)

	_, err := h.svc.LogAmiodarone()
	require.NoError(t, err)

	require.NoError(t, h.svc.ReArrest())
	snap = h.svc.Snapshot()
	assert.Equal(t, domain.PhaseActive, snap.Phase)
	assert.Equal(t, domain.ModeDefault, snap.Mode)
	assert.Equal(t, 120.0, snap.CprRemainingSeconds)
	assert.Equal(t, 1, snap.Counters[domain.CounterAmiodarone])
	assert.Len(t, snap.Events, 4)
	assert.Len(t, h.schedulers.all(), 1, "scheduler keeps running through ROSC")

	h.advance(20)
	h.svc.Tick()
	assert.Equal(t, 100.0, h.svc.Snapshot().CprRemainingSeconds)
}

func TestEndArrest_StopsSchedulerAndFreezesClock(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())
	require.NoError(t, h.svc.StartArrest())
	h.advance(300)
	require.NoError(t, h.svc.EndArrest())

	scheds := h.schedulers.all()
	require.Len(t, scheds, 1)
	assert.Equal(t, 1, scheds[0].stopped)

	h.advance(60)
	h.svc.Tick()
	scheds[0].tick()

	snap := h.svc.Snapshot()
	assert.Equal(t, domain.PhaseEnded, snap.Phase)
	assert.Equal(t, 300.0, snap.TotalArrestTime)
	assert.Equal(t, "Resuscitation Ended", snap.Events[0].Message)
}

func TestAddTimeOffset(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())

	require.NoError(t, h.svc.AddTimeOffset(time.Minute))
	require.NoError(t, h.svc.StartArrest())

	snap := h.svc.Snapshot()
	assert.Equal(t, 60.0, snap.TimeOffsetSeconds)
	assert.Equal(t, 60.0, snap.TotalArrestTime)
	assert.Equal(t, 60.0, snap.Events[0].TimestampSeconds)
	assert.Equal(t, 120.0, snap.CprRemainingSeconds)

	h.advance(10)
	h.svc.Tick()
	require.NoError(t, h.svc.AddTimeOffset(30*time.Second))
	h.svc.Tick()

	snap = h.svc.Snapshot()
	assert.Equal(t, 100.0, snap.TotalArrestTime)
	assert.Equal(t, snap.MasterElapsedSeconds+snap.TimeOffsetSeconds, snap.TotalArrestTime)
	assert.Equal(t, 110.0, snap.CprRemainingSeconds, "running cycle shifts with the offset")

	require.NoError(t, h.svc.AnalyseRhythm())
	err := h.svc.AddTimeOffset(time.Minute)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAddTimeOffset_Rejections(t *testing.T) {
	t.Run("negative total offset", func(t *testing.T) {
		h := newHarness(t, DefaultArrestConfig())
		err := h.svc.AddTimeOffset(-time.Second)
		assert.ErrorIs(t, err, domain.ErrInvalidOffset)
		assert.Equal(t, 0.0, h.svc.Snapshot().TimeOffsetSeconds)
	})

	t.Run("would precede logged events", func(t *testing.T) {
		h := newHarness(t, DefaultArrestConfig())
		require.NoError(t, h.svc.AddTimeOffset(time.Minute))
		require.NoError(t, h.svc.StartArrest())

		err := h.svc.AddTimeOffset(-30 * time.Second)
		assert.ErrorIs(t, err, domain.ErrInvalidOffset)
		assert.Equal(t, 60.0, h.svc.Snapshot().TimeOffsetSeconds)
	})

	t.Run("after automatic cycle restart", func(t *testing.T) {
		h := newHarness(t, DefaultArrestConfig())
		require.NoError(t, h.svc.StartArrest())
		h.advance(121)
		h.svc.Tick()

		err := h.svc.AddTimeOffset(time.Minute)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestDrugLogging_DosePrompts(t *testing.T) {
	cfg := DefaultArrestConfig()
	cfg.ShowDosagePrompts = true
	h := newHarness(t, cfg)
	require.NoError(t, h.svc.SetPatientAgeCategory(dosage.Adult))
	require.NoError(t, h.svc.StartArrest())

	dose, err := h.svc.LogAdrenaline()
	require.NoError(t, err)
	assert.Equal(t, dosage.Dose{Status: dosage.Resolved, Text: "1mg"}, dose)

	dose, err = h.svc.LogAmiodarone()
	require.NoError(t, err)
	assert.Equal(t, "300mg", dose.Text)

	dose, err = h.svc.LogAmiodarone()
	require.NoError(t, err)
	assert.Equal(t, "150mg", dose.Text)

	dose, err = h.svc.LogLidocaine()
	require.NoError(t, err)
	assert.Equal(t, dosage.Unknown, dose.Status)

	snap := h.svc.Snapshot()
	assert.Equal(t, "Lidocaine Given - Dose 1", snap.Events[0].Message)
	assert.Equal(t, "Amiodarone (150mg) Given - Dose 2", snap.Events[1].Message)
	assert.Equal(t, "Amiodarone (300mg) Given - Dose 1", snap.Events[2].Message)
	assert.Equal(t, "Adrenaline (1mg) Given - Dose 1", snap.Events[3].Message)
}

func TestDrugLogging_AmiodaroneNotApplicableForNeonates(t *testing.T) {
	cfg := DefaultArrestConfig()
	cfg.ShowDosagePrompts = true
	h := newHarness(t, cfg)
	require.NoError(t, h.svc.SetPatientAgeCategory(dosage.AtBirth))
	require.NoError(t, h.svc.StartArrest())

	dose, err := h.svc.LogAmiodarone()
	require.NoError(t, err)
	assert.Equal(t, dosage.NotApplicable, dose.Status)
	assert.Equal(t, 1, h.svc.Snapshot().Counters[domain.CounterAmiodarone])
}

func TestDrugLogging_PromptsDisabled(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())
	require.NoError(t, h.svc.SetPatientAgeCategory(dosage.Adult))
	require.NoError(t, h.svc.StartArrest())

	dose, err := h.svc.LogAdrenaline()
	require.NoError(t, err)
	assert.Equal(t, dosage.Unknown, dose.Status)
}

func TestSetPatientAgeCategory_Unknown(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())

	err := h.svc.SetPatientAgeCategory(dosage.AgeCategory("toddler"))
	assert.ErrorIs(t, err, domain.ErrUnknownAgeCategory)

	require.NoError(t, h.svc.SetPatientAgeCategory(dosage.TwoYears))
	assert.Equal(t, dosage.TwoYears, h.svc.Snapshot().AgeCategory)
}

func TestSupplementaryLogging(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())
	require.NoError(t, h.svc.StartArrest())

	require.NoError(t, h.svc.LogAirway())
	require.NoError(t, h.svc.LogEtco2(35))
	require.NoError(t, h.svc.LogOtherDrug("Atropine"))
	require.NoError(t, h.svc.ToggleCause("Hypoxia"))
	require.NoError(t, h.svc.ToggleCause("Hypoxia"))

	assert.ErrorIs(t, h.svc.LogEtco2(-1), domain.ErrInvalidValue)
	assert.ErrorIs(t, h.svc.LogOtherDrug(""), domain.ErrInvalidValue)
	assert.ErrorIs(t, h.svc.ToggleCause("Gravity"), domain.ErrUnknownCause)

	snap := h.svc.Snapshot()
	assert.Equal(t, 1, snap.Counters[domain.CounterAirway])
	assert.Equal(t, 1, snap.Counters[domain.CounterOtherDrug])
	assert.False(t, snap.Causes["Hypoxia"])
	assert.Equal(t, []string{
		"Reversible cause unchecked: Hypoxia",
		"Reversible cause addressed: Hypoxia",
		"Atropine Given",
		"ETCO2: 35 mmHg",
		"Advanced Airway Placed",
		"Arrest Started",
	}, messages(snap.Events))
}

func messages(events []domain.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Message
	}
	return out
}

func TestEventInvariants_AcrossMixedSequence(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())
	require.NoError(t, h.svc.AddTimeOffset(15*time.Second))

	ops := []func() error{
		h.svc.StartArrest,
		h.svc.AnalyseRhythm,
		func() error { return h.svc.LogRhythm("VT", true) },
		h.svc.DeliverShock,
		func() error { _, err := h.svc.LogAdrenaline(); return err },
		h.svc.AnalyseRhythm,
		func() error { return h.svc.LogRhythm("Asystole", false) },
		h.svc.LogAirway,
		func() error { _, err := h.svc.LogAmiodarone(); return err },
		h.svc.AchieveRosc,
		h.svc.ReArrest,
		h.svc.EndArrest,
	}

	for _, op := range ops {
		h.advance(17)
		h.svc.Tick()
		require.NoError(t, op())

		snap := h.svc.Snapshot()
		assert.Equal(t, snap.MasterElapsedSeconds+snap.TimeOffsetSeconds, snap.TotalArrestTime)
	}

	snap := h.svc.Snapshot()
	// One event per operation plus the two CPR resumptions
	assert.Len(t, snap.Events, len(ops)+2)
	for i := 1; i < len(snap.Events); i++ {
		assert.GreaterOrEqual(t, snap.Events[i-1].TimestampSeconds, snap.Events[i].TimestampSeconds)
	}
}

func TestNotifierFailureDoesNotFailOperation(t *testing.T) {
	notifier := portsmocks.NewMockNotifier(t)
	notifier.EXPECT().Notify(mock.Anything).Return(errors.New("speaker unplugged"))
	recorder := &schedulerRecorder{}

	svc, err := NewArrestService(clock.NewFake(time.Now()), notifier, nil, nil, recorder.factory(), DefaultArrestConfig())
	require.NoError(t, err)

	assert.NoError(t, svc.StartArrest())
	assert.NoError(t, svc.LogAirway())
}

func TestSubscribe_LatestSnapshotWins(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())

	updates, cancel := h.svc.Subscribe()
	defer cancel()

	initial := <-updates
	assert.Equal(t, domain.PhasePending, initial.Phase)

	require.NoError(t, h.svc.StartArrest())
	require.NoError(t, h.svc.LogAirway())

	select {
	case snap := <-updates:
		assert.Equal(t, domain.PhaseActive, snap.Phase)
		assert.Len(t, snap.Events, 2)
	default:
		t.Fatal("expected a published snapshot")
	}

	select {
	case <-updates:
		t.Fatal("expected only the latest snapshot")
	default:
	}
}

func TestSubscribe_CancelClosesChannel(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())

	updates, cancel := h.svc.Subscribe()
	<-updates
	cancel()
	cancel()

	_, ok := <-updates
	assert.False(t, ok)
	assert.NoError(t, h.svc.StartArrest())
}

func TestPerformReset_SavesAndClears(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())
	require.NoError(t, h.svc.AddTimeOffset(30*time.Second))
	require.NoError(t, h.svc.StartArrest())
	h.advance(45)
	require.NoError(t, h.svc.AnalyseRhythm())
	require.NoError(t, h.svc.LogRhythm("VF", true))
	require.NoError(t, h.svc.DeliverShock())
	_, err := h.svc.LogAdrenaline()
	require.NoError(t, err)

	var saved domain.SavedLog
	h.repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("domain.SavedLog")).
		Run(func(_ context.Context, log domain.SavedLog) { saved = log }).
		Return(nil).
		Once()

	result := h.svc.PerformReset(context.Background(), ResetOptions{Save: true})
	require.NoError(t, result.Err())
	require.NotNil(t, result.Log)

	assert.Equal(t, "Incomplete", saved.Outcome)
	assert.Equal(t, 75.0, saved.TotalDurationSeconds)
	assert.Equal(t, 1, saved.Counters[domain.CounterShock])
	assert.Equal(t, 1, saved.Counters[domain.CounterAdrenaline])
	require.Len(t, saved.Events, 6)
	assert.Equal(t, "Arrest Started", saved.Events[0].Message)
	assert.NotEmpty(t, saved.ID)

	snap := h.svc.Snapshot()
	assert.Equal(t, domain.PhasePending, snap.Phase)
	assert.Nil(t, snap.StartedAt)
	assert.Empty(t, snap.Events)
	assert.Nil(t, snap.LastAdrenalineAt)
	assert.Equal(t, 0.0, snap.TimeOffsetSeconds)
	assert.Equal(t, 0.0, snap.MasterElapsedSeconds)
	assert.Equal(t, 120.0, snap.CprRemainingSeconds)
	for _, name := range domain.CounterNames {
		assert.Zero(t, snap.Counters[name], name)
	}

	scheds := h.schedulers.all()
	require.Len(t, scheds, 1)
	assert.Equal(t, 1, scheds[0].stopped)

	// A tick already in flight for the old session is discarded
	h.advance(10)
	scheds[0].tick()
	assert.Equal(t, 0.0, h.svc.Snapshot().MasterElapsedSeconds)
	assert.Equal(t, domain.PhasePending, h.svc.Snapshot().Phase)
}

func TestTick_StaleTickIgnoredAfterNewArrest(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())

	require.NoError(t, h.svc.StartArrest())
	h.advance(30)
	h.svc.PerformReset(context.Background(), ResetOptions{})
	require.NoError(t, h.svc.StartArrest())

	scheds := h.schedulers.all()
	require.Len(t, scheds, 2)
	assert.Equal(t, 1, scheds[0].stopped)
	assert.Equal(t, 1, scheds[1].started)

	// The first session's scheduler fires late, after the second arrest began
	h.advance(7)
	scheds[0].tick()
	snap := h.svc.Snapshot()
	assert.Equal(t, domain.PhaseActive, snap.Phase)
	assert.Equal(t, 0.0, snap.MasterElapsedSeconds)
	assert.Equal(t, 120.0, snap.CprRemainingSeconds)

	scheds[1].tick()
	snap = h.svc.Snapshot()
	assert.Equal(t, 7.0, snap.MasterElapsedSeconds)
	assert.Equal(t, 113.0, snap.CprRemainingSeconds)
}

func TestPerformReset_OutcomeLabels(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(svc *ArrestService)
		expected string
	}{
		{"rosc", func(s *ArrestService) { _ = s.AchieveRosc() }, "ROSC"},
		{"ended", func(s *ArrestService) { _ = s.EndArrest() }, "Deceased"},
		{"active", func(s *ArrestService) {}, "Incomplete"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, DefaultArrestConfig())
			require.NoError(t, h.svc.StartArrest())
			tt.setup(h.svc)
			h.repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(log domain.SavedLog) bool {
				return log.Outcome == tt.expected
			})).Return(nil).Once()

			result := h.svc.PerformReset(context.Background(), ResetOptions{Save: true})
			assert.NoError(t, result.Err())
		})
	}
}

func TestPerformReset_PendingHasNothingToSave(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())

	result := h.svc.PerformReset(context.Background(), ResetOptions{Save: true, ExportSummary: true})

	assert.NoError(t, result.Err())
	assert.Nil(t, result.Log)
	h.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPerformReset_SaveFailureKeepsLogForRetry(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())
	require.NoError(t, h.svc.StartArrest())

	h.repo.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	result := h.svc.PerformReset(context.Background(), ResetOptions{Save: true})

	require.Error(t, result.SaveErr)
	assert.ErrorIs(t, result.SaveErr, domain.ErrPersistence)
	var perr *domain.PersistenceError
	require.True(t, errors.As(result.SaveErr, &perr))
	assert.Equal(t, result.Log.ID, perr.LogID)

	snap := h.svc.Snapshot()
	assert.Equal(t, domain.PhasePending, snap.Phase)
	assert.Equal(t, 1, snap.UnsavedLogs)

	h.repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(log domain.SavedLog) bool {
		return log.ID == perr.LogID
	})).Return(nil).Once()

	require.NoError(t, h.svc.RetryUnsaved(context.Background()))
	assert.Equal(t, 0, h.svc.Snapshot().UnsavedLogs)
}

func TestPerformReset_ExportsSummary(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())
	require.NoError(t, h.svc.StartArrest())
	require.NoError(t, h.svc.AnalyseRhythm())
	require.NoError(t, h.svc.LogRhythm("VF", true))
	require.NoError(t, h.svc.DeliverShock())

	var exportedID string
	h.exporter.EXPECT().Export(mock.Anything, mock.Anything, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "Shocks: 1") && strings.Contains(text, "Shock 1 Delivered")
	})).Run(func(_ context.Context, logID string, _ string) { exportedID = logID }).Return(nil).Once()

	result := h.svc.PerformReset(context.Background(), ResetOptions{ExportSummary: true})

	assert.NoError(t, result.Err())
	require.NotNil(t, result.Log)
	assert.Equal(t, result.Log.ID, exportedID)
	h.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPerformReset_ExportFailureIsWarning(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())
	require.NoError(t, h.svc.StartArrest())

	h.exporter.EXPECT().Export(mock.Anything, mock.Anything, mock.Anything).Return(errors.New("clipboard unavailable")).Once()

	result := h.svc.PerformReset(context.Background(), ResetOptions{ExportSummary: true})

	assert.Error(t, result.ExportErr)
	assert.NoError(t, result.SaveErr)
	assert.Equal(t, domain.PhasePending, h.svc.Snapshot().Phase)
}

func TestPerformReset_NewArrestStartsNewScheduler(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())
	require.NoError(t, h.svc.StartArrest())
	h.svc.PerformReset(context.Background(), ResetOptions{})
	require.NoError(t, h.svc.StartArrest())

	scheds := h.schedulers.all()
	require.Len(t, scheds, 2)
	assert.Equal(t, 1, scheds[0].stopped)
	assert.Equal(t, 1, scheds[1].started)
	assert.Equal(t, 0, scheds[1].stopped)

	h.advance(5)
	scheds[1].tick()
	assert.Equal(t, 5.0, h.svc.Snapshot().MasterElapsedSeconds)
}

func TestSetConfig(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())

	cfg := DefaultArrestConfig()
	cfg.CycleDuration = 90 * time.Second
	require.NoError(t, h.svc.SetConfig(cfg))
	assert.Equal(t, 90.0, h.svc.Snapshot().CprRemainingSeconds)
	assert.Equal(t, cfg, h.svc.Config())

	cfg.TickInterval = 0
	assert.ErrorIs(t, h.svc.SetConfig(cfg), domain.ErrInvalidValue)
}

func TestArrestService_ConcurrentTicksAndActions(t *testing.T) {
	h := newHarness(t, DefaultArrestConfig())
	require.NoError(t, h.svc.StartArrest())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				h.clock.Advance(100 * time.Millisecond)
				h.svc.Tick()
			}
		}()
	}
	for i := 0; i < 20; i++ {
		_, err := h.svc.LogAdrenaline()
		require.NoError(t, err)
	}
	wg.Wait()

	snap := h.svc.Snapshot()
	assert.Equal(t, 20, snap.Counters[domain.CounterAdrenaline])
	assert.Len(t, snap.Events, 21)
	assert.InDelta(t, 20.0, snap.MasterElapsedSeconds, 1e-6)
}
