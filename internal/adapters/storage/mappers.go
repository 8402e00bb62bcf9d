package storage

import (
	"github.com/aegismedical/eresus/internal/domain"
)

// arrestLogModelToDomain converts an ArrestLogModel (GORM) to domain.SavedLog
func arrestLogModelToDomain(m ArrestLogModel) domain.SavedLog {
	counters := domain.NewCounters()
	for k, v := range m.Counters {
		counters[k] = v
	}

	events := make([]domain.Event, len(m.Events))
	for i, e := range m.Events {
		events[i] = domain.Event{
			Category:         domain.EventCategory(e.Category),
			ID:               e.ID,
			Message:          e.Message,
			SessionStartedAt: e.SessionStartedAt,
			TimestampSeconds: e.TimestampSeconds,
		}
	}

	return domain.SavedLog{
		Counters:             counters,
		Events:               events,
		ID:                   m.ID,
		Outcome:              m.Outcome,
		StartedAt:            m.StartedAt,
		TotalDurationSeconds: m.TotalDurationSeconds,
	}
}

// domainToArrestLogModel converts a domain.SavedLog to ArrestLogModel (GORM).
// Event positions preserve chronological order.
func domainToArrestLogModel(l domain.SavedLog) ArrestLogModel {
	events := make([]ArrestEventModel, len(l.Events))
	for i, e := range l.Events {
		events[i] = ArrestEventModel{
			Category:         string(e.Category),
			ID:               e.ID,
			LogID:            l.ID,
			Message:          e.Message,
			Position:         i,
			SessionStartedAt: e.SessionStartedAt.UTC(),
			TimestampSeconds: e.TimestampSeconds,
		}
	}

	counters := make(map[string]int, len(l.Counters))
	for k, v := range l.Counters {
		counters[k] = v
	}

	return ArrestLogModel{
		Counters:             counters,
		Events:               events,
		ID:                   l.ID,
		Outcome:              l.Outcome,
		StartedAt:            l.StartedAt.UTC(),
		TotalDurationSeconds: l.TotalDurationSeconds,
	}
}
