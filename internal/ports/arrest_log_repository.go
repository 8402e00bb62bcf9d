package ports

import (
	"context"

	"github.com/aegismedical/eresus/internal/domain"
)

// ArrestLogWriter stores finalized arrest logs
type ArrestLogWriter interface {
	Save(ctx context.Context, log domain.SavedLog) error
}

// ArrestLogReader reads stored arrest logs for history browsing
type ArrestLogReader interface {
	Get(ctx context.Context, id string) (*domain.SavedLog, error)
	List(ctx context.Context) ([]domain.SavedLog, error)
}

// ArrestLogRepository is the composite interface
type ArrestLogRepository interface {
	ArrestLogReader
	ArrestLogWriter
	Close() error
	Delete(ctx context.Context, id string) error
}
