package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/aegismedical/eresus/internal/domain"
	"github.com/aegismedical/eresus/internal/logging"
	"github.com/aegismedical/eresus/internal/ports"
)

// maxConcurrentExports bounds the number of summary files written at once
const maxConcurrentExports = 4

// HistoryService browses and exports saved arrest logs
type HistoryService struct {
	repo ports.ArrestLogRepository
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(repo ports.ArrestLogRepository) *HistoryService {
	return &HistoryService{
		repo: repo,
	}
}

// List returns every saved log, newest first
func (s *HistoryService) List(ctx context.Context) ([]domain.SavedLog, error) {
	logs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list arrest logs: %w", err)
	}
	return logs, nil
}

// Get returns one saved log
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.SavedLog, error) {
	log, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get arrest log %s: %w", id, err)
	}
	return log, nil
}

// Summary renders one saved log as text
func (s *HistoryService) Summary(ctx context.Context, id string) (string, error) {
	log, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return FormatSummary(*log), nil
}

// Delete removes a saved log
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	logging.Logger.Info("Deleting arrest log", "id", id)
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete arrest log %s: %w", id, err)
	}
	return nil
}

// ExportSummaries writes one text summary per log into dir and returns the written paths.
// With no ids every saved log is exported.
func (s *HistoryService) ExportSummaries(ctx context.Context, dir string, ids []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	var logs []domain.SavedLog
	if len(ids) == 0 {
		all, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		logs = all
	} else {
		for _, id := range ids {
			log, err := s.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			logs = append(logs, *log)
		}
	}

	logging.Logger.Info("Exporting arrest summaries", "count", len(logs), "dir", dir)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentExports)

	paths := make([]string, len(logs))

	for i, log := range logs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			path := filepath.Join(dir, summaryFileName(log))
			if err := os.WriteFile(path, []byte(FormatSummary(log)), 0644); err != nil {
				return fmt.Errorf("failed to write summary for %s: %w", log.ID, err)
			}

			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return paths, nil
}

func summaryFileName(log domain.SavedLog) string {
	return fmt.Sprintf("arrest-%s-%s.txt", log.StartedAt.Format("20060102-150405"), log.ID)
}
