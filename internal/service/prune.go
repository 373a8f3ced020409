package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
	"github.com/devagn611/Daily-Murli-Reader/internal/metrics"
)

// PruneService enforces the fetch log retention window.
type PruneService struct {
	events    FetchEventStore
	retention time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

func NewPruneService(events FetchEventStore, retention time.Duration, logger *slog.Logger) *PruneService {
	return &PruneService{
		events:    events,
		retention: retention,
		logger:    logger.With("job", "prune"),
		now:       time.Now,
	}
}

func (s *PruneService) Prune(ctx context.Context) (*domain.PruneStats, error) {
	start := s.now()
	cutoff := start.Add(-s.retention).UTC()

	deleted, err := s.events.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("delete fetch events: %w", err)
	}

	metrics.FetchEventsPruned.Add(float64(deleted))

	stats := &domain.PruneStats{
		Cutoff:   cutoff,
		Deleted:  deleted,
		Duration: s.now().Sub(start),
	}

	s.logger.Info("prune completed",
		"cutoff", stats.Cutoff,
		"deleted", stats.Deleted,
		"duration", stats.Duration,
	)

	return stats, nil
}
