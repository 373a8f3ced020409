package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
)

// Pruner defines the interface for retention runs.
type Pruner interface {
	Prune(ctx context.Context) (*domain.PruneStats, error)
}

type Scheduler struct {
	pruner   Pruner
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

func NewScheduler(pruner Pruner, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		pruner:   pruner,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With("component", "scheduler"),
	}
}

// Start runs the pruner immediately and then on every tick until ctx ends.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runPrune(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runPrune(ctx)
		}
	}
}

func (s *Scheduler) runPrune(ctx context.Context) {
	pruneCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.pruner.Prune(pruneCtx); err != nil {
		s.logger.Error("prune failed", "error", err)
	}
}
