package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
)

type countingPruner struct {
	runs atomic.Int32
	err  error
}

func (p *countingPruner) Prune(ctx context.Context) (*domain.PruneStats, error) {
	p.runs.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return &domain.PruneStats{}, nil
}

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	pruner := &countingPruner{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := NewScheduler(pruner, 10*time.Millisecond, time.Second, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sched.Start(ctx) }()

	assert.Eventually(t, func() bool { return pruner.runs.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestScheduler_KeepsRunningAfterError(t *testing.T) {
	pruner := &countingPruner{err: errors.New("db down")}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := NewScheduler(pruner, 10*time.Millisecond, time.Second, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = sched.Start(ctx) }()

	assert.Eventually(t, func() bool { return pruner.runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
}
