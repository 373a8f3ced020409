package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
	"github.com/devagn611/Daily-Murli-Reader/internal/metrics"
)

// LoadService fetches a murli, sanitizes it and records the attempt.
type LoadService struct {
	source    Source
	sanitizer Sanitizer
	events    FetchEventStore
	stats     SelectionStatsStore
	txManager TransactionManager
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewLoadService wires the pipeline. events, stats, txManager and publisher
// may be nil, in which case the attempt is not recorded or published.
func NewLoadService(
	source Source,
	sanitizer Sanitizer,
	events FetchEventStore,
	stats SelectionStatsStore,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
) *LoadService {
	return &LoadService{
		source:    source,
		sanitizer: sanitizer,
		events:    events,
		stats:     stats,
		txManager: txManager,
		publisher: publisher,
		logger:    logger.With("source", source.ID()),
		now:       time.Now,
	}
}

// Load returns the sanitized document for sel. Errors are returned as is;
// substituting the fallback text is up to the caller.
func (s *LoadService) Load(ctx context.Context, sel domain.Selection) (string, error) {
	start := s.now()

	doc, err := s.source.Fetch(ctx, sel)
	duration := s.now().Sub(start)

	event := &domain.FetchEvent{
		Date:       sel.DateString(),
		Language:   sel.Language,
		URL:        s.source.HTMLURL(sel),
		Outcome:    domain.OutcomeSuccess,
		Duration:   duration,
		OccurredAt: start.UTC(),
	}
	if doc != nil {
		event.StatusCode = doc.StatusCode
		event.Bytes = len(doc.Body)
	}

	if err != nil {
		event.Outcome = domain.OutcomeFailure
		if errors.Is(err, context.Canceled) {
			event.Outcome = domain.OutcomeCancelled
		}
		msg := err.Error()
		event.Error = &msg
	}

	metrics.MurliFetchesTotal.WithLabelValues(string(sel.Language), string(event.Outcome)).Inc()
	metrics.MurliFetchDuration.WithLabelValues(string(sel.Language)).Observe(duration.Seconds())

	s.record(context.WithoutCancel(ctx), event)

	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", sel, err)
	}

	return s.sanitizer.Sanitize(doc.Body), nil
}

// record stores and publishes the event. Failures here never fail a load.
func (s *LoadService) record(ctx context.Context, event *domain.FetchEvent) {
	if s.events != nil {
		if err := s.saveEvent(ctx, event); err != nil {
			s.logger.Warn("failed to record fetch event",
				"date", event.Date,
				"language", event.Language,
				"error", err,
			)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish fetch event",
				"date", event.Date,
				"language", event.Language,
				"error", err,
			)
		}
	}
}

func (s *LoadService) saveEvent(ctx context.Context, event *domain.FetchEvent) error {
	save := func(txCtx context.Context) error {
		id, err := s.events.Insert(txCtx, event)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		event.ID = id

		if s.stats != nil && event.Outcome != domain.OutcomeCancelled {
			if err := s.stats.Increment(txCtx, event); err != nil {
				return fmt.Errorf("increment stats: %w", err)
			}
		}
		return nil
	}

	if s.txManager == nil {
		return save(ctx)
	}
	return s.txManager.WithTransaction(ctx, save)
}
