package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
)

type SelectionStatsStore struct {
	db *sqlx.DB
}

func NewSelectionStatsStore(db *sqlx.DB) *SelectionStatsStore {
	return &SelectionStatsStore{db: db}
}

func (s *SelectionStatsStore) Get(ctx context.Context, date string, lang domain.Language) (*domain.SelectionStats, error) {
	var stats domain.SelectionStats
	query := `
		SELECT id, to_char(murli_date, 'YYYY-MM-DD') AS murli_date, language, successes, failures, last_fetched_at
		FROM selection_stats
		WHERE murli_date = $1 AND language = $2`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &stats, query, date, lang)
	if errors.Is(err, sql.ErrNoRows) {
		// Return empty stats for selections never fetched
		return &domain.SelectionStats{Date: date, Language: lang}, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *SelectionStatsStore) Increment(ctx context.Context, event *domain.FetchEvent) error {
	var successes, failures int64
	if event.Outcome == domain.OutcomeSuccess {
		successes = 1
	} else {
		failures = 1
	}

	query := `
		INSERT INTO selection_stats (murli_date, language, successes, failures, last_fetched_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (murli_date, language) DO UPDATE SET
			successes = selection_stats.successes + EXCLUDED.successes,
			failures = selection_stats.failures + EXCLUDED.failures,
			last_fetched_at = GREATEST(selection_stats.last_fetched_at, EXCLUDED.last_fetched_at)`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		event.Date,
		event.Language,
		successes,
		failures,
		event.OccurredAt,
	)
	return err
}
