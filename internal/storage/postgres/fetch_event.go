package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
)

type FetchEventStore struct {
	db *sqlx.DB
}

func NewFetchEventStore(db *sqlx.DB) *FetchEventStore {
	return &FetchEventStore{db: db}
}

func (s *FetchEventStore) Insert(ctx context.Context, event *domain.FetchEvent) (int64, error) {
	query := `
		INSERT INTO fetch_events (
			murli_date, language, url, outcome, status_code, bytes, duration_ns, error, occurred_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING id`

	var id int64
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &id, query,
		event.Date,
		event.Language,
		event.URL,
		event.Outcome,
		event.StatusCode,
		event.Bytes,
		int64(event.Duration),
		event.Error,
		event.OccurredAt,
	)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (s *FetchEventStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM fetch_events WHERE occurred_at < $1",
		cutoff,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListRecent returns the newest events first.
func (s *FetchEventStore) ListRecent(ctx context.Context, limit int) ([]domain.FetchEvent, error) {
	query := `
		SELECT id, to_char(murli_date, 'YYYY-MM-DD') AS murli_date, language, url, outcome,
			status_code, bytes, duration_ns, error, occurred_at
		FROM fetch_events
		ORDER BY occurred_at DESC, id DESC
		LIMIT $1`

	var events []domain.FetchEvent
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &events, query, limit)
	return events, err
}
