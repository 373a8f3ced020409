package domain

import "time"

type FetchOutcome string

const (
	OutcomeSuccess   FetchOutcome = "success"
	OutcomeFailure   FetchOutcome = "failure"
	OutcomeCancelled FetchOutcome = "cancelled"
)

// FetchEvent describes one completed request for a murli document.
// The body itself is never kept.
type FetchEvent struct {
	ID         int64         `db:"id" json:"id"`
	Date       string        `db:"murli_date" json:"date"`
	Language   Language      `db:"language" json:"language"`
	URL        string        `db:"url" json:"url"`
	Outcome    FetchOutcome  `db:"outcome" json:"outcome"`
	StatusCode int           `db:"status_code" json:"status_code"`
	Bytes      int           `db:"bytes" json:"bytes"`
	Duration   time.Duration `db:"duration_ns" json:"duration"`
	Error      *string       `db:"error" json:"error,omitempty"`
	OccurredAt time.Time     `db:"occurred_at" json:"occurred_at"`
}

type SelectionStats struct {
	ID            int64     `db:"id" json:"-"`
	Date          string    `db:"murli_date" json:"date"`
	Language      Language  `db:"language" json:"language"`
	Successes     int64     `db:"successes" json:"successes"`
	Failures      int64     `db:"failures" json:"failures"`
	LastFetchedAt time.Time `db:"last_fetched_at" json:"last_fetched_at"`
}

// PruneStats summarises one retention run.
type PruneStats struct {
	Cutoff   time.Time
	Deleted  int64
	Duration time.Duration
}

// Document is a fetched murli as received from upstream.
type Document struct {
	URL        string
	StatusCode int
	Body       string
}
