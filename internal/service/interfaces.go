package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
)

type Source interface {
	ID() string
	HTMLURL(sel domain.Selection) string
	Fetch(ctx context.Context, sel domain.Selection) (*domain.Document, error)
}

type Sanitizer interface {
	Sanitize(raw string) string
}

type FetchEventStore interface {
	Insert(ctx context.Context, event *domain.FetchEvent) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type SelectionStatsStore interface {
	Increment(ctx context.Context, event *domain.FetchEvent) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, event *domain.FetchEvent) error
	Close() error
}
