// Package web serves the murli reader over HTTP: a server-rendered page and
// a small JSON API.
package web

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"time"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Loader returns sanitized, renderable markup for a selection.
type Loader interface {
	Load(ctx context.Context, sel domain.Selection) (string, error)
}

// FetchLog exposes the recorded fetch attempts. It is optional.
type FetchLog interface {
	ListRecent(ctx context.Context, limit int) ([]domain.FetchEvent, error)
	Get(ctx context.Context, date string, lang domain.Language) (*domain.SelectionStats, error)
}

type Config struct {
	Version         string
	BaseURL         string
	DefaultLanguage domain.Language
	RateLimit       bool
	RPS             float64
	Burst           int
}

// Application bundles every shared resource that HTTP handlers need.
type Application struct {
	cfg       Config
	loader    Loader
	logger    *slog.Logger
	templates *template.Template
	limiter   *ipLimiter
	fetchLog  FetchLog
	now       func() time.Time
}

func New(cfg Config, loader Loader, logger *slog.Logger) (*Application, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultBaseURL
	}
	if !cfg.DefaultLanguage.Valid() {
		cfg.DefaultLanguage = domain.DefaultLanguage
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	return &Application{
		cfg:       cfg,
		loader:    loader,
		logger:    logger.With("component", "web"),
		templates: tmpl,
		limiter:   newIPLimiter(cfg.RPS, cfg.Burst),
		now:       time.Now,
	}, nil
}

// WithFetchLog enables the /v1/stats and /v1/fetches endpoints. Call it
// before Routes.
func (app *Application) WithFetchLog(log FetchLog) *Application {
	app.fetchLog = log
	return app
}
