package madhuban

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
)

const (
	SourceID   = "madhuban"
	SourceName = "Madhuban Murli"
)

// Config holds madhubanmurli.org source configuration.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// MaxBodyBytes rejects larger documents; zero means unlimited.
	MaxBodyBytes int64
}

// ErrBodyTooLarge is returned instead of a truncated document.
var ErrBodyTooLarge = errors.New("body exceeds size limit")

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// Source fetches pre-rendered murli documents.
type Source struct {
	httpClient   *http.Client
	baseURL      string
	userAgent    string
	maxBodyBytes int64
	logger       *slog.Logger
}

// New creates a new madhuban source.
func New(cfg Config, logger *slog.Logger) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "MurliReader/1.0"
	}
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:    cfg.UserAgent,
		maxBodyBytes: cfg.MaxBodyBytes,
		logger:       logger.With("source", SourceID),
	}
}

// ID returns the source identifier.
func (s *Source) ID() string {
	return SourceID
}

// Name returns human-readable name.
func (s *Source) Name() string {
	return SourceName
}

func (s *Source) HTMLURL(sel domain.Selection) string {
	return sel.HTMLURL(s.baseURL)
}

func (s *Source) PDFURL(sel domain.Selection) string {
	return sel.PDFURL(s.baseURL)
}

// Fetch performs a single GET for the selection's document. There are no
// retries: a failed request is reported to the caller as is.
func (s *Source) Fetch(ctx context.Context, sel domain.Selection) (*domain.Document, error) {
	if err := sel.Validate(); err != nil {
		return nil, fmt.Errorf("validate selection: %w", err)
	}

	url := s.HTMLURL(sel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.Document{URL: url, StatusCode: resp.StatusCode}, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	var body io.Reader = resp.Body
	if s.maxBodyBytes > 0 {
		body = io.LimitReader(resp.Body, s.maxBodyBytes+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return &domain.Document{URL: url, StatusCode: resp.StatusCode}, fmt.Errorf("read body: %w", err)
	}
	if s.maxBodyBytes > 0 && int64(len(data)) > s.maxBodyBytes {
		return &domain.Document{URL: url, StatusCode: resp.StatusCode}, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, s.maxBodyBytes)
	}

	s.logger.Debug("fetched murli",
		"selection", sel.String(),
		"status", resp.StatusCode,
		"bytes", len(data),
	)

	return &domain.Document{URL: url, StatusCode: resp.StatusCode, Body: string(data)}, nil
}
