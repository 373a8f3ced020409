// Package viewer holds the state of a murli reader: the selected date and
// language, the document currently shown, and the display font size.
//
// Any change of the (date, language) key restarts the fetch pipeline. The
// superseded request is cancelled and its result, should it still arrive,
// is discarded by generation number, so content always belongs to the
// latest key.
package viewer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
	"github.com/devagn611/Daily-Murli-Reader/internal/metrics"
)

var ErrClosed = errors.New("viewer closed")

// Loader retrieves the renderable document for a selection.
type Loader interface {
	Load(ctx context.Context, sel domain.Selection) (string, error)
}

// Snapshot is a consistent copy of the viewer state.
type Snapshot struct {
	Selection   domain.Selection
	Content     string
	Failed      bool
	Loading     bool
	FontSize    domain.FontSize
	DownloadURL string
}

type Option func(*Viewer)

func WithLogger(logger *slog.Logger) Option {
	return func(v *Viewer) { v.logger = logger }
}

// WithBaseURL changes the host used for the download link.
func WithBaseURL(base string) Option {
	return func(v *Viewer) { v.baseURL = base }
}

// WithClock replaces time.Now when computing the initial date.
func WithClock(now func() time.Time) Option {
	return func(v *Viewer) { v.now = now }
}

func WithLanguage(lang domain.Language) Option {
	return func(v *Viewer) { v.sel.Language = lang }
}

type Viewer struct {
	loader  Loader
	baseURL string
	logger  *slog.Logger
	now     func() time.Time

	mu         sync.Mutex
	sel        domain.Selection
	content    string
	failed     bool
	loading    bool
	font       domain.FontSize
	generation uint64
	parent     context.Context
	cancel     context.CancelFunc
	started    bool
	closed     bool
	subs       []chan Snapshot

	inflight sync.WaitGroup
}

func New(loader Loader, opts ...Option) *Viewer {
	v := &Viewer{
		loader:  loader,
		baseURL: domain.DefaultBaseURL,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		sel:     domain.Selection{Language: domain.DefaultLanguage},
		font:    domain.DefaultFontSize,
	}
	for _, opt := range opts {
		opt(v)
	}
	if !v.sel.Language.Valid() {
		v.sel.Language = domain.DefaultLanguage
	}
	v.sel.Date = domain.Day(v.now())
	v.logger = v.logger.With("component", "viewer")
	return v
}

// Start issues the initial fetch for the current selection. ctx bounds every
// fetch the viewer makes.
func (v *Viewer) Start(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrClosed
	}
	if v.started {
		return nil
	}
	v.started = true
	v.parent = ctx
	v.refetchLocked()
	v.notifyLocked()
	return nil
}

func (v *Viewer) SetDate(date time.Time) error {
	if date.IsZero() {
		return domain.ErrEmptyDate
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selectLocked(domain.Selection{Date: date, Language: v.sel.Language})
}

func (v *Viewer) SetLanguage(lang domain.Language) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selectLocked(domain.Selection{Date: v.sel.Date, Language: lang})
}

// Select replaces both halves of the key at once, starting at most one fetch.
func (v *Viewer) Select(sel domain.Selection) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selectLocked(sel)
}

// ShiftDays moves the selected date by n days.
func (v *Viewer) ShiftDays(n int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selectLocked(v.sel.AddDays(n))
}

func (v *Viewer) selectLocked(sel domain.Selection) error {
	if v.closed {
		return ErrClosed
	}
	if err := sel.Validate(); err != nil {
		return err
	}
	sel.Date = domain.Day(sel.Date)
	if sel.Equal(v.sel) {
		return nil
	}

	v.sel = sel
	if v.started {
		v.refetchLocked()
	}
	v.notifyLocked()
	return nil
}

// refetchLocked supersedes any in-flight fetch with one for the current key.
func (v *Viewer) refetchLocked() {
	if v.cancel != nil {
		v.cancel()
	}

	v.generation++
	gen := v.generation
	sel := v.sel

	ctx, cancel := context.WithCancel(v.parent)
	v.cancel = cancel
	v.loading = true

	v.inflight.Add(1)
	go v.fetch(ctx, gen, sel)
}

func (v *Viewer) fetch(ctx context.Context, gen uint64, sel domain.Selection) {
	defer v.inflight.Done()

	content, err := v.loader.Load(ctx, sel)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		metrics.StaleResultsDiscarded.Inc()
		v.logger.Debug("discarded stale result", "selection", sel.String())
		return
	}

	v.loading = false
	v.cancel()
	v.cancel = nil

	if v.closed || v.parent.Err() != nil {
		return
	}

	if err != nil {
		v.logger.Error("failed to fetch murli",
			"selection", sel.String(),
			"error", err,
		)
		v.content = domain.FallbackContent
		v.failed = true
	} else {
		v.content = content
		v.failed = false
	}

	v.notifyLocked()
}

func (v *Viewer) IncreaseFont() domain.FontSize {
	return v.updateFont("increase", domain.FontSize.Increase)
}

func (v *Viewer) DecreaseFont() domain.FontSize {
	return v.updateFont("decrease", domain.FontSize.Decrease)
}

func (v *Viewer) ResetFont() domain.FontSize {
	return v.updateFont("reset", domain.FontSize.Reset)
}

func (v *Viewer) updateFont(op string, fn func(domain.FontSize) domain.FontSize) domain.FontSize {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.font = fn(v.font)
	metrics.FontOperations.WithLabelValues(op).Inc()
	v.notifyLocked()
	return v.font
}

func (v *Viewer) Selection() domain.Selection {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sel
}

func (v *Viewer) Content() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.content
}

func (v *Viewer) FontSize() domain.FontSize {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.font
}

// DownloadURL is derived from the selection on every call.
func (v *Viewer) DownloadURL() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sel.PDFURL(v.baseURL)
}

func (v *Viewer) LanguageOptions() []domain.LanguageOption {
	return domain.Languages()
}

func (v *Viewer) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *Viewer) snapshotLocked() Snapshot {
	return Snapshot{
		Selection:   v.sel,
		Content:     v.content,
		Failed:      v.failed,
		Loading:     v.loading,
		FontSize:    v.font,
		DownloadURL: v.sel.PDFURL(v.baseURL),
	}
}

// Subscribe returns a channel that receives the latest snapshot after every
// state change. Slow readers only see the most recent one. The channel is
// closed by Close.
func (v *Viewer) Subscribe() <-chan Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if v.closed {
		close(ch)
		return ch
	}
	ch <- v.snapshotLocked()
	v.subs = append(v.subs, ch)
	return ch
}

func (v *Viewer) notifyLocked() {
	snap := v.snapshotLocked()
	for _, ch := range v.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

// Wait blocks until no fetch is in flight. It must not race with a
// selection change made from another goroutine.
func (v *Viewer) Wait() {
	v.inflight.Wait()
}

// Close cancels the in-flight fetch, waits for it to return and closes all
// subscriptions.
func (v *Viewer) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	if v.cancel != nil {
		v.cancel()
	}
	v.mu.Unlock()

	v.inflight.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()
	for _, ch := range v.subs {
		close(ch)
	}
	v.subs = nil
}
