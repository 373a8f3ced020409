package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
	"github.com/devagn611/Daily-Murli-Reader/internal/validator"
)

type languageChoice struct {
	Value    domain.Language
	Label    string
	Selected bool
}

type pageData struct {
	Date        string
	Languages   []languageChoice
	FontSize    domain.FontSize
	IncreaseURL string
	DecreaseURL string
	ResetURL    string
	DownloadURL string
	Content     template.HTML
	Failed      bool
	Errors      map[string]string
}

type murliResponse struct {
	Date          string          `json:"date"`
	Language      domain.Language `json:"language"`
	LanguageLabel string          `json:"language_label"`
	Content       string          `json:"content"`
	Failed        bool            `json:"error"`
	SourceURL     string          `json:"source_url"`
	DownloadURL   string          `json:"download_url"`
}

// pageHandler renders the reader for ?date=&lang=&font=. Missing values
// fall back to today, the default language and 16px.
func (app *Application) pageHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	date := app.readString(qs, "date", domain.Day(app.now()).Format(domain.DateLayout))
	lang := app.readString(qs, "lang", string(app.cfg.DefaultLanguage))

	v := validator.New()
	sel := validator.ValidateSelection(v, date, lang)
	font := validator.ValidateFontSize(v, qs.Get("font"))

	data := pageData{
		Date:     date,
		FontSize: font,
	}

	for _, opt := range domain.Languages() {
		data.Languages = append(data.Languages, languageChoice{
			Value:    opt.Value,
			Label:    opt.Label,
			Selected: string(opt.Value) == lang,
		})
	}

	if !v.Valid() {
		data.Errors = v.Errors
		app.render(w, r, http.StatusBadRequest, data)
		return
	}

	content, failed := app.load(r.Context(), sel)

	data.Content = template.HTML(content)
	data.Failed = failed
	data.DownloadURL = sel.PDFURL(app.cfg.BaseURL)
	data.IncreaseURL = pageURL(sel, font.Increase())
	data.DecreaseURL = pageURL(sel, font.Decrease())
	data.ResetURL = pageURL(sel, font.Reset())

	app.render(w, r, http.StatusOK, data)
}

// murliHandler serves GET /v1/murli. A failed upstream fetch is not an API
// error: the fallback text is returned with error=true.
func (app *Application) murliHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	date := app.readString(qs, "date", domain.Day(app.now()).Format(domain.DateLayout))
	lang := app.readString(qs, "lang", string(app.cfg.DefaultLanguage))

	v := validator.New()
	sel := validator.ValidateSelection(v, date, lang)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	content, failed := app.load(r.Context(), sel)

	resp := murliResponse{
		Date:          sel.DateString(),
		Language:      sel.Language,
		LanguageLabel: sel.Language.Label(),
		Content:       content,
		Failed:        failed,
		SourceURL:     sel.HTMLURL(app.cfg.BaseURL),
		DownloadURL:   sel.PDFURL(app.cfg.BaseURL),
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"murli": resp}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) languagesHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.writeJSON(w, http.StatusOK, envelope{"languages": domain.Languages()}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	data := envelope{
		"status": "available",
		"system_info": map[string]string{
			"version": app.cfg.Version,
		},
	}
	if err := app.writeJSON(w, http.StatusOK, data, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// load absorbs fetch failures: the caller always gets something to show.
func (app *Application) load(ctx context.Context, sel domain.Selection) (string, bool) {
	content, err := app.loader.Load(ctx, sel)
	switch {
	case errors.Is(err, context.Canceled):
		app.logger.Debug("murli fetch cancelled",
			"selection", sel.String(),
			"error", err,
		)
		return domain.FallbackContent, true
	case err != nil:
		app.logger.Error("failed to fetch murli",
			"selection", sel.String(),
			"error", err,
		)
		return domain.FallbackContent, true
	}
	return content, false
}

func (app *Application) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := app.templates.ExecuteTemplate(w, "page.tmpl", data); err != nil {
		app.logError(r, err)
	}
}

func pageURL(sel domain.Selection, font domain.FontSize) string {
	qs := url.Values{}
	qs.Set("date", sel.DateString())
	qs.Set("lang", string(sel.Language))
	qs.Set("font", strconv.Itoa(int(font)))
	return "/?" + qs.Encode()
}

const (
	defaultRecentFetches = 20
	maxRecentFetches     = 100
)

// statsHandler serves the fetch counters of one selection.
func (app *Application) statsHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	date := app.readString(qs, "date", domain.Day(app.now()).Format(domain.DateLayout))
	lang := app.readString(qs, "lang", string(app.cfg.DefaultLanguage))

	v := validator.New()
	sel := validator.ValidateSelection(v, date, lang)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	stats, err := app.fetchLog.Get(r.Context(), sel.DateString(), sel.Language)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"stats": stats}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// fetchesHandler lists the newest fetch attempts, ?limit= capped at 100.
func (app *Application) fetchesHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	limit := app.readInt(r.URL.Query(), "limit", defaultRecentFetches, v)
	v.Check(limit >= 1 && limit <= maxRecentFetches, "limit", "must be between 1 and 100")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	events, err := app.fetchLog.ListRecent(r.Context(), limit)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if events == nil {
		events = []domain.FetchEvent{}
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"fetches": events}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
