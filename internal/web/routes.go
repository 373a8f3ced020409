package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes registers all endpoints. Middleware chain, outermost first:
//
//	recoverPanic → instrument → rateLimit → router
//
// Endpoints:
//
//	GET /                 – reader page
//	GET /v1/murli         – murli document as JSON
//	GET /v1/languages     – selectable languages
//	GET /v1/healthcheck   – liveness
//	GET /v1/stats         – per-selection fetch counters (fetch log only)
//	GET /v1/fetches       – most recent fetch attempts (fetch log only)
//	GET /metrics          – Prometheus
func (app *Application) Routes() http.Handler {
	router := httprouter.New()
	paths := make(map[string]bool)

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	handle := func(path string, h http.Handler) {
		router.Handler(http.MethodGet, path, h)
		paths[path] = true
	}

	handle("/", http.HandlerFunc(app.pageHandler))
	handle("/v1/murli", http.HandlerFunc(app.murliHandler))
	handle("/v1/languages", http.HandlerFunc(app.languagesHandler))
	handle("/v1/healthcheck", http.HandlerFunc(app.healthcheckHandler))
	if app.fetchLog != nil {
		handle("/v1/stats", http.HandlerFunc(app.statsHandler))
		handle("/v1/fetches", http.HandlerFunc(app.fetchesHandler))
	}
	handle("/metrics", promhttp.Handler())

	var h http.Handler = router
	if app.cfg.RateLimit {
		h = app.rateLimit(h)
	}
	return app.recoverPanic(app.instrument(paths, h))
}
