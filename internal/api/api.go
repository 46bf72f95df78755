package api

import (
	"html/template"
	"net/http"
	"time"

	"github.com/DMarby/visit-badge/internal/badge"
	"github.com/DMarby/visit-badge/internal/handler"
	"github.com/DMarby/visit-badge/internal/health"
	"github.com/DMarby/visit-badge/internal/logger"
	"github.com/DMarby/visit-badge/internal/tracing"
	"github.com/gorilla/mux"
)

// API is a http api
type API struct {
	Resolver       *badge.Resolver
	Badges         *badge.Client
	HealthChecker  *health.Checker
	Log            *logger.Logger
	Tracer         *tracing.Tracer
	RepositoryURL  string
	CronTemplate   *template.Template
	HandlerTimeout time.Duration
}

// Utility methods for logging
func (a *API) logError(r *http.Request, message string, err error) {
	a.Log.Errorw(message, handler.LogFields(r, "error", err)...)
}

// Router returns a http router
func (a *API) Router() http.Handler {
	router := mux.NewRouter()

	router.NotFoundHandler = handler.Handler(a.notFoundHandler)

	// Redirect trailing slashes
	router.StrictSlash(true)

	// Healthcheck
	router.Handle("/health", handler.Health(a.HealthChecker)).Methods("GET").Name("health")

	// Redirect to the repository
	router.Handle("/", handler.Handler(a.redirectHandler)).Methods("GET").Name("root")

	// Visit count badge
	router.Handle("/badge", handler.Handler(a.badgeHandler)).Methods("GET").Name("badge")

	// Query parameters:
	// ?page={page} - The page to count visits for, required
	// ?label={label} - The badge label, defaults to the configured label
	// ?color={color} - The badge color, defaults to the configured color
	// Any other parameter is passed on to the badge service, except for ?message which is not allowed

	// Keep-alive page for cron jobs
	router.Handle("/cron", handler.Handler(a.cronHandler)).Methods("GET").Name("cron")

	routeMatcher := &handler.MuxRouteMatcher{Router: router}

	// Set up handlers for adding a request id, handling panics, request logging, metrics, tracing, setting CORS headers, and handler execution timeout
	return handler.AddRequestID(
		handler.Recovery(a.Log,
			handler.Logger(a.Log,
				handler.Metrics(
					handler.Tracer(a.Tracer,
						handler.CORS([]string{handler.RequestIDHeader}, http.TimeoutHandler(router, a.HandlerTimeout, "Something went wrong. Timed out.")),
						routeMatcher,
					),
					routeMatcher,
				),
			),
		),
	)
}

// Handle not found errors
var notFoundError = &handler.Error{
	Message: "page not found",
	Code:    http.StatusNotFound,
}

func (a *API) notFoundHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	return notFoundError
}
