package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RouteMatcher matches requests to a route name, used for metrics and span names
type RouteMatcher interface {
	Match(r *http.Request) string
}

// MuxRouteMatcher matches routes for a mux router
type MuxRouteMatcher struct {
	Router *mux.Router
}

// Match returns the mux route name of a given request, falling back to the path template if not set
func (m *MuxRouteMatcher) Match(r *http.Request) string {
	var routeMatch mux.RouteMatch

	// The Route is nil on a match if the NotFoundHandler is used
	if !m.Router.Match(r, &routeMatch) || routeMatch.Route == nil {
		return "not_found"
	}

	if name := routeMatch.Route.GetName(); name != "" {
		return name
	}

	if tmpl, err := routeMatch.Route.GetPathTemplate(); err == nil {
		return tmpl
	}

	return "unknown"
}
