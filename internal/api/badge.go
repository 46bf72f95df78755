package api

import (
	"net/http"
	"time"

	"github.com/DMarby/visit-badge/internal/handler"
	"github.com/DMarby/visit-badge/internal/metrics"
	"github.com/DMarby/visit-badge/internal/params"
)

const (
	badgeContentType  = "image/svg+xml"
	badgeCacheControl = "no-cache,max-age=0,no-store,s-maxage=0,proxy-revalidate"
	badgeExpiryOffset = 10 * time.Minute // Expires is set this far in the past
)

func (a *API) badgeHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	ctx := r.Context()

	// Resolve the label, message and color, falling back to an error badge for invalid parameters or counter failures
	b, err := a.Resolver.Resolve(ctx, params.ParseQuery(r.URL.RawQuery))
	if err != nil {
		a.logError(r, "error resolving badge", err)
		return handler.InternalServerError()
	}

	metrics.ObserveBadge(b.Outcome.String())

	// Get the badge from the badge service
	svg, err := a.Badges.Fetch(ctx, a.Badges.URL(b))
	if err != nil {
		a.logError(r, "error fetching badge", err)
		return handler.InternalServerError()
	}

	// Make sure that the badge is never cached, so that the count stays up to date
	w.Header().Set("Content-Type", badgeContentType)
	w.Header().Set("Cache-Control", badgeCacheControl)
	w.Header().Set("Expires", time.Now().UTC().Add(-badgeExpiryOffset).Format(http.TimeFormat))

	w.Write(svg)

	return nil
}
