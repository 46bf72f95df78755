package api

import (
	"bytes"
	"net/http"

	"github.com/DMarby/visit-badge/internal/handler"
)

func (a *API) redirectHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	w.Header()["Content-Type"] = nil
	http.Redirect(w, r, a.RepositoryURL, http.StatusFound)

	return nil
}

func (a *API) cronHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	var buf bytes.Buffer
	if err := a.CronTemplate.Execute(&buf, nil); err != nil {
		a.logError(r, "error rendering cron template", err)
		return handler.InternalServerError()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Write(buf.Bytes())

	return nil
}
