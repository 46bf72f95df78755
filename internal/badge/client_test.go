package badge_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DMarby/visit-badge/internal/badge"
	"github.com/DMarby/visit-badge/internal/logger"
	"github.com/DMarby/visit-badge/internal/params"
	"github.com/DMarby/visit-badge/internal/tracing/test"
	"github.com/DMarby/visit-badge/internal/upstream"
	"go.uber.org/zap"
)

func TestClient(t *testing.T) {
	log := logger.New(zap.FatalLevel)
	defer log.Sync()

	var requestURI string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestURI = r.RequestURI
		if r.URL.Path == "/badge/broken-badge-red" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write([]byte("<svg>" + r.URL.Path + "</svg>"))
	}))
	defer ts.Close()

	compiler, err := badge.NewCompiler(ts.URL + "/badge")
	if err != nil {
		t.Fatal(err)
	}

	client := badge.NewClient(compiler, upstream.NewHTTPClient(test.Tracer(log)))
	ctx := context.Background()

	b := &badge.Badge{Label: "HTTP 400", Message: "Argument not needed: message", Color: "blue", Extra: params.Query{{Key: "logo", Value: "git hub"}}}
	data, err := client.Fetch(ctx, client.URL(b))
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "<svg>/badge/HTTP 400-Argument not needed: message-blue</svg>" {
		t.Errorf("wrong badge %s", data)
	}

	if requestURI != "/badge/HTTP%20400-Argument%20not%20needed:%20message-blue?logo=git%20hub" {
		t.Errorf("wrong request uri %s", requestURI)
	}

	_, err = client.Fetch(ctx, client.URL(&badge.Badge{Label: "broken", Message: "badge", Color: "red"}))
	if !errors.Is(err, badge.ErrStatus) {
		t.Errorf("wrong error %v", err)
	}

	if err := client.Ping(ctx); err != nil {
		t.Errorf("ping error %s", err)
	}

	if requestURI != "/badge/health-ok-green" {
		t.Errorf("wrong ping request uri %s", requestURI)
	}

	ts.Close()
	if _, err := client.Fetch(ctx, client.URL(b)); err == nil {
		t.Error("no error from a closed server")
	}
}
