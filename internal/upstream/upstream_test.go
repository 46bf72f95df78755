package upstream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DMarby/visit-badge/internal/logger"
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

		switch r.URL.Path {
		case "/broken":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte("hello"))
		}
	}))
	defer ts.Close()

	client := &upstream.Client{Name: "test", HTTPClient: upstream.NewHTTPClient(test.Tracer(log))}
	ctx := context.Background()

	res, err := client.Get(ctx, ts.URL+"/hello world?q=a b")
	if err != nil {
		t.Fatal(err)
	}

	if res.StatusCode != http.StatusOK || string(res.Body) != "hello" || res.Header.Get("Content-Type") != "text/plain" {
		t.Errorf("wrong response %+v", res)
	}

	if requestURI != "/hello%20world?q=a%20b" {
		t.Errorf("wrong request uri %s", requestURI)
	}

	tests := []struct {
		Path        string
		ExpectError bool
	}{
		{"/", false},
		{"/missing", false},
		{"/broken", true},
	}

	for _, test := range tests {
		err := client.Ping(ctx, ts.URL+test.Path)
		if (err != nil) != test.ExpectError {
			t.Errorf("%s: wrong ping result %v", test.Path, err)
		}
	}

	ts.Close()
	if _, err := client.Get(ctx, ts.URL); err == nil {
		t.Error("no error from a closed server")
	}
}
