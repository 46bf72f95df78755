package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DMarby/visit-badge/internal/metrics"
	"github.com/DMarby/visit-badge/internal/params"
	"github.com/DMarby/visit-badge/internal/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Largest response body that is read from an upstream service
const maxBodySize = 4 << 20

// Client performs GET requests against an external service
type Client struct {
	Name       string // Name of the service, used for metrics
	HTTPClient *http.Client
}

// NewHTTPClient returns a http client that propagates traces to upstream services
func NewHTTPClient(tracer *tracing.Tracer) *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(
			http.DefaultTransport,
			otelhttp.WithTracerProvider(tracer),
			otelhttp.WithPropagators(tracer.Propagator),
		),
	}
}

// Response is a fully read upstream response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Get requests the URL and reads the response body
// Characters that can't be sent on the wire are escaped first, see params.Requote
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, params.Requote(rawURL), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating %s request: %w", c.Name, err)
	}

	start := time.Now()
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(c.Name, 0, time.Since(start))
		return nil, fmt.Errorf("error requesting %s: %w", c.Name, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	metrics.ObserveUpstream(c.Name, res.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("error reading %s response: %w", c.Name, err)
	}

	return &Response{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       body,
	}, nil
}

// Ping checks that the service responds to the URL without a server error
func (c *Client) Ping(ctx context.Context, rawURL string) error {
	res, err := c.Get(ctx, rawURL)
	if err != nil {
		return err
	}

	if res.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%s responded with status %d", c.Name, res.StatusCode)
	}

	return nil
}
