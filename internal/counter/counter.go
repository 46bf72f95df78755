package counter

import (
	"context"
	"net/http"

	"github.com/DMarby/visit-badge/internal/handler"
	"github.com/DMarby/visit-badge/internal/logger"
	"github.com/DMarby/visit-badge/internal/upstream"
	"github.com/tidwall/gjson"
)

// Provider returns the visit count for a key
type Provider interface {
	Count(ctx context.Context, key string) (count int64, ok bool)
}

// Client is a client for a CountAPI compatible counter service
// Requesting {BaseURL}/{key} increments the counter for key, and responds with {"value": <count>}
type Client struct {
	BaseURL  string // Without a trailing slash
	Upstream *upstream.Client
	Log      *logger.Logger
}

// New returns a new counter client
func New(baseURL string, httpClient *http.Client, log *logger.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		Upstream: &upstream.Client{
			Name:       "counter",
			HTTPClient: httpClient,
		},
		Log: log,
	}
}

// Count hits the counter for the key, and returns the count
// ok is false if the service couldn't be reached, responded with anything but 200 OK, or without a numeric value
func (c *Client) Count(ctx context.Context, key string) (int64, bool) {
	res, err := c.Upstream.Get(ctx, c.BaseURL+"/"+key)
	if err != nil {
		c.Log.Debugw("error getting count", handler.LogContextFields(ctx, "key", key, "error", err)...)
		return 0, false
	}

	if res.StatusCode != http.StatusOK {
		c.Log.Debugw("unexpected counter status", handler.LogContextFields(ctx, "key", key, "status-code", res.StatusCode)...)
		return 0, false
	}

	if !gjson.ValidBytes(res.Body) {
		c.Log.Debugw("invalid counter response", handler.LogContextFields(ctx, "key", key)...)
		return 0, false
	}

	value := gjson.GetBytes(res.Body, "value")
	if value.Type != gjson.Number {
		c.Log.Debugw("counter response without a value", handler.LogContextFields(ctx, "key", key)...)
		return 0, false
	}

	return value.Int(), true
}

// Ping checks that the counter service is reachable
func (c *Client) Ping(ctx context.Context) error {
	return c.Upstream.Ping(ctx, c.BaseURL+"/")
}
