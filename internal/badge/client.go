package badge

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/DMarby/visit-badge/internal/params"
	"github.com/DMarby/visit-badge/internal/upstream"
)

// Errors
var (
	ErrStatus = errors.New("unexpected badge service status")
)

// Client fetches rendered badges from the badge service
type Client struct {
	Compiler *Compiler
	Upstream *upstream.Client
}

// NewClient returns a new badge service client
func NewClient(compiler *Compiler, httpClient *http.Client) *Client {
	return &Client{
		Compiler: compiler,
		Upstream: &upstream.Client{
			Name:       "badges",
			HTTPClient: httpClient,
		},
	}
}

// URL returns the badge service URL for a badge
func (c *Client) URL(b *Badge) string {
	return c.Compiler.URL(b.Label, b.Message, b.Color, b.Extra)
}

// Fetch fetches the image for a badge URL
func (c *Client) Fetch(ctx context.Context, badgeURL string) ([]byte, error) {
	res, err := c.Upstream.Get(ctx, badgeURL)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, res.StatusCode)
	}

	return res.Body, nil
}

// Ping checks that the badge service can render a static badge
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Fetch(ctx, c.Compiler.URL("health", "ok", "green", params.Query{}))
	return err
}
