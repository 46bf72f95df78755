package badge

import (
	"net/url"

	"github.com/DMarby/visit-badge/internal/params"
)

// Compiler builds static badge URLs for a shields.io compatible badge service
type Compiler struct {
	BaseURL *url.URL // Without a trailing slash
}

// NewCompiler parses the badge service base URL
func NewCompiler(baseURL string) (*Compiler, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	return &Compiler{BaseURL: u}, nil
}

// URL returns {BaseURL}/{label}-{message}-{color}, with the extra parameters as the query string
// The label, message and color are not escaped for the badge service, and the extra parameters are joined verbatim
func (c *Compiler) URL(label, message, color string, extra params.Query) string {
	u := *c.BaseURL
	u.Path += "/" + label + "-" + message + "-" + color
	u.RawPath = ""

	return params.Combine(&u, params.BuildQuery(extra))
}
