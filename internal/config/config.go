// Package config holds the settings of the badge relay, read once at startup.
package config

import (
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/DMarby/visit-badge/internal/web"
)

// Errors
var (
	ErrMissing    = errors.New("missing required configuration")
	ErrInvalidURL = errors.New("invalid url")
)

// Config is the configuration of the badge relay
type Config struct {
	RepositoryURL string // Where / redirects to
	HashKey       string // Salt for the page hashes
	CounterURL    string // Base URL of the counter service
	BadgeURL      string // Base URL of the badge service
	DefaultLabel  string
	DefaultColor  string
	CronTemplate  string // Path to the cron page template, the embedded template is used if empty
}

// Normalize returns a copy of the config with surrounding whitespace and trailing slashes removed from the values
func (c Config) Normalize() Config {
	c.RepositoryURL = strings.TrimSpace(c.RepositoryURL)
	c.CounterURL = strings.TrimRight(strings.TrimSpace(c.CounterURL), "/")
	c.BadgeURL = strings.TrimRight(strings.TrimSpace(c.BadgeURL), "/")
	c.CronTemplate = strings.TrimSpace(c.CronTemplate)

	return c
}

// Validate checks that all required values are set and the URLs are absolute http(s) URLs
func (c Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"repository-url", c.RepositoryURL},
		{"hash-key", c.HashKey},
		{"counter-url", c.CounterURL},
		{"badge-url", c.BadgeURL},
		{"default-label", c.DefaultLabel},
		{"default-color", c.DefaultColor},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}

	for name, value := range map[string]string{
		"repository-url": c.RepositoryURL,
		"counter-url":    c.CounterURL,
		"badge-url":      c.BadgeURL,
	} {
		if err := validateURL(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

func validateURL(value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidURL, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s is not an absolute http(s) url", ErrInvalidURL, value)
	}

	return nil
}

// LoadCronTemplate parses the cron page template
func (c Config) LoadCronTemplate() (*template.Template, error) {
	if c.CronTemplate == "" {
		return template.ParseFS(web.Templates, web.CronTemplate)
	}

	return template.ParseFiles(c.CronTemplate)
}
