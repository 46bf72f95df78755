package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DMarby/visit-badge/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		RepositoryURL: "https://github.com/DMarby/visit-badge",
		HashKey:       "secret",
		CounterURL:    "https://api.countapi.xyz/hit/visit-badge",
		BadgeURL:      "https://img.shields.io/badge",
		DefaultLabel:  "visits",
		DefaultColor:  "blue",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		Name          string
		Modify        func(c *config.Config)
		ExpectedError error
	}{
		{"valid", func(c *config.Config) {}, nil},
		{"missing hash key", func(c *config.Config) { c.HashKey = "" }, config.ErrMissing},
		{"missing default label", func(c *config.Config) { c.DefaultLabel = "" }, config.ErrMissing},
		{"missing default color", func(c *config.Config) { c.DefaultColor = "" }, config.ErrMissing},
		{"relative counter url", func(c *config.Config) { c.CounterURL = "/hit" }, config.ErrInvalidURL},
		{"badge url without scheme", func(c *config.Config) { c.BadgeURL = "img.shields.io/badge" }, config.ErrInvalidURL},
		{"ftp repository url", func(c *config.Config) { c.RepositoryURL = "ftp://example.com" }, config.ErrInvalidURL},
	}

	for _, test := range tests {
		c := validConfig()
		test.Modify(&c)

		err := c.Validate()
		if test.ExpectedError == nil {
			if err != nil {
				t.Errorf("%s: %s", test.Name, err)
			}
			continue
		}

		if !errors.Is(err, test.ExpectedError) {
			t.Errorf("%s: wrong error %v", test.Name, err)
		}
	}
}

func TestValidateListsMissing(t *testing.T) {
	err := config.Config{}.Validate()
	if err == nil {
		t.Fatal("no error")
	}

	for _, name := range []string{"repository-url", "hash-key", "counter-url", "badge-url", "default-label", "default-color"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error does not mention %s: %s", name, err)
		}
	}
}

func TestNormalize(t *testing.T) {
	c := validConfig()
	c.CounterURL = " https://api.countapi.xyz/hit/visit-badge/ "
	c.BadgeURL = "https://img.shields.io/badge//"

	normalized := c.Normalize()
	if normalized.CounterURL != "https://api.countapi.xyz/hit/visit-badge" {
		t.Errorf("wrong counter url %s", normalized.CounterURL)
	}

	if normalized.BadgeURL != "https://img.shields.io/badge" {
		t.Errorf("wrong badge url %s", normalized.BadgeURL)
	}

	if c.BadgeURL != "https://img.shields.io/badge//" {
		t.Error("Normalize modified the config")
	}
}

func TestLoadCronTemplate(t *testing.T) {
	c := validConfig()

	if _, err := c.LoadCronTemplate(); err != nil {
		t.Errorf("embedded template: %s", err)
	}

	path := filepath.Join(t.TempDir(), "cron.html")
	if err := os.WriteFile(path, []byte("<p>cron</p>"), 0o644); err != nil {
		t.Fatal(err)
	}

	c.CronTemplate = path
	if _, err := c.LoadCronTemplate(); err != nil {
		t.Errorf("template file: %s", err)
	}

	c.CronTemplate = filepath.Join(t.TempDir(), "missing.html")
	if _, err := c.LoadCronTemplate(); err == nil {
		t.Error("no error for a missing template")
	}
}
