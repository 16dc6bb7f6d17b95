package config

import (
	"net/url"
	"strings"
	"time"
)

// DefaultAPIBaseURL is used when API_BASE_URL is unset or unparsable.
const DefaultAPIBaseURL = "http://localhost:8080/api"

// APIConfig describes the backend the console talks to.
type APIConfig struct {
	// BaseURL includes the /api path, e.g. "http://localhost:8080/api".
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080/api"`

	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"0s"`

	// CookiesEnabled attaches a cookie jar to the HTTP client.
	CookiesEnabled bool `env:"API_COOKIES_ENABLED" envDefault:"true"`
}

// Sanitize trims the base URL and falls back to the default when it is not absolute.
func (c *APIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		c.BaseURL = DefaultAPIBaseURL
	}
	if c.Timeout < 0 {
		c.Timeout = 0
	}
}

// Origin returns scheme://host[:port] of the base URL. Tokens are scoped to it.
func (c *APIConfig) Origin() string {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
