package rpc

import (
	"net/http"
	"time"
)

// Config holds configuration for the API endpoint.
type Config struct {
	// URL is the API URL every call is posted to. Defaults to DefaultURL.
	URL string

	// HTTPClient is the HTTP client to use. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Headers contains optional extra headers to include in requests.
	Headers http.Header

	// Timeout is the optional per-call timeout.
	Timeout time.Duration

	// MaxResponseSize caps the size of a reply body. Zero means no limit.
	MaxResponseSize int64
}

// DefaultURL is the default Jutge API URL.
const DefaultURL = "https://api.jutge.org/api"

// DefaultURLEnvVar is the environment variable overriding the API URL.
const DefaultURLEnvVar = "JUTGE_API_URL"

// Option configures the endpoint.
type Option func(*Config)

// WithURL sets the API URL.
func WithURL(url string) Option {
	return func(c *Config) {
		c.URL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithHeader adds an extra header to include in requests.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		c.Headers.Set(key, value)
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithMaxResponseSize caps the size of a reply body.
func WithMaxResponseSize(n int64) Option {
	return func(c *Config) {
		c.MaxResponseSize = n
	}
}
