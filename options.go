package resumably

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
//
// Options are applied before the session transport wrapper is installed,
// so transport-related options (like debug logging) sit underneath the
// bearer-token wrapper. Options must be deterministic and side-effect free.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net that bounds the total time spent on a single HTTP
// request. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client entirely. The session
// transport wrapper is still installed on top of it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.http = hc
		return nil
	}
}

// WithLogger sets the logger used for cache and session events. The
// default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) error {
		c.log = log
		return nil
	}
}

// WithDebugLogging dumps each request and response through the client's
// logger when enabled is true. An explicit setting wins over the
// RESUMABLY_DEBUG / DEBUG environment knobs.
//
// The debug transport is installed beneath the bearer-token wrapper, after
// all options have applied, so it always dumps through the configured
// logger. Do not enable in production; dumps include headers.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debugHTTP = enabled
		return nil
	}
}

// WithScanDefaults sets the candidate limit and filter query used by Scan.
func WithScanDefaults(maxResults int, query string) Option {
	return func(c *Client) error {
		if maxResults <= 0 {
			return fmt.Errorf("scan max results must be > 0")
		}
		c.scanMax = maxResults
		if query != "" {
			c.scanQuery = query
		}
		return nil
	}
}

// envConfig is the environment surface consumed by NewFromEnv.
type envConfig struct {
	BaseURL     string        `envconfig:"BASE_URL" required:"true"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT"`
	Debug       bool          `envconfig:"DEBUG"`
}

// NewFromEnv constructs a Client from RESUMABLY_* environment variables:
// RESUMABLY_BASE_URL (required), RESUMABLY_HTTP_TIMEOUT, RESUMABLY_DEBUG.
// Explicit options are applied after the environment-derived ones.
func NewFromEnv(opts ...Option) (*Client, error) {
	var ec envConfig
	if err := envconfig.Process("resumably", &ec); err != nil {
		return nil, err
	}
	envOpts := []Option{}
	if ec.HTTPTimeout > 0 {
		envOpts = append(envOpts, WithHTTPTimeout(ec.HTTPTimeout))
	}
	if ec.Debug {
		envOpts = append(envOpts, WithDebugLogging(true))
	}
	return New(ec.BaseURL, append(envOpts, opts...)...)
}
