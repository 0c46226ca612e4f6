// Package resumably is the Go client SDK for the Resumably job-search
// assistant backend. It owns the session state machine, the mailbox intake
// pipeline (scan, classify, draft) and the cache-consistency layer that
// keeps the dashboard, email and skills views in agreement.
package resumably

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/samthedataman/resumably/internal/api"
	"github.com/samthedataman/resumably/internal/cache"
	"github.com/samthedataman/resumably/internal/session"
)

// Scan defaults used when WithScanDefaults is not supplied.
const (
	DefaultScanMaxResults = 30
	DefaultScanQuery      = "is:unread category:primary"

	defaultProcessedLimit = 50
)

// Client is the SDK entry point. One Client holds one logical user session.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger

	session *session.Machine
	cache   *cache.Store

	scanMax   int
	scanQuery string
	debugHTTP bool

	pipeline pipelineState
}

// New constructs a Client for the given backend base URL. Additional
// options can be provided via functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}

	c := &Client{
		baseURL:   baseURL,
		http:      &http.Client{Timeout: 30 * time.Second},
		log:       zerolog.Nop(),
		session:   session.New(),
		scanMax:   DefaultScanMaxResults,
		scanQuery: DefaultScanQuery,
	}
	c.pipeline.init()

	// Auto-enable debug via env variable without changing code; an explicit
	// option still wins since it applies after.
	c.debugHTTP = debugLoggingRequested()

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	// Install the debug transport after the options so it dumps through
	// whatever logger they configured.
	if c.debugHTTP {
		base := c.http.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		c.http.Transport = &debugTransport{base: base, log: c.log}
	}

	c.cache = cache.New(c.log)
	c.cache.OnHit = func(k cache.Key) { cacheHitsTotal.WithLabelValues(string(k)).Inc() }
	c.cache.OnRefetch = func(k cache.Key) { cacheRefetchTotal.WithLabelValues(string(k)).Inc() }
	c.registerFetchers()

	// Wrap the transport so every request carries the bearer token and any
	// unauthorized reply triggers the one teardown path.
	c.wrapTransportWithAuth()

	return c, nil
}

// wrapTransportWithAuth installs the bearer-attaching transport with the
// global 401 observer on top of whatever transport options configured.
func (c *Client) wrapTransportWithAuth() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &authTransport{
		base:    base,
		tokens:  c.session,
		revoked: c.onSessionRevoked,
	}
}

// onSessionRevoked is the cross-cutting teardown: any call from any
// component that comes back unauthorized lands here, regardless of which
// user action triggered it.
func (c *Client) onSessionRevoked() {
	sessionRevokedTotal.Inc()
	c.log.Warn().Msg("session revoked by backend, tearing down")
	c.session.Revoke()
	c.cache.Clear()
}

// registerFetchers binds every cache key to its gateway fetch.
func (c *Client) registerFetchers() {
	c.cache.Register(cache.KeyStats, func(ctx context.Context) (any, error) {
		return api.GetStats(ctx, c.http, c.baseURL)
	})
	c.cache.Register(cache.KeyConnectionStatus, func(ctx context.Context) (any, error) {
		return api.GetConnectionStatus(ctx, c.http, c.baseURL)
	})
	c.cache.Register(cache.KeyProcessedEmails, func(ctx context.Context) (any, error) {
		return api.ListProcessed(ctx, c.http, c.baseURL, false, defaultProcessedLimit)
	})
	c.cache.Register(cache.KeySkills, func(ctx context.Context) (any, error) {
		return api.ListSkills(ctx, c.http, c.baseURL, "")
	})
	c.cache.Register(cache.KeyLearnedSkills, func(ctx context.Context) (any, error) {
		return api.ListLearnedSkills(ctx, c.http, c.baseURL, "")
	})
	c.cache.Register(cache.KeyResumes, func(ctx context.Context) (any, error) {
		return api.ListResumes(ctx, c.http, c.baseURL)
	})
	c.cache.Register(cache.KeyDrafts, func(ctx context.Context) (any, error) {
		return api.ListDrafts(ctx, c.http, c.baseURL)
	})
}

// mutationEffects is the declared effect-set table: for each mutation, the
// cache keys it may have affected. Centralizing this table is what keeps
// the stats, emails and skills views mutually consistent.
var mutationEffects = map[string][]cache.Key{
	"classify":          {cache.KeyProcessedEmails, cache.KeyStats, cache.KeyLearnedSkills},
	"batch-classify":    {cache.KeyProcessedEmails, cache.KeyStats, cache.KeyLearnedSkills},
	"create-draft":      {cache.KeyDrafts, cache.KeyStats},
	"connect":           {cache.KeyConnectionStatus},
	"disconnect":        {cache.KeyConnectionStatus},
	"resume-mutation":   {cache.KeyResumes},
	"skill-mutation":    {cache.KeySkills},
	"convert-learned":   {cache.KeySkills, cache.KeyLearnedSkills},
	"skill-bulk-import": {cache.KeySkills},
}

func (c *Client) invalidateFor(mutation string) {
	keys, ok := mutationEffects[mutation]
	if !ok {
		return
	}
	c.cache.Invalidate(keys...)
}

// requireAuth rejects a protected call locally when no live token is held,
// before any network attempt.
func (c *Client) requireAuth() error {
	if _, ok := c.session.Token(); !ok {
		return fmt.Errorf("no active session: %w", ErrSessionExpired)
	}
	return nil
}

// cachedAs reads a typed value through the cache layer.
func cachedAs[T any](ctx context.Context, c *Client, key cache.Key) (T, error) {
	var zero T
	v, err := c.cache.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	tv, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache: unexpected value type for key %s", key)
	}
	return tv, nil
}
