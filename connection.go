package resumably

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/samthedataman/resumably/internal/api"
	"github.com/samthedataman/resumably/internal/cache"
	"github.com/samthedataman/resumably/internal/types"
)

// ConnectAuthURL returns the provider consent URL the user must visit to
// link their mailbox account. Linking completes out of band; poll
// ConnectionStatus or use AwaitConnection afterwards.
func (c *Client) ConnectAuthURL(ctx context.Context) (*ConnectAuthURL, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	return api.GetConnectAuthURL(ctx, c.http, c.baseURL)
}

// ConnectionStatus returns the cached mailbox link state. The connected
// flag gates the intake pipeline.
func (c *Client) ConnectionStatus(ctx context.Context) (*ConnectionStatus, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	return cachedAs[*types.ConnectionStatus](ctx, c, cache.KeyConnectionStatus)
}

// Disconnect unlinks the mailbox account and invalidates the cached
// connection state.
func (c *Client) Disconnect(ctx context.Context) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if err := api.Disconnect(ctx, c.http, c.baseURL); err != nil {
		return err
	}
	c.invalidateFor("disconnect")
	return nil
}

// AwaitConnection polls the link state with exponential backoff until the
// mailbox is connected or ctx ends. Intended for use right after the user
// is sent to the consent URL. Polling bypasses the cache; on success the
// cached entry is invalidated so the next read sees the linked state.
func (c *Client) AwaitConnection(ctx context.Context) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = time.Second
	exp.MaxInterval = 15 * time.Second
	exp.MaxElapsedTime = 0 // bounded by ctx only

	err := backoff.Retry(func() error {
		status, err := api.GetConnectionStatus(ctx, c.http, c.baseURL)
		if err != nil {
			if IsSessionExpired(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		if !status.Connected {
			return errNotLinkedYet
		}
		return nil
	}, backoff.WithContext(exp, ctx))
	if err != nil {
		return err
	}
	c.invalidateFor("connect")
	return nil
}

// errNotLinkedYet is internal to the AwaitConnection poll loop.
var errNotLinkedYet = &OperationFailedError{Operation: "await connection", Detail: "not linked yet"}
