package resumably

import (
	"context"
	"strings"

	"github.com/samthedataman/resumably/internal/api"
	"github.com/samthedataman/resumably/internal/session"
	"github.com/samthedataman/resumably/internal/types"
)

// SessionState re-exports the state machine's states.
type SessionState = session.State

const (
	StateUnauthenticated     = session.Unauthenticated
	StatePendingSecondFactor = session.PendingSecondFactor
	StateAuthenticated       = session.Authenticated
)

// SessionState reports the current authentication state.
func (c *Client) SessionState() SessionState { return c.session.State() }

// OnSessionChange registers a callback invoked after every session state
// transition, including the forced teardown on an unauthorized reply.
func (c *Client) OnSessionChange(fn func(SessionState)) { c.session.Subscribe(fn) }

// AuthenticatedUser returns the cached account snapshot, or nil when no
// completed authentication holds one.
func (c *Client) AuthenticatedUser() *User { return c.session.User() }

// SubmitCredentials runs the password login path. On direct success the
// session becomes Authenticated; if the account has a second factor the
// session moves to PendingSecondFactor and SubmitSecondFactor must follow.
// On failure the session stays Unauthenticated.
func (c *Client) SubmitCredentials(ctx context.Context, email, password string) error {
	if c.session.State() != session.Unauthenticated {
		return ErrInvalidState
	}
	if err := types.ValidateCredentials(email, password); err != nil {
		return err
	}
	tok, err := api.Login(ctx, c.http, c.baseURL, types.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}
	if tok.RequiresSecondFactor {
		c.session.BeginChallenge(email, password)
		return nil
	}
	c.completeLogin(ctx, tok.AccessToken)
	return nil
}

// SubmitSecondFactor answers a pending challenge with a one-time code. On
// an invalid code the session stays in PendingSecondFactor and the
// original credentials are not re-requested.
func (c *Client) SubmitSecondFactor(ctx context.Context, code string) error {
	email, password, ok := c.session.PendingCredentials()
	if !ok {
		return ErrInvalidState
	}
	if err := types.ValidateSecondFactorCode(code); err != nil {
		return err
	}
	tok, err := api.Login(ctx, c.http, c.baseURL, types.LoginRequest{Email: email, Password: password, TOTPCode: code})
	if err != nil {
		return err
	}
	if tok.RequiresSecondFactor || tok.AccessToken == "" {
		return &AuthError{Detail: "invalid 2FA code"}
	}
	c.completeLogin(ctx, tok.AccessToken)
	return nil
}

// CancelSecondFactor abandons a pending challenge and returns to
// Unauthenticated. The entered email is kept for the login form.
func (c *Client) CancelSecondFactor() { c.session.CancelChallenge() }

// LoginWithFederatedCredential exchanges an identity-provider credential
// for a session. It bypasses the second-factor path; the provider enforces
// any second factor out of band. A pending password-path challenge is
// discarded.
func (c *Client) LoginWithFederatedCredential(ctx context.Context, credential string) error {
	if c.session.State() == session.Authenticated {
		return ErrInvalidState
	}
	if strings.TrimSpace(credential) == "" {
		return &ValidationError{Field: "credential", Reason: "must not be empty"}
	}
	c.session.CancelChallenge()
	resp, err := api.FederatedLogin(ctx, c.http, c.baseURL, types.FederatedAuthRequest{Credential: credential})
	if err != nil {
		return err
	}
	c.completeLogin(ctx, resp.AccessToken)
	return nil
}

// completeLogin stores the token and fetches the account snapshot. The
// snapshot fetch is best effort; login has already succeeded.
func (c *Client) completeLogin(ctx context.Context, token string) {
	c.session.CompleteLogin(token)
	if user, err := api.GetCurrentUser(ctx, c.http, c.baseURL); err == nil {
		c.session.SetUser(user)
	} else {
		c.log.Debug().Err(err).Msg("user snapshot fetch after login failed")
	}
}

// RegisterAccount creates a new account. Local preconditions (password
// length, confirmation match) fail fast with no network call. Success does
// not log the user in; the caller must follow with SubmitCredentials.
func (c *Client) RegisterAccount(ctx context.Context, email, password, confirmPassword string) (*User, error) {
	if err := types.ValidateRegistration(email, password, confirmPassword); err != nil {
		return nil, err
	}
	return api.Register(ctx, c.http, c.baseURL, types.RegisterRequest{Email: email, Password: password})
}

// Logout clears the token and cached user snapshot from any state, and
// drops every cache entry held under that identity.
func (c *Client) Logout() {
	c.session.Logout()
	c.cache.Clear()
}

// CurrentUser fetches a fresh account snapshot from the backend.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	user, err := api.GetCurrentUser(ctx, c.http, c.baseURL)
	if err != nil {
		return nil, err
	}
	c.session.SetUser(user)
	return user, nil
}

// BeginTwoFactorEnrollment starts second-factor enrollment, returning the
// shared secret and provisioning URI. The factor stays inactive until
// confirmed. Only valid while Authenticated.
func (c *Client) BeginTwoFactorEnrollment(ctx context.Context) (*TwoFactorSetup, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	return api.SetupTwoFactor(ctx, c.http, c.baseURL)
}

// ConfirmTwoFactorEnrollment activates a pending enrollment with a current
// 6-digit code. An incorrect code fails without state change.
func (c *Client) ConfirmTwoFactorEnrollment(ctx context.Context, code string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if err := types.ValidateDigitCode(code); err != nil {
		return err
	}
	return api.VerifyTwoFactor(ctx, c.http, c.baseURL, code)
}

// DisableTwoFactor deactivates the second factor; requires a current
// 6-digit code. An incorrect code fails without state change.
func (c *Client) DisableTwoFactor(ctx context.Context, code string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if err := types.ValidateDigitCode(code); err != nil {
		return err
	}
	return api.DisableTwoFactor(ctx, c.http, c.baseURL, code)
}

// RequestPasswordReset asks the backend to mail a reset token. The reply
// is identical whether or not the account exists.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	return api.RequestPasswordReset(ctx, c.http, c.baseURL, email)
}

// ConfirmPasswordReset redeems a reset token with a new password.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return &ValidationError{Field: "token", Reason: "must not be empty"}
	}
	if len(newPassword) < 8 {
		return &ValidationError{Field: "newPassword", Reason: "must be at least 8 characters"}
	}
	return api.ConfirmPasswordReset(ctx, c.http, c.baseURL, token, newPassword)
}

// FederatedClientID returns the identity-provider client id used by the
// front end to start a federated login.
func (c *Client) FederatedClientID(ctx context.Context) (string, error) {
	resp, err := api.GetFederatedClientID(ctx, c.http, c.baseURL)
	if err != nil {
		return "", err
	}
	return resp.ClientID, nil
}
