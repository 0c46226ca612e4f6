package resumably

import (
	"context"
	"testing"

	"github.com/samthedataman/resumably/internal/cache"
)

func TestSubmitCredentials_DirectLogin(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t)

	var transitions []SessionState
	c.OnSessionChange(func(s SessionState) { transitions = append(transitions, s) })

	login(t, c)

	if len(transitions) != 1 || transitions[0] != StateAuthenticated {
		t.Errorf("transitions = %v", transitions)
	}
	user := c.AuthenticatedUser()
	if user == nil || user.Email != "user@example.com" {
		t.Errorf("user snapshot = %+v", user)
	}
}

func TestSubmitCredentials_BadPassword(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t)

	err := c.SubmitCredentials(context.Background(), "user@example.com", "wrong-password")
	if !IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if got := c.SessionState(); got != StateUnauthenticated {
		t.Errorf("state = %v", got)
	}
}

func TestSubmitCredentials_LocalValidation(t *testing.T) {
	t.Parallel()
	c, backend := newTestClient(t)

	if err := c.SubmitCredentials(context.Background(), "", "pw"); !IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if n := backend.hitCount("/api/auth/login"); n != 0 {
		t.Errorf("login endpoint hit %d times for local failure", n)
	}
}

func TestSubmitCredentials_WhileAuthenticated(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t)
	login(t, c)
	if err := c.SubmitCredentials(context.Background(), "other@example.com", testPassword); err != ErrInvalidState {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestSecondFactor_Flow(t *testing.T) {
	t.Parallel()
	c, backend := newTestClient(t)
	backend.twoFactor = true

	ctx := context.Background()
	if err := c.SubmitCredentials(ctx, "user@example.com", testPassword); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}
	if got := c.SessionState(); got != StatePendingSecondFactor {
		t.Fatalf("state after challenge = %v", got)
	}

	// A wrong code fails inline; the challenge stays pending and the
	// credentials are not re-requested.
	if err := c.SubmitSecondFactor(ctx, "000000"); !IsAuth(err) {
		t.Fatalf("expected auth error for wrong code, got %v", err)
	}
	if got := c.SessionState(); got != StatePendingSecondFactor {
		t.Fatalf("state after wrong code = %v", got)
	}

	if err := c.SubmitSecondFactor(ctx, testTOTP); err != nil {
		t.Fatalf("SubmitSecondFactor: %v", err)
	}
	if got := c.SessionState(); got != StateAuthenticated {
		t.Fatalf("state after code = %v", got)
	}
	// Both answers resubmitted the stored credentials with the code.
	if n := backend.hitCount("/api/auth/login"); n != 3 {
		t.Errorf("login endpoint hit %d times, want 3", n)
	}
}

func TestSecondFactor_CodeValidation(t *testing.T) {
	t.Parallel()
	c, backend := newTestClient(t)
	backend.twoFactor = true

	ctx := context.Background()
	if err := c.SubmitCredentials(ctx, "user@example.com", testPassword); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}
	if err := c.SubmitSecondFactor(ctx, "123"); !IsValidation(err) {
		t.Errorf("expected validation error for short code, got %v", err)
	}
	if n := backend.hitCount("/api/auth/login"); n != 1 {
		t.Errorf("login endpoint hit %d times, want 1", n)
	}
}

func TestSecondFactor_Cancel(t *testing.T) {
	t.Parallel()
	c, backend := newTestClient(t)
	backend.twoFactor = true

	ctx := context.Background()
	if err := c.SubmitCredentials(ctx, "user@example.com", testPassword); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}
	c.CancelSecondFactor()
	if got := c.SessionState(); got != StateUnauthenticated {
		t.Fatalf("state after cancel = %v", got)
	}
	// The abandoned challenge can no longer be answered.
	if err := c.SubmitSecondFactor(ctx, testTOTP); err != ErrInvalidState {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestSubmitSecondFactor_NoChallenge(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t)
	if err := c.SubmitSecondFactor(context.Background(), testTOTP); err != ErrInvalidState {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestLoginWithFederatedCredential(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t)
	if err := c.LoginWithFederatedCredential(context.Background(), "provider-credential"); err != nil {
		t.Fatalf("LoginWithFederatedCredential: %v", err)
	}
	if got := c.SessionState(); got != StateAuthenticated {
		t.Errorf("state = %v", got)
	}
}

func TestLoginWithFederatedCredential_DiscardsChallenge(t *testing.T) {
	t.Parallel()
	c, backend := newTestClient(t)
	backend.twoFactor = true

	ctx := context.Background()
	if err := c.SubmitCredentials(ctx, "user@example.com", testPassword); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}
	if err := c.LoginWithFederatedCredential(ctx, "provider-credential"); err != nil {
		t.Fatalf("LoginWithFederatedCredential: %v", err)
	}
	if got := c.SessionState(); got != StateAuthenticated {
		t.Errorf("state = %v", got)
	}
	if err := c.SubmitSecondFactor(ctx, testTOTP); err != ErrInvalidState {
		t.Errorf("pending challenge survived federated login: %v", err)
	}
}

func TestRegisterAccount_LocalValidation(t *testing.T) {
	t.Parallel()
	c, backend := newTestClient(t)

	ctx := context.Background()
	if _, err := c.RegisterAccount(ctx, "a@b.com", "short", "short"); !IsValidation(err) {
		t.Errorf("expected validation error for short password, got %v", err)
	}
	if _, err := c.RegisterAccount(ctx, "a@b.com", "long-enough-1", "long-enough-2"); !IsValidation(err) {
		t.Errorf("expected validation error for mismatch, got %v", err)
	}
	if n := backend.hitCount("/api/auth/register"); n != 0 {
		t.Errorf("register endpoint hit %d times for local failures", n)
	}
}

func TestRegisterAccount_DoesNotLogIn(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t)
	user, err := c.RegisterAccount(context.Background(), "new@example.com", "long-enough-1", "long-enough-1")
	if err != nil || user.Email != "new@example.com" {
		t.Fatalf("RegisterAccount: user=%+v err=%v", user, err)
	}
	if got := c.SessionState(); got != StateUnauthenticated {
		t.Errorf("state after registration = %v", got)
	}
}

func TestGlobalTeardownOn401(t *testing.T) {
	t.Parallel()
	c, backend := newTestClient(t)
	login(t, c)

	ctx := context.Background()
	if _, err := c.Stats(ctx); err != nil {
		t.Fatalf("Stats: %v", err)
	}

	// The backend revokes the session out of band; the next protected call
	// comes back 401 and forces the teardown.
	backend.revokePath("/api/emails/stats")
	c.cache.Invalidate(cache.KeyStats)
	if _, err := c.Stats(ctx); !IsSessionExpired(err) {
		t.Fatalf("expected session-expired, got %v", err)
	}
	if got := c.SessionState(); got != StateUnauthenticated {
		t.Errorf("state after 401 = %v", got)
	}
	if c.AuthenticatedUser() != nil {
		t.Error("user snapshot survived teardown")
	}

	// Subsequent protected calls are rejected locally, with no network hit.
	before := backend.hitCount("/api/emails/stats")
	if _, err := c.Stats(ctx); !IsSessionExpired(err) {
		t.Fatalf("expected local session-expired, got %v", err)
	}
	if after := backend.hitCount("/api/emails/stats"); after != before {
		t.Errorf("stats endpoint hit after teardown: %d -> %d", before, after)
	}
}

func TestLogout_ClearsSessionAndCache(t *testing.T) {
	t.Parallel()
	c, backend := newTestClient(t)
	login(t, c)

	ctx := context.Background()
	if _, err := c.Stats(ctx); err != nil {
		t.Fatalf("Stats: %v", err)
	}
	c.Logout()
	if got := c.SessionState(); got != StateUnauthenticated {
		t.Errorf("state after logout = %v", got)
	}
	if _, err := c.Stats(ctx); !IsSessionExpired(err) {
		t.Errorf("expected session-expired after logout, got %v", err)
	}
	if n := backend.hitCount("/api/emails/stats"); n != 1 {
		t.Errorf("stats endpoint hit %d times, want 1", n)
	}
}
