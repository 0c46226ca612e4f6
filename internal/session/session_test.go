package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/samthedataman/resumably/internal/types"
)

func TestDirectLogin(t *testing.T) {
	t.Parallel()
	m := New()
	if m.State() != Unauthenticated {
		t.Fatalf("initial state = %v", m.State())
	}
	m.CompleteLogin("tok-1")
	if m.State() != Authenticated {
		t.Fatalf("state after login = %v", m.State())
	}
	tok, ok := m.Token()
	if !ok || tok != "tok-1" {
		t.Fatalf("token = %q ok=%v", tok, ok)
	}
}

func TestChallengeFlow(t *testing.T) {
	t.Parallel()
	m := New()
	m.BeginChallenge("a@b.com", "pw")
	if m.State() != PendingSecondFactor {
		t.Fatalf("state = %v", m.State())
	}
	email, password, ok := m.PendingCredentials()
	if !ok || email != "a@b.com" || password != "pw" {
		t.Fatalf("pending credentials = %q %q %v", email, password, ok)
	}
	m.CompleteLogin("tok-2")
	if m.State() != Authenticated {
		t.Fatalf("state = %v", m.State())
	}
	if _, _, ok := m.PendingCredentials(); ok {
		t.Fatal("pending credentials survived login")
	}
}

func TestCancelChallengeKeepsEmail(t *testing.T) {
	t.Parallel()
	m := New()
	m.BeginChallenge("a@b.com", "pw")
	m.CancelChallenge()
	if m.State() != Unauthenticated {
		t.Fatalf("state = %v", m.State())
	}
	if m.LastEmail() != "a@b.com" {
		t.Fatalf("entered email lost: %q", m.LastEmail())
	}
	if _, password, _ := m.PendingCredentials(); password != "" {
		t.Fatal("password survived cancel")
	}
}

func TestRevokeClearsEverything(t *testing.T) {
	t.Parallel()
	m := New()
	m.CompleteLogin("tok-3")
	m.SetUser(&types.User{Email: "a@b.com"})
	m.Revoke()
	if m.State() != Unauthenticated {
		t.Fatalf("state = %v", m.State())
	}
	if _, ok := m.Token(); ok {
		t.Fatal("token survived revoke")
	}
	if m.User() != nil {
		t.Fatal("user snapshot survived revoke")
	}
}

func TestExpiredTokenNotReturned(t *testing.T) {
	t.Parallel()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signed, err := expired.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	m := New()
	m.CompleteLogin(signed)
	if _, ok := m.Token(); ok {
		t.Fatal("expired token returned as live")
	}
}

func TestSubscribeNotified(t *testing.T) {
	t.Parallel()
	m := New()
	var got []State
	m.Subscribe(func(s State) { got = append(got, s) })
	m.CompleteLogin("tok-4")
	m.Logout()
	if len(got) != 2 || got[0] != Authenticated || got[1] != Unauthenticated {
		t.Fatalf("transitions = %v", got)
	}
}
