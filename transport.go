package resumably

import "net/http"

// tokenSource yields the current bearer token, if a live one is held.
type tokenSource interface {
	Token() (string, bool)
}

// authTransport wraps an http.RoundTripper to attach the session token and
// to observe every response for the unauthorized signal. The revoked
// callback fires only when a token was actually sent: a 401 from a
// credential-bearing login attempt means bad credentials, not a dead
// session, and must not tear anything down.
type authTransport struct {
	base    http.RoundTripper
	tokens  tokenSource
	revoked func()
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original.
	cloned := req.Clone(req.Context())
	token, attached := t.tokens.Token()
	if attached {
		cloned.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := t.base.RoundTrip(cloned)
	if err != nil {
		return nil, err
	}
	if attached && resp.StatusCode == http.StatusUnauthorized && t.revoked != nil {
		t.revoked()
	}
	return resp, nil
}
