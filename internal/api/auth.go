package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samthedataman/resumably/internal/types"
)

// Register creates a new account. Registration does not log the user in.
func Register(ctx context.Context, httpClient *http.Client, baseURL string, req types.RegisterRequest) (*types.User, error) {
	var user types.User
	url := fmt.Sprintf("%s/api/auth/register", baseURL)
	if err := doJSON(ctx, httpClient, http.MethodPost, url, "register", req, &user, nil, authStatusError); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login submits the password path. A reply with RequiresSecondFactor set
// and an empty token means the account has a second factor enabled and the
// caller must follow up with a one-time code.
func Login(ctx context.Context, httpClient *http.Client, baseURL string, req types.LoginRequest) (*types.TokenResponse, error) {
	var tok types.TokenResponse
	url := fmt.Sprintf("%s/api/auth/login", baseURL)
	if err := doJSON(ctx, httpClient, http.MethodPost, url, "login", req, &tok, nil, authStatusError); err != nil {
		return nil, err
	}
	return &tok, nil
}

// FederatedLogin exchanges an identity-provider credential for a session
// token. The provider enforces any second factor out of band.
func FederatedLogin(ctx context.Context, httpClient *http.Client, baseURL string, req types.FederatedAuthRequest) (*types.FederatedAuthResponse, error) {
	var resp types.FederatedAuthResponse
	url := fmt.Sprintf("%s/api/auth/google", baseURL)
	if err := doJSON(ctx, httpClient, http.MethodPost, url, "federated login", req, &resp, nil, authStatusError); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetFederatedClientID fetches the identity-provider client id.
func GetFederatedClientID(ctx context.Context, httpClient *http.Client, baseURL string) (*types.FederatedClientID, error) {
	var resp types.FederatedClientID
	url := fmt.Sprintf("%s/api/auth/google/client-id", baseURL)
	if err := getJSON(ctx, httpClient, url, "federated client id", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCurrentUser fetches the authenticated account snapshot.
func GetCurrentUser(ctx context.Context, httpClient *http.Client, baseURL string) (*types.User, error) {
	var user types.User
	url := fmt.Sprintf("%s/api/auth/me", baseURL)
	if err := getJSON(ctx, httpClient, url, "current user", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetupTwoFactor begins enrollment and returns the shared secret plus
// provisioning material. The factor stays inactive until verified.
func SetupTwoFactor(ctx context.Context, httpClient *http.Client, baseURL string) (*types.TwoFactorSetup, error) {
	var setup types.TwoFactorSetup
	url := fmt.Sprintf("%s/api/auth/2fa/setup", baseURL)
	if err := postJSON(ctx, httpClient, url, "2fa setup", nil, &setup); err != nil {
		return nil, err
	}
	return &setup, nil
}

// VerifyTwoFactor confirms enrollment with a current code, activating the
// second factor.
func VerifyTwoFactor(ctx context.Context, httpClient *http.Client, baseURL, code string) error {
	url := fmt.Sprintf("%s/api/auth/2fa/verify", baseURL)
	return doJSON(ctx, httpClient, http.MethodPost, url, "2fa verify", types.TwoFactorVerifyRequest{Code: code}, nil, nil, authStatusError)
}

// DisableTwoFactor deactivates the second factor; requires a current code.
func DisableTwoFactor(ctx context.Context, httpClient *http.Client, baseURL, code string) error {
	url := fmt.Sprintf("%s/api/auth/2fa/disable", baseURL)
	return doJSON(ctx, httpClient, http.MethodPost, url, "2fa disable", types.TwoFactorVerifyRequest{Code: code}, nil, nil, authStatusError)
}

// RequestPasswordReset asks the backend to mail a reset token. The reply is
// deliberately the same whether or not the account exists.
func RequestPasswordReset(ctx context.Context, httpClient *http.Client, baseURL, email string) error {
	url := fmt.Sprintf("%s/api/auth/forgot-password", baseURL)
	return postJSON(ctx, httpClient, url, "password reset request", types.PasswordResetRequest{Email: email}, nil)
}

// ConfirmPasswordReset redeems a reset token with a new password.
func ConfirmPasswordReset(ctx context.Context, httpClient *http.Client, baseURL, token, newPassword string) error {
	url := fmt.Sprintf("%s/api/auth/reset-password", baseURL)
	req := types.PasswordResetConfirmRequest{Token: token, NewPassword: newPassword}
	return doJSON(ctx, httpClient, http.MethodPost, url, "password reset", req, nil, nil, authStatusError)
}
