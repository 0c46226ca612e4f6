package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samthedataman/resumably/internal/types"
)

// GetConnectAuthURL fetches the provider consent URL the user must visit to
// link their mailbox.
func GetConnectAuthURL(ctx context.Context, httpClient *http.Client, baseURL string) (*types.ConnectAuthURL, error) {
	var resp types.ConnectAuthURL
	url := fmt.Sprintf("%s/api/gmail/auth/url", baseURL)
	if err := getJSON(ctx, httpClient, url, "connect auth url", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetConnectionStatus reports whether the mailbox account is linked.
func GetConnectionStatus(ctx context.Context, httpClient *http.Client, baseURL string) (*types.ConnectionStatus, error) {
	var resp types.ConnectionStatus
	url := fmt.Sprintf("%s/api/gmail/status", baseURL)
	if err := getJSON(ctx, httpClient, url, "connection status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Disconnect unlinks the mailbox account.
func Disconnect(ctx context.Context, httpClient *http.Client, baseURL string) error {
	url := fmt.Sprintf("%s/api/gmail/disconnect", baseURL)
	return doJSON(ctx, httpClient, http.MethodDelete, url, "disconnect", nil, nil, nil, nil)
}
