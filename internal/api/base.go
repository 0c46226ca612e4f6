package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/samthedataman/resumably/internal/types"
)

// errorBody is the backend's standard error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

func readDetail(r io.Reader) string {
	var eb errorBody
	if err := json.NewDecoder(io.LimitReader(r, 8192)).Decode(&eb); err != nil {
		return ""
	}
	return eb.Detail
}

// statusError maps a non-2xx reply from a protected endpoint to the shared
// error taxonomy. 401 forces the global session teardown via the transport
// observer; here it only shapes the returned error.
func statusError(op string, resp *http.Response) error {
	detail := readDetail(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", op, types.ErrSessionExpired)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, types.ErrNotFound)
	default:
		return &types.OperationFailedError{Operation: op, StatusCode: resp.StatusCode, Detail: detail}
	}
}

// authStatusError maps rejections from credential-bearing endpoints, where
// 400/401 means the submitted credential was bad rather than a dead session.
func authStatusError(op string, resp *http.Response) error {
	detail := readDetail(resp.Body)
	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized:
		return &types.AuthError{Detail: detail}
	default:
		return &types.OperationFailedError{Operation: op, StatusCode: resp.StatusCode, Detail: detail}
	}
}

// mapError selects the right taxonomy for an endpoint.
type mapError func(op string, resp *http.Response) error

// doJSON builds and executes one request, decoding a JSON reply into out
// when out is non-nil. Extra headers may be supplied via hdr.
func doJSON(ctx context.Context, httpClient *http.Client, method, url, op string, in, out any, hdr http.Header, mapErr mapError) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range hdr {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if mapErr == nil {
			mapErr = statusError
		}
		return mapErr(op, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}
	return nil
}

func getJSON(ctx context.Context, httpClient *http.Client, url, op string, out any) error {
	return doJSON(ctx, httpClient, http.MethodGet, url, op, nil, out, nil, nil)
}

func postJSON(ctx context.Context, httpClient *http.Client, url, op string, in, out any) error {
	return doJSON(ctx, httpClient, http.MethodPost, url, op, in, out, nil, nil)
}

// IsNotFound reports whether err is the shared not-found sentinel.
func IsNotFound(err error) bool { return errors.Is(err, types.ErrNotFound) }
