package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/samthedataman/resumably/internal/types"
)

// Scan lists up to maxResults candidate messages matching query. The
// result is a complete snapshot; callers replace any prior set wholesale.
func Scan(ctx context.Context, httpClient *http.Client, baseURL string, maxResults int, query string) (*types.ScanResponse, error) {
	var resp types.ScanResponse
	u := fmt.Sprintf("%s/api/emails/scan?max_results=%d&query=%s", baseURL, maxResults, url.QueryEscape(query))
	if err := getJSON(ctx, httpClient, u, "scan", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Classify requests server-side classification of one scanned candidate.
func Classify(ctx context.Context, httpClient *http.Client, baseURL, externalID string) (*types.ClassifyResponse, error) {
	var resp types.ClassifyResponse
	u := fmt.Sprintf("%s/api/emails/classify/%s", baseURL, url.PathEscape(externalID))
	if err := postJSON(ctx, httpClient, u, "classify", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BatchClassify queues several candidates for background classification.
func BatchClassify(ctx context.Context, httpClient *http.Client, baseURL string, externalIDs []string) (*types.MessageResponse, error) {
	var resp types.MessageResponse
	u := fmt.Sprintf("%s/api/emails/batch-classify", baseURL)
	if err := postJSON(ctx, httpClient, u, "batch classify", externalIDs, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListProcessed retrieves classified emails, newest first.
func ListProcessed(ctx context.Context, httpClient *http.Client, baseURL string, recruiterOnly bool, limit int) ([]types.ProcessedEmail, error) {
	var emails []types.ProcessedEmail
	u := fmt.Sprintf("%s/api/emails/processed?recruiter_only=%s&limit=%d", baseURL, strconv.FormatBool(recruiterOnly), limit)
	if err := getJSON(ctx, httpClient, u, "list processed", &emails); err != nil {
		return nil, err
	}
	return emails, nil
}

// GetProcessed retrieves a single classified email by record id.
func GetProcessed(ctx context.Context, httpClient *http.Client, baseURL string, id int) (*types.ProcessedEmail, error) {
	var email types.ProcessedEmail
	u := fmt.Sprintf("%s/api/emails/processed/%d", baseURL, id)
	if err := getJSON(ctx, httpClient, u, "get processed", &email); err != nil {
		return nil, err
	}
	return &email, nil
}

// CreateDraft asks the backend to build a tailored reply draft. The
// idempotency key only guards transport-level duplication; the backend
// creates one draft per accepted request, so two calls make two drafts.
func CreateDraft(ctx context.Context, httpClient *http.Client, baseURL string, req types.CreateDraftRequest, idempotencyKey string) (*types.DraftAck, error) {
	var ack types.DraftAck
	u := fmt.Sprintf("%s/api/emails/draft", baseURL)
	hdr := http.Header{}
	if idempotencyKey != "" {
		hdr.Set("X-Idempotency-Key", idempotencyKey)
	}
	if err := doJSON(ctx, httpClient, http.MethodPost, u, "create draft", req, &ack, hdr, nil); err != nil {
		return nil, err
	}
	return &ack, nil
}

// ListDrafts retrieves all created drafts, newest first.
func ListDrafts(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Draft, error) {
	var drafts []types.Draft
	u := fmt.Sprintf("%s/api/emails/drafts", baseURL)
	if err := getJSON(ctx, httpClient, u, "list drafts", &drafts); err != nil {
		return nil, err
	}
	return drafts, nil
}

// GetDraft retrieves one draft by id.
func GetDraft(ctx context.Context, httpClient *http.Client, baseURL string, id int) (*types.Draft, error) {
	var draft types.Draft
	u := fmt.Sprintf("%s/api/emails/drafts/%d", baseURL, id)
	if err := getJSON(ctx, httpClient, u, "get draft", &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// GetStats retrieves the dashboard aggregate counters.
func GetStats(ctx context.Context, httpClient *http.Client, baseURL string) (*types.StatsSnapshot, error) {
	var stats types.StatsSnapshot
	u := fmt.Sprintf("%s/api/emails/stats", baseURL)
	if err := getJSON(ctx, httpClient, u, "stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
