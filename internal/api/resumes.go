package api

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/samthedataman/resumably/internal/types"
)

// ListResumes retrieves all resumes for the current user.
func ListResumes(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Resume, error) {
	var resumes []types.Resume
	u := fmt.Sprintf("%s/api/resumes/", baseURL)
	if err := getJSON(ctx, httpClient, u, "list resumes", &resumes); err != nil {
		return nil, err
	}
	return resumes, nil
}

// CreateResume stores a new resume. The first resume becomes the default.
func CreateResume(ctx context.Context, httpClient *http.Client, baseURL string, req types.CreateResumeRequest) (*types.Resume, error) {
	var resume types.Resume
	u := fmt.Sprintf("%s/api/resumes/", baseURL)
	if err := postJSON(ctx, httpClient, u, "create resume", req, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// GetResume retrieves one resume by id.
func GetResume(ctx context.Context, httpClient *http.Client, baseURL string, id int) (*types.Resume, error) {
	var resume types.Resume
	u := fmt.Sprintf("%s/api/resumes/%d", baseURL, id)
	if err := getJSON(ctx, httpClient, u, "get resume", &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// GetDefaultResume retrieves the resume marked as default.
func GetDefaultResume(ctx context.Context, httpClient *http.Client, baseURL string) (*types.Resume, error) {
	var resume types.Resume
	u := fmt.Sprintf("%s/api/resumes/default", baseURL)
	if err := getJSON(ctx, httpClient, u, "default resume", &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// UpdateResume applies a partial update to a resume.
func UpdateResume(ctx context.Context, httpClient *http.Client, baseURL string, id int, req types.UpdateResumeRequest) (*types.Resume, error) {
	var resume types.Resume
	u := fmt.Sprintf("%s/api/resumes/%d", baseURL, id)
	if err := doJSON(ctx, httpClient, http.MethodPut, u, "update resume", req, &resume, nil, nil); err != nil {
		return nil, err
	}
	return &resume, nil
}

// DeleteResume removes a resume.
func DeleteResume(ctx context.Context, httpClient *http.Client, baseURL string, id int) error {
	u := fmt.Sprintf("%s/api/resumes/%d", baseURL, id)
	return doJSON(ctx, httpClient, http.MethodDelete, u, "delete resume", nil, nil, nil, nil)
}

// SetDefaultResume marks a resume as the default used for drafts.
func SetDefaultResume(ctx context.Context, httpClient *http.Client, baseURL string, id int) error {
	u := fmt.Sprintf("%s/api/resumes/%d/set-default", baseURL, id)
	return postJSON(ctx, httpClient, u, "set default resume", nil, nil)
}

// DownloadResumePDF fetches the rendered PDF for a resume. The filename
// comes from the Content-Disposition header when present.
func DownloadResumePDF(ctx context.Context, httpClient *http.Client, baseURL string, id int) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	u := fmt.Sprintf("%s/api/resumes/%d/pdf", baseURL, id)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, "", fmt.Errorf("download resume pdf: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", statusError("download resume pdf", resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("download resume pdf: %w", err)
	}
	filename := "resume.pdf"
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			filename = params["filename"]
		}
	}
	return data, filename, nil
}
