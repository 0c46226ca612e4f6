package resumably

import (
	"context"

	"github.com/samthedataman/resumably/internal/api"
	"github.com/samthedataman/resumably/internal/cache"
	"github.com/samthedataman/resumably/internal/types"
)

// Resumes returns the cached resume list, refetching when absent or stale.
func (c *Client) Resumes(ctx context.Context) ([]Resume, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	return cachedAs[[]types.Resume](ctx, c, cache.KeyResumes)
}

// GetResume fetches one resume by id.
func (c *Client) GetResume(ctx context.Context, id int) (*Resume, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	return api.GetResume(ctx, c.http, c.baseURL, id)
}

// DefaultResume fetches the resume used for drafts when none is named.
func (c *Client) DefaultResume(ctx context.Context) (*Resume, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	return api.GetDefaultResume(ctx, c.http, c.baseURL)
}

// CreateResume stores a new resume; the first one becomes the default.
func (c *Client) CreateResume(ctx context.Context, req CreateResumeRequest) (*Resume, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	resume, err := api.CreateResume(ctx, c.http, c.baseURL, req)
	if err != nil {
		return nil, err
	}
	c.invalidateFor("resume-mutation")
	return resume, nil
}

// UpdateResume applies a partial update; nil fields are left untouched.
func (c *Client) UpdateResume(ctx context.Context, id int, req UpdateResumeRequest) (*Resume, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	resume, err := api.UpdateResume(ctx, c.http, c.baseURL, id, req)
	if err != nil {
		return nil, err
	}
	c.invalidateFor("resume-mutation")
	return resume, nil
}

// DeleteResume removes a resume.
func (c *Client) DeleteResume(ctx context.Context, id int) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if err := api.DeleteResume(ctx, c.http, c.baseURL, id); err != nil {
		return err
	}
	c.invalidateFor("resume-mutation")
	return nil
}

// SetDefaultResume marks a resume as the default used for drafts.
func (c *Client) SetDefaultResume(ctx context.Context, id int) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if err := api.SetDefaultResume(ctx, c.http, c.baseURL, id); err != nil {
		return err
	}
	c.invalidateFor("resume-mutation")
	return nil
}

// DownloadResumePDF fetches the rendered PDF for a resume along with the
// filename suggested by the backend.
func (c *Client) DownloadResumePDF(ctx context.Context, id int) ([]byte, string, error) {
	if err := c.requireAuth(); err != nil {
		return nil, "", err
	}
	return api.DownloadResumePDF(ctx, c.http, c.baseURL, id)
}
