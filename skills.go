package resumably

import (
	"context"

	"github.com/samthedataman/resumably/internal/api"
	"github.com/samthedataman/resumably/internal/cache"
	"github.com/samthedataman/resumably/internal/types"
)

// Skills returns the cached profile skill list, refetching when absent or
// stale.
func (c *Client) Skills(ctx context.Context) ([]Skill, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	return cachedAs[[]types.Skill](ctx, c, cache.KeySkills)
}

// SkillsByCategory bypasses the cache for a category-filtered listing.
func (c *Client) SkillsByCategory(ctx context.Context, category string) ([]Skill, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	return api.ListSkills(ctx, c.http, c.baseURL, category)
}

// CreateSkill adds a profile skill.
func (c *Client) CreateSkill(ctx context.Context, req CreateSkillRequest) (*Skill, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	skill, err := api.CreateSkill(ctx, c.http, c.baseURL, req)
	if err != nil {
		return nil, err
	}
	c.invalidateFor("skill-mutation")
	return skill, nil
}

// UpdateSkill replaces a profile skill's fields.
func (c *Client) UpdateSkill(ctx context.Context, id int, req CreateSkillRequest) (*Skill, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	skill, err := api.UpdateSkill(ctx, c.http, c.baseURL, id, req)
	if err != nil {
		return nil, err
	}
	c.invalidateFor("skill-mutation")
	return skill, nil
}

// DeleteSkill removes a profile skill.
func (c *Client) DeleteSkill(ctx context.Context, id int) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if err := api.DeleteSkill(ctx, c.http, c.baseURL, id); err != nil {
		return err
	}
	c.invalidateFor("skill-mutation")
	return nil
}

// LearnedSkills returns the cached list of skills mined from recruiter
// emails, ranked by occurrence count.
func (c *Client) LearnedSkills(ctx context.Context) ([]LearnedSkill, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	return cachedAs[[]types.LearnedSkill](ctx, c, cache.KeyLearnedSkills)
}

// ConvertLearnedSkill promotes a learned skill into the profile with the
// given proficiency. The learned record is kept; both the skills and
// learned-skills caches are marked stale so each view refetches.
func (c *Client) ConvertLearnedSkill(ctx context.Context, id int, proficiency string, years *float64) (int, error) {
	if err := c.requireAuth(); err != nil {
		return 0, err
	}
	if proficiency == "" {
		return 0, &ValidationError{Field: "proficiency", Reason: "must not be empty"}
	}
	resp, err := api.ConvertLearnedSkill(ctx, c.http, c.baseURL, id, proficiency, years)
	if err != nil {
		return 0, err
	}
	c.invalidateFor("convert-learned")
	return resp.SkillID, nil
}

// SkillCategories returns category names with their skill counts.
func (c *Client) SkillCategories(ctx context.Context) (map[string]int, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	return api.ListSkillCategories(ctx, c.http, c.baseURL)
}

// BulkImportSkills imports several skills at once; the backend skips
// duplicates.
func (c *Client) BulkImportSkills(ctx context.Context, skills []CreateSkillRequest) (*BulkImportResult, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	if len(skills) == 0 {
		return nil, &ValidationError{Field: "skills", Reason: "must not be empty"}
	}
	resp, err := api.BulkImportSkills(ctx, c.http, c.baseURL, skills)
	if err != nil {
		return nil, err
	}
	c.invalidateFor("skill-bulk-import")
	return resp, nil
}
