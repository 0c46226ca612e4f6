package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/samthedataman/resumably/internal/types"
)

// ListSkills retrieves profile skills, optionally filtered by category.
func ListSkills(ctx context.Context, httpClient *http.Client, baseURL, category string) ([]types.Skill, error) {
	var skills []types.Skill
	u := fmt.Sprintf("%s/api/skills/", baseURL)
	if category != "" {
		u += "?category=" + url.QueryEscape(category)
	}
	if err := getJSON(ctx, httpClient, u, "list skills", &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

// CreateSkill adds a profile skill.
func CreateSkill(ctx context.Context, httpClient *http.Client, baseURL string, req types.CreateSkillRequest) (*types.Skill, error) {
	var skill types.Skill
	u := fmt.Sprintf("%s/api/skills/", baseURL)
	if err := postJSON(ctx, httpClient, u, "create skill", req, &skill); err != nil {
		return nil, err
	}
	return &skill, nil
}

// UpdateSkill replaces a profile skill's fields.
func UpdateSkill(ctx context.Context, httpClient *http.Client, baseURL string, id int, req types.CreateSkillRequest) (*types.Skill, error) {
	var skill types.Skill
	u := fmt.Sprintf("%s/api/skills/%d", baseURL, id)
	if err := doJSON(ctx, httpClient, http.MethodPut, u, "update skill", req, &skill, nil, nil); err != nil {
		return nil, err
	}
	return &skill, nil
}

// DeleteSkill removes a profile skill.
func DeleteSkill(ctx context.Context, httpClient *http.Client, baseURL string, id int) error {
	u := fmt.Sprintf("%s/api/skills/%d", baseURL, id)
	return doJSON(ctx, httpClient, http.MethodDelete, u, "delete skill", nil, nil, nil, nil)
}

// ListLearnedSkills retrieves skills mined from recruiter emails, ranked by
// occurrence count.
func ListLearnedSkills(ctx context.Context, httpClient *http.Client, baseURL, category string) ([]types.LearnedSkill, error) {
	var skills []types.LearnedSkill
	u := fmt.Sprintf("%s/api/skills/learned", baseURL)
	if category != "" {
		u += "?category=" + url.QueryEscape(category)
	}
	if err := getJSON(ctx, httpClient, u, "list learned skills", &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

// ConvertLearnedSkill promotes a learned skill into the profile. The
// learned record itself is kept.
func ConvertLearnedSkill(ctx context.Context, httpClient *http.Client, baseURL string, id int, proficiency string, years *float64) (*types.ConvertLearnedResponse, error) {
	var resp types.ConvertLearnedResponse
	u := fmt.Sprintf("%s/api/skills/learned/%d/convert?proficiency=%s", baseURL, id, url.QueryEscape(proficiency))
	if years != nil {
		u += fmt.Sprintf("&years_experience=%g", *years)
	}
	if err := postJSON(ctx, httpClient, u, "convert learned skill", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListSkillCategories retrieves category → skill-count pairs.
func ListSkillCategories(ctx context.Context, httpClient *http.Client, baseURL string) (map[string]int, error) {
	categories := map[string]int{}
	u := fmt.Sprintf("%s/api/skills/categories", baseURL)
	if err := getJSON(ctx, httpClient, u, "skill categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// BulkImportSkills imports several skills at once; duplicates are skipped
// server-side.
func BulkImportSkills(ctx context.Context, httpClient *http.Client, baseURL string, skills []types.CreateSkillRequest) (*types.BulkImportResponse, error) {
	var resp types.BulkImportResponse
	u := fmt.Sprintf("%s/api/skills/bulk-import", baseURL)
	if err := postJSON(ctx, httpClient, u, "bulk import skills", skills, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
