package types

// ------------------------------
// Request Types
// ------------------------------

// RegisterRequest holds parameters for account registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest holds password-path login parameters. TOTPCode is only set
// when answering a pending second-factor challenge.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"`
}

// FederatedAuthRequest carries the identity-provider credential to exchange
// for a session token.
type FederatedAuthRequest struct {
	Credential string `json:"credential"`
}

// TwoFactorVerifyRequest carries a 6-digit code for enrollment or disable.
type TwoFactorVerifyRequest struct {
	Code string `json:"code"`
}

// PasswordResetRequest asks the backend to mail a reset token.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest redeems a reset token.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// CreateDraftRequest holds parameters for draft creation. ResumeID nil
// means "use the default resume".
type CreateDraftRequest struct {
	ProcessedEmailID int  `json:"processed_email_id"`
	ResumeID         *int `json:"resume_id,omitempty"`
}

// CreateSkillRequest holds parameters for a new or updated profile skill.
type CreateSkillRequest struct {
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Proficiency     string   `json:"proficiency"`
	YearsExperience *float64 `json:"years_experience,omitempty"`
	ProofPoints     []string `json:"proof_points"`
	Keywords        []string `json:"keywords"`
}

// CreateResumeRequest holds parameters for a new resume.
type CreateResumeRequest struct {
	Name           string              `json:"name"`
	PersonalInfo   map[string]any      `json:"personal_info"`
	Summary        string              `json:"summary"`
	Skills         map[string][]string `json:"skills"`
	Experience     []map[string]any    `json:"experience"`
	Education      []map[string]any    `json:"education"`
	Projects       []map[string]any    `json:"projects"`
	Certifications []string            `json:"certifications"`
}

// UpdateResumeRequest holds a partial resume update; nil fields are left
// untouched by the backend.
type UpdateResumeRequest struct {
	Name           *string              `json:"name,omitempty"`
	PersonalInfo   *map[string]any      `json:"personal_info,omitempty"`
	Summary        *string              `json:"summary,omitempty"`
	Skills         *map[string][]string `json:"skills,omitempty"`
	Experience     *[]map[string]any    `json:"experience,omitempty"`
	Education      *[]map[string]any    `json:"education,omitempty"`
	Projects       *[]map[string]any    `json:"projects,omitempty"`
	Certifications *[]string            `json:"certifications,omitempty"`
}
