package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// User is the authenticated account snapshot returned by the backend.
type User struct {
	ID               int       `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name,omitempty"`
	TwoFactorEnabled bool      `json:"is_2fa_enabled"`
	AuthProvider     string    `json:"auth_provider"`
	MailboxConnected bool      `json:"gmail_connected"`
	CreatedAt        time.Time `json:"created_at"`
}

// ScannedCandidate is one mailbox message surfaced by a scan. Candidates
// live only in the pipeline working set; a new scan replaces them wholesale.
type ScannedCandidate struct {
	ExternalID string    `json:"gmail_id"`
	Subject    string    `json:"subject"`
	Sender     string    `json:"sender"`
	Snippet    string    `json:"snippet"`
	Date       time.Time `json:"date"`
}

// ProcessedEmail is the server-side classification record for a candidate.
// Immutable from the client's perspective; the backend owns it.
type ProcessedEmail struct {
	ID               int       `json:"id"`
	ExternalID       string    `json:"gmail_id"`
	Subject          string    `json:"subject"`
	Sender           string    `json:"sender"`
	JobTitle         string    `json:"job_title,omitempty"`
	Company          string    `json:"company,omitempty"`
	JobRequirements  []string  `json:"job_requirements"`
	Technologies     []string  `json:"technologies"`
	IsRecruiterEmail bool      `json:"is_recruiter_email"`
	Confidence       float64   `json:"confidence"`
	ProcessedAt      time.Time `json:"processed_at"`
}

// JobDetails is the extracted job metadata attached to a classification.
type JobDetails struct {
	IsRecruiterEmail bool     `json:"is_recruiter_email"`
	Confidence       float64  `json:"confidence"`
	JobTitle         string   `json:"job_title,omitempty"`
	Company          string   `json:"company,omitempty"`
	KeyRequirements  []string `json:"key_requirements"`
	KeyTechnologies  []string `json:"key_technologies"`
	JobType          string   `json:"job_type,omitempty"`
	SeniorityLevel   string   `json:"seniority_level,omitempty"`
	SalaryRange      string   `json:"salary_range,omitempty"`
	RecruiterName    string   `json:"recruiter_name,omitempty"`
	Reason           string   `json:"reason,omitempty"`
}

// Draft is a stored reply draft referencing a processed email.
type Draft struct {
	ID               int            `json:"id"`
	UserID           int            `json:"user_id"`
	ProcessedEmailID int            `json:"processed_email_id"`
	ProviderDraftID  string         `json:"gmail_draft_id,omitempty"`
	Subject          string         `json:"subject"`
	Body             string         `json:"body"`
	TailoredResume   map[string]any `json:"tailored_resume"`
	MatchedSkills    []string       `json:"matched_skills"`
	Status           string         `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
}

// Skill is a user-confirmed profile skill.
type Skill struct {
	ID              int       `json:"id"`
	UserID          int       `json:"user_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Proficiency     string    `json:"proficiency"`
	YearsExperience *float64  `json:"years_experience,omitempty"`
	ProofPoints     []string  `json:"proof_points"`
	Keywords        []string  `json:"keywords"`
	Source          string    `json:"source"`
	CreatedAt       time.Time `json:"created_at"`
}

// LearnedSkill is a frequency-ranked skill signal mined from recruiter
// emails. Converting one into a Skill does not remove it.
type LearnedSkill struct {
	ID              int       `json:"id"`
	SkillName       string    `json:"skill_name"`
	Category        string    `json:"category"`
	OccurrenceCount int       `json:"occurrence_count"`
	LastSeen        time.Time `json:"last_seen"`
	Contexts        []string  `json:"contexts"`
}

// Resume mirrors the backend resume document.
type Resume struct {
	ID             int                 `json:"id"`
	UserID         int                 `json:"user_id"`
	Name           string              `json:"name"`
	PersonalInfo   map[string]any      `json:"personal_info"`
	Summary        string              `json:"summary"`
	Skills         map[string][]string `json:"skills"`
	Experience     []map[string]any    `json:"experience"`
	Education      []map[string]any    `json:"education"`
	Projects       []map[string]any    `json:"projects"`
	Certifications []string            `json:"certifications"`
	IsDefault      bool                `json:"is_default"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// TopSkill is one entry of the ranked top-skills list in StatsSnapshot.
type TopSkill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// StatsSnapshot holds the dashboard aggregate counters. Derived and
// read-only; recomputed server-side, invalidated client-side on mutation.
type StatsSnapshot struct {
	TotalEmailsProcessed int        `json:"total_emails_processed"`
	RecruiterEmailsFound int        `json:"recruiter_emails_found"`
	DraftsCreated        int        `json:"drafts_created"`
	SkillsLearned        int        `json:"skills_learned"`
	TopRequestedSkills   []TopSkill `json:"top_requested_skills"`
}
