package types

// ------------------------------
// Response Types
// ------------------------------

// TokenResponse is the login endpoint's reply. An empty AccessToken with
// RequiresSecondFactor set signals a pending TOTP challenge.
type TokenResponse struct {
	AccessToken          string `json:"access_token"`
	TokenType            string `json:"token_type"`
	RequiresSecondFactor bool   `json:"requires_2fa"`
}

// FederatedAuthResponse is the federated-credential exchange reply.
type FederatedAuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	IsNewUser   bool   `json:"is_new_user"`
}

// TwoFactorSetup carries the shared secret and provisioning material
// returned by enrollment.
type TwoFactorSetup struct {
	Secret string `json:"secret"`
	QRCode string `json:"qr_code"`
	URI    string `json:"uri"`
}

// MessageResponse wraps endpoints that reply with a human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ScanResponse wraps the mailbox scan endpoint.
type ScanResponse struct {
	Emails        []ScannedCandidate `json:"emails"`
	NextPageToken string             `json:"next_page_token,omitempty"`
}

// ClassifyResponse is the classify endpoint's reply: the stored record id
// plus the extracted job metadata.
type ClassifyResponse struct {
	ProcessedEmailID int        `json:"processed_email_id"`
	JobDetails       JobDetails `json:"job_details"`
}

// DraftAck acknowledges a created draft. The client keeps no draft content
// state beyond this.
type DraftAck struct {
	DraftID         int      `json:"draft_id"`
	ProviderDraftID string   `json:"gmail_draft_id,omitempty"`
	ReplyText       string   `json:"reply_text"`
	MatchedSkills   []string `json:"matched_skills"`
}

// ConnectionStatus reports whether the external mailbox account is linked.
type ConnectionStatus struct {
	Connected bool `json:"connected"`
	HasToken  bool `json:"has_token"`
}

// ConnectAuthURL is the provider consent URL the user must visit to link
// their mailbox.
type ConnectAuthURL struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

// FederatedClientID exposes the identity-provider client id.
type FederatedClientID struct {
	ClientID string `json:"client_id"`
}

// ConvertLearnedResponse acknowledges a learned-skill promotion.
type ConvertLearnedResponse struct {
	Message string `json:"message"`
	SkillID int    `json:"skill_id"`
}

// BulkImportResponse summarizes a bulk skill import.
type BulkImportResponse struct {
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Message  string `json:"message"`
}
