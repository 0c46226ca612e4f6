package resumably

import "github.com/samthedataman/resumably/internal/types"

// Public type aliases so SDK consumers can import only this package.
type (
	// Domain entities
	User             = types.User
	ScannedCandidate = types.ScannedCandidate
	ProcessedEmail   = types.ProcessedEmail
	JobDetails       = types.JobDetails
	Draft            = types.Draft
	Skill            = types.Skill
	LearnedSkill     = types.LearnedSkill
	Resume           = types.Resume
	TopSkill         = types.TopSkill
	StatsSnapshot    = types.StatsSnapshot

	// Requests
	CreateSkillRequest  = types.CreateSkillRequest
	CreateResumeRequest = types.CreateResumeRequest
	UpdateResumeRequest = types.UpdateResumeRequest

	// Responses
	TwoFactorSetup   = types.TwoFactorSetup
	ScanResponse     = types.ScanResponse
	DraftAck         = types.DraftAck
	ConnectionStatus = types.ConnectionStatus
	ConnectAuthURL   = types.ConnectAuthURL
	BulkImportResult = types.BulkImportResponse
)

// Errors re-exported in errors.go
