package resumably

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samthedataman/resumably/internal/api"
	"github.com/samthedataman/resumably/internal/cache"
	"github.com/samthedataman/resumably/internal/types"
)

// pipelineState is the intake pipeline's working memory: the candidate set
// from the last scan plus in-flight guards that refuse re-submission of an
// identical action while one is pending. Unrelated actions stay allowed.
type pipelineState struct {
	mu         sync.Mutex
	candidates []types.ScannedCandidate

	scanPending     bool
	classifyPending map[string]struct{}
	draftPending    map[int]struct{}
}

func (p *pipelineState) init() {
	p.classifyPending = make(map[string]struct{})
	p.draftPending = make(map[int]struct{})
}

// Scan fetches candidate messages from the connected mailbox. The result
// replaces the prior working set wholesale; an empty result is a valid
// terminal outcome, not an error. Requires a linked mailbox account.
func (c *Client) Scan(ctx context.Context) ([]ScannedCandidate, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	status, err := c.ConnectionStatus(ctx)
	if err != nil {
		return nil, err
	}
	if !status.Connected {
		return nil, ErrNotConnected
	}

	p := &c.pipeline
	p.mu.Lock()
	if p.scanPending {
		p.mu.Unlock()
		return nil, ErrScanInFlight
	}
	p.scanPending = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.scanPending = false
		p.mu.Unlock()
	}()

	resp, err := api.Scan(ctx, c.http, c.baseURL, c.scanMax, c.scanQuery)
	recordPipelineOp("scan", err)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.candidates = resp.Emails
	p.mu.Unlock()
	c.log.Debug().Int("candidates", len(resp.Emails)).Msg("scan replaced working set")
	return copyCandidates(resp.Emails), nil
}

// Candidates returns the current scan working set.
func (c *Client) Candidates() []ScannedCandidate {
	c.pipeline.mu.Lock()
	defer c.pipeline.mu.Unlock()
	return copyCandidates(c.pipeline.candidates)
}

func copyCandidates(in []types.ScannedCandidate) []ScannedCandidate {
	out := make([]ScannedCandidate, len(in))
	copy(out, in)
	return out
}

// Classify requests server-side classification of one scanned candidate.
// On success the candidate leaves the working set and the processed-emails,
// stats and learned-skills caches are marked stale, since classification
// may change recruiter counts and surface new trending skills. On failure
// the candidate is left as-is so the action can be repeated.
func (c *Client) Classify(ctx context.Context, externalID string) (*ProcessedEmail, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	if externalID == "" {
		return nil, &ValidationError{Field: "externalID", Reason: "must not be empty"}
	}

	p := &c.pipeline
	p.mu.Lock()
	if _, busy := p.classifyPending[externalID]; busy {
		p.mu.Unlock()
		return nil, ErrActionInFlight
	}
	p.classifyPending[externalID] = struct{}{}
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		delete(p.classifyPending, externalID)
		p.mu.Unlock()
	}()

	resp, err := api.Classify(ctx, c.http, c.baseURL, externalID)
	recordPipelineOp("classify", err)
	if err != nil {
		return nil, err
	}

	processed := c.finishClassify(externalID, resp)
	c.invalidateFor("classify")
	return processed, nil
}

// finishClassify removes the classified candidate from the working set and
// assembles the record returned to the caller from the candidate plus the
// extracted job details. The authoritative record lives server-side in the
// processed-emails cache entry.
func (c *Client) finishClassify(externalID string, resp *types.ClassifyResponse) *ProcessedEmail {
	processed := &ProcessedEmail{
		ID:               resp.ProcessedEmailID,
		ExternalID:       externalID,
		JobTitle:         resp.JobDetails.JobTitle,
		Company:          resp.JobDetails.Company,
		JobRequirements:  resp.JobDetails.KeyRequirements,
		Technologies:     resp.JobDetails.KeyTechnologies,
		IsRecruiterEmail: resp.JobDetails.IsRecruiterEmail,
		Confidence:       resp.JobDetails.Confidence,
		ProcessedAt:      time.Now().UTC(),
	}

	p := &c.pipeline
	p.mu.Lock()
	for i, cand := range p.candidates {
		if cand.ExternalID == externalID {
			processed.Subject = cand.Subject
			processed.Sender = cand.Sender
			p.candidates = append(p.candidates[:i], p.candidates[i+1:]...)
			break
		}
	}
	p.mu.Unlock()
	return processed
}

// BatchClassify queues several candidates for background classification on
// the backend. The affected caches are marked stale immediately; counts
// converge as later reads refetch.
func (c *Client) BatchClassify(ctx context.Context, externalIDs []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if len(externalIDs) == 0 {
		return &ValidationError{Field: "externalIDs", Reason: "must not be empty"}
	}
	_, err := api.BatchClassify(ctx, c.http, c.baseURL, externalIDs)
	recordPipelineOp("batch-classify", err)
	if err != nil {
		return err
	}
	c.invalidateFor("batch-classify")
	return nil
}

// CreateDraft asks the backend to build a tailored reply draft for a
// processed email. resumeID nil means "use the default resume". Draft
// creation is not idempotent: calling it twice for the same id produces
// two drafts. The generated idempotency key only guards against
// transport-level duplication of a single call.
func (c *Client) CreateDraft(ctx context.Context, processedID int, resumeID *int) (*DraftAck, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}

	p := &c.pipeline
	p.mu.Lock()
	if _, busy := p.draftPending[processedID]; busy {
		p.mu.Unlock()
		return nil, ErrActionInFlight
	}
	p.draftPending[processedID] = struct{}{}
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		delete(p.draftPending, processedID)
		p.mu.Unlock()
	}()

	req := types.CreateDraftRequest{ProcessedEmailID: processedID, ResumeID: resumeID}
	ack, err := api.CreateDraft(ctx, c.http, c.baseURL, req, uuid.NewString())
	recordPipelineOp("draft", err)
	if err != nil {
		return nil, err
	}
	c.invalidateFor("create-draft")
	return ack, nil
}

// ProcessedEmails returns the cached processed-email list, refetching it
// when absent or stale.
func (c *Client) ProcessedEmails(ctx context.Context) ([]ProcessedEmail, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	return cachedAs[[]types.ProcessedEmail](ctx, c, cache.KeyProcessedEmails)
}

// ListProcessedEmails bypasses the cache for a filtered or larger query.
func (c *Client) ListProcessedEmails(ctx context.Context, recruiterOnly bool, limit int) ([]ProcessedEmail, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultProcessedLimit
	}
	return api.ListProcessed(ctx, c.http, c.baseURL, recruiterOnly, limit)
}

// GetProcessedEmail fetches one classified email by record id.
func (c *Client) GetProcessedEmail(ctx context.Context, id int) (*ProcessedEmail, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	return api.GetProcessed(ctx, c.http, c.baseURL, id)
}

// Drafts returns the cached draft list, refetching it when absent or stale.
func (c *Client) Drafts(ctx context.Context) ([]Draft, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	return cachedAs[[]types.Draft](ctx, c, cache.KeyDrafts)
}

// GetDraft fetches one draft by id.
func (c *Client) GetDraft(ctx context.Context, id int) (*Draft, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	return api.GetDraft(ctx, c.http, c.baseURL, id)
}

// Stats returns the cached dashboard counters, refetching them when absent
// or marked stale by a mutation.
func (c *Client) Stats(ctx context.Context) (*StatsSnapshot, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	return cachedAs[*types.StatsSnapshot](ctx, c, cache.KeyStats)
}
