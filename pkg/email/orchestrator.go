package email

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/reachforge/sendgate/pkg/db"
	"github.com/reachforge/sendgate/pkg/metrics"
	"github.com/reachforge/sendgate/pkg/quota"
)

// Store is the persistence surface the orchestrator needs: the sender
// registry for resolving accounts and the counters it updates after a
// successful delivery.
type Store interface {
	IncrementSenderDaily(senderID, dateKey string) error
	IncrementSenderWarmup(senderID, dateKey string) error
	IncrementWorkspaceUsage(workspaceID, dateKey, monthKey string, delta db.UsageDelta) error
	ListOutreachEnabledSenders(workspaceID string) ([]db.SenderAccount, error)
}

// SendRequest describes one outbound sequence email. PreferredSenderID pins
// the send to a specific inbox instead of letting the selector rotate.
type SendRequest struct {
	WorkspaceID       string `json:"workspaceId"`
	PlanName          string `json:"plan"`
	To                string `json:"to"`
	Subject           string `json:"subject"`
	HTML              string `json:"html"`
	CampaignID        string `json:"campaignId,omitempty"`
	SequenceStepID    string `json:"sequenceStepId,omitempty"`
	PreferredSenderID string `json:"preferredSenderId,omitempty"`
}

// WarmupRequest describes one warm-up email for a specific inbox. Warm-up
// traffic primes deliverability and is tracked outside the outreach quotas.
type WarmupRequest struct {
	WorkspaceID string `json:"workspaceId"`
	SenderID    string `json:"senderId"`
	To          string `json:"to"`
	Subject     string `json:"subject"`
	HTML        string `json:"html"`
}

// SendResult is the caller-facing outcome of one send. Its shape is stable
// for UI and automation callers.
type SendResult struct {
	Success         bool                  `json:"success"`
	SenderAccountID string                `json:"senderAccountId,omitempty"`
	Error           *quota.SendLimitError `json:"error,omitempty"`
}

// Orchestrator runs the decision-then-act transaction for a single message:
// admission, inbox resolution, transport delivery and post-send tracking.
type Orchestrator struct {
	engine    *quota.Engine
	store     Store
	transport Transport
	now       func() time.Time
}

// NewOrchestrator creates an Orchestrator on top of the given engine, store
// and delivery transport.
func NewOrchestrator(engine *quota.Engine, store Store, transport Transport) *Orchestrator {
	return &Orchestrator{
		engine:    engine,
		store:     store,
		transport: transport,
		now:       time.Now,
	}
}

// SendSequenceEmail sends one sequence email if quota admission allows it.
// A pinned sender is checked as-is and never silently substituted; without a
// pin the least-loaded available inbox is used. Counters are only updated
// after the transport confirmed delivery, and a tracking failure never
// reverses an already-sent email.
func (o *Orchestrator) SendSequenceEmail(ctx context.Context, req SendRequest) SendResult {
	var account *db.SenderAccount

	if req.PreferredSenderID != "" {
		decision := o.engine.CheckSendAllowed(req.WorkspaceID, req.PlanName, req.PreferredSenderID)
		if !decision.Allowed {
			metrics.DefaultInstance().IncDeniedSendEmail(req.WorkspaceID, string(decision.Denial.Code))
			return SendResult{Error: decision.Denial}
		}
		account = o.lookupSender(req.WorkspaceID, req.PreferredSenderID)
		if account == nil {
			denial := &quota.SendLimitError{
				Code:    quota.DenialNoAvailableInbox,
				Message: fmt.Sprintf("preferred inbox %s is not connected for outreach", req.PreferredSenderID),
			}
			metrics.DefaultInstance().IncDeniedSendEmail(req.WorkspaceID, string(denial.Code))
			return SendResult{Error: denial}
		}
	} else {
		selected, limitErr := o.engine.SelectInbox(req.WorkspaceID, req.PlanName)
		if limitErr != nil {
			metrics.DefaultInstance().IncDeniedSendEmail(req.WorkspaceID, string(limitErr.Code))
			return SendResult{Error: limitErr}
		}
		account = selected
	}

	msg := OutboundMessage{
		SenderAccountID: account.ID,
		From:            account.Email,
		To:              req.To,
		Subject:         req.Subject,
		HTML:            req.HTML,
		CampaignID:      req.CampaignID,
		SequenceStepID:  req.SequenceStepID,
	}

	if err := o.transport.SendEmail(ctx, msg); err != nil {
		glog.Errorf("Transport failed for workspace %s via sender %s: %v", req.WorkspaceID, account.ID, err)
		metrics.DefaultInstance().IncFailedSendEmail(req.WorkspaceID)
		return SendResult{
			SenderAccountID: account.ID,
			Error: &quota.SendLimitError{
				Code:    quota.DenialNoAvailableInbox,
				Message: fmt.Sprintf("email transport failed: %v", err),
			},
		}
	}

	o.trackOutreachSend(req.WorkspaceID, account.ID)
	metrics.DefaultInstance().IncSendEmail(req.WorkspaceID)

	return SendResult{Success: true, SenderAccountID: account.ID}
}

// SendWarmupEmail delivers a warm-up email through a specific inbox. Warm-up
// sends bypass the quota gates and must never touch the outreach counters.
func (o *Orchestrator) SendWarmupEmail(ctx context.Context, req WarmupRequest) SendResult {
	account := o.lookupSender(req.WorkspaceID, req.SenderID)
	if account == nil {
		return SendResult{
			Error: &quota.SendLimitError{
				Code:    quota.DenialNoAvailableInbox,
				Message: fmt.Sprintf("inbox %s is not connected for outreach", req.SenderID),
			},
		}
	}

	msg := OutboundMessage{
		SenderAccountID: account.ID,
		From:            account.Email,
		To:              req.To,
		Subject:         req.Subject,
		HTML:            req.HTML,
	}

	if err := o.transport.SendEmail(ctx, msg); err != nil {
		glog.Errorf("Warm-up transport failed for sender %s: %v", account.ID, err)
		metrics.DefaultInstance().IncFailedSendEmail(req.WorkspaceID)
		return SendResult{
			SenderAccountID: account.ID,
			Error: &quota.SendLimitError{
				Code:    quota.DenialNoAvailableInbox,
				Message: fmt.Sprintf("email transport failed: %v", err),
			},
		}
	}

	now := o.now()
	if err := o.store.IncrementSenderWarmup(account.ID, db.DateKey(now)); err != nil {
		glog.Errorf("Failed to track warm-up send for sender %s: %v", account.ID, err)
	}
	if err := o.store.IncrementWorkspaceUsage(req.WorkspaceID, db.DateKey(now), db.MonthKey(now), db.UsageDelta{Warmup: 1}); err != nil {
		glog.Errorf("Failed to track warm-up usage for workspace %s: %v", req.WorkspaceID, err)
	}
	metrics.DefaultInstance().IncWarmupSendEmail(req.WorkspaceID)

	return SendResult{Success: true, SenderAccountID: account.ID}
}

// trackOutreachSend records one delivered email on the sender's daily counter
// and the workspace's monthly usage. The two writes are one logical tracking
// unit but have no transactional linkage; either failure is logged and
// swallowed so a tracking glitch cannot roll back a real send.
func (o *Orchestrator) trackOutreachSend(workspaceID, senderID string) {
	now := o.now()
	if err := o.store.IncrementSenderDaily(senderID, db.DateKey(now)); err != nil {
		glog.Errorf("Failed to track daily send for sender %s: %v", senderID, err)
	}
	if err := o.store.IncrementWorkspaceUsage(workspaceID, db.DateKey(now), db.MonthKey(now), db.UsageDelta{Emails: 1}); err != nil {
		glog.Errorf("Failed to track monthly usage for workspace %s: %v", workspaceID, err)
	}
}

// lookupSender resolves an inbox by ID within the workspace's outreach set.
func (o *Orchestrator) lookupSender(workspaceID, senderID string) *db.SenderAccount {
	accounts, err := o.store.ListOutreachEnabledSenders(workspaceID)
	if err != nil {
		glog.Errorf("Cannot list sender accounts for workspace %s: %v", workspaceID, err)
		return nil
	}
	for i := range accounts {
		if accounts[i].ID == senderID {
			return &accounts[i]
		}
	}
	return nil
}
