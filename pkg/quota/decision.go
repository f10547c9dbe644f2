// Package quota implements admission control for outbound sends: plan limit
// resolution, the pre-flight allow/deny check and least-loaded inbox selection.
package quota

import "fmt"

// DenialCode identifies why a send was not admitted. The set is closed,
// callers switch on it to present a recoverable reason to operators.
type DenialCode string

const (
	// DenialMonthlyEmailWorkspace means the workspace exhausted its monthly
	// send allowance. Recovers on month rollover or a plan upgrade.
	DenialMonthlyEmailWorkspace DenialCode = "MONTHLY_EMAIL_WORKSPACE"
	// DenialDailyEmailPerInbox means the targeted inbox, or every available
	// inbox, exhausted its daily allowance. Recovers on day rollover or by
	// connecting more inboxes.
	DenialDailyEmailPerInbox DenialCode = "DAILY_EMAIL_PER_INBOX"
	// DenialNoAvailableInbox means no outreach-enabled sender exists, or the
	// transport call itself failed.
	DenialNoAvailableInbox DenialCode = "NO_AVAILABLE_INBOX"
	// DenialInboxLimitReached is reserved for inbox-count limits. It is part
	// of the closed set but not raised by the selection algorithm.
	DenialInboxLimitReached DenialCode = "INBOX_LIMIT_REACHED"
)

// LimitDetails carries the numbers behind a denial for diagnostics and UI.
type LimitDetails struct {
	SenderID    string `json:"senderId,omitempty"`
	DailySent   int    `json:"dailySent,omitempty"`
	DailyMax    int    `json:"dailyMax,omitempty"`
	MonthlySent int    `json:"monthlySent,omitempty"`
	MonthlyMax  int    `json:"monthlyMax,omitempty"`
}

// SendLimitError is the typed denial returned to callers. It crosses the
// boundary back to UI and automation code and its shape must stay stable.
type SendLimitError struct {
	Code    DenialCode    `json:"code"`
	Message string        `json:"message"`
	Details *LimitDetails `json:"details,omitempty"`
}

func (e *SendLimitError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Decision is the transient outcome of an admission check. It is produced
// fresh on every call and never persisted.
type Decision struct {
	Allowed bool            `json:"allowed"`
	Denial  *SendLimitError `json:"denial,omitempty"`
}

// Allow returns an allowing decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision carrying the given limit error.
func Deny(limitErr *SendLimitError) Decision {
	return Decision{Denial: limitErr}
}

func monthlyLimitError(monthlySent, monthlyMax int) *SendLimitError {
	return &SendLimitError{
		Code:    DenialMonthlyEmailWorkspace,
		Message: "monthly email limit reached for this workspace",
		Details: &LimitDetails{MonthlySent: monthlySent, MonthlyMax: monthlyMax},
	}
}

func dailyLimitError(senderID string, dailySent, dailyMax int) *SendLimitError {
	return &SendLimitError{
		Code:    DenialDailyEmailPerInbox,
		Message: "daily email limit reached for this inbox",
		Details: &LimitDetails{SenderID: senderID, DailySent: dailySent, DailyMax: dailyMax},
	}
}

func noInboxError(message string) *SendLimitError {
	return &SendLimitError{
		Code:    DenialNoAvailableInbox,
		Message: message,
	}
}
