package quota

import (
	"sort"

	"github.com/golang/glog"

	"github.com/reachforge/sendgate/pkg/db"
)

// SelectInbox picks the sender account the next outbound email should go
// through: the least-loaded inbox with daily headroom. Counts change between
// sends, so the ordering is re-evaluated on every call and never cached.
//
// The read-then-send cycle is not atomic across workers; two workers can both
// observe one slot of headroom and overshoot a cap by one. The caps are soft
// limits and the overshoot is accepted, see the tracking step in pkg/email.
func (e *Engine) SelectInbox(workspaceID, planName string) (*db.SenderAccount, *SendLimitError) {
	limits := e.catalog.ResolveLimits(planName)
	now := e.now()

	monthlySent := e.workspaceMonthlySent(workspaceID, db.MonthKey(now))
	if monthlySent >= limits.EmailsPerMonth {
		return nil, monthlyLimitError(monthlySent, limits.EmailsPerMonth)
	}

	accounts, err := e.store.ListOutreachEnabledSenders(workspaceID)
	if err != nil {
		glog.Errorf("Cannot list sender accounts for workspace %s: %v", workspaceID, err)
		return nil, noInboxError("failed to load connected inboxes for this workspace")
	}
	if len(accounts) == 0 {
		return nil, noInboxError("no outreach-enabled inbox is connected to this workspace")
	}

	type candidate struct {
		account db.SenderAccount
		sent    int
	}

	dateKey := db.DateKey(now)
	available := make([]candidate, 0, len(accounts))
	for _, account := range accounts {
		sent := e.senderDailySent(account.ID, dateKey)
		if sent < limits.EmailsPerDayPerInbox {
			available = append(available, candidate{account: account, sent: sent})
		}
	}

	if len(available) == 0 {
		return nil, &SendLimitError{
			Code:    DenialDailyEmailPerInbox,
			Message: "every connected inbox reached its daily send limit",
			Details: &LimitDetails{DailyMax: limits.EmailsPerDayPerInbox},
		}
	}

	// Least-loaded first spreads the day's volume evenly across inboxes
	// instead of exhausting one before rotating to the next. Ties keep the
	// registry's stable order.
	sort.SliceStable(available, func(i, j int) bool {
		return available[i].sent < available[j].sent
	})

	selected := available[0].account
	return &selected, nil
}
