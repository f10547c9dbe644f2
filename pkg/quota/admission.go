package quota

import (
	"time"

	"github.com/golang/glog"

	"github.com/reachforge/sendgate/pkg/db"
)

// Store is the externally persisted state the engine decides over. All
// counters live behind it so concurrent workers converge on the same values;
// the engine itself keeps no state between calls.
type Store interface {
	GetSenderDailySent(senderID, dateKey string) (int, error)
	GetWorkspaceMonthlySent(workspaceID, monthKey string) (int, error)
	ListOutreachEnabledSenders(workspaceID string) ([]db.SenderAccount, error)
}

// Engine answers whether an outbound email may be sent right now and through
// which inbox. It performs no mutation, tracking happens after the send.
type Engine struct {
	store   Store
	catalog *Catalog
	now     func() time.Time
}

// NewEngine creates an Engine deciding over the given store and plan catalog.
func NewEngine(store Store, catalog *Catalog) *Engine {
	return &Engine{
		store:   store,
		catalog: catalog,
		now:     time.Now,
	}
}

// CheckSendAllowed is the pre-flight admission check for one send. The
// workspace monthly cap is the outer constraint and is checked first; the
// per-inbox daily cap applies only when a specific sender is targeted.
// The check mutates nothing and is safe to call repeatedly for UI probes.
func (e *Engine) CheckSendAllowed(workspaceID, planName, senderID string) Decision {
	limits := e.catalog.ResolveLimits(planName)
	now := e.now()

	monthlySent := e.workspaceMonthlySent(workspaceID, db.MonthKey(now))
	if monthlySent >= limits.EmailsPerMonth {
		return Deny(monthlyLimitError(monthlySent, limits.EmailsPerMonth))
	}

	if senderID != "" {
		dailySent := e.senderDailySent(senderID, db.DateKey(now))
		if dailySent >= limits.EmailsPerDayPerInbox {
			return Deny(dailyLimitError(senderID, dailySent, limits.EmailsPerDayPerInbox))
		}
	}

	return Allow()
}

// workspaceMonthlySent reads the workspace monthly counter, failing open on a
// backing error so a transient read failure cannot by itself block sending.
func (e *Engine) workspaceMonthlySent(workspaceID, monthKey string) int {
	sent, err := e.store.GetWorkspaceMonthlySent(workspaceID, monthKey)
	if err != nil {
		glog.Errorf("Cannot read monthly sent count for workspace %s: %v", workspaceID, err)
		return 0
	}
	return sent
}

// senderDailySent reads a sender's daily counter with the same fail-open
// semantics as workspaceMonthlySent.
func (e *Engine) senderDailySent(senderID, dateKey string) int {
	sent, err := e.store.GetSenderDailySent(senderID, dateKey)
	if err != nil {
		glog.Errorf("Cannot read daily sent count for sender %s: %v", senderID, err)
		return 0
	}
	return sent
}
