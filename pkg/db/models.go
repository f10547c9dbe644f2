package db

import "time"

// SenderAccount is a connected sending identity ("inbox") owned by a workspace.
// The quota engine only reads these; connection flows live elsewhere.
type SenderAccount struct {
	ID              string `gorm:"primaryKey"`
	WorkspaceID     string `gorm:"index"`
	Email           string
	Provider        string
	Connected       bool
	OutreachEnabled bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SenderDailySend counts outreach emails sent through one sender on one
// calendar day. A new date key implicitly starts at zero, there is no reset job.
type SenderDailySend struct {
	SenderID string `gorm:"primaryKey"`
	DateKey  string `gorm:"primaryKey"`
	Sent     int
}

// SenderWarmupSend counts warm-up emails per sender per day. Warm-up traffic
// never feeds the outreach quota checks.
type SenderWarmupSend struct {
	SenderID string `gorm:"primaryKey"`
	DateKey  string `gorm:"primaryKey"`
	Sent     int
}

// WorkspaceUsage accumulates workspace-wide usage for one calendar month.
// Emails gate outbound sending; the adjacent counters share the row shape.
type WorkspaceUsage struct {
	WorkspaceID     string `gorm:"primaryKey"`
	MonthKey        string `gorm:"primaryKey"`
	DateKey         string
	EmailsSent      int
	LinkedinActions int
	AiCredits       int
	WarmupSent      int
}

// UsageDelta is the per-send contribution applied to a WorkspaceUsage row.
type UsageDelta struct {
	Emails          int
	LinkedinActions int
	AiCredits       int
	Warmup          int
}

// DateKey buckets a timestamp to its UTC calendar day, e.g. "2026-08-30".
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// MonthKey buckets a timestamp to its UTC calendar month, e.g. "2026-08".
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
