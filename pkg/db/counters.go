package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetSenderDailySent returns how many outreach emails the sender transmitted
// on the given day. A missing row means the day rolled over and starts at zero.
func (d *DatabaseConnection) GetSenderDailySent(senderID, dateKey string) (int, error) {
	var row SenderDailySend
	err := d.DB.Where("sender_id = ? AND date_key = ?", senderID, dateKey).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed reading sender_daily_sends for sender %s: %v", senderID, err)
	}
	return row.Sent, nil
}

// GetWorkspaceMonthlySent returns how many outreach emails the workspace
// transmitted during the given month.
func (d *DatabaseConnection) GetWorkspaceMonthlySent(workspaceID, monthKey string) (int, error) {
	var row WorkspaceUsage
	err := d.DB.Where("workspace_id = ? AND month_key = ?", workspaceID, monthKey).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed reading workspace_usages for workspace %s: %v", workspaceID, err)
	}
	return row.EmailsSent, nil
}

// IncrementSenderDaily adds one outreach send to the sender's counter for the
// given day. The upsert is atomic, concurrent workers converge on the same row.
func (d *DatabaseConnection) IncrementSenderDaily(senderID, dateKey string) error {
	result := d.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sender_id"}, {Name: "date_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"sent": gorm.Expr("sender_daily_sends.sent + 1")}),
	}).Create(&SenderDailySend{SenderID: senderID, DateKey: dateKey, Sent: 1})
	if result.Error != nil {
		return fmt.Errorf("failed updating sender_daily_sends for sender %s: %v", senderID, result.Error)
	}
	return nil
}

// IncrementSenderWarmup adds one warm-up send to the sender's warm-up counter.
// Warm-up counters are tracked in parallel and never gate outreach sends.
func (d *DatabaseConnection) IncrementSenderWarmup(senderID, dateKey string) error {
	result := d.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sender_id"}, {Name: "date_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"sent": gorm.Expr("sender_warmup_sends.sent + 1")}),
	}).Create(&SenderWarmupSend{SenderID: senderID, DateKey: dateKey, Sent: 1})
	if result.Error != nil {
		return fmt.Errorf("failed updating sender_warmup_sends for sender %s: %v", senderID, result.Error)
	}
	return nil
}

// IncrementWorkspaceUsage applies the given delta to the workspace usage row
// for the month. The date key records the most recent activity day.
func (d *DatabaseConnection) IncrementWorkspaceUsage(workspaceID, dateKey, monthKey string, delta UsageDelta) error {
	result := d.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "workspace_id"}, {Name: "month_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"date_key":         dateKey,
			"emails_sent":      gorm.Expr("workspace_usages.emails_sent + ?", delta.Emails),
			"linkedin_actions": gorm.Expr("workspace_usages.linkedin_actions + ?", delta.LinkedinActions),
			"ai_credits":       gorm.Expr("workspace_usages.ai_credits + ?", delta.AiCredits),
			"warmup_sent":      gorm.Expr("workspace_usages.warmup_sent + ?", delta.Warmup),
		}),
	}).Create(&WorkspaceUsage{
		WorkspaceID:     workspaceID,
		MonthKey:        monthKey,
		DateKey:         dateKey,
		EmailsSent:      delta.Emails,
		LinkedinActions: delta.LinkedinActions,
		AiCredits:       delta.AiCredits,
		WarmupSent:      delta.Warmup,
	})
	if result.Error != nil {
		return fmt.Errorf("failed updating workspace_usages for workspace %s: %v", workspaceID, result.Error)
	}
	return nil
}

// CleanupDailyCounters deletes daily outreach and warm-up counter rows with a
// date key strictly before the given one. Monthly rows are kept for billing.
func (d *DatabaseConnection) CleanupDailyCounters(beforeDateKey string) (int64, error) {
	daily := d.DB.Where("date_key < ?", beforeDateKey).Delete(&SenderDailySend{})
	if daily.Error != nil {
		return 0, fmt.Errorf("failed deleting expired sender_daily_sends: %v", daily.Error)
	}
	warmup := d.DB.Where("date_key < ?", beforeDateKey).Delete(&SenderWarmupSend{})
	if warmup.Error != nil {
		return daily.RowsAffected, fmt.Errorf("failed deleting expired sender_warmup_sends: %v", warmup.Error)
	}
	return daily.RowsAffected + warmup.RowsAffected, nil
}
