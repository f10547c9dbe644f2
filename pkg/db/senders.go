package db

import (
	"fmt"
)

// ListOutreachEnabledSenders returns the workspace's connected, outreach-enabled
// sender accounts ordered by creation time. The inbox selector relies on this
// order being stable between calls to break daily-count ties.
func (d *DatabaseConnection) ListOutreachEnabledSenders(workspaceID string) ([]SenderAccount, error) {
	var accounts []SenderAccount
	err := d.DB.
		Where("workspace_id = ? AND connected = ? AND outreach_enabled = ?", workspaceID, true, true).
		Order("created_at").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed listing sender accounts for workspace %s: %v", workspaceID, err)
	}
	return accounts, nil
}

// CreateSenderAccount stores a newly connected sender account.
func (d *DatabaseConnection) CreateSenderAccount(account *SenderAccount) error {
	if result := d.DB.Create(account); result.Error != nil {
		return fmt.Errorf("failed creating sender account %s: %v", account.ID, result.Error)
	}
	return nil
}

// DisconnectSenderAccount marks a sender account as disconnected so the
// registry stops offering it for selection. The row is kept for history.
func (d *DatabaseConnection) DisconnectSenderAccount(id string) error {
	result := d.DB.Model(&SenderAccount{}).
		Where("id = ?", id).
		Update("connected", false)
	if result.Error != nil {
		return fmt.Errorf("failed disconnecting sender account %s: %v", id, result.Error)
	}
	return nil
}
