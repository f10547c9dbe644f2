package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/reachforge/sendgate/config"
)

// DatabaseClient defines methods for fetching or updating models in DB
type DatabaseClient interface {
	GetSenderDailySent(senderID, dateKey string) (int, error)
	GetWorkspaceMonthlySent(workspaceID, monthKey string) (int, error)
	IncrementSenderDaily(senderID, dateKey string) error
	IncrementSenderWarmup(senderID, dateKey string) error
	IncrementWorkspaceUsage(workspaceID, dateKey, monthKey string, delta UsageDelta) error
	ListOutreachEnabledSenders(workspaceID string) ([]SenderAccount, error)
	CreateSenderAccount(account *SenderAccount) error
	DisconnectSenderAccount(id string) error
	CleanupDailyCounters(beforeDateKey string) (int64, error)
}

// DatabaseConnection contains dependency for communicating with DB
type DatabaseConnection struct {
	DB *gorm.DB
}

// NewDatabaseConnection creates a new DB connection
func NewDatabaseConnection(cfg *config.DbConfig) (*DatabaseConnection, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	// counter writes are single upsert statements, the default transaction
	// wrapper only adds round trips
	connection, err := gorm.Open(postgres.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConnections)

	return &DatabaseConnection{DB: connection}, nil
}

// Migrate automatically migrates listed models in the database
// Documentation: https://gorm.io/docs/migration.html#Auto-Migration
func (d *DatabaseConnection) Migrate() error {
	return d.DB.AutoMigrate(&SenderAccount{}, &SenderDailySend{}, &SenderWarmupSend{}, &WorkspaceUsage{})
}
