package db

// MockDatabaseClient is a hand-rolled DatabaseClient for tests. Each method
// records that it was called and delegates to the matching func field.
type MockDatabaseClient struct {
	CalledGetSenderDailySent         bool
	CalledGetWorkspaceMonthlySent    bool
	CalledIncrementSenderDaily       bool
	CalledIncrementSenderWarmup      bool
	CalledIncrementWorkspaceUsage    bool
	CalledListOutreachEnabledSenders bool
	CalledCreateSenderAccount        bool
	CalledDisconnectSenderAccount    bool
	CalledCleanupDailyCounters       bool

	GetSenderDailySentFunc         func(senderID, dateKey string) (int, error)
	GetWorkspaceMonthlySentFunc    func(workspaceID, monthKey string) (int, error)
	IncrementSenderDailyFunc       func(senderID, dateKey string) error
	IncrementSenderWarmupFunc      func(senderID, dateKey string) error
	IncrementWorkspaceUsageFunc    func(workspaceID, dateKey, monthKey string, delta UsageDelta) error
	ListOutreachEnabledSendersFunc func(workspaceID string) ([]SenderAccount, error)
	CreateSenderAccountFunc        func(account *SenderAccount) error
	DisconnectSenderAccountFunc    func(id string) error
	CleanupDailyCountersFunc       func(beforeDateKey string) (int64, error)
}

func (m *MockDatabaseClient) GetSenderDailySent(senderID, dateKey string) (int, error) {
	m.CalledGetSenderDailySent = true
	return m.GetSenderDailySentFunc(senderID, dateKey)
}

func (m *MockDatabaseClient) GetWorkspaceMonthlySent(workspaceID, monthKey string) (int, error) {
	m.CalledGetWorkspaceMonthlySent = true
	return m.GetWorkspaceMonthlySentFunc(workspaceID, monthKey)
}

func (m *MockDatabaseClient) IncrementSenderDaily(senderID, dateKey string) error {
	m.CalledIncrementSenderDaily = true
	return m.IncrementSenderDailyFunc(senderID, dateKey)
}

func (m *MockDatabaseClient) IncrementSenderWarmup(senderID, dateKey string) error {
	m.CalledIncrementSenderWarmup = true
	return m.IncrementSenderWarmupFunc(senderID, dateKey)
}

func (m *MockDatabaseClient) IncrementWorkspaceUsage(workspaceID, dateKey, monthKey string, delta UsageDelta) error {
	m.CalledIncrementWorkspaceUsage = true
	return m.IncrementWorkspaceUsageFunc(workspaceID, dateKey, monthKey, delta)
}

func (m *MockDatabaseClient) ListOutreachEnabledSenders(workspaceID string) ([]SenderAccount, error) {
	m.CalledListOutreachEnabledSenders = true
	return m.ListOutreachEnabledSendersFunc(workspaceID)
}

func (m *MockDatabaseClient) CreateSenderAccount(account *SenderAccount) error {
	m.CalledCreateSenderAccount = true
	return m.CreateSenderAccountFunc(account)
}

func (m *MockDatabaseClient) DisconnectSenderAccount(id string) error {
	m.CalledDisconnectSenderAccount = true
	return m.DisconnectSenderAccountFunc(id)
}

func (m *MockDatabaseClient) CleanupDailyCounters(beforeDateKey string) (int64, error) {
	m.CalledCleanupDailyCounters = true
	return m.CleanupDailyCountersFunc(beforeDateKey)
}
