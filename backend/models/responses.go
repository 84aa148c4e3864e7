package models

// CheckInResponse is the success payload of POST /checkin.
type CheckInResponse struct {
	Success           bool    `json:"success"`
	CheckInDate       string  `json:"checkInDate"`
	ConsecutiveDays   int     `json:"consecutiveDays"`
	WeeklyProgress    int     `json:"weeklyProgress"`
	Reward            int64   `json:"reward"`
	TierMultiplier    float64 `json:"tierMultiplier"`
	NewBalance        int64   `json:"newBalance"`
	SecondsUntilReset int64   `json:"secondsUntilReset"`
}

type CheckInStatusResponse struct {
	HasCheckedInToday bool   `json:"hasCheckedInToday"`
	ConsecutiveDays   int    `json:"consecutiveDays"`
	WeeklyProgress    int    `json:"weeklyProgress"`
	TotalCheckInDays  int    `json:"totalCheckInDays"`
	LastCheckInDate   string `json:"lastCheckInDate"`
	SecondsUntilReset int64  `json:"secondsUntilReset"`
}

type AdventureCompleteRequest struct {
	QuestID   string `json:"questId"`
	QuestText string `json:"questText"`
}

type AdventureCompleteResponse struct {
	Success        bool    `json:"success"`
	Reward         int64   `json:"reward"`
	TierMultiplier float64 `json:"tierMultiplier"`
	NewBalance     int64   `json:"newBalance"`
}

type DialogueRewardRequest struct {
	SessionID      string `json:"sessionId"`
	IsFirstChat    bool   `json:"isFirstChat"`
	ResonanceScore int    `json:"resonanceScore"`
}

type DialogueBreakdown struct {
	Base           int64   `json:"base"`
	FirstChatBonus int64   `json:"firstChatBonus"`
	ResonanceBonus int64   `json:"resonanceBonus"`
	TierMultiplier float64 `json:"tierMultiplier"`
}

type DialogueRewardResponse struct {
	Success       bool              `json:"success"`
	DialogueIndex int               `json:"dialogueIndex"`
	Reward        int64             `json:"reward"`
	Breakdown     DialogueBreakdown `json:"breakdown"`
	IsOverLimit   bool              `json:"isOverLimit"`
	NewBalance    int64             `json:"newBalance"`
}

type Transaction struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ReferenceID string `json:"referenceId,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

type TransactionHistoryResponse struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
	Limit        int           `json:"limit"`
	Offset       int           `json:"offset"`
}

type BalanceResponse struct {
	WalletAddress      string                `json:"walletAddress"`
	Balance            int64                 `json:"balance"`
	TotalEarned        int64                 `json:"totalEarned"`
	Tier               int                   `json:"tier"`
	TierMultiplier     float64               `json:"tierMultiplier"`
	SubscriptionType   string                `json:"subscriptionType,omitempty"`
	SubscriptionActive bool                  `json:"subscriptionActive"`
	TodayDialogues     int                   `json:"todayDialogues"`
	TodayTokensUsed    int64                 `json:"todayTokensUsed"`
	CheckIn            CheckInStatusResponse `json:"checkIn"`
}

type SyncBalanceResponse struct {
	PreviousBalance int64 `json:"previousBalance"`
	NewBalance      int64 `json:"newBalance"`
	Delta           int64 `json:"delta"`
}

type AIProxyRequest struct {
	Messages     []AIMessage `json:"messages"`
	Model        string      `json:"model"`
	MaxTokens    int64       `json:"max_tokens"`
	FunctionType string      `json:"function_type"`
}

type AIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type QuotaStatusResponse struct {
	DailyUsed    int64  `json:"dailyUsed"`
	DailyLimit   int64  `json:"dailyLimit"`
	MonthlyUsed  int64  `json:"monthlyUsed"`
	MonthlyLimit int64  `json:"monthlyLimit"`
	StatDate     string `json:"statDate"`
	StatMonth    string `json:"statMonth"`
}
