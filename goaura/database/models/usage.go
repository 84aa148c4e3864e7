package models

import (
	"time"

	"github.com/uptrace/bun"
)

// AIDailyUsage accumulates token consumption per wallet per UTC day.
// Written exclusively through merge-increment upserts.
type AIDailyUsage struct {
	bun.BaseModel `bun:"table:ai_daily_usage,alias:adu"`

	ID            int64     `bun:"id,pk,autoincrement"`
	WalletAddress string    `bun:"wallet_address,notnull"`
	StatDate      time.Time `bun:"stat_date,notnull,type:date"`
	TokensUsed    int64     `bun:"tokens_used,notnull,default:0"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}

// AIMonthlyUsage accumulates token consumption per wallet per calendar
// month ("2006-01"). Written exclusively through merge-increment upserts.
type AIMonthlyUsage struct {
	bun.BaseModel `bun:"table:ai_monthly_usage,alias:amu"`

	ID            int64     `bun:"id,pk,autoincrement"`
	WalletAddress string    `bun:"wallet_address,notnull"`
	StatMonth     string    `bun:"stat_month,notnull"`
	TokensUsed    int64     `bun:"tokens_used,notnull,default:0"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}

// AIUsageLog is one append-only audit row per upstream call, success or
// failure. Read for observability only.
type AIUsageLog struct {
	bun.BaseModel `bun:"table:ai_usage_logs,alias:aul"`

	ID               int64     `bun:"id,pk,autoincrement"`
	WalletAddress    string    `bun:"wallet_address,notnull"`
	Model            string    `bun:"model,notnull"`
	FunctionType     string    `bun:"function_type"`
	PromptTokens     int64     `bun:"prompt_tokens,notnull,default:0"`
	CompletionTokens int64     `bun:"completion_tokens,notnull,default:0"`
	TotalTokens      int64     `bun:"total_tokens,notnull,default:0"`
	LatencyMs        int64     `bun:"latency_ms,notnull,default:0"`
	Success          bool      `bun:"success,notnull"`
	ErrorMessage     string    `bun:"error_message"`
	CreatedAt        time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
