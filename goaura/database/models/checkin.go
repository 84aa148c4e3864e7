package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CheckIn is one daily check-in. The unique (wallet_address, check_in_date)
// index is the idempotency boundary: a duplicate insert means the wallet
// already checked in today. Rows are never mutated after insertion.
type CheckIn struct {
	bun.BaseModel `bun:"table:check_ins,alias:ci"`

	ID              int64     `bun:"id,pk,autoincrement"`
	WalletAddress   string    `bun:"wallet_address,notnull"`
	CheckInDate     time.Time `bun:"check_in_date,notnull,type:date"`
	ConsecutiveDays int       `bun:"consecutive_days,notnull"`
	WeeklyProgress  int       `bun:"weekly_progress,notnull"`
	RewardAmount    int64     `bun:"reward_amount,notnull"`
	TierMultiplier  float64   `bun:"tier_multiplier,notnull"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
