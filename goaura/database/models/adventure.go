package models

import (
	"time"

	"github.com/uptrace/bun"
)

// AdventureCompletion is a one-shot quest reward. Unique on
// (wallet_address, quest_id); the constraint is the only race control for
// concurrent completion attempts.
type AdventureCompletion struct {
	bun.BaseModel `bun:"table:adventure_completions,alias:ac"`

	ID             int64     `bun:"id,pk,autoincrement"`
	WalletAddress  string    `bun:"wallet_address,notnull"`
	QuestID        string    `bun:"quest_id,notnull"`
	QuestText      string    `bun:"quest_text"`
	RewardAmount   int64     `bun:"reward_amount,notnull"`
	TierMultiplier float64   `bun:"tier_multiplier,notnull"`
	CompletedAt    time.Time `bun:"completed_at,notnull,default:current_timestamp"`
}
