package models

import (
	"time"

	"github.com/uptrace/bun"
)

// DialogueReward is one rewarded conversation turn. This table carries no
// uniqueness constraint: concurrent duplicate submissions for the same turn
// both credit. Kept as-is rather than silently changing the client contract.
type DialogueReward struct {
	bun.BaseModel `bun:"table:dialogue_rewards,alias:dr"`

	ID             int64     `bun:"id,pk,autoincrement"`
	WalletAddress  string    `bun:"wallet_address,notnull"`
	SessionID      string    `bun:"session_id"`
	DialogueIndex  int       `bun:"dialogue_index,notnull"`
	BaseReward     int64     `bun:"base_reward,notnull"`
	FirstChatBonus int64     `bun:"first_chat_bonus,notnull,default:0"`
	ResonanceBonus int64     `bun:"resonance_bonus,notnull,default:0"`
	TierMultiplier float64   `bun:"tier_multiplier,notnull"`
	RewardAmount   int64     `bun:"reward_amount,notnull"`
	IsFirstChat    bool      `bun:"is_first_chat,notnull,default:false"`
	IsOverLimit    bool      `bun:"is_over_limit,notnull,default:false"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
