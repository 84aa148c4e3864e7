package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Account is the per-wallet aggregate. Balance caches the sum of positive
// ledger amounts; the ledger remains authoritative.
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:a"`

	ID            int64  `bun:"id,pk,autoincrement"`
	WalletAddress string `bun:"wallet_address,notnull,unique"`
	Balance       int64  `bun:"balance,notnull,default:0"`
	Tier          int    `bun:"tier,notnull,default:1"`

	// Cached from the subscriptions table, repaired on read when stale.
	SubscriptionType      string    `bun:"subscription_type"`
	SubscriptionExpiresAt time.Time `bun:"subscription_expires_at,nullzero"`

	LastActiveAt time.Time `bun:"last_active_at,nullzero"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull"`
}

// Subscription is the authoritative subscription record; the renewal job
// owns its lifecycle, this service only reads it.
type Subscription struct {
	bun.BaseModel `bun:"table:subscriptions,alias:sub"`

	ID            int64     `bun:"id,pk,autoincrement"`
	WalletAddress string    `bun:"wallet_address,notnull,unique"`
	Plan          string    `bun:"plan,notnull"`
	Active        bool      `bun:"active,notnull,default:false"`
	ExpiresAt     time.Time `bun:"expires_at,nullzero"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}
