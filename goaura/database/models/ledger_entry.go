package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Earning entry types.
const (
	EntryTypeCheckIn   = "checkin"
	EntryTypeAdventure = "adventure"
	EntryTypeDialogue  = "dialogue"
)

// LedgerEntry is an append-only earning record. Rows are never updated or
// deleted; the account balance is reconciled from the positive amounts here.
type LedgerEntry struct {
	bun.BaseModel `bun:"table:ledger_entries,alias:le"`

	ID            int64     `bun:"id,pk,autoincrement"`
	WalletAddress string    `bun:"wallet_address,notnull"`
	EntryType     string    `bun:"entry_type,notnull"`
	Amount        int64     `bun:"amount,notnull"`
	Description   string    `bun:"description"`
	ReferenceID   string    `bun:"reference_id"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
