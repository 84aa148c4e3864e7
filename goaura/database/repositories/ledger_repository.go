package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/goaura/goaura/database/models"
	"github.com/uptrace/bun"
)

type LedgerRepository interface {
	RecordEarning(ctx context.Context, entry *models.LedgerEntry) (int64, error)
	History(ctx context.Context, wallet string, limit, offset int) ([]*models.LedgerEntry, int, error)
	SumEarned(ctx context.Context, wallet string) (int64, error)
	SyncBalance(ctx context.Context, wallet string) (previous, current int64, err error)
}

type ledgerRepository struct {
	*BaseRepository
}

func NewLedgerRepository(db *bun.DB) LedgerRepository {
	return &ledgerRepository{BaseRepository: NewBaseRepository(db)}
}

// applyEarning appends a ledger row and bumps the cached account balance
// inside the caller's transaction. The two writes are never issued as
// independent round trips; a failure of either rolls back both.
func applyEarning(ctx context.Context, tx bun.IDB, entry *models.LedgerEntry) (int64, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
		return 0, err
	}

	var balance int64
	err := tx.NewUpdate().
		Model((*models.Account)(nil)).
		Set("balance = balance + ?", entry.Amount).
		Set("updated_at = ?", time.Now()).
		Where("wallet_address = ?", entry.WalletAddress).
		Returning("balance").
		Scan(ctx, &balance)
	return balance, err
}

// RecordEarning appends one entry and increments the cached balance as a
// single atomic unit, returning the new balance.
func (r *ledgerRepository) RecordEarning(ctx context.Context, entry *models.LedgerEntry) (int64, error) {
	var newBalance int64
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		balance, err := applyEarning(ctx, tx, entry)
		if err != nil {
			return err
		}
		newBalance = balance
		return nil
	})
	if err != nil {
		slog.Error("Failed to record earning",
			slog.String("type", "db"),
			slog.String("operation", "RecordEarning"),
			slog.String("wallet", entry.WalletAddress),
			slog.String("entry_type", entry.EntryType),
			slog.Any("error", err))
		return 0, err
	}
	return newBalance, nil
}

func (r *ledgerRepository) History(ctx context.Context, wallet string, limit, offset int) ([]*models.LedgerEntry, int, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var entries []*models.LedgerEntry
	count, err := r.db.NewSelect().
		Model(&entries).
		Where("wallet_address = ?", wallet).
		Order("created_at DESC", "id DESC").
		Limit(limit).
		Offset(offset).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return entries, count, nil
}

// sumEarned totals positive amounts only; the ledger is the source of
// truth for "how much has this wallet earned."
func sumEarned(ctx context.Context, db bun.IDB, wallet string) (int64, error) {
	var total int64
	err := db.NewSelect().
		Model((*models.LedgerEntry)(nil)).
		ColumnExpr("COALESCE(SUM(amount), 0)").
		Where("wallet_address = ?", wallet).
		Where("amount > 0").
		Scan(ctx, &total)
	return total, err
}

func (r *ledgerRepository) SumEarned(ctx context.Context, wallet string) (int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()
	return sumEarned(ctx, r.db, wallet)
}

// SyncBalance recomputes the cached balance from the ledger and overwrites
// it when it drifted. Idempotent; last reconciliation wins on the cache
// field under concurrent writers.
func (r *ledgerRepository) SyncBalance(ctx context.Context, wallet string) (int64, int64, error) {
	var previous, current int64
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model((*models.Account)(nil)).
			Column("balance").
			Where("wallet_address = ?", wallet).
			Scan(ctx, &previous)
		if err != nil {
			return err
		}

		current, err = sumEarned(ctx, tx, wallet)
		if err != nil {
			return err
		}

		if current == previous {
			return nil
		}

		_, err = tx.NewUpdate().
			Model((*models.Account)(nil)).
			Set("balance = ?", current).
			Set("updated_at = ?", time.Now()).
			Where("wallet_address = ?", wallet).
			Exec(ctx)
		return err
	})
	if err != nil {
		return 0, 0, err
	}

	if current != previous {
		slog.Warn("Balance cache drifted from ledger",
			slog.String("type", "db"),
			slog.String("wallet", wallet),
			slog.Int64("cached", previous),
			slog.Int64("ledger", current))
	}
	return previous, current, nil
}
