package repositories

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/goaura/goaura/database/models"
	"github.com/uptrace/bun"
)

type AccountRepository interface {
	GetOrCreate(ctx context.Context, wallet string) (*models.Account, error)
	GetByWallet(ctx context.Context, wallet string) (*models.Account, error)
	TouchLastActive(ctx context.Context, wallet string) error
	UpdateSubscriptionType(ctx context.Context, wallet, plan string) error
}

type accountRepository struct {
	*BaseRepository
}

func NewAccountRepository(db *bun.DB) AccountRepository {
	return &accountRepository{BaseRepository: NewBaseRepository(db)}
}

// GetOrCreate fetches the account for a wallet, lazily creating it on first
// touch. The insert is a DO NOTHING upsert so concurrent first touches for
// the same wallet cannot fail.
func (r *accountRepository) GetOrCreate(ctx context.Context, wallet string) (*models.Account, error) {
	now := time.Now()
	account := &models.Account{
		WalletAddress: wallet,
		Tier:          1,
		LastActiveAt:  now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := r.db.NewInsert().
		Model(account).
		On("CONFLICT (wallet_address) DO NOTHING").
		Exec(ctx)
	if err != nil {
		slog.Error("Failed to upsert account",
			slog.String("type", "db"),
			slog.String("operation", "GetOrCreate"),
			slog.String("wallet", wallet),
			slog.Any("error", err))
		return nil, err
	}

	return r.GetByWallet(ctx, wallet)
}

func (r *accountRepository) GetByWallet(ctx context.Context, wallet string) (*models.Account, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	account := new(models.Account)
	err := r.db.NewSelect().
		Model(account).
		Where("wallet_address = ?", wallet).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "account", ID: wallet}
		}
		return nil, r.HandleError("GetByWallet", "account", err)
	}

	return account, nil
}

// TouchLastActive refreshes the activity timestamp. Called best-effort
// after successful earnings; failures never fail the earning itself.
func (r *accountRepository) TouchLastActive(ctx context.Context, wallet string) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	_, err := r.db.NewUpdate().
		Model((*models.Account)(nil)).
		Set("last_active_at = ?", time.Now()).
		Set("updated_at = ?", time.Now()).
		Where("wallet_address = ?", wallet).
		Exec(ctx)
	return err
}

// UpdateSubscriptionType repairs the cached subscription field from the
// authoritative record. Last writer wins; the cache converges on reads.
func (r *accountRepository) UpdateSubscriptionType(ctx context.Context, wallet, plan string) error {
	_, err := r.db.NewUpdate().
		Model((*models.Account)(nil)).
		Set("subscription_type = ?", plan).
		Set("updated_at = ?", time.Now()).
		Where("wallet_address = ?", wallet).
		Exec(ctx)
	return err
}
